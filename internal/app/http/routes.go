package routes

import (
	authapi "github.com/marinhotg/satshack24/internal/api/auth"
	billsapi "github.com/marinhotg/satshack24/internal/api/bills"
	"github.com/marinhotg/satshack24/internal/api/lightningapi"
	ratingsapi "github.com/marinhotg/satshack24/internal/api/ratings"
	usersapi "github.com/marinhotg/satshack24/internal/api/users"
	"github.com/marinhotg/satshack24/internal/app/http/middleware"
	"github.com/marinhotg/satshack24/internal/lightning"
	"github.com/marinhotg/satshack24/internal/service"
	"github.com/marinhotg/satshack24/internal/storage"

	"github.com/gin-gonic/gin"
)

// Deps carries the constructed services into route registration; there
// are no package-level singletons.
type Deps struct {
	JWTSecret string
	UploadDir string

	Users     *service.Users
	Bills     *service.Bills
	Ratings   *service.Ratings
	Issuer    *lightning.Issuer
	Lightning lightning.Client
	Store     storage.Store
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	users := usersapi.NewHandler(d.Users)
	auth := authapi.NewHandler(d.Users, d.JWTSecret)
	bills := billsapi.NewHandler(d.Bills, d.Issuer, d.Store)
	ratings := ratingsapi.NewHandler(d.Ratings)
	ln := lightningapi.NewHandler(d.Lightning)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Uploaded files are served straight from the store directory.
	r.Static("/uploads", d.UploadDir)

	public := r.Group("/api")
	public.Use(middleware.SanitizeInputMiddleware())

	public.POST("/user", users.Create)
	public.GET("/user", users.CheckEmail)
	public.POST("/auth/login", auth.Login)
	public.GET("/bills/pending", bills.Pending)
	public.GET("/bills/:id", bills.Get)

	authed := r.Group("/api")
	authed.Use(middleware.AuthMiddleware(d.JWTSecret))

	authed.GET("/user/:id", users.Get)

	authed.POST("/bills", bills.Create)
	authed.POST("/bills/reserve", bills.Reserve)
	authed.GET("/bills/user", bills.UserBills)
	authed.POST("/bills/:id/update-receipt", bills.UpdateReceipt)
	authed.POST("/bills/:id/approve", bills.Approve)
	authed.POST("/bills/:id/pay", bills.Pay)
	authed.POST("/bills/:id/status", bills.UpdateStatus)

	authed.POST("/bills/light", bills.CreateInvoice)
	authed.POST("/bills/light/personY", bills.CreateUserInvoice)

	authed.POST("/bills/upload-bill", bills.UploadBill)
	authed.POST("/bills/upload-receipt", bills.UploadReceipt)

	authed.POST("/rating", ratings.Create)

	authed.POST("/lightning/pay", ln.PayInvoice)
	authed.GET("/lightning/transactions", ln.Transactions)
}
