package main

import (
	"context"
	"log"
	"time"

	"github.com/marinhotg/satshack24/config"
	"github.com/marinhotg/satshack24/database"
	routes "github.com/marinhotg/satshack24/internal/app/http"
	"github.com/marinhotg/satshack24/internal/lightning"
	"github.com/marinhotg/satshack24/internal/service"
	"github.com/marinhotg/satshack24/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadEnv()

	db, err := database.Connect(cfg.DBURL)
	if err != nil {
		log.Fatal(err)
	}

	lnClient, err := lightning.NewLightsparkClient(lightning.LightsparkConfig{
		TokenID:      cfg.LightsparkTokenID,
		TokenSecret:  cfg.LightsparkTokenSecret,
		NodeID:       cfg.LightsparkNodeID,
		NodePassword: cfg.LightsparkNodePassword,
	})
	if err != nil {
		log.Fatal(err)
	}

	store, err := storage.NewDiskStore(cfg.UploadDir, "/uploads")
	if err != nil {
		log.Fatal(err)
	}

	billSvc := service.NewBills(db)
	userSvc := service.NewUsers(db)
	ratingSvc := service.NewRatings(db, billSvc)

	sweeper := service.NewSweeper(db, cfg.SweepInterval)
	sweeper.Start(context.Background())

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		JWTSecret: cfg.JWTSecret,
		UploadDir: cfg.UploadDir,
		Users:     userSvc,
		Bills:     billSvc,
		Ratings:   ratingSvc,
		Issuer:    lightning.NewIssuer(lnClient),
		Lightning: lnClient,
		Store:     store,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
