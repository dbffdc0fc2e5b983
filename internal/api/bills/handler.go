package bills

import (
	"net/http"
	"strconv"

	"github.com/marinhotg/satshack24/internal/apperr"
	"github.com/marinhotg/satshack24/internal/domain/bills"
	"github.com/marinhotg/satshack24/internal/lightning"
	"github.com/marinhotg/satshack24/internal/service"
	"github.com/marinhotg/satshack24/internal/storage"

	"github.com/gin-gonic/gin"
)

var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

type Handler struct {
	bills  *service.Bills
	issuer *lightning.Issuer
	store  storage.Store
}

func NewHandler(billSvc *service.Bills, issuer *lightning.Issuer, store storage.Store) *Handler {
	return &Handler{bills: billSvc, issuer: issuer, store: store}
}

func (h *Handler) billID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill id"})
		return 0, false
	}
	return uint(id), true
}

// Create handles POST /api/bills; the uploader is the authenticated user.
func (h *Handler) Create(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := h.bills.Create(service.CreateBillParams{
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		Currency:    req.Currency,
		BonusRate:   req.BonusRate,
		PaymentType: bills.PaymentType(req.PaymentType),
		PaymentCode: req.PaymentCode,
		UploadedBy:  c.GetUint("user_id"),
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		FileType:    req.FileType,
	})
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBillResponse(bill))
}

// Pending handles GET /api/bills/pending, earliest due first.
func (h *Handler) Pending(c *gin.Context) {
	list, err := h.bills.ListPending()
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, toBillResponses(list))
}

// Get handles GET /api/bills/:id with uploader/reserver/rating expanded.
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.billID(c)
	if !ok {
		return
	}

	bill, err := h.bills.Get(id)
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, toBillResponse(bill))
}

// Reserve handles POST /api/bills/reserve; the reserver is the
// authenticated user. A lost race returns 409.
func (h *Handler) Reserve(c *gin.Context) {
	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "billId and reservationTime are required"})
		return
	}

	bill, err := h.bills.Reserve(req.BillID, c.GetUint("user_id"), req.ReservationTime)
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, toBillResponse(bill))
}

// UpdateReceipt handles POST /api/bills/:id/update-receipt.
func (h *Handler) UpdateReceipt(c *gin.Context) {
	id, ok := h.billID(c)
	if !ok {
		return
	}

	var req UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := h.bills.AttachReceipt(id, req.ReceiptURL, req.ReceiptPathname)
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, toBillResponse(bill))
}

// Approve handles POST /api/bills/:id/approve.
func (h *Handler) Approve(c *gin.Context) {
	id, ok := h.billID(c)
	if !ok {
		return
	}

	bill, err := h.bills.Approve(id)
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, toBillResponse(bill))
}

// Pay handles POST /api/bills/:id/pay, recording settlement.
func (h *Handler) Pay(c *gin.Context) {
	id, ok := h.billID(c)
	if !ok {
		return
	}

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := h.bills.Settle(id, req.InvoiceID, req.PaymentHash)
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, toBillResponse(bill))
}

// UpdateStatus handles POST /api/bills/:id/status; this is how a bill is
// cancelled or expired.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := h.billID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := h.bills.UpdateStatus(id, bills.Status(req.Status))
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, toBillResponse(bill))
}

// UserBills handles GET /api/bills/user?userId=&status=.
func (h *Handler) UserBills(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	var status *bills.Status
	if raw := c.Query("status"); raw != "" {
		s := bills.Status(raw)
		if !s.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
			return
		}
		status = &s
	}

	list, err := h.bills.ListUserBills(uint(userID), status)
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, toBillResponses(list))
}

// CreateInvoice handles POST /api/bills/light: a Lightning invoice for
// the bill's reserver node plus its QR rendering.
func (h *Handler) CreateInvoice(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := h.bills.Get(req.BillID)
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}
	if bill.Reserver == nil {
		apperr.WriteJSON(c, apperr.InvalidState("Bill has no reserver to invoice for"))
		return
	}

	issued, err := h.issuer.Issue(c.Request.Context(), lightning.InvoiceRequest{
		BillID: bill.ID,
		NodeID: bill.Reserver.NodeID,
		Amount: req.Amount,
		Unit:   req.Unit,
		Memo:   req.Memo,
	})
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}

	c.JSON(http.StatusOK, issued)
}

// CreateUserInvoice handles POST /api/bills/light/personY: an invoice
// against an arbitrary node id.
func (h *Handler) CreateUserInvoice(c *gin.Context) {
	var req UserInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issued, err := h.issuer.Issue(c.Request.Context(), lightning.InvoiceRequest{
		NodeID: req.NodeID,
		Amount: req.Amount,
		Unit:   req.Unit,
		Memo:   req.Memo,
	})
	if err != nil {
		apperr.WriteJSON(c, err)
		return
	}

	c.JSON(http.StatusOK, issued)
}

// UploadBill handles POST /api/bills/upload-bill (multipart "file").
func (h *Handler) UploadBill(c *gin.Context) {
	h.upload(c)
}

// UploadReceipt handles POST /api/bills/upload-receipt (multipart "file").
func (h *Handler) UploadReceipt(c *gin.Context) {
	h.upload(c)
}

func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only JPEG, PNG and PDF uploads are allowed"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read upload"})
		return
	}
	defer f.Close()

	uploaded, err := h.store.Save(c.Request.Context(), fileHeader.Filename, contentType, f)
	if err != nil {
		apperr.WriteJSON(c, apperr.External("Failed to store upload", err))
		return
	}

	c.JSON(http.StatusOK, uploaded)
}
