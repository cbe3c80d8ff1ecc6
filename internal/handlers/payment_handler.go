package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cukurin/booking-api/internal/audit"
	domain "github.com/cukurin/booking-api/internal/domain/payment"
	"github.com/cukurin/booking-api/internal/httperr"
	"github.com/cukurin/booking-api/internal/models"
	"github.com/cukurin/booking-api/internal/upload"
	ucpayment "github.com/cukurin/booking-api/internal/usecase/payment"
)

type PaymentHandler struct {
	db    *gorm.DB
	saver *upload.Saver
	audit *audit.Dispatcher

	snapUC   *ucpayment.CreateSnapPayment
	chargeUC *ucpayment.ChargePayment
	statusUC *ucpayment.CheckStatus
}

func NewPaymentHandler(
	db *gorm.DB,
	saver *upload.Saver,
	auditDispatcher *audit.Dispatcher,
	snapUC *ucpayment.CreateSnapPayment,
	chargeUC *ucpayment.ChargePayment,
	statusUC *ucpayment.CheckStatus,
) *PaymentHandler {
	return &PaymentHandler{
		db:       db,
		saver:    saver,
		audit:    auditDispatcher,
		snapUC:   snapUC,
		chargeUC: chargeUC,
		statusUC: statusUC,
	}
}

// --------- Requests ---------

type InitiatePaymentRequest struct {
	BookingID     uint   `json:"bookingId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	QrisCode      string `json:"qrisCode"`
	Phone         string `json:"phone"`
}

type StatusSnapRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// paymentRow is a payment joined with its booking and proof file.
type paymentRow struct {
	models.Payment
	Paket           string `json:"paket"`
	AppointmentTime string `json:"appointment_time"`
	Service         string `json:"service"`
	ProofFile       string `json:"proofFile"`
}

const paymentJoinSelect = `payments.*,
	bookings.paket AS paket,
	bookings.appointment_time AS appointment_time,
	bookings.service AS service,
	COALESCE(payment_proofs.proof_file, '') AS proof_file`

// --------- Handlers ---------

// CreateSnapToken builds a hosted-checkout transaction for a booking and
// stores the payment with the gateway token and redirect URL.
func (h *PaymentHandler) CreateSnapToken(c *gin.Context) {
	var req InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	res, err := h.snapUC.Execute(c.Request.Context(), ucpayment.InitiateInput{
		BookingID:     req.BookingID,
		PaymentMethod: req.PaymentMethod,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		QrisCode:      req.QrisCode,
		Phone:         req.Phone,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Snap token created and payment data saved successfully",
		"snapToken":   res.SnapToken,
		"redirectUrl": res.RedirectURL,
		"booking": gin.H{
			"userEmail":           res.Booking.UserEmail,
			"barberName":          res.Booking.BarberName,
			"barberPhoneNumber":   res.Booking.BarberPhoneNumber,
			"barberBankName":      res.Booking.BarberBankName,
			"barberAccountNumber": res.Booking.BarberAccountNumber,
			"amount":              res.Booking.Amount,
		},
	})
}

// ProcessPayment runs a direct charge. For QRIS the response carries the
// rendered QR code image as a data URL.
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	res, err := h.chargeUC.Execute(c.Request.Context(), ucpayment.InitiateInput{
		BookingID:     req.BookingID,
		PaymentMethod: req.PaymentMethod,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		QrisCode:      req.QrisCode,
		Phone:         req.Phone,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Payment initiated successfully",
		"paymentId":   res.Payment.ID,
		"bookingId":   res.Payment.BookingID,
		"userEmail":   res.Booking.UserEmail,
		"barberId":    res.Booking.BarberID,
		"barberName":  res.Booking.BarberName,
		"qrCodeImage": res.QRCodeImage,
		"redirectUrl": res.RedirectURL,
		"token":       res.Token,
	})
}

// StatusSnap asks the gateway for the live transaction state. The stored
// payment row is not refreshed here; only the manual update endpoint moves
// the persisted status.
func (h *PaymentHandler) StatusSnap(c *gin.Context) {
	var req StatusSnapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Transaction ID is required.",
		})
		return
	}

	res, err := h.statusUC.Execute(c.Request.Context(), req.TransactionID)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	if !res.Settled {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":        false,
			"message":        "Payment not successful",
			"paymentReceipt": res.Receipt,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"paymentReceipt": res.Receipt,
	})
}

// GetByOrderID returns a payment looked up by its gateway order id. When
// the payment row lost its barber reference, the barber is resolved through
// the booking and, failing that, by the booking's coordinates.
func (h *PaymentHandler) GetByOrderID(c *gin.Context) {
	var payment models.Payment
	if err := h.db.Where("order_id = ?", c.Param("id")).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "payment_not_found", "Payment not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_payment", "Could not load the payment.")
		return
	}

	var booking models.Booking
	_ = h.db.First(&booking, payment.BookingID).Error

	barberName := payment.BarberName
	barberPhone := payment.BarberPhoneNumber
	if payment.BarberID == 0 {
		name, phone := h.resolveBarber(&booking)
		barberName, barberPhone = name, phone
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code":         "200",
		"status_message":      "Success, payment found",
		"payment_identifier":  payment.ID,
		"order_id":            payment.OrderID,
		"gross_amount":        payment.Amount,
		"status":              payment.Status,
		"bank_name":           payment.BankName,
		"account_number":      payment.AccountNumber,
		"barber_name":         barberName,
		"barber_phone_number": barberPhone,
		"user_email":          payment.UserEmail,
		"appointment_time":    booking.AppointmentTime,
		"created_at":          payment.CreatedAt,
	})
}

func (h *PaymentHandler) resolveBarber(booking *models.Booking) (string, string) {
	var barber models.Barber
	if booking.BarberID != 0 {
		if err := h.db.First(&barber, booking.BarberID).Error; err == nil {
			return barber.Name, barber.PhoneNumber
		}
	}

	if booking.Latitude != nil && booking.Longitude != nil {
		if err := h.db.
			Where("latitude = ? AND longitude = ?", *booking.Latitude, *booking.Longitude).
			First(&barber).Error; err == nil {
			return barber.Name, barber.PhoneNumber
		}
	}

	return "No Barber Assigned", "No Phone Assigned"
}

// StatusOrder reports the last persisted state of a payment by order id.
// It never consults the gateway; StatusSnap is the live counterpart.
func (h *PaymentHandler) StatusOrder(c *gin.Context) {
	var payment models.Payment
	if err := h.db.Where("order_id = ?", c.Param("id")).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "payment_not_found", "Payment not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_payment", "Could not load the payment.")
		return
	}

	if payment.MidtransToken == "" {
		httperr.BadRequest(c, "invalid_payment_data", "Invalid payment data format.")
		return
	}

	var booking models.Booking
	_ = h.db.First(&booking, payment.BookingID).Error

	c.JSON(http.StatusOK, gin.H{
		"status_code":        "200",
		"status_message":     "Success, payment found",
		"payment_identifier": payment.MidtransToken,
		"order_id":           payment.OrderID,
		"gross_amount":       payment.Amount,
		"status":             payment.Status,
		"bank_name":          payment.BankName,
		"account_number":     payment.AccountNumber,
		"midtrans_url":       payment.MidtransURL,
		"barber_name":        payment.BarberName,
		"user_email":         payment.UserEmail,
		"appointment_time":   booking.AppointmentTime,
		"created_at":         payment.CreatedAt,
		"updated_at":         payment.UpdatedAt,
	})
}

// GetStatus returns the persisted payment with its booking context, looked
// up by payment id.
func (h *PaymentHandler) GetStatus(c *gin.Context) {
	var row paymentRow
	err := h.db.Model(&models.Payment{}).
		Select(paymentJoinSelect).
		Joins("LEFT JOIN bookings ON payments.booking_id = bookings.id").
		Joins("LEFT JOIN payment_proofs ON payments.id = payment_proofs.payment_id").
		Where("payments.id = ?", c.Param("id")).
		Take(&row).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "payment_not_found", "Payment not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_payment", "Could not load the payment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": row})
}

func (h *PaymentHandler) List(c *gin.Context) {
	var rows []paymentRow
	if err := h.db.Model(&models.Payment{}).
		Select(paymentJoinSelect).
		Joins("LEFT JOIN bookings ON payments.booking_id = bookings.id").
		Joins("LEFT JOIN payment_proofs ON payments.id = payment_proofs.payment_id").
		Order("payments.created_at DESC").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_payments", "Could not list payments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": rows})
}

func (h *PaymentHandler) ListByBarber(c *gin.Context) {
	var rows []paymentRow
	if err := h.db.Model(&models.Payment{}).
		Select(paymentJoinSelect).
		Joins("LEFT JOIN bookings ON payments.booking_id = bookings.id").
		Joins("LEFT JOIN payment_proofs ON payments.id = payment_proofs.payment_id").
		Where("payments.barber_id = ?", c.Param("barberId")).
		Order("payments.created_at DESC").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_payments", "Could not list payments.")
		return
	}

	if len(rows) == 0 {
		httperr.NotFound(c, "payments_not_found", "No payments for this barber.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": rows})
}

// UpdateStatus is the manual override path. Known gateway states are
// normalized, anything else is stored verbatim.
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_status", "Missing status field.")
		return
	}

	status, _ := domain.Normalize(req.Status)

	res := h.db.Model(&models.Payment{}).
		Where("id = ?", c.Param("id")).
		Update("status", string(status))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_update_payment", "Could not update the payment.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "payment_not_found", "Payment not found.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "payment_status_updated",
		Entity:   "payment",
		EntityID: c.Param("id"),
		Metadata: map[string]any{"status": string(status)},
	})

	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated"})
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	res := h.db.Where("id = ?", c.Param("id")).Delete(&models.Payment{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_payment", "Could not delete the payment.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "payment_not_found", "Payment not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}

// UploadProof stores a proof-of-payment file (JPEG/PNG/PDF, max 5 MB) and
// links it to the payment.
func (h *PaymentHandler) UploadProof(c *gin.Context) {
	fh, err := c.FormFile("proof")
	if err != nil {
		httperr.BadRequest(c, "missing_proof_file", "No proof of payment file uploaded.")
		return
	}

	paymentID := c.PostForm("payment_id")
	if paymentID == "" {
		httperr.BadRequest(c, "missing_payment_id", "Payment ID is required.")
		return
	}

	path, err := h.saver.SaveProof(c, fh, "proofs")
	if err != nil {
		switch err {
		case upload.ErrUnsupportedType:
			httperr.BadRequest(c, "unsupported_file_type", "Only JPG, PNG and PDF files are allowed.")
		case upload.ErrTooLarge:
			httperr.BadRequest(c, "file_too_large", "Files may not exceed 5 MB.")
		default:
			httperr.Internal(c, "failed_to_save_file", "Could not store the uploaded file.")
		}
		return
	}

	proof := models.PaymentProof{
		PaymentID: paymentID,
		ProofFile: path,
	}
	if err := h.db.Create(&proof).Error; err != nil {
		httperr.Internal(c, "failed_to_save_proof", "Failed to save proof data.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "payment_proof_uploaded",
		Entity:   "payment",
		EntityID: paymentID,
		Metadata: map[string]any{"proof_file": path},
	})

	c.JSON(http.StatusOK, gin.H{
		"message":   "Proof uploaded successfully.",
		"proofPath": path,
	})
}
