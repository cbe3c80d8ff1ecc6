package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cukurin/booking-api/internal/audit"
	"github.com/cukurin/booking-api/internal/httperr"
	"github.com/cukurin/booking-api/internal/models"
)

var validBookingStatuses = map[string]bool{
	"pending":   true,
	"confirmed": true,
	"completed": true,
	"cancelled": true,
}

type BookingHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBookingHandler(db *gorm.DB, audit *audit.Dispatcher) *BookingHandler {
	return &BookingHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	Email            string  `json:"email" binding:"required,email"`
	BarberID         uint    `json:"barberId" binding:"required"`
	AppointmentTime  string  `json:"appointmentTime" binding:"required"`
	Location         string  `json:"location" binding:"required,oneof=barbershop home"`
	Address          string  `json:"address" binding:"required_if=Location home"`
	Service          string  `json:"service" binding:"required,max=255"`
	Paket            string  `json:"paket"`
	PaketDescription string  `json:"paket_description"`
	Price            float64 `json:"price" binding:"required"`
	BankName         string  `json:"bank_name" binding:"required"`
	AccountNumber    string  `json:"account_number" binding:"required"`
	PaymentMethod    string  `json:"payment_method" binding:"required,oneof=tf qris"`
}

type UpdateBookingRequest struct {
	Email           string  `json:"email" binding:"required,email"`
	Status          *string `json:"status,omitempty"`
	Location        *string `json:"location,omitempty"`
	Service         *string `json:"service,omitempty"`
	AppointmentTime *string `json:"appointment_time,omitempty"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// bookingRow is a booking joined with its barber's display fields.
type bookingRow struct {
	models.Booking
	BarberName        string   `json:"barberName"`
	BarberPhoneNumber string   `json:"barberPhoneNumber"`
	BarberLatitude    *float64 `json:"barberLatitude"`
	BarberLongitude   *float64 `json:"barberLongitude"`
}

const bookingJoinSelect = `bookings.*,
	barbers.name AS barber_name,
	barbers.phone_number AS barber_phone_number,
	barbers.latitude AS barber_latitude,
	barbers.longitude AS barber_longitude`

// --------- Handlers ---------

// Create inserts a booking after verifying the barber exists. The barber's
// coordinates are copied onto the booking so later barber edits never move
// an existing appointment.
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, req.BarberID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barber_not_found", "Barber not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_barber", "Could not load the barber.")
		return
	}

	booking := models.Booking{
		Email:            req.Email,
		BarberID:         barber.ID,
		AppointmentTime:  req.AppointmentTime,
		Location:         req.Location,
		Address:          req.Address,
		Latitude:         barber.Latitude,
		Longitude:        barber.Longitude,
		Service:          req.Service,
		Paket:            req.Paket,
		PaketDescription: req.PaketDescription,
		Price:            req.Price,
		BankName:         req.BankName,
		AccountNumber:    req.AccountNumber,
		PaymentMethod:    req.PaymentMethod,
		Status:           "pending",
	}

	if err := h.db.Create(&booking).Error; err != nil {
		httperr.Internal(c, "failed_to_create_booking", "Could not create the booking.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserEmail: req.Email,
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  strconv.FormatUint(uint64(booking.ID), 10),
		Metadata:  map[string]any{"barber_id": barber.ID, "service": req.Service},
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Booking successful!",
		"bookingId": booking.ID,
	})
}

// List returns bookings joined with barber info, optionally filtered by
// customer email or barber id.
func (h *BookingHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Booking{}).
		Select(bookingJoinSelect).
		Joins("LEFT JOIN barbers ON bookings.barber_id = barbers.id")

	if email := c.Query("email"); email != "" {
		q = q.Where("bookings.email = ?", email)
	} else if barberID := c.Query("barberId"); barberID != "" {
		q = q.Where("bookings.barber_id = ?", barberID)
	}

	var rows []bookingRow
	if err := q.Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *BookingHandler) GetByID(c *gin.Context) {
	var row bookingRow
	err := h.db.Model(&models.Booking{}).
		Select(bookingJoinSelect).
		Joins("LEFT JOIN barbers ON bookings.barber_id = barbers.id").
		Where("bookings.id = ?", c.Param("id")).
		Take(&row).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_booking", "Could not load the booking.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": row})
}

// Update changes only the supplied fields; everything else keeps its
// previous value. The caller's email must match the booking.
func (h *BookingHandler) Update(c *gin.Context) {
	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Status != nil && !validBookingStatuses[*req.Status] {
		httperr.BadRequest(c, "invalid_status", "Invalid status.")
		return
	}

	var booking models.Booking
	if err := h.db.
		Where("id = ? AND email = ?", c.Param("id"), req.Email).
		First(&booking).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_booking", "Could not load the booking.")
		return
	}

	if req.Status != nil {
		booking.Status = *req.Status
	}
	if req.Location != nil {
		booking.Location = *req.Location
	}
	if req.Service != nil {
		booking.Service = *req.Service
	}
	if req.AppointmentTime != nil {
		booking.AppointmentTime = *req.AppointmentTime
	}

	if err := h.db.Save(&booking).Error; err != nil {
		httperr.Internal(c, "failed_to_update_booking", "Could not update the booking.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully"})
}

func (h *BookingHandler) Delete(c *gin.Context) {
	res := h.db.Delete(&models.Booking{}, c.Param("id"))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_booking", "Could not delete the booking.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// UpdateStatus moves a booking between the four lifecycle states.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !validBookingStatuses[req.Status] {
		httperr.BadRequest(c, "invalid_status", "Invalid or missing status.")
		return
	}

	var booking models.Booking
	if err := h.db.First(&booking, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_booking", "Could not load the booking.")
		return
	}

	if err := h.db.Model(&booking).Update("status", req.Status).Error; err != nil {
		httperr.Internal(c, "failed_to_update_status", "Could not update the status.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserEmail: booking.Email,
		Action:    "booking_status_updated",
		Entity:    "booking",
		EntityID:  strconv.FormatUint(uint64(booking.ID), 10),
		Metadata:  map[string]any{"status": req.Status},
	})

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}
