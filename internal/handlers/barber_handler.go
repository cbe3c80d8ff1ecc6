package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cukurin/booking-api/internal/httperr"
	"github.com/cukurin/booking-api/internal/models"
	"github.com/cukurin/booking-api/internal/upload"
)

const maxGalleryImages = 5

type BarberHandler struct {
	db    *gorm.DB
	saver *upload.Saver
}

func NewBarberHandler(db *gorm.DB, saver *upload.Saver) *BarberHandler {
	return &BarberHandler{db: db, saver: saver}
}

// --------- Requests ---------

type UpdateBarberRequest struct {
	Name             string   `json:"name" binding:"required"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Services         string   `json:"services" binding:"required"`
	Paket            string   `json:"paket" binding:"required"`
	PaketDescription string   `json:"paket_description"`
	Price            float64  `json:"price" binding:"required"`
	ProfileImage     *string  `json:"profile_image"`
	BankName         string   `json:"bank_name"`
	AccountNumber    string   `json:"account_number"`
	PaymentMethod    string   `json:"payment_method" binding:"omitempty,oneof=tf qris"`
}

// --------- Handlers ---------

// Add creates a barber from a multipart form: text fields plus an optional
// profileImage file and up to five galleryImages files (JPEG/PNG only).
func (h *BarberHandler) Add(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	services := strings.TrimSpace(c.PostForm("services"))
	paket := strings.TrimSpace(c.PostForm("paket"))
	priceStr := strings.TrimSpace(c.PostForm("price"))

	if name == "" || services == "" || paket == "" || priceStr == "" {
		httperr.BadRequest(c, "missing_required_fields", "name, services, paket and price are required.")
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_price", "price must be a number.")
		return
	}

	var latitude, longitude *float64
	if v := c.PostForm("latitude"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_latitude", "latitude must be a number.")
			return
		}
		latitude = &lat
	}
	if v := c.PostForm("longitude"); v != "" {
		long, err := strconv.ParseFloat(v, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_longitude", "longitude must be a number.")
			return
		}
		longitude = &long
	}

	paymentMethod := c.PostForm("payment_method")
	if paymentMethod != "" && paymentMethod != "tf" && paymentMethod != "qris" {
		httperr.BadRequest(c, "invalid_payment_method", "payment_method must be tf or qris.")
		return
	}

	barber := models.Barber{
		Name:             name,
		Latitude:         latitude,
		Longitude:        longitude,
		PhoneNumber:      c.PostForm("no_telp"),
		Services:         services,
		Paket:            paket,
		PaketDescription: c.PostForm("paket_description"),
		Price:            price,
		BankName:         c.PostForm("bank_name"),
		AccountNumber:    c.PostForm("account_number"),
		PaymentMethod:    paymentMethod,
	}

	if fh, err := c.FormFile("profileImage"); err == nil {
		path, err := h.saver.SaveImage(c, fh, "profile")
		if err != nil {
			writeUploadError(c, err)
			return
		}
		barber.ProfileImage = path
	}

	var galleryPaths []string
	if form, err := c.MultipartForm(); err == nil {
		files := form.File["galleryImages"]
		if len(files) > maxGalleryImages {
			httperr.BadRequest(c, "too_many_gallery_images", "At most 5 gallery images are allowed.")
			return
		}
		for _, fh := range files {
			path, err := h.saver.SaveImage(c, fh, "gallery")
			if err != nil {
				writeUploadError(c, err)
				return
			}
			galleryPaths = append(galleryPaths, path)
		}
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Could not create the barber.")
		return
	}

	for _, path := range galleryPaths {
		img := models.GalleryImage{BarberID: barber.ID, ImageURL: path}
		if err := h.db.Create(&img).Error; err != nil {
			httperr.Internal(c, "failed_to_save_gallery", "Could not save gallery images.")
			return
		}
		barber.GalleryImages = append(barber.GalleryImages, img)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Barber added successfully",
		"barber":  barber,
	})
}

func (h *BarberHandler) Update(c *gin.Context) {
	var barber models.Barber
	if err := h.db.First(&barber, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barber_not_found", "Barber not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_barber", "Could not load the barber.")
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	barber.Name = req.Name
	barber.Services = req.Services
	barber.Paket = req.Paket
	barber.PaketDescription = req.PaketDescription
	barber.Price = req.Price
	barber.BankName = req.BankName
	barber.AccountNumber = req.AccountNumber
	barber.PaymentMethod = req.PaymentMethod
	if req.Latitude != nil {
		barber.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		barber.Longitude = req.Longitude
	}
	if req.ProfileImage != nil {
		barber.ProfileImage = *req.ProfileImage
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Could not update the barber.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Barber updated successfully",
		"barber":  barber,
	})
}

// Delete removes a barber and everything hanging off it: bookings, gallery
// images, then the barber row itself.
func (h *BarberHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var barber models.Barber
		if err := tx.First(&barber, id).Error; err != nil {
			return err
		}

		if err := tx.Where("barber_id = ?", barber.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("barber_id = ?", barber.ID).Delete(&models.GalleryImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&barber).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "Barber not found.")
			return
		}
		httperr.Internal(c, "failed_to_delete_barber", "Could not delete the barber.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Barber deleted successfully"})
}

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.Preload("GalleryImages").Order("id ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Could not list barbers.")
		return
	}

	c.JSON(http.StatusOK, barbers)
}

func (h *BarberHandler) GetByID(c *gin.Context) {
	var barber models.Barber
	if err := h.db.Preload("GalleryImages").First(&barber, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barber_not_found", "Barber not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_barber", "Could not load the barber.")
		return
	}

	c.JSON(http.StatusOK, barber)
}

func writeUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, upload.ErrUnsupportedType):
		httperr.BadRequest(c, "unsupported_file_type", "Only JPEG and PNG images are allowed.")
	case errors.Is(err, upload.ErrTooLarge):
		httperr.BadRequest(c, "file_too_large", "Files may not exceed 5 MB.")
	default:
		httperr.Internal(c, "failed_to_save_file", "Could not store the uploaded file.")
	}
}
