package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cukurin/booking-api/internal/httperr"
	"github.com/cukurin/booking-api/internal/models"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

// --------- Requests ---------

type AddReviewRequest struct {
	BarberID uint    `json:"barberId" binding:"required"`
	Rating   int     `json:"rating" binding:"required"`
	Comment  string  `json:"comment" binding:"required"`
	Username *string `json:"username"`
}

type BulkUpdateReviewRequest struct {
	Rating   int     `json:"rating" binding:"required"`
	Comment  string  `json:"comment" binding:"required"`
	Username *string `json:"username"`
}

// reviewRow joins the review with the reviewer's and barber's names.
type reviewRow struct {
	models.Review
	UserName   *string `json:"userName"`
	BarberName *string `json:"barberName"`
}

const reviewJoinSelect = `reviews.*,
	users.username AS user_name,
	barbers.name AS barber_name`

// --------- Handlers ---------

func (h *ReviewHandler) Add(c *gin.Context) {
	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	review := models.Review{
		BarberID: req.BarberID,
		Rating:   req.Rating,
		Comment:  req.Comment,
		Username: req.Username,
	}

	if err := h.db.Create(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_add_review", "Could not add the review.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review added successfully"})
}

// BulkUpdateByBarber overwrites every review of the given barber with the
// same rating, comment and username. Quirky, but it is the contract.
func (h *ReviewHandler) BulkUpdateByBarber(c *gin.Context) {
	barberID := c.Param("barberId")

	var req BulkUpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var count int64
	h.db.Model(&models.Review{}).Where("barber_id = ?", barberID).Count(&count)
	if count == 0 {
		httperr.NotFound(c, "reviews_not_found", "Reviews for this barber not found.")
		return
	}

	if err := h.db.Model(&models.Review{}).
		Where("barber_id = ?", barberID).
		Updates(map[string]any{
			"rating":   req.Rating,
			"comment":  req.Comment,
			"username": req.Username,
		}).Error; err != nil {
		httperr.Internal(c, "failed_to_update_reviews", "Could not update the reviews.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review(s) updated successfully"})
}

func (h *ReviewHandler) ListAll(c *gin.Context) {
	var rows []reviewRow
	if err := h.db.Model(&models.Review{}).
		Select(reviewJoinSelect).
		Joins("LEFT JOIN users ON reviews.username = users.username").
		Joins("LEFT JOIN barbers ON reviews.barber_id = barbers.id").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *ReviewHandler) ListByBarber(c *gin.Context) {
	var rows []reviewRow
	if err := h.db.Model(&models.Review{}).
		Select(reviewJoinSelect).
		Joins("LEFT JOIN users ON reviews.username = users.username").
		Joins("LEFT JOIN barbers ON reviews.barber_id = barbers.id").
		Where("reviews.barber_id = ?", c.Param("barberId")).
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	if len(rows) == 0 {
		httperr.NotFound(c, "reviews_not_found", "No reviews for this barber.")
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *ReviewHandler) GetByID(c *gin.Context) {
	var row reviewRow
	err := h.db.Model(&models.Review{}).
		Select(reviewJoinSelect).
		Joins("LEFT JOIN users ON reviews.username = users.username").
		Joins("LEFT JOIN barbers ON reviews.barber_id = barbers.id").
		Where("reviews.id = ?", c.Param("reviewId")).
		Take(&row).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "review_not_found", "Review not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_review", "Could not load the review.")
		return
	}

	c.JSON(http.StatusOK, row)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	res := h.db.Delete(&models.Review{}, c.Param("reviewId"))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_review", "Could not delete the review.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "review_not_found", "Review not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
