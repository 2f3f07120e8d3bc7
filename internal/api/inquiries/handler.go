package inquiries

import (
	"net/http"
	"time"

	"sheet2bill/database"
	authapi "sheet2bill/internal/api/auth"
	"sheet2bill/internal/app/http/middleware"
	"sheet2bill/internal/domain/entitlement"
	"sheet2bill/internal/domain/inquiries"
	"sheet2bill/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type inquiryRequest struct {
	SenderName  string `json:"sender_name" binding:"required"`
	SenderEmail string `json:"sender_email" binding:"required,email"`
	Subject     string `json:"subject"`
	Message     string `json:"message" binding:"required"`
}

// POST /p/:slug/inquiries
// Public route: the sender is unauthenticated, the quota counts against
// the recipient resolved from the profile slug.
func SubmitInquiry(c *gin.Context) {
	var req inquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var recipient users.User
	if err := database.DB.Where("profile_slug = ?", c.Param("slug")).First(&recipient).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	dec, err := entitlement.Check(c.Request.Context(), recipient.ID, entitlement.ReceiveInquiry)
	if err != nil {
		middleware.AbortWithGateError(c, err)
		return
	}
	if !dec.Allowed {
		// public-facing denial, no plan details
		c.JSON(http.StatusPaymentRequired, gin.H{"error": dec.Message})
		return
	}

	inq := inquiries.Inquiry{
		RecipientID: recipient.ID,
		SenderName:  req.SenderName,
		SenderEmail: req.SenderEmail,
		Subject:     req.Subject,
		Message:     req.Message,
	}
	if err := database.DB.Create(&inq).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit inquiry"})
		return
	}

	// best effort; the inquiry is already stored
	body := "You received a new inquiry from " + req.SenderName + " <" + req.SenderEmail + ">:\n\n" + req.Message
	_ = authapi.SendMail(recipient.Email, "New inquiry on your Sheet2Bill page", body)

	c.JSON(http.StatusCreated, gin.H{"message": "Your inquiry has been sent"})
}

// GET /inquiries
func ListInquiries(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	q := database.DB.Where("recipient_id = ?", userID)
	if c.Query("unread") == "1" {
		q = q.Where("read_at IS NULL")
	}

	var list []inquiries.Inquiry
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load inquiries"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// POST /inquiries/:id/read
func MarkInquiryRead(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	now := time.Now()
	res := database.DB.Model(&inquiries.Inquiry{}).
		Where("id = ? AND recipient_id = ? AND read_at IS NULL", c.Param("id"), userID).
		Update("read_at", now)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inquiry"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found or already read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"read_at": now})
}
