package invoices

import (
	"net/http"
	"time"

	"sheet2bill/database"
	"sheet2bill/internal/domain/invoices"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// GET /invoices
func ListInvoices(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var list []invoices.Invoice
	if err := database.DB.
		Preload("Client").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load invoices"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GET /invoices/:id
func GetInvoice(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var inv invoices.Invoice
	if err := database.DB.
		Preload("Client").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC")
		}).
		First(&inv, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	c.JSON(http.StatusOK, inv)
}

// POST /invoices/:id/paid
func MarkInvoicePaid(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	now := time.Now()
	res := database.DB.Model(&invoices.Invoice{}).
		Where("id = ? AND user_id = ? AND paid_at IS NULL", c.Param("id"), userID).
		Update("paid_at", now)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found or already paid"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"paid_at": now})
}

// GET /invoices/:id/html
// Returns a printable document; the client prints it to PDF. Headless
// rendering stays out of this service.
func RenderInvoiceHTML(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var inv invoices.Invoice
	if err := database.DB.
		Preload("User").
		Preload("Client").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC")
		}).
		First(&inv, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	html, err := buildInvoiceHTML(inv)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render invoice"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
