package library

import (
	"net/http"

	"sheet2bill/database"
	"sheet2bill/internal/domain/library"

	"github.com/gin-gonic/gin"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

type itemRequest struct {
	Description string  `json:"description" binding:"required"`
	UnitPrice   float64 `json:"unit_price"`
	Unit        string  `json:"unit"`
	Currency    string  `json:"currency"`
}

// GET /library
func ListItems(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var items []library.Item
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load library items"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// POST /library (quota gate runs in middleware before this)
func CreateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if req.Currency == "" {
		req.Currency = "EUR"
	}
	if req.Unit == "" {
		req.Unit = "hour"
	}

	item := library.Item{
		UserID:      userID,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Unit:        req.Unit,
		Currency:    req.Currency,
	}

	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create library item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": item.ID})
}

// PUT /library/:id
func UpdateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var item library.Item
	if err := database.DB.
		First(&item, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	item.Description = req.Description
	item.UnitPrice = req.UnitPrice
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.Currency != "" {
		item.Currency = req.Currency
	}

	if err := database.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DELETE /library/:id
func DeleteItem(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	res := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Delete(&library.Item{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}
