package clients

import (
	"net/http"

	"sheet2bill/database"
	"sheet2bill/internal/domain/clients"

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

type clientRequest struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company"`
	Email   string `json:"email" binding:"required,email"`
	Address string `json:"address"`
	TaxID   string `json:"tax_id"`
	Notes   string `json:"notes"`
}

// GET /clients
func ListClients(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var list []clients.Client
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load clients"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GET /clients/:id
func GetClient(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var client clients.Client
	if err := database.DB.
		First(&client, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	c.JSON(http.StatusOK, client)
}

// POST /clients (quota gate runs in middleware before this)
func CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	client := clients.Client{
		UserID:  userID,
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Address: req.Address,
		TaxID:   req.TaxID,
		Notes:   req.Notes,
	}

	if err := database.DB.Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": client.ID})
}

// PUT /clients/:id
func UpdateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var client clients.Client
	if err := database.DB.
		First(&client, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	client.Name = req.Name
	client.Company = req.Company
	client.Email = req.Email
	client.Address = req.Address
	client.TaxID = req.TaxID
	client.Notes = req.Notes

	if err := database.DB.Save(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}

	c.JSON(http.StatusOK, client)
}

// DELETE /clients/:id
func DeleteClient(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	res := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Delete(&clients.Client{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}
