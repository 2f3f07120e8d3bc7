package briefs

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"sheet2bill/config"
	"sheet2bill/database"
	authapi "sheet2bill/internal/api/auth"
	"sheet2bill/internal/domain/briefs"
	"sheet2bill/internal/domain/clients"
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

func generateApprovalToken() string {
	bytes := make([]byte, 24)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func toBriefDTO(b briefs.Brief) BriefDTO {
	lines := make([]LineDTO, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, LineDTO{Description: l.Description, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return BriefDTO{
		ID:        b.ID,
		Title:     b.Title,
		Notes:     b.Notes,
		Currency:  b.Currency,
		Status:    b.Status,
		Client:    b.Client.Name,
		Total:     b.Total(),
		Lines:     lines,
		SentAt:    b.SentAt,
		DecidedAt: b.DecidedAt,
		CreatedAt: b.CreatedAt,
	}
}

// ------------------------------
// GET /briefs
// ------------------------------
func ListBriefs(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	q := database.DB.
		Preload("Client").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC")
		}).
		Where("user_id = ?", userID)

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var list []briefs.Brief
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load briefs"})
		return
	}

	out := make([]BriefDTO, 0, len(list))
	for _, b := range list {
		out = append(out, toBriefDTO(b))
	}
	c.JSON(http.StatusOK, out)
}

// GET /briefs/:id
func GetBrief(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var b briefs.Brief
	if err := database.DB.
		Preload("Client").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC")
		}).
		First(&b, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brief not found"})
		return
	}

	c.JSON(http.StatusOK, toBriefDTO(b))
}

// ------------------------------
// POST /briefs (quota gate runs in middleware before this)
// ------------------------------
func CreateBrief(c *gin.Context) {
	var req CreateBriefRequest
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

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// client must belong to the caller
		var client clients.Client
		if err := tx.First(&client, "id = ? AND user_id = ?", req.ClientID, userID).Error; err != nil {
			return fmt.Errorf("client not found")
		}

		b := briefs.Brief{
			UserID:   userID,
			ClientID: client.ID,
			Title:    req.Title,
			Notes:    req.Notes,
			Currency: req.Currency,
			Status:   briefs.StatusDraft,
		}
		if err := tx.Create(&b).Error; err != nil {
			return err
		}

		for i, l := range req.Lines {
			qty := l.Quantity
			if qty == 0 {
				qty = 1
			}
			row := briefs.BriefLine{
				BriefID:     b.ID,
				Description: l.Description,
				Quantity:    qty,
				UnitPrice:   l.UnitPrice,
				SortIndex:   i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		c.JSON(http.StatusCreated, gin.H{"id": b.ID})
		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create brief", "details": err.Error()})
	}
}

// PUT /briefs/:id (drafts only)
func UpdateBrief(c *gin.Context) {
	var req UpdateBriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var b briefs.Brief
		if err := tx.First(&b, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
			return fmt.Errorf("not found")
		}
		if b.Status != briefs.StatusDraft && b.Status != briefs.StatusRejected {
			return fmt.Errorf("locked")
		}

		b.Title = req.Title
		b.Notes = req.Notes
		if req.Currency != "" {
			b.Currency = req.Currency
		}
		// editing a rejected brief returns it to draft
		b.Status = briefs.StatusDraft
		b.DecidedAt = nil
		b.ClientComment = ""
		if err := tx.Save(&b).Error; err != nil {
			return err
		}

		// replace lines wholesale
		if err := tx.Where("brief_id = ?", b.ID).Delete(&briefs.BriefLine{}).Error; err != nil {
			return err
		}
		for i, l := range req.Lines {
			qty := l.Quantity
			if qty == 0 {
				qty = 1
			}
			row := briefs.BriefLine{
				BriefID:     b.ID,
				Description: l.Description,
				Quantity:    qty,
				UnitPrice:   l.UnitPrice,
				SortIndex:   i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		c.JSON(http.StatusOK, gin.H{"id": b.ID})
		return nil
	})

	if err != nil {
		if err.Error() == "not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brief not found"})
			return
		}
		if err.Error() == "locked" {
			c.JSON(http.StatusConflict, gin.H{"error": "Only draft or rejected briefs can be edited"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update brief"})
	}
}

// DELETE /briefs/:id
func DeleteBrief(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var b briefs.Brief
	if err := database.DB.First(&b, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brief not found"})
		return
	}
	if b.Status == briefs.StatusInvoiced {
		c.JSON(http.StatusConflict, gin.H{"error": "Invoiced briefs cannot be deleted"})
		return
	}

	if err := database.DB.Select("Lines").Delete(&b).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete brief"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Brief deleted"})
}

// ------------------------------
// POST /briefs/:id/send
// ------------------------------
func SendBrief(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var b briefs.Brief
	if err := database.DB.
		Preload("Client").
		Preload("User").
		First(&b, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brief not found"})
		return
	}

	if b.Status != briefs.StatusDraft {
		c.JSON(http.StatusConflict, gin.H{"error": "Only draft briefs can be sent"})
		return
	}

	token := generateApprovalToken()
	now := time.Now()

	if err := database.DB.Model(&briefs.Brief{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"status":         briefs.StatusSent,
			"approval_token": token,
			"sent_at":        now,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send brief"})
		return
	}

	link := fmt.Sprintf("%s/approvals/%s", config.APP_URL, token)
	body := fmt.Sprintf(
		"Hello %s,\n\n%s %s sent you a work brief for approval: %q.\n\nReview and approve it here:\n\n%s",
		b.Client.Name, b.User.Name, b.User.Lastname, b.Title, link,
	)
	if err := authapi.SendMail(b.Client.Email, "A brief is waiting for your approval", body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Brief marked as sent but the email failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Brief sent for approval", "approval_url": link})
}

// ------------------------------
// Public approval routes (no auth, token is the credential)
// ------------------------------

// GET /approvals/:token
func GetApprovalView(c *gin.Context) {
	var b briefs.Brief
	if err := database.DB.
		Preload("User").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC")
		}).
		First(&b, "approval_token = ?", c.Param("token")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Approval link is invalid or expired"})
		return
	}

	lines := make([]LineDTO, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, LineDTO{Description: l.Description, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}

	c.JSON(http.StatusOK, ApprovalViewDTO{
		Freelancer: b.User.Name + " " + b.User.Lastname,
		Title:      b.Title,
		Notes:      b.Notes,
		Currency:   b.Currency,
		Status:     b.Status,
		Total:      b.Total(),
		Lines:      lines,
	})
}

// POST /approvals/:token
func DecideApproval(c *gin.Context) {
	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var newStatus string
	switch req.Decision {
	case "approve":
		newStatus = briefs.StatusApproved
	case "reject":
		newStatus = briefs.StatusRejected
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Decision must be 'approve' or 'reject'"})
		return
	}

	var b briefs.Brief
	if err := database.DB.First(&b, "approval_token = ?", c.Param("token")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Approval link is invalid or expired"})
		return
	}

	if b.Status != briefs.StatusSent {
		c.JSON(http.StatusConflict, gin.H{"error": "This brief has already been decided"})
		return
	}

	now := time.Now()
	if err := database.DB.Model(&briefs.Brief{}).
		Where("id = ? AND status = ?", b.ID, briefs.StatusSent).
		Updates(map[string]interface{}{
			"status":         newStatus,
			"decided_at":     now,
			"client_comment": req.Comment,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record decision"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": newStatus})
}

// ------------------------------
// POST /briefs/:id/invoice  (approved briefs only)
// ------------------------------
func ConvertToInvoice(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var invoiceID uint
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var b briefs.Brief
		if err := tx.
			Preload("Lines", func(db *gorm.DB) *gorm.DB {
				return db.Order("sort_index ASC")
			}).
			First(&b, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
			return fmt.Errorf("not found")
		}
		if b.Status != briefs.StatusApproved {
			return fmt.Errorf("not approved")
		}

		number, err := nextInvoiceNumber(tx, userID, time.Now())
		if err != nil {
			return err
		}

		briefID := b.ID
		inv := invoices.Invoice{
			UserID:    userID,
			BriefID:   &briefID,
			ClientID:  b.ClientID,
			Number:    number,
			Currency:  b.Currency,
			Total:     b.Total(),
			IssueDate: time.Now(),
			DueDate:   time.Now().AddDate(0, 0, 30),
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}

		for _, l := range b.Lines {
			row := invoices.InvoiceLine{
				InvoiceID:   inv.ID,
				Description: l.Description,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
				SortIndex:   l.SortIndex,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&briefs.Brief{}).
			Where("id = ?", b.ID).
			Update("status", briefs.StatusInvoiced).Error; err != nil {
			return err
		}

		invoiceID = inv.ID
		return nil
	})

	if err != nil {
		switch err.Error() {
		case "not found":
			c.JSON(http.StatusNotFound, gin.H{"error": "Brief not found"})
		case "not approved":
			c.JSON(http.StatusConflict, gin.H{"error": "Only approved briefs can be converted to invoices"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"invoice_id": invoiceID})
}

// nextInvoiceNumber builds the per-user yearly sequence, e.g. INV-2026-0007.
func nextInvoiceNumber(tx *gorm.DB, userID uint, now time.Time) (string, error) {
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	var count int64
	if err := tx.Model(&invoices.Invoice{}).
		Where("user_id = ? AND created_at >= ?", userID, yearStart).
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("INV-%d-%04d", now.Year(), count+1), nil
}
