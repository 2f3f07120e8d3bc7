package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"sheet2bill/database"
	"sheet2bill/internal/domain/entitlement"
	"sheet2bill/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// Quota runs the entitlement gate for the authenticated user before the
// handler's write. Denial maps to 402 so the client can render an upgrade
// prompt; gate errors never fall through to the handler.
func Quota(action entitlement.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		dec, err := entitlement.Check(c.Request.Context(), userID, action)
		if err != nil {
			AbortWithGateError(c, err)
			return
		}
		if !dec.Allowed {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{"error": dec.Message})
			return
		}

		c.Next()
	}
}

// AbortWithGateError translates gate failures. Timeouts are a
// deny-with-retry, never an implicit allow.
func AbortWithGateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entitlement.ErrAccountNotFound):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account not found"})
	case errors.Is(err, context.DeadlineExceeded):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Please try again in a moment"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify account limits"})
	}
}

// RequireProPlan guards routes reserved for paying (or trialing) users,
// e.g. invoice branding. Quota caps are handled by Quota, not here.
func RequireProPlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		var user users.User

		if err := database.DB.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Account not found",
			})
			return
		}

		active := user.SubscriptionEndsAt != nil && user.SubscriptionEndsAt.After(time.Now())
		if user.SubscriptionStatus == users.StatusFree || !active {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "This feature requires a Pro subscription",
			})
			return
		}

		c.Next()
	}
}
