package entitlement

import (
	"context"
	"errors"
	"time"

	"sheet2bill/internal/domain/briefs"
	"sheet2bill/internal/domain/clients"
	"sheet2bill/internal/domain/inquiries"
	"sheet2bill/internal/domain/library"
	"sheet2bill/internal/domain/plans"
	"sheet2bill/internal/domain/users"

	"gorm.io/gorm"
)

// Subscription is the slice of the account the resolver needs.
type Subscription struct {
	Status string
	EndsAt *time.Time
}

type ProfileStore interface {
	GetSubscription(ctx context.Context, userID uint) (Subscription, error)
	// DowngradeExpiredTrial persists subscription_status = "free" for the
	// account, but only while the stored status is still "trialing" and the
	// end date has passed. The guard makes the lazy write idempotent under
	// concurrent checks. Reports whether a row was actually updated.
	DowngradeExpiredTrial(ctx context.Context, userID uint, now time.Time) (bool, error)
}

type UsageStore interface {
	// Count returns the usage for one action. since, when set, restricts
	// the count to rows created at or after that instant.
	Count(ctx context.Context, userID uint, action Action, since *time.Time) (int64, error)
}

// GormStore backs both stores with the shared gorm handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetSubscription(ctx context.Context, userID uint) (Subscription, error) {
	var u users.User
	err := s.db.WithContext(ctx).
		Select("subscription_status", "subscription_ends_at").
		Where("id = ?", userID).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Subscription{}, ErrAccountNotFound
	}
	if err != nil {
		return Subscription{}, err
	}
	return Subscription{Status: u.SubscriptionStatus, EndsAt: u.SubscriptionEndsAt}, nil
}

func (s *GormStore) DowngradeExpiredTrial(ctx context.Context, userID uint, now time.Time) (bool, error) {
	// A trialing row with no end date counts as expired too; without the
	// IS NULL arm such a row would never match and every check would
	// re-attempt the write.
	res := s.db.WithContext(ctx).
		Model(&users.User{}).
		Where("id = ? AND subscription_status = ? AND (subscription_ends_at <= ? OR subscription_ends_at IS NULL)",
			userID, users.StatusTrialing, now).
		Update("subscription_status", users.StatusFree)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) Count(ctx context.Context, userID uint, action Action, since *time.Time) (int64, error) {
	q := s.db.WithContext(ctx)

	switch action.Resource {
	case plans.ResourceClients:
		q = q.Model(&clients.Client{}).Where("user_id = ?", userID)
	case plans.ResourceItems:
		q = q.Model(&library.Item{}).Where("user_id = ?", userID)
	case plans.ResourceBriefs:
		q = q.Model(&briefs.Brief{}).Where("user_id = ?", userID)
	case plans.ResourceInquiries:
		// inquiries count against the recipient, not the sender
		q = q.Model(&inquiries.Inquiry{}).Where("recipient_id = ?", userID)
	default:
		return 0, errors.New("entitlement: unknown resource kind")
	}

	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
