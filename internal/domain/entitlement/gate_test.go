package entitlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"sheet2bill/internal/domain/plans"
	"sheet2bill/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	status string
	endsAt *time.Time

	missing  bool
	countErr error
	counts   map[plans.Resource]int64

	downgrades int
	lastSince  *time.Time
}

func (f *fakeStore) GetSubscription(ctx context.Context, userID uint) (Subscription, error) {
	if f.missing {
		return Subscription{}, ErrAccountNotFound
	}
	return Subscription{Status: f.status, EndsAt: f.endsAt}, nil
}

func (f *fakeStore) DowngradeExpiredTrial(ctx context.Context, userID uint, now time.Time) (bool, error) {
	// mirror the guarded UPDATE: an expired or dateless trial flips to free
	if f.status != users.StatusTrialing || (f.endsAt != nil && f.endsAt.After(now)) {
		return false, nil
	}
	f.status = users.StatusFree
	f.downgrades++
	return true, nil
}

func (f *fakeStore) Count(ctx context.Context, userID uint, action Action, since *time.Time) (int64, error) {
	f.lastSince = since
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.counts[action.Resource], nil
}

func fixedNow() time.Time {
	return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func newTestGate(store *fakeStore, table plans.Table) *Gate {
	return NewWithClock(store, store, table, fixedNow)
}

func timePtr(t time.Time) *time.Time { return &t }

func TestCheck_FreeUserUnderLimitAllows(t *testing.T) {
	store := &fakeStore{
		status: users.StatusFree,
		counts: map[plans.Resource]int64{plans.ResourceClients: 2},
	}
	gate := newTestGate(store, plans.DefaultTable())

	dec, err := gate.Check(context.Background(), 1, CreateClient)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
}

func TestCheck_FreeUserAtLimitDenies(t *testing.T) {
	store := &fakeStore{
		status: users.StatusFree,
		counts: map[plans.Resource]int64{plans.ResourceBriefs: 10},
	}
	gate := newTestGate(store, plans.DefaultTable())

	dec, err := gate.Check(context.Background(), 1, CreateBrief)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.Contains(t, dec.Message, "10")
}

func TestCheck_ActiveProGetsProLimits(t *testing.T) {
	store := &fakeStore{
		status: users.StatusPro,
		endsAt: timePtr(fixedNow().AddDate(0, 1, 0)),
		counts: map[plans.Resource]int64{plans.ResourceClients: 5000},
	}
	gate := newTestGate(store, plans.DefaultTable())

	dec, err := gate.Check(context.Background(), 1, CreateClient)
	require.NoError(t, err)
	assert.True(t, dec.Allowed, "pro clients are unlimited")
}

func TestCheck_ExpiredProFallsBackToFreeWithoutWrite(t *testing.T) {
	store := &fakeStore{
		status: users.StatusPro,
		endsAt: timePtr(fixedNow().AddDate(0, 0, -1)),
		counts: map[plans.Resource]int64{plans.ResourceClients: 5},
	}
	gate := newTestGate(store, plans.DefaultTable())

	dec, err := gate.Check(context.Background(), 1, CreateClient)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.Equal(t, 0, store.downgrades, "webhook owns the pro status field")
}

func TestCheck_ActiveTrialGetsProLimits(t *testing.T) {
	store := &fakeStore{
		status: users.StatusTrialing,
		endsAt: timePtr(fixedNow().AddDate(0, 0, 7)),
		counts: map[plans.Resource]int64{plans.ResourceItems: 100},
	}
	gate := newTestGate(store, plans.DefaultTable())

	dec, err := gate.Check(context.Background(), 1, CreateItem)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
	assert.Equal(t, 0, store.downgrades)
}

func TestCheck_ExpiredTrialDowngradesOnce(t *testing.T) {
	store := &fakeStore{
		status: users.StatusTrialing,
		endsAt: timePtr(fixedNow().AddDate(0, 0, -1)),
		counts: map[plans.Resource]int64{plans.ResourceClients: 5},
	}
	gate := newTestGate(store, plans.DefaultTable())

	dec, err := gate.Check(context.Background(), 1, CreateClient)
	require.NoError(t, err)
	assert.False(t, dec.Allowed, "expired trial evaluates with free limits")
	assert.Equal(t, users.StatusFree, store.status)
	assert.Equal(t, 1, store.downgrades)

	// Second resolution reads "free" and must not write again.
	_, err = gate.Check(context.Background(), 1, CreateClient)
	require.NoError(t, err)
	assert.Equal(t, 1, store.downgrades)
}

func TestCheck_TrialWithoutEndDateDowngradesOnce(t *testing.T) {
	store := &fakeStore{
		status: users.StatusTrialing,
		endsAt: nil,
		counts: map[plans.Resource]int64{plans.ResourceClients: 5},
	}
	gate := newTestGate(store, plans.DefaultTable())

	dec, err := gate.Check(context.Background(), 1, CreateClient)
	require.NoError(t, err)
	assert.False(t, dec.Allowed, "a dateless trial evaluates with free limits")
	assert.Equal(t, users.StatusFree, store.status)
	assert.Equal(t, 1, store.downgrades)

	_, err = gate.Check(context.Background(), 1, CreateClient)
	require.NoError(t, err)
	assert.Equal(t, 1, store.downgrades, "second resolution must not write again")
}

func TestCheck_UnexpiredResolutionIsIdempotent(t *testing.T) {
	store := &fakeStore{
		status: users.StatusTrialing,
		endsAt: timePtr(fixedNow().AddDate(0, 0, 3)),
		counts: map[plans.Resource]int64{},
	}
	gate := newTestGate(store, plans.DefaultTable())

	for i := 0; i < 2; i++ {
		dec, err := gate.Check(context.Background(), 1, CreateBrief)
		require.NoError(t, err)
		assert.True(t, dec.Allowed)
	}
	assert.Equal(t, 0, store.downgrades)
	assert.Equal(t, users.StatusTrialing, store.status)
}

func TestCheck_MissingAccountFailsClosed(t *testing.T) {
	store := &fakeStore{missing: true}
	gate := newTestGate(store, plans.DefaultTable())

	_, err := gate.Check(context.Background(), 42, CreateClient)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestCheck_CountFailureNeverAllows(t *testing.T) {
	store := &fakeStore{
		status:   users.StatusFree,
		countErr: errors.New("connection reset"),
	}
	gate := newTestGate(store, plans.DefaultTable())

	dec, err := gate.Check(context.Background(), 1, CreateBrief)
	require.Error(t, err)
	assert.False(t, dec.Allowed, "a failed count must not default to allow")
}

func TestCheck_MonthlyActionsUseWindow(t *testing.T) {
	store := &fakeStore{status: users.StatusFree, counts: map[plans.Resource]int64{}}
	gate := newTestGate(store, plans.DefaultTable())

	_, err := gate.Check(context.Background(), 1, CreateBrief)
	require.NoError(t, err)
	require.NotNil(t, store.lastSince)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), *store.lastSince)

	_, err = gate.Check(context.Background(), 1, CreateClient)
	require.NoError(t, err)
	assert.Nil(t, store.lastSince, "lifetime caps are not windowed")
}

func TestGateExposesItsBootTable(t *testing.T) {
	table := plans.Table{
		plans.TierFree: {plans.ResourceClients: {Max: 1}},
		plans.TierPro:  {plans.ResourceClients: {Unlimited: true}},
	}
	gate := newTestGate(&fakeStore{status: users.StatusFree}, table)

	assert.Equal(t, table, gate.Table(), "read paths must see the same limits the gate enforces")
}

func TestCheck_InquiryDenialStaysPublicFacing(t *testing.T) {
	store := &fakeStore{
		status: users.StatusPro,
		endsAt: timePtr(fixedNow().AddDate(0, 1, 0)),
		counts: map[plans.Resource]int64{plans.ResourceInquiries: 1000},
	}
	gate := newTestGate(store, plans.DefaultTable())

	dec, err := gate.Check(context.Background(), 1, ReceiveInquiry)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.NotContains(t, dec.Message, "plan")
	assert.NotContains(t, dec.Message, "Upgrade")
}
