package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableIsValid(t *testing.T) {
	require.NoError(t, DefaultTable().Validate())
}

func TestDefaultTableFreeLimits(t *testing.T) {
	table := DefaultTable()

	assert.Equal(t, Limit{Max: 5}, table.Limit(TierFree, ResourceClients))
	assert.Equal(t, Limit{Max: 10}, table.Limit(TierFree, ResourceBriefs))
	assert.Equal(t, Limit{Max: 5}, table.Limit(TierFree, ResourceItems))
	assert.Equal(t, Limit{Max: 5}, table.Limit(TierFree, ResourceInquiries))
}

func TestUnknownTierFallsBackToFree(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t, table.Limit(TierFree, ResourceBriefs), table.Limit("enterprise", ResourceBriefs))
}

func TestValidateRejectsInvertedLimits(t *testing.T) {
	bad := Table{
		TierFree: {ResourceClients: {Max: 50}},
		TierPro:  {ResourceClients: {Max: 5}},
	}
	assert.Error(t, bad.Validate())

	alsoBad := Table{
		TierFree: {ResourceClients: {Unlimited: true}},
		TierPro:  {ResourceClients: {Max: 100}},
	}
	assert.Error(t, alsoBad.Validate())
}

func TestValidateRequiresBothTiers(t *testing.T) {
	assert.Error(t, Table{TierFree: {}}.Validate())
	assert.Error(t, Table{TierPro: {}}.Validate())
}
