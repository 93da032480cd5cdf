package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsValid(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.IsValid(), "%s should be valid", s)
	}
	assert.False(t, Status("APPROVED").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusFinalAllocated.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusAwaitingAllocation.IsTerminal())
	assert.False(t, StatusAllocated.IsTerminal())
}

func TestActiveStatusesBlockRebooking(t *testing.T) {
	active := ActiveStatuses()
	assert.ElementsMatch(t, []Status{StatusPending, StatusAllocated, StatusFinalAllocated}, active)
	assert.NotContains(t, active, StatusCancelled)
	assert.NotContains(t, active, StatusAwaitingAllocation)
}
