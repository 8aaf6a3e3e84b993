// internal/store/application_store_test.go
package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ovse-portal/internal/common/errors"
	"ovse-portal/internal/common/logger"
	"ovse-portal/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func testApps() []models.Application {
	return []models.Application{
		{ID: "APP-A", EntityName: "Alpha", Status: models.StatusSubmitted, CurrentLevel: models.Level1},
		{ID: "APP-B", EntityName: "Beta", Status: models.StatusL1Approved, CurrentLevel: models.Level2},
	}
}

func createTestStore(t *testing.T) *ApplicationStore {
	return NewApplicationStore(testApps(), logger.NewTestLogger(t))
}

// ==========================
// Read Path
// ==========================

func TestApplicationStore_Snapshot(t *testing.T) {
	s := createTestStore(t)

	snap := s.Snapshot()
	require.Len(t, snap, 2)

	// Snapshots are copies: mutating one never leaks into the store.
	snap[0].EntityName = "mutated"
	fresh, err := s.Get("APP-A")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", fresh.EntityName)
}

func TestApplicationStore_Get(t *testing.T) {
	s := createTestStore(t)

	app, err := s.Get("APP-B")
	require.NoError(t, err)
	assert.Equal(t, "Beta", app.EntityName)

	_, err = s.Get("APP-MISSING")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownApplication, errors.CodeOf(err))
}

// ==========================
// Commit Path
// ==========================

func TestApplicationStore_Commit(t *testing.T) {
	s := createTestStore(t)

	updated, err := s.Get("APP-A")
	require.NoError(t, err)
	updated.Status = models.StatusL1Approved
	updated.CurrentLevel = models.Level2

	require.NoError(t, s.Commit(updated))

	stored, err := s.Get("APP-A")
	require.NoError(t, err)
	assert.Equal(t, models.StatusL1Approved, stored.Status)
	assert.Equal(t, models.Level2, stored.CurrentLevel)
}

func TestApplicationStore_CommitUnknownID(t *testing.T) {
	s := createTestStore(t)

	notified := 0
	s.Subscribe(func() { notified++ })

	err := s.Commit(models.Application{ID: "APP-GHOST", Status: models.StatusActive})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownApplication, errors.CodeOf(err))

	// The pool is untouched and no notification fired.
	assert.Len(t, s.Snapshot(), 2)
	assert.Zero(t, notified)
}

// ==========================
// Subscriptions
// ==========================

func TestApplicationStore_SubscribeAndBroadcast(t *testing.T) {
	s := createTestStore(t)

	var order []string
	s.Subscribe(func() { order = append(order, "first") })
	s.Subscribe(func() { order = append(order, "second") })

	app, err := s.Get("APP-A")
	require.NoError(t, err)
	require.NoError(t, s.Commit(app))

	// Registration order.
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestApplicationStore_Unsubscribe(t *testing.T) {
	s := createTestStore(t)

	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	app, err := s.Get("APP-A")
	require.NoError(t, err)
	require.NoError(t, s.Commit(app))
	assert.Equal(t, 1, calls)

	unsubscribe()
	require.NoError(t, s.Commit(app))
	assert.Equal(t, 1, calls)
}

func TestApplicationStore_SubscriberCanReadBack(t *testing.T) {
	s := createTestStore(t)

	var seen models.ApplicationStatus
	s.Subscribe(func() {
		app, err := s.Get("APP-A")
		require.NoError(t, err)
		seen = app.Status
	})

	app, err := s.Get("APP-A")
	require.NoError(t, err)
	app.Status = models.StatusActive
	require.NoError(t, s.Commit(app))

	// Listeners run outside the lock, so a re-read sees the committed state.
	assert.Equal(t, models.StatusActive, seen)
}
