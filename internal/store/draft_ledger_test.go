// internal/store/draft_ledger_test.go
package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ovse-portal/internal/common/errors"
	"ovse-portal/internal/common/logger"
	"ovse-portal/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func testDrafts() []models.Application {
	return []models.Application{
		{ID: "DFT-A", EntityName: "Draft Alpha", Status: models.StatusDraft, CurrentLevel: models.Level1},
		{ID: "DFT-B", EntityName: "Draft Beta", Status: models.StatusDraft, CurrentLevel: models.Level1},
		{ID: "DFT-C", EntityName: "Draft Gamma", Status: models.StatusDraft, CurrentLevel: models.Level1,
			NudgedByL1ID: "l1-002", NudgedByL1Name: "Priya Nair", NudgeTimestamp: "2026-07-30T09:00:00Z"},
	}
}

func createTestLedger(t *testing.T) (*DraftLedger, *ApplicationStore) {
	apps := createTestStore(t)
	ledger := NewDraftLedger(apps, testDrafts(), logger.NewTestLogger(t))
	ledger.WithClock(func() time.Time {
		return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	})
	return ledger, apps
}

func draftByID(t *testing.T, l *DraftLedger, id string) models.Application {
	t.Helper()
	for _, d := range l.Drafts() {
		if d.ID == id {
			return d
		}
	}
	t.Fatalf("draft %q not found", id)
	return models.Application{}
}

// ==========================
// Nudge Attribution
// ==========================

func TestDraftLedger_Nudge(t *testing.T) {
	ledger, _ := createTestLedger(t)

	draft, err := ledger.Nudge("DFT-A", "l1-001", "Rahul Sharma")
	require.NoError(t, err)
	assert.Equal(t, "l1-001", draft.NudgedByL1ID)
	assert.Equal(t, "Rahul Sharma", draft.NudgedByL1Name)
	assert.Equal(t, "2026-08-01T12:00:00Z", draft.NudgeTimestamp)
}

func TestDraftLedger_NudgeFirstWins(t *testing.T) {
	ledger, _ := createTestLedger(t)

	_, err := ledger.Nudge("DFT-A", "l1-001", "Rahul Sharma")
	require.NoError(t, err)

	// A second nudge by anyone, including a different actor, is a no-op.
	draft, err := ledger.Nudge("DFT-A", "l1-002", "Priya Nair")
	require.NoError(t, err)
	assert.Equal(t, "l1-001", draft.NudgedByL1ID)
	assert.Equal(t, "Rahul Sharma", draft.NudgedByL1Name)

	stats := ledger.StatsFor("l1-001")
	assert.Equal(t, 1, stats.NudgedCount)
	assert.Zero(t, ledger.StatsFor("l1-003").NudgedCount)
}

func TestDraftLedger_NudgeUnknownID(t *testing.T) {
	ledger, _ := createTestLedger(t)

	_, err := ledger.Nudge("DFT-GHOST", "l1-001", "Rahul Sharma")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownApplication, errors.CodeOf(err))
}

func TestDraftLedger_NudgeBroadcasts(t *testing.T) {
	ledger, apps := createTestLedger(t)

	notified := 0
	apps.Subscribe(func() { notified++ })

	_, err := ledger.Nudge("DFT-A", "l1-001", "Rahul Sharma")
	require.NoError(t, err)
	assert.Equal(t, 1, notified)
}

// ==========================
// Conversion & Low Quality
// ==========================

func TestDraftLedger_MarkSubmitted(t *testing.T) {
	ledger, _ := createTestLedger(t)

	require.NoError(t, ledger.MarkSubmitted("DFT-C"))

	// The record stays in the draft pool with its attribution intact.
	draft := draftByID(t, ledger, "DFT-C")
	assert.Equal(t, models.StatusSubmitted, draft.Status)
	assert.Equal(t, "l1-002", draft.NudgedByL1ID)

	err := ledger.MarkSubmitted("DFT-GHOST")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownApplication, errors.CodeOf(err))
}

func TestDraftLedger_MarkLowQualityInPlace(t *testing.T) {
	ledger, _ := createTestLedger(t)

	require.NoError(t, ledger.MarkLowQuality("DFT-C", "incomplete statutory details"))

	draft := draftByID(t, ledger, "DFT-C")
	assert.Equal(t, models.StatusLowQuality, draft.Status)
	assert.True(t, draft.LowQualityFlag)
	assert.Equal(t, "incomplete statutory details", draft.LowQualityReason)
	assert.Len(t, ledger.Drafts(), 3)
}

func TestDraftLedger_MarkLowQualityMovesFromSubmittedPool(t *testing.T) {
	ledger, apps := createTestLedger(t)

	require.NoError(t, ledger.MarkLowQuality("APP-A", "rushed submission"))

	// Removed from the submitted pool...
	_, err := apps.Get("APP-A")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownApplication, errors.CodeOf(err))

	// ...and present in the draft pool, flagged.
	moved := draftByID(t, ledger, "APP-A")
	assert.Equal(t, models.StatusLowQuality, moved.Status)
	assert.True(t, moved.LowQualityFlag)
	assert.Len(t, ledger.Drafts(), 4)
}

func TestDraftLedger_MarkLowQualityUnknownID(t *testing.T) {
	ledger, _ := createTestLedger(t)

	err := ledger.MarkLowQuality("NOPE", "whatever")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownApplication, errors.CodeOf(err))
}

// ==========================
// KPI Stats
// ==========================

func TestDraftLedger_StatsFor(t *testing.T) {
	ledger, _ := createTestLedger(t)

	_, err := ledger.Nudge("DFT-A", "l1-001", "Rahul Sharma")
	require.NoError(t, err)
	_, err = ledger.Nudge("DFT-B", "l1-001", "Rahul Sharma")
	require.NoError(t, err)
	require.NoError(t, ledger.MarkSubmitted("DFT-A"))

	stats := ledger.StatsFor("l1-001")
	assert.Equal(t, "Rahul Sharma", stats.ActorName)
	assert.Equal(t, 2, stats.NudgedCount)
	assert.Equal(t, 1, stats.ConvertedCount)
	assert.Zero(t, stats.PenaltyCount)
	assert.Equal(t, 50, stats.NudgeScore)
}

func TestDraftLedger_StatsForNoNudges(t *testing.T) {
	ledger, _ := createTestLedger(t)

	stats := ledger.StatsFor("l1-099")
	assert.Zero(t, stats.NudgedCount)
	assert.Equal(t, 100, stats.NudgeScore)
}

func TestDraftLedger_LowQualityPenaltyLowersScore(t *testing.T) {
	ledger, _ := createTestLedger(t)

	_, err := ledger.Nudge("DFT-A", "l1-001", "Rahul Sharma")
	require.NoError(t, err)
	_, err = ledger.Nudge("DFT-B", "l1-001", "Rahul Sharma")
	require.NoError(t, err)
	require.NoError(t, ledger.MarkSubmitted("DFT-A"))
	require.NoError(t, ledger.MarkSubmitted("DFT-B"))

	before := ledger.StatsFor("l1-001").NudgeScore
	require.NoError(t, ledger.MarkLowQuality("DFT-B", "junk data"))
	after := ledger.StatsFor("l1-001")

	assert.Less(t, after.NudgeScore, before)
	assert.Equal(t, 1, after.PenaltyCount)
	// A low-quality record still counts as converted: it left DRAFT.
	assert.Equal(t, 2, after.ConvertedCount)
}

func TestDraftLedger_AllStatsOrdering(t *testing.T) {
	ledger, _ := createTestLedger(t)

	// l1-001: 1 nudge, 1 conversion -> 100.
	_, err := ledger.Nudge("DFT-A", "l1-001", "Rahul Sharma")
	require.NoError(t, err)
	require.NoError(t, ledger.MarkSubmitted("DFT-A"))

	// l1-002 (pre-attributed DFT-C): 1 nudge, 0 conversions -> 0.
	all := ledger.AllStats()
	require.Len(t, all, 2)
	assert.Equal(t, "l1-001", all[0].ActorID)
	assert.Equal(t, 100, all[0].NudgeScore)
	assert.Equal(t, "l1-002", all[1].ActorID)
	assert.Equal(t, 0, all[1].NudgeScore)
}

func TestDraftLedger_AllStatsTieBreaksOnActorID(t *testing.T) {
	ledger, _ := createTestLedger(t)

	// Both actors end up with identical scores.
	_, err := ledger.Nudge("DFT-A", "l1-001", "Rahul Sharma")
	require.NoError(t, err)

	all := ledger.AllStats()
	require.Len(t, all, 2)
	assert.Equal(t, all[0].NudgeScore, all[1].NudgeScore)
	assert.Equal(t, "l1-001", all[0].ActorID)
	assert.Equal(t, "l1-002", all[1].ActorID)
}
