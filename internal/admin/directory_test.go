// internal/admin/directory_test.go
package admin

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

func createTestDirectory(t *testing.T) *Directory {
	d := NewDirectory(SeedUsers(), SeedPendingChanges(), nil, logger.NewTestLogger(t))
	d.WithClock(func() time.Time {
		return time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	})
	return d
}

func userByID(t *testing.T, d *Directory, id string) models.AdminUser {
	t.Helper()
	for _, u := range d.Users() {
		if u.ID == id {
			return u
		}
	}
	t.Fatalf("user %q not found", id)
	return models.AdminUser{}
}

func userByEmail(d *Directory, email string) (models.AdminUser, bool) {
	for _, u := range d.Users() {
		if u.Email == email {
			return u, true
		}
	}
	return models.AdminUser{}, false
}

// ==========================
// Account Status
// ==========================

func TestDirectory_SetStatus(t *testing.T) {
	d := createTestDirectory(t)

	require.NoError(t, d.SetStatus("l1-001", models.AdminDisabled, "Director General"))
	assert.Equal(t, models.AdminDisabled, userByID(t, d, "l1-001").Status)

	entry := d.AuditLog()[0]
	assert.Equal(t, "DISABLED_ADMIN", entry.Action)
	assert.Equal(t, "l1-001", entry.TargetID)
	assert.Equal(t, models.SeverityWarning, entry.Severity)

	require.NoError(t, d.SetStatus("l1-001", models.AdminActive, "Director General"))
	assert.Equal(t, models.AdminActive, userByID(t, d, "l1-001").Status)
	assert.Equal(t, "ENABLED_ADMIN", d.AuditLog()[0].Action)
}

func TestDirectory_SetStatusUnknownUser(t *testing.T) {
	d := createTestDirectory(t)

	err := d.SetStatus("nobody", models.AdminDisabled, "Director General")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownAdminUser, errors.CodeOf(err))
}

// ==========================
// Tier Freeze
// ==========================

func TestDirectory_FreezeAndUnfreezeTier(t *testing.T) {
	d := createTestDirectory(t)

	d.FreezeTier(models.Level1, "Director General")
	for _, u := range d.Users() {
		if u.Role == models.Level1 {
			assert.Equal(t, models.AdminFrozen, u.Status)
		} else {
			assert.NotEqual(t, models.AdminFrozen, u.Status)
		}
	}
	assert.Equal(t, models.SeverityCritical, d.AuditLog()[0].Severity)

	d.UnfreezeTier(models.Level1, "Director General")

	// l1-003 was disabled before the freeze; the freeze overwrote that, so
	// lifting it reactivates the whole tier.
	for _, u := range d.Users() {
		if u.Role == models.Level1 {
			assert.Equal(t, models.AdminActive, u.Status)
		}
	}
}

// ==========================
// Pending Changes (four-eyes)
// ==========================

func TestDirectory_SubmitChange(t *testing.T) {
	d := createTestDirectory(t)

	change := d.SubmitChange(models.PendingUserChange{
		Type:            models.ChangeAddUser,
		RequestedByID:   "l3-001",
		RequestedByName: "Bob Reviewer",
		TargetName:      "New Analyst",
		TargetEmail:     "new.analyst@uidai.gov.in",
		TargetRole:      models.Level1,
		Department:      "Help Desk - North Zone",
	})

	assert.NotEmpty(t, change.ID)
	assert.Equal(t, models.ChangePending, change.Status)
	assert.Equal(t, "2026-08-01T10:00:00Z", change.SubmittedAt)
	assert.Equal(t, change.ID, d.PendingChanges()[0].ID)
	assert.Equal(t, "SUBMITTED_ADD_USER", d.AuditLog()[0].Action)
}

func TestDirectory_ApproveAddChange(t *testing.T) {
	d := createTestDirectory(t)
	before := len(d.Users())

	// pc-001 is the seeded Sunita Gupta ADD_USER request.
	require.NoError(t, d.ApproveChange("pc-001", "Director General"))

	assert.Len(t, d.Users(), before+1)
	added, ok := userByEmail(d, "sunita.gupta@uidai.gov.in")
	require.True(t, ok)
	assert.Equal(t, models.AdminActive, added.Status)
	assert.Equal(t, models.Level1, added.Role)

	for _, c := range d.PendingChanges() {
		if c.ID == "pc-001" {
			assert.Equal(t, models.ChangeApproved, c.Status)
			assert.NotEmpty(t, c.ResolvedAt)
		}
	}
	assert.Equal(t, "APPROVED_USER_ADD", d.AuditLog()[0].Action)
}

func TestDirectory_ApproveDeleteChange(t *testing.T) {
	d := createTestDirectory(t)

	// pc-002 is the seeded Amit Verma DELETE_USER request.
	require.NoError(t, d.ApproveChange("pc-002", "Director General"))

	_, ok := userByEmail(d, "amit.verma@uidai.gov.in")
	assert.False(t, ok)
	assert.Equal(t, "APPROVED_USER_DELETE", d.AuditLog()[0].Action)
}

func TestDirectory_RejectChange(t *testing.T) {
	d := createTestDirectory(t)
	before := len(d.Users())

	require.NoError(t, d.RejectChange("pc-001", "insufficient justification", "Director General"))

	// No account was provisioned.
	assert.Len(t, d.Users(), before)
	for _, c := range d.PendingChanges() {
		if c.ID == "pc-001" {
			assert.Equal(t, models.ChangeRejected, c.Status)
			assert.Equal(t, "insufficient justification", c.RejectionReason)
		}
	}
	entry := d.AuditLog()[0]
	assert.Equal(t, "REJECTED_USER_CHANGE", entry.Action)
	assert.Equal(t, models.SeverityWarning, entry.Severity)
}

func TestDirectory_UnknownChangeRequest(t *testing.T) {
	d := createTestDirectory(t)

	err := d.ApproveChange("pc-ghost", "Director General")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownChangeRequest, errors.CodeOf(err))

	err = d.RejectChange("pc-ghost", "reason", "Director General")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownChangeRequest, errors.CodeOf(err))
}

// ==========================
// JIT Elevation
// ==========================

func TestDirectory_RequestJIT(t *testing.T) {
	d := createTestDirectory(t)

	grant := d.RequestJIT("l2-001", "Alice Examiner", models.Level2, "Configuration audit", 120)

	assert.NotEmpty(t, grant.ID)
	assert.Equal(t, "active", grant.Status)
	assert.Equal(t, "2026-08-01T10:00:00Z", grant.RequestedAt)
	assert.Equal(t, "2026-08-01T12:00:00Z", grant.ExpiresAt)

	user := userByID(t, d, "l2-001")
	assert.True(t, user.JITActive)
	assert.Equal(t, grant.ExpiresAt, user.JITExpiry)
	assert.Equal(t, "JIT_ELEVATION_REQUESTED", d.AuditLog()[0].Action)
}

// ==========================
// Audit Ledger & Subscriptions
// ==========================

func TestDirectory_AuditLogNewestFirst(t *testing.T) {
	d := createTestDirectory(t)

	require.NoError(t, d.SetStatus("l1-001", models.AdminDisabled, "Director General"))
	d.FreezeTier(models.Level2, "Director General")

	log := d.AuditLog()
	require.GreaterOrEqual(t, len(log), 2)
	assert.Equal(t, "EMERGENCY_FREEZE", log[0].Action)
	assert.Equal(t, "DISABLED_ADMIN", log[1].Action)
}

func TestDirectory_Sessions(t *testing.T) {
	d := createTestDirectory(t).WithSessions(SeedSessions())

	sessions := d.Sessions()
	require.Len(t, sessions, 3)
	assert.Equal(t, "l1-001", sessions[0].AdminID)
	assert.Equal(t, 12, sessions[0].ActionCount)
	assert.NotEmpty(t, sessions[0].ActionsLog)
}

func TestDirectory_Subscribe(t *testing.T) {
	d := createTestDirectory(t)

	calls := 0
	unsubscribe := d.Subscribe(func() { calls++ })

	require.NoError(t, d.SetStatus("l1-001", models.AdminDisabled, "Director General"))
	assert.Equal(t, 1, calls)

	unsubscribe()
	require.NoError(t, d.SetStatus("l1-001", models.AdminActive, "Director General"))
	assert.Equal(t, 1, calls)
}
