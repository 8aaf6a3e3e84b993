// internal/admin/directory.go
package admin

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"ovse-portal/internal/common/errors"
	"ovse-portal/internal/common/logger"
	"ovse-portal/internal/models"
)

// Directory holds the portal's administrator accounts, the L3-proposed /
// L4-decided pending user changes, and the append-only audit ledger those
// operations feed. Instances are injectable; there is no package-level
// state.
type Directory struct {
	mu       sync.Mutex
	users    []models.AdminUser
	pending  []models.PendingUserChange
	audit    []models.AuditLogEntry
	sessions []models.AdminSession
	subs     []func()
	logger   logger.Logger
	now      func() time.Time
}

func NewDirectory(users []models.AdminUser, pending []models.PendingUserChange, audit []models.AuditLogEntry, log logger.Logger) *Directory {
	d := &Directory{
		users:   append([]models.AdminUser(nil), users...),
		pending: append([]models.PendingUserChange(nil), pending...),
		audit:   append([]models.AuditLogEntry(nil), audit...),
		logger:  log.WithFields(map[string]interface{}{"component": "admin-directory"}),
		now:     time.Now,
	}
	return d
}

// WithSessions seeds the recorded session log.
func (d *Directory) WithSessions(sessions []models.AdminSession) *Directory {
	d.sessions = append([]models.AdminSession(nil), sessions...)
	return d
}

// WithClock overrides the directory clock (tests).
func (d *Directory) WithClock(now func() time.Time) *Directory {
	d.now = now
	return d
}

// Subscribe registers a change listener and returns its unsubscribe func.
func (d *Directory) Subscribe(fn func()) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = append(d.subs, fn)
	idx := len(d.subs) - 1
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if idx < len(d.subs) {
			d.subs[idx] = func() {}
		}
	}
}

func (d *Directory) notify() {
	d.mu.Lock()
	listeners := append(([]func())(nil), d.subs...)
	d.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func (d *Directory) timestamp() string {
	return d.now().UTC().Format(time.RFC3339)
}

// appendAudit must be called with d.mu held. Newest entries first, matching
// the ledger view.
func (d *Directory) appendAudit(entry models.AuditLogEntry) {
	entry.ID = "al-" + uuid.NewString()
	entry.Timestamp = d.timestamp()
	d.audit = append([]models.AuditLogEntry{entry}, d.audit...)
}

// Users returns a copy of the account list.
func (d *Directory) Users() []models.AdminUser {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.AdminUser, len(d.users))
	copy(out, d.users)
	return out
}

// PendingChanges returns a copy of the pending change queue.
func (d *Directory) PendingChanges() []models.PendingUserChange {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.PendingUserChange, len(d.pending))
	copy(out, d.pending)
	return out
}

// AuditLog returns a copy of the ledger, newest first.
func (d *Directory) AuditLog() []models.AuditLogEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.AuditLogEntry, len(d.audit))
	copy(out, d.audit)
	return out
}

// Sessions returns a copy of the recorded session log.
func (d *Directory) Sessions() []models.AdminSession {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.AdminSession, len(d.sessions))
	copy(out, d.sessions)
	return out
}

// SetStatus enables or disables a single account (L4 direct authority).
func (d *Directory) SetStatus(adminID string, status models.AdminUserStatus, actorName string) error {
	d.mu.Lock()
	var target *models.AdminUser
	for i := range d.users {
		if d.users[i].ID == adminID {
			d.users[i].Status = status
			target = &d.users[i]
			break
		}
	}
	if target == nil {
		d.mu.Unlock()
		return errors.NewUnknownAdminUserError(adminID)
	}

	action := "ENABLED_ADMIN"
	severity := models.SeverityInfo
	detail := "Admin account enabled by L4."
	if status == models.AdminDisabled {
		action = "DISABLED_ADMIN"
		severity = models.SeverityWarning
		detail = "Admin account disabled by L4."
	}
	d.appendAudit(models.AuditLogEntry{
		ActorID: "l4-001", ActorName: actorName, ActorLevel: models.Level4,
		Action: action, TargetID: adminID, TargetName: target.Name,
		Details: detail, Severity: severity,
	})
	d.mu.Unlock()

	d.notify()
	return nil
}

// FreezeTier applies an emergency freeze to every account of one level.
func (d *Directory) FreezeTier(tier models.AdminLevel, actorName string) {
	d.mu.Lock()
	for i := range d.users {
		if d.users[i].Role == tier {
			d.users[i].Status = models.AdminFrozen
		}
	}
	d.appendAudit(models.AuditLogEntry{
		ActorID: "l4-001", ActorName: actorName, ActorLevel: models.Level4,
		Action: "EMERGENCY_FREEZE", TargetName: string(tier) + " Tier",
		Details:  "Emergency freeze applied to all " + string(tier) + " accounts.",
		Severity: models.SeverityCritical,
	})
	d.mu.Unlock()
	d.notify()
}

// UnfreezeTier lifts an emergency freeze; only frozen accounts change.
func (d *Directory) UnfreezeTier(tier models.AdminLevel, actorName string) {
	d.mu.Lock()
	for i := range d.users {
		if d.users[i].Role == tier && d.users[i].Status == models.AdminFrozen {
			d.users[i].Status = models.AdminActive
		}
	}
	d.appendAudit(models.AuditLogEntry{
		ActorID: "l4-001", ActorName: actorName, ActorLevel: models.Level4,
		Action: "LIFT_FREEZE", TargetName: string(tier) + " Tier",
		Details:  "Emergency freeze lifted for all " + string(tier) + " accounts.",
		Severity: models.SeverityInfo,
	})
	d.mu.Unlock()
	d.notify()
}

// SubmitChange queues an L3-proposed user change for L4 approval.
func (d *Directory) SubmitChange(change models.PendingUserChange) models.PendingUserChange {
	d.mu.Lock()
	change.ID = "pc-" + uuid.NewString()
	change.SubmittedAt = d.timestamp()
	change.Status = models.ChangePending
	d.pending = append([]models.PendingUserChange{change}, d.pending...)

	action := "SUBMITTED_ADD_USER"
	verb := "Add"
	if change.Type == models.ChangeDeleteUser {
		action = "SUBMITTED_DELETE_USER"
		verb = "Delete"
	}
	d.appendAudit(models.AuditLogEntry{
		ActorID: change.RequestedByID, ActorName: change.RequestedByName, ActorLevel: models.Level3,
		Action: action, TargetName: change.TargetName,
		Details:  verb + " user request submitted for L4 approval: " + change.TargetName + " (" + string(change.TargetRole) + ").",
		Severity: models.SeverityInfo,
	})
	d.mu.Unlock()

	d.notify()
	return change
}

// ApproveChange executes a pending change: an approved add provisions the
// account, an approved delete removes it.
func (d *Directory) ApproveChange(changeID, actorName string) error {
	d.mu.Lock()
	var change *models.PendingUserChange
	for i := range d.pending {
		if d.pending[i].ID == changeID {
			change = &d.pending[i]
			break
		}
	}
	if change == nil {
		d.mu.Unlock()
		return errors.NewUnknownChangeRequestError(changeID)
	}

	change.Status = models.ChangeApproved
	change.ResolvedAt = d.timestamp()

	action := "APPROVED_USER_ADD"
	detail := "L3 request approved. User account provisioned."
	if change.Type == models.ChangeAddUser {
		d.users = append(d.users, models.AdminUser{
			ID:         "user-" + uuid.NewString(),
			Name:       change.TargetName,
			Email:      change.TargetEmail,
			Role:       change.TargetRole,
			Department: change.Department,
			Status:     models.AdminActive,
			MFAEnabled: false,
			MFAType:    "None",
			LastActive: d.timestamp(),
		})
	} else {
		action = "APPROVED_USER_DELETE"
		detail = "L3 request approved. User account removed."
		kept := d.users[:0]
		for _, u := range d.users {
			if u.Email != change.TargetEmail {
				kept = append(kept, u)
			}
		}
		d.users = kept
	}

	d.appendAudit(models.AuditLogEntry{
		ActorID: "l4-001", ActorName: actorName, ActorLevel: models.Level4,
		Action: action, TargetName: change.TargetName,
		Details: detail, Severity: models.SeverityInfo,
	})
	d.mu.Unlock()

	d.notify()
	return nil
}

// RejectChange declines a pending change with a reason.
func (d *Directory) RejectChange(changeID, reason, actorName string) error {
	d.mu.Lock()
	var change *models.PendingUserChange
	for i := range d.pending {
		if d.pending[i].ID == changeID {
			change = &d.pending[i]
			break
		}
	}
	if change == nil {
		d.mu.Unlock()
		return errors.NewUnknownChangeRequestError(changeID)
	}

	change.Status = models.ChangeRejected
	change.RejectionReason = reason
	change.ResolvedAt = d.timestamp()

	d.appendAudit(models.AuditLogEntry{
		ActorID: "l4-001", ActorName: actorName, ActorLevel: models.Level4,
		Action: "REJECTED_USER_CHANGE", TargetName: change.TargetName,
		Details:  "L3 request rejected. Reason: " + reason,
		Severity: models.SeverityWarning,
	})
	d.mu.Unlock()

	d.notify()
	return nil
}

// RequestJIT grants a time-boxed elevation to the requester. The demo
// auto-approves; a real deployment would route this through L4.
func (d *Directory) RequestJIT(requesterID, requesterName string, requesterRole models.AdminLevel, reason string, durationMinutes int) models.JITElevationRequest {
	d.mu.Lock()
	nowTS := d.timestamp()
	req := models.JITElevationRequest{
		ID:              "jit-" + uuid.NewString(),
		RequesterID:     requesterID,
		RequesterName:   requesterName,
		RequesterRole:   requesterRole,
		Reason:          reason,
		DurationMinutes: durationMinutes,
		RequestedAt:     nowTS,
		ApprovedAt:      nowTS,
		ExpiresAt:       d.now().UTC().Add(time.Duration(durationMinutes) * time.Minute).Format(time.RFC3339),
		Status:          "active",
	}
	for i := range d.users {
		if d.users[i].ID == requesterID {
			d.users[i].JITActive = true
			d.users[i].JITExpiry = req.ExpiresAt
		}
	}
	d.appendAudit(models.AuditLogEntry{
		ActorID: requesterID, ActorName: requesterName, ActorLevel: requesterRole,
		Action:   "JIT_ELEVATION_REQUESTED",
		Details:  "JIT elevation approved for " + req.ExpiresAt + ". Reason: " + reason,
		Severity: models.SeverityInfo,
	})
	d.mu.Unlock()

	d.notify()
	return req
}
