// internal/admin/seed.go
package admin

import (
	"time"

	"ovse-portal/internal/models"
)

func ago(d time.Duration) string {
	return time.Now().UTC().Add(-d).Format(time.RFC3339)
}

// SeedUsers returns the demo administrator accounts.
func SeedUsers() []models.AdminUser {
	return []models.AdminUser{
		{
			ID: "l1-001", Name: "Rahul Sharma", Email: "rahul.sharma@uidai.gov.in",
			Role: models.Level1, Department: "Help Desk - North Zone",
			Status: models.AdminActive, MFAEnabled: false, MFAType: "None",
			LastActive: ago(5 * time.Minute),
		},
		{
			ID: "l1-002", Name: "Priya Nair", Email: "priya.nair@uidai.gov.in",
			Role: models.Level1, Department: "Help Desk - South Zone",
			Status: models.AdminActive, MFAEnabled: false, MFAType: "None",
			LastActive: ago(22 * time.Minute),
		},
		{
			ID: "l1-003", Name: "Amit Verma", Email: "amit.verma@uidai.gov.in",
			Role: models.Level1, Department: "Help Desk - East Zone",
			Status: models.AdminDisabled, MFAEnabled: false, MFAType: "None",
			LastActive: ago(72 * time.Hour),
		},
		{
			ID: "l2-001", Name: "Alice Examiner", Email: "alice.examiner@uidai.gov.in",
			Role: models.Level2, Department: "Senior Support - Central",
			Status: models.AdminActive, MFAEnabled: true, MFAType: "TOTP",
			LastActive: ago(15 * time.Minute),
		},
		{
			ID: "l2-002", Name: "Vikram Singh", Email: "vikram.singh@uidai.gov.in",
			Role: models.Level2, Department: "Senior Support - West Zone",
			Status: models.AdminActive, MFAEnabled: true, MFAType: "FIDO2",
			LastActive: ago(45 * time.Minute),
		},
		{
			ID: "l3-001", Name: "Bob Reviewer", Email: "bob.reviewer@uidai.gov.in",
			Role: models.Level3, Department: "Operations",
			Status: models.AdminActive, MFAEnabled: true, MFAType: "FIDO2",
			LastActive: ago(2 * time.Minute),
		},
	}
}

// SeedPendingChanges returns the demo L3 change queue.
func SeedPendingChanges() []models.PendingUserChange {
	return []models.PendingUserChange{
		{
			ID: "pc-001", Type: models.ChangeAddUser,
			RequestedByID: "l3-001", RequestedByName: "Bob Reviewer",
			TargetName: "Sunita Gupta", TargetEmail: "sunita.gupta@uidai.gov.in",
			TargetRole: models.Level1, Department: "Help Desk - West Zone",
			SubmittedAt: ago(2 * time.Hour), Status: models.ChangePending,
		},
		{
			ID: "pc-002", Type: models.ChangeDeleteUser,
			RequestedByID: "l3-001", RequestedByName: "Bob Reviewer",
			TargetName: "Amit Verma", TargetEmail: "amit.verma@uidai.gov.in",
			TargetRole: models.Level1, Department: "Help Desk - East Zone",
			SubmittedAt: ago(5 * time.Hour), Status: models.ChangePending,
		},
	}
}

// SeedSessions returns the demo session oversight log.
func SeedSessions() []models.AdminSession {
	return []models.AdminSession{
		{
			ID: "sess-001", AdminID: "l1-001", AdminName: "Rahul Sharma", AdminRole: models.Level1,
			StartTime: ago(65 * time.Minute), DurationMinutes: 65, ActionCount: 12,
			ActionsLog: []models.SessionAction{
				{Timestamp: ago(65 * time.Minute), Description: "Logged in successfully (TOTP MFA)"},
				{Timestamp: ago(60 * time.Minute), Description: "Opened ticket TKT-4421"},
				{Timestamp: ago(48 * time.Minute), Description: "Escalated ticket to L2 support"},
				{Timestamp: ago(5 * time.Minute), Description: "Session still active"},
			},
		},
		{
			ID: "sess-002", AdminID: "l2-001", AdminName: "Alice Examiner", AdminRole: models.Level2,
			StartTime: ago(120 * time.Minute), DurationMinutes: 120, ActionCount: 8,
			ActionsLog: []models.SessionAction{
				{Timestamp: ago(120 * time.Minute), Description: "Logged in with TOTP MFA"},
				{Timestamp: ago(80 * time.Minute), Description: "JIT elevation requested: 2-hour window"},
				{Timestamp: ago(70 * time.Minute), Description: "Accessed system configuration panel (JIT elevated)"},
				{Timestamp: ago(60 * time.Minute), Description: "Session ended, user logged out"},
			},
		},
		{
			ID: "sess-003", AdminID: "l1-002", AdminName: "Priya Nair", AdminRole: models.Level1,
			StartTime: ago(30 * time.Minute), DurationMinutes: 30, ActionCount: 5,
			ActionsLog: []models.SessionAction{
				{Timestamp: ago(30 * time.Minute), Description: "Logged in"},
				{Timestamp: ago(18 * time.Minute), Description: "Resolved TKT-4430: Password reset guidance provided"},
				{Timestamp: ago(10 * time.Minute), Description: "Browsing ticket queue"},
			},
		},
	}
}

// SeedAuditLog returns the demo audit ledger, newest first.
func SeedAuditLog() []models.AuditLogEntry {
	return []models.AuditLogEntry{
		{
			ID: "al-001", Timestamp: ago(10 * time.Minute),
			ActorID: "l4-001", ActorName: "Director General", ActorLevel: models.Level4,
			Action: "APPROVED_USER_ADD", TargetID: "NEW", TargetName: "Previous Staff Member",
			Details: "L3 add-user request approved and account provisioned.", Severity: models.SeverityInfo,
		},
		{
			ID: "al-002", Timestamp: ago(30 * time.Minute),
			ActorID: "l3-001", ActorName: "Bob Reviewer", ActorLevel: models.Level3,
			Action: "SUBMITTED_ADD_USER", TargetID: "sunita.gupta", TargetName: "Sunita Gupta",
			Details: "Add L1 user request submitted for L4 approval.", Severity: models.SeverityInfo,
		},
		{
			ID: "al-003", Timestamp: ago(time.Hour),
			ActorID: "l4-001", ActorName: "Director General", ActorLevel: models.Level4,
			Action: "DISABLED_ADMIN", TargetID: "l1-003", TargetName: "Amit Verma",
			Details: "Admin account disabled due to inactivity policy.", Severity: models.SeverityWarning,
		},
		{
			ID: "al-004", Timestamp: ago(2 * time.Hour),
			ActorID: "l4-001", ActorName: "Director General", ActorLevel: models.Level4,
			Action: "REJECTED_USER_DELETE", TargetID: "l2-001", TargetName: "Alice Examiner",
			Details: "L3 delete request rejected: insufficient justification.", Severity: models.SeverityWarning,
		},
		{
			ID: "al-005", Timestamp: ago(4 * time.Hour),
			ActorID: "l2-001", ActorName: "Alice Examiner", ActorLevel: models.Level2,
			Action:  "JIT_ELEVATION_REQUESTED",
			Details: "JIT elevation requested for 2-hour window: Configuration audit.", Severity: models.SeverityInfo,
		},
		{
			ID: "al-006", Timestamp: ago(6 * time.Hour),
			ActorID: "l4-001", ActorName: "Director General", ActorLevel: models.Level4,
			Action: "EMERGENCY_FREEZE", TargetName: "L1 Tier",
			Details: "Emergency freeze applied to all L1 accounts. Lifted 90 minutes later.", Severity: models.SeverityCritical,
		},
	}
}
