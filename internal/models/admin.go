// internal/models/admin.go
package models

// AdminUserStatus is the account state of a portal administrator.
type AdminUserStatus string

const (
	AdminActive   AdminUserStatus = "active"
	AdminDisabled AdminUserStatus = "disabled"
	AdminFrozen   AdminUserStatus = "frozen"
)

type AdminUser struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Role       AdminLevel      `json:"role"`
	Department string          `json:"department"`
	Status     AdminUserStatus `json:"status"`
	MFAEnabled bool            `json:"mfaEnabled"`
	MFAType    string          `json:"mfaType"`
	LastActive string          `json:"lastActive"`
	JITActive  bool            `json:"jitActive,omitempty"`
	JITExpiry  string          `json:"jitExpiry,omitempty"`
}

// PendingChangeType discriminates L3-submitted user-management requests.
type PendingChangeType string

const (
	ChangeAddUser    PendingChangeType = "ADD_USER"
	ChangeDeleteUser PendingChangeType = "DELETE_USER"
)

// PendingChangeStatus tracks the L4 decision on a pending change.
type PendingChangeStatus string

const (
	ChangePending  PendingChangeStatus = "pending"
	ChangeApproved PendingChangeStatus = "approved"
	ChangeRejected PendingChangeStatus = "rejected"
)

// PendingUserChange is an L3-proposed account change awaiting L4 approval
// (four-eyes principle for user management).
type PendingUserChange struct {
	ID              string              `json:"id"`
	Type            PendingChangeType   `json:"type"`
	RequestedByID   string              `json:"requestedById"`
	RequestedByName string              `json:"requestedByName"`
	TargetName      string              `json:"targetName"`
	TargetEmail     string              `json:"targetEmail"`
	TargetRole      AdminLevel          `json:"targetRole"`
	Department      string              `json:"department"`
	SubmittedAt     string              `json:"submittedAt"`
	Status          PendingChangeStatus `json:"status"`
	RejectionReason string              `json:"rejectionReason,omitempty"`
	ResolvedAt      string              `json:"resolvedAt,omitempty"`
}

// AuditSeverity grades audit ledger entries.
type AuditSeverity string

const (
	SeverityInfo     AuditSeverity = "info"
	SeverityWarning  AuditSeverity = "warning"
	SeverityCritical AuditSeverity = "critical"
)

// AuditLogEntry is one append-only record in the admin audit ledger.
type AuditLogEntry struct {
	ID         string        `json:"id"`
	Timestamp  string        `json:"timestamp"`
	ActorID    string        `json:"actorId"`
	ActorName  string        `json:"actorName"`
	ActorLevel AdminLevel    `json:"actorLevel"`
	Action     string        `json:"action"`
	TargetID   string        `json:"targetId,omitempty"`
	TargetName string        `json:"targetName,omitempty"`
	Details    string        `json:"details"`
	Severity   AuditSeverity `json:"severity"`
}

// SessionAction is one timestamped line in a session activity log.
type SessionAction struct {
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
}

// AdminSession is a recorded administrator session with its activity log,
// surfaced for L3/L4 oversight.
type AdminSession struct {
	ID              string          `json:"id"`
	AdminID         string          `json:"adminId"`
	AdminName       string          `json:"adminName"`
	AdminRole       AdminLevel      `json:"adminRole"`
	StartTime       string          `json:"startTime"`
	DurationMinutes int             `json:"durationMinutes"`
	ActionCount     int             `json:"actionCount"`
	ActionsLog      []SessionAction `json:"actionsLog"`
}

// JITElevationRequest is a time-boxed privilege elevation grant.
type JITElevationRequest struct {
	ID              string     `json:"id"`
	RequesterID     string     `json:"requesterId"`
	RequesterName   string     `json:"requesterName"`
	RequesterRole   AdminLevel `json:"requesterRole"`
	Reason          string     `json:"reason"`
	DurationMinutes int        `json:"durationMinutes"`
	RequestedAt     string     `json:"requestedAt"`
	ApprovedAt      string     `json:"approvedAt"`
	ExpiresAt       string     `json:"expiresAt"`
	Status          string     `json:"status"`
}
