// internal/models/application.go
package models

// AdminLevel identifies one of the four sequential approval roles.
type AdminLevel string

const (
	Level1 AdminLevel = "LEVEL_1" // Initial scrutiny (Support Desk)
	Level2 AdminLevel = "LEVEL_2" // Examination (Senior Support)
	Level3 AdminLevel = "LEVEL_3" // Review & client ID handover (Operations Lead)
	Level4 AdminLevel = "LEVEL_4" // Final authority / revocation (Super Admin)
)

// Valid reports whether l is one of the four defined levels.
func (l AdminLevel) Valid() bool {
	switch l {
	case Level1, Level2, Level3, Level4:
		return true
	}
	return false
}

// ApplicationStatus is the workflow position of an application.
type ApplicationStatus string

const (
	StatusDraft      ApplicationStatus = "DRAFT"
	StatusSubmitted  ApplicationStatus = "SUBMITTED"
	StatusL1Approved ApplicationStatus = "L1_APPROVED"
	// L1_REJECTED doubles as "sent back" from every level; the UI relabels it
	// per context. Kept as-is to preserve the status-display contract.
	StatusL1Rejected ApplicationStatus = "L1_REJECTED"
	StatusL2Approved ApplicationStatus = "L2_APPROVED"
	StatusActive     ApplicationStatus = "ACTIVE"
	StatusRevoked    ApplicationStatus = "REVOKED"
	StatusLowQuality ApplicationStatus = "LOW_QUALITY"
)

// RecommendationAction is a reviewer's decision verb.
type RecommendationAction string

const (
	ActionApprove    RecommendationAction = "APPROVE"
	ActionReject     RecommendationAction = "REJECT"
	ActionCorrection RecommendationAction = "CORRECTION"
)

// Valid reports whether a is a recognized decision verb.
func (a RecommendationAction) Valid() bool {
	switch a {
	case ActionApprove, ActionReject, ActionCorrection:
		return true
	}
	return false
}

// Recommendation is one append-only audit-trail entry on an application.
type Recommendation struct {
	Level         AdminLevel           `json:"level"`
	RecommenderID string               `json:"recommenderId"`
	Action        RecommendationAction `json:"action"`
	Comments      string               `json:"comments"`
	Timestamp     string               `json:"timestamp"`
}

// Application is the central OVSE registration entity.
type Application struct {
	ID             string            `json:"id"`
	EntityName     string            `json:"entityName"`
	EntityCategory string            `json:"entityCategory"`
	SubmissionDate string            `json:"submissionDate"`
	Status         ApplicationStatus `json:"status"`
	CurrentLevel   AdminLevel        `json:"currentLevel"`

	Recommendations []Recommendation `json:"recommendations"`

	// Declared payload; absent for some draft seeds.
	Data *ApplicationData `json:"data,omitempty"`

	// Draft / nudge metadata.
	DraftStartedAt   string `json:"draftStartedAt,omitempty"`
	NudgedByL1ID     string `json:"nudgedByL1Id,omitempty"`
	NudgedByL1Name   string `json:"nudgedByL1Name,omitempty"`
	NudgeTimestamp   string `json:"nudgeTimestamp,omitempty"`
	LowQualityFlag   bool   `json:"lowQualityFlag,omitempty"`
	LowQualityReason string `json:"lowQualityReason,omitempty"`

	// Derived fields populated during workflow transitions.
	IsFTR            *bool  `json:"is_ftr,omitempty"`
	L1ApprovedBy     string `json:"l1_approved_by,omitempty"`
	L2ApprovedBy     string `json:"l2_approved_by,omitempty"`
	L3ApprovedBy     string `json:"l3_approved_by,omitempty"`
	L1Comments       string `json:"l1_comments,omitempty"`
	ClientID         string `json:"client_id,omitempty"`
	X509Certificate  string `json:"x509_certificate,omitempty"`
	RevokedAt        string `json:"revoked_at,omitempty"`
	RevocationReason string `json:"revocationReason,omitempty"`
}

type ApplicationData struct {
	EntityDetails EntityDetails  `json:"entityDetails"`
	ContactPerson ContactPerson  `json:"contactPerson"`
	StatutoryInfo StatutoryInfo  `json:"statutoryInfo"`
	TechnicalInfo *TechnicalInfo `json:"technicalInfo,omitempty"`
}

type EntityDetails struct {
	Address             string `json:"address"`
	State               string `json:"state"`
	Pincode             string `json:"pincode"`
	RegistrationNumber  string `json:"registrationNumber"`
	DateOfIncorporation string `json:"dateOfIncorporation"`
	// Website doubles as the callback URL in the demo data model.
	Website string `json:"website"`
}

type ContactPerson struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Mobile      string `json:"mobile"`
	Email       string `json:"email"`
}

type StatutoryInfo struct {
	PANNumber string `json:"panNumber"`
	GSTNumber string `json:"gstNumber"`
	TANNumber string `json:"tanNumber"`
}

type TechnicalInfo struct {
	PublicKey string `json:"publicKey,omitempty"`
}

// CloneRecommendations returns a defensive copy of the audit trail so an
// updated application never aliases the stored one.
func (a Application) CloneRecommendations() []Recommendation {
	if a.Recommendations == nil {
		return nil
	}
	out := make([]Recommendation, len(a.Recommendations))
	copy(out, a.Recommendations)
	return out
}
