// internal/store/seed.go
package store

import "ovse-portal/internal/models"

// SeedApplications is the demo submitted pool.
func SeedApplications() []models.Application {
	return []models.Application{
		{
			ID:              "APP-001",
			EntityName:      "Innovate Inc.",
			EntityCategory:  "Private Organization",
			SubmissionDate:  "15-08-2025",
			Status:          models.StatusSubmitted,
			CurrentLevel:    models.Level1,
			Recommendations: []models.Recommendation{},
			Data: &models.ApplicationData{
				EntityDetails: models.EntityDetails{
					Address:             "Plot 12, Sector 5, Hitech City",
					State:               "Telangana",
					Pincode:             "500081",
					RegistrationNumber:  "U72200TG2020PTC123456",
					DateOfIncorporation: "12-01-2020",
					Website:             "https://innovateinc.com",
				},
				ContactPerson: models.ContactPerson{
					Name:        "Rahul Sharma",
					Designation: "Managing Director",
					Mobile:      "+91 9876543210",
					Email:       "rahul@innovateinc.com",
				},
				StatutoryInfo: models.StatutoryInfo{
					PANNumber: "ABCDE1234F",
					GSTNumber: "36ABCDE1234F1Z5",
					TANNumber: "CHNA12345B",
				},
				TechnicalInfo: &models.TechnicalInfo{
					PublicKey: "MIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8A",
				},
			},
		},
		{
			ID:             "APP-002",
			EntityName:     "Tech Solutions",
			EntityCategory: "LLP",
			SubmissionDate: "16-08-2025",
			Status:         models.StatusL1Approved,
			CurrentLevel:   models.Level2,
			Recommendations: []models.Recommendation{
				{
					Level:         models.Level1,
					RecommenderID: "l1-001",
					Action:        models.ActionApprove,
					Comments:      "All documents verified. Organisation structure is clear.",
					Timestamp:     "2025-08-16T10:00:00Z",
				},
			},
			// Nudged out of draft by L1 before submission; feeds the KPI
			// penalty path when L2 pushes it back as low quality.
			NudgedByL1ID:   "l1-001",
			NudgedByL1Name: "Rahul Sharma",
			NudgeTimestamp: "2025-08-15T09:30:00Z",
		},
		{
			ID:              "APP-003",
			EntityName:      "Global Corp",
			EntityCategory:  "Public Limited",
			SubmissionDate:  "17-08-2025",
			Status:          models.StatusL1Rejected,
			CurrentLevel:    models.Level3,
			Recommendations: []models.Recommendation{},
		},
		{
			ID:              "APP-004",
			EntityName:      "OVSE Name",
			EntityCategory:  "Partnership",
			SubmissionDate:  "18-08-2025",
			Status:          models.StatusActive,
			CurrentLevel:    models.Level4,
			Recommendations: []models.Recommendation{},
		},
		{
			ID:             "APP-005",
			EntityName:     "Director's Hub",
			EntityCategory: "Government Agency",
			SubmissionDate: "19-08-2025",
			Status:         models.StatusL2Approved,
			CurrentLevel:   models.Level3,
			Recommendations: []models.Recommendation{
				{
					Level:         models.Level1,
					RecommenderID: "l1-002",
					Action:        models.ActionApprove,
					Comments:      "Initial scrutiny passed. Documents are in order.",
					Timestamp:     "2025-08-19T09:00:00Z",
				},
				{
					Level:         models.Level2,
					RecommenderID: "l2-002",
					Action:        models.ActionApprove,
					Comments:      "Examination confirmed legitimacy. Recommend review.",
					Timestamp:     "2025-08-19T11:00:00Z",
				},
			},
		},
	}
}

// SeedDrafts is the demo pre-submission pool. Some drafts have no declared
// data yet: the entity has only reserved an id.
func SeedDrafts() []models.Application {
	return []models.Application{
		{
			ID:             "DFT-001",
			EntityName:     "Quantum Fintech",
			EntityCategory: "Private Organization",
			Status:         models.StatusDraft,
			CurrentLevel:   models.Level1,
			DraftStartedAt: "2025-08-20T08:00:00Z",
			Data: &models.ApplicationData{
				EntityDetails: models.EntityDetails{
					Address:             "4th Floor, MG Road",
					State:               "Karnataka",
					Pincode:             "560001",
					RegistrationNumber:  "U65990KA2021PTC654321",
					DateOfIncorporation: "03-06-2021",
					Website:             "http://quantumfintech.in",
				},
				ContactPerson: models.ContactPerson{
					Name:        "Meera Iyer",
					Designation: "CTO",
					Mobile:      "+91 9812345670",
					Email:       "meera@quantumfintech.in",
				},
				StatutoryInfo: models.StatutoryInfo{
					PANNumber: "FGHIJ5678K",
					GSTNumber: "29FGHIJ5678K2Z9",
					TANNumber: "BLRQ67890C",
				},
			},
		},
		{
			ID:             "DFT-002",
			EntityName:     "Sahyadri Co-op Services",
			EntityCategory: "Co-operative Society",
			Status:         models.StatusDraft,
			CurrentLevel:   models.Level1,
			DraftStartedAt: "2025-08-21T12:30:00Z",
		},
		{
			ID:             "DFT-003",
			EntityName:     "Eastline Logistics",
			EntityCategory: "LLP",
			Status:         models.StatusDraft,
			CurrentLevel:   models.Level1,
			DraftStartedAt: "2025-08-22T10:15:00Z",
			NudgedByL1ID:   "l1-002",
			NudgedByL1Name: "Priya Nair",
			NudgeTimestamp: "2025-08-23T09:00:00Z",
		},
	}
}
