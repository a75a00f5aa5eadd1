package services

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/models"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func demoCases() []models.CourtCase {
	return []models.CourtCase{
		{
			CaseTitle:   "Save Deities Temple vs Municipal Corporation",
			CaseNumber:  "CWP-2024-001",
			Description: "Petition challenging the demolition notice issued by the municipal corporation for the ancient temple premises.",
			DateFiled:   "2024-01-15",
			Status:      models.StatusActive,
			CourtName:   "High Court of Justice",
			JudgeName:   "Hon. Justice R.K. Sharma",
			Plaintiff:   "Save Deities Temple Trust",
			Defendant:   "Municipal Corporation",
			CaseType:    "Civil Writ Petition",
			Priority:    "High",
			PDFFileURL:  "https://example.com/case1.pdf",
			PDFFileName: "Petition_CWP-2024-001.pdf",
			ImageURL:    "https://images.unsplash.com/photo-1564507592333-c60657eea523?w=400&h=300&fit=crop",
			ImageName:   "temple1.jpg",
			CreatedAt:   day("2024-01-15"),
			UpdatedAt:   day("2024-12-10"),
		},
		{
			CaseTitle:   "Heritage Protection Appeal",
			CaseNumber:  "SLP-2024-002",
			Description: "Special Leave Petition for protection of heritage temple structure and surrounding archaeological sites.",
			DateFiled:   "2024-02-20",
			Status:      models.StatusPending,
			CourtName:   "Supreme Court of India",
			JudgeName:   "Hon. Justice M.L. Verma",
			Plaintiff:   "Heritage Conservation Society",
			Defendant:   "State Government",
			CaseType:    "Special Leave Petition",
			Priority:    "High",
			PDFFileURL:  "https://example.com/case2.pdf",
			PDFFileName: "SLP_Heritage_Protection.pdf",
			ImageURL:    "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400&h=300&fit=crop",
			ImageName:   "heritage_temple.jpg",
			CreatedAt:   day("2024-02-20"),
			UpdatedAt:   day("2024-12-08"),
		},
		{
			CaseTitle:   "Land Acquisition Compensation",
			CaseNumber:  "CA-2024-003",
			Description: "Appeal for fair compensation for temple land acquired for public infrastructure development.",
			DateFiled:   "2024-03-10",
			Status:      models.StatusInProgress,
			CourtName:   "District Court",
			JudgeName:   "Hon. Justice S.P. Singh",
			Plaintiff:   "Temple Management Committee",
			Defendant:   "Land Acquisition Officer",
			CaseType:    "Civil Appeal",
			Priority:    models.DefaultPriority,
			PDFFileURL:  "https://example.com/case3.pdf",
			PDFFileName: "Land_Compensation_Appeal.pdf",
			ImageURL:    "https://images.unsplash.com/photo-1582555172866-f73bb12a2ab3?w=400&h=300&fit=crop",
			ImageName:   "temple_land.jpg",
			CreatedAt:   day("2024-03-10"),
			UpdatedAt:   day("2024-11-15"),
		},
		{
			CaseTitle:   "Religious Freedom Protection",
			CaseNumber:  "PIL-2024-004",
			Description: "Public Interest Litigation for protection of religious practices and freedom of worship at the temple.",
			DateFiled:   "2024-04-05",
			Status:      models.StatusActive,
			CourtName:   "High Court of Justice",
			JudgeName:   "Hon. Justice A.K. Gupta",
			Plaintiff:   "Citizens for Religious Freedom",
			Defendant:   "State of Delhi",
			CaseType:    "Public Interest Litigation",
			Priority:    "High",
			PDFFileURL:  "https://example.com/case4.pdf",
			PDFFileName: "Religious_Freedom_PIL.pdf",
			ImageURL:    "https://images.unsplash.com/photo-1605379399642-870262d3d051?w=400&h=300&fit=crop",
			ImageName:   "temple_worship.jpg",
			CreatedAt:   day("2024-04-05"),
			UpdatedAt:   day("2024-12-12"),
		},
		{
			CaseTitle:   "Environmental Clearance Challenge",
			CaseNumber:  "NGT-2024-005",
			Description: "Challenge to environmental clearance granted for construction activities near the temple complex.",
			DateFiled:   "2024-05-18",
			Status:      models.StatusInProgress,
			CourtName:   "National Green Tribunal",
			JudgeName:   "Hon. Justice Environmental Panel",
			Plaintiff:   "Environmental Protection Group",
			Defendant:   "Project Developer",
			CaseType:    "Environmental Appeal",
			Priority:    models.DefaultPriority,
			ImageURL:    "https://images.unsplash.com/photo-1596176530529-78163a4f7af2?w=400&h=300&fit=crop",
			ImageName:   "temple_environment.jpg",
			CreatedAt:   day("2024-05-18"),
			UpdatedAt:   day("2024-12-01"),
		},
		{
			CaseTitle:   "Archaeological Survey Dispute",
			CaseNumber:  "WP-2024-006",
			Description: "Writ petition regarding archaeological survey findings and their impact on temple operations.",
			DateFiled:   "2024-06-22",
			Status:      models.StatusInCourt,
			CourtName:   "High Court of Justice",
			JudgeName:   "Hon. Justice Cultural Heritage Bench",
			Plaintiff:   "Archaeological Society",
			Defendant:   "Archaeological Survey of India",
			CaseType:    "Writ Petition",
			Priority:    "Low",
			PDFFileURL:  "https://example.com/case6.pdf",
			PDFFileName: "Archaeological_Survey_Dispute.pdf",
			ImageURL:    "https://images.unsplash.com/photo-1609137144813-7d9921338f24?w=400&h=300&fit=crop",
			ImageName:   "temple_archaeology.jpg",
			CreatedAt:   day("2024-06-22"),
			UpdatedAt:   day("2024-11-30"),
		},
	}
}
