package model

import "time"

const (
	StatusPending          = "pending"
	StatusApproved         = "approved"
	StatusRejected         = "rejected"
	StatusNeedsImprovement = "needs-improvement"
)

const (
	AuditStatusChange = "status_change"
	AuditNotesUpdated = "notes_updated"
)

type ContentReview struct {
	ID          int64      `json:"id"`
	FilePath    string     `json:"file_path"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AuditEntry — append-only запись об одном изменении ревью
type AuditEntry struct {
	ID         int64     `json:"id"`
	ContentID  int64     `json:"content_id"`
	Action     string    `json:"action"`
	Actor      string    `json:"actor"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewInput struct {
	FilePath    string `json:"file_path"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusNeedsImprovement:
		return true
	}
	return false
}
