package briefs

import "time"

type LineRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type CreateBriefRequest struct {
	ClientID uint          `json:"client_id" binding:"required"`
	Title    string        `json:"title" binding:"required"`
	Notes    string        `json:"notes"`
	Currency string        `json:"currency"`
	Lines    []LineRequest `json:"lines"`
}

type UpdateBriefRequest struct {
	Title    string        `json:"title" binding:"required"`
	Notes    string        `json:"notes"`
	Currency string        `json:"currency"`
	Lines    []LineRequest `json:"lines"`
}

type DecideRequest struct {
	Decision string `json:"decision" binding:"required"` // "approve" | "reject"
	Comment  string `json:"comment"`
}

type LineDTO struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type BriefDTO struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	Notes     string     `json:"notes,omitempty"`
	Currency  string     `json:"currency"`
	Status    string     `json:"status"`
	Client    string     `json:"client"`
	Total     float64    `json:"total"`
	Lines     []LineDTO  `json:"lines"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ApprovalViewDTO is the public shape shown to the client on the
// approval page. No account or billing fields.
type ApprovalViewDTO struct {
	Freelancer string    `json:"freelancer"`
	Title      string    `json:"title"`
	Notes      string    `json:"notes,omitempty"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	Total      float64   `json:"total"`
	Lines      []LineDTO `json:"lines"`
}
