package model

// ReadingSession is one timed reading entry. Sessions are created when a
// timer stops or a manual entry is submitted and are never updated after
// that; they disappear only when their book is deleted.
type ReadingSession struct {
	ID              int    `json:"id"`
	BookID          int    `json:"book_id"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	PagesRead       int    `json:"pages_read"`
	Memo            string `json:"memo"`
	CreatedAt       string `json:"created_at"`
}

// SessionWithBook is a session joined with its book title, used by the
// per-day drill-down views.
type SessionWithBook struct {
	ReadingSession
	BookTitle string `json:"book_title"`
}

type FindSession struct {
	ID     *int    `json:"id"`
	BookID *int    `json:"book_id"`
	// Date restricts to sessions starting on a YYYY-MM-DD calendar day.
	Date  *string `json:"date"`
	Limit *int    `json:"limit"`
}
