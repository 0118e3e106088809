package model

// Quote tags are persisted as comma-joined text; the store splits them on
// the way out and joins them on the way in.
type Quote struct {
	ID        int      `json:"id"`
	BookID    int      `json:"book_id"`
	Content   string   `json:"content"`
	Memo      string   `json:"memo"`
	Page      *int     `json:"page"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
}

type FindQuote struct {
	ID     *int `json:"id"`
	BookID *int `json:"book_id"`
	Limit  *int `json:"limit"`
}

type UpdateQuote struct {
	Content *string  `json:"content"`
	Memo    *string  `json:"memo"`
	Page    *int     `json:"page"`
	Tags    []string `json:"tags"`
}
