package model //import "github.com/kimhaegyeong/reading-tracker/model"

// Book reading status values. Callers move a book forward
// (want-to-read -> reading -> completed); the store does not police the
// transition itself.
const (
	StatusWantToRead = "want-to-read"
	StatusReading    = "reading"
	StatusCompleted  = "completed"
)

const DefaultCoverColor = "#3b82f6"

type Book struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	Pages         int    `json:"pages"`
	Status        string `json:"status"`
	CoverColor    string `json:"cover_color"`
	Cover         string `json:"cover"`
	Genre         string `json:"genre"`
	Rating        *int   `json:"rating"`
	CompletedDate string `json:"completed_date"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type FindBook struct {
	ID     *int    `json:"id"`
	Title  *string `json:"title"`
	Author *string `json:"author"`
	ISBN   *string `json:"isbn"`
	Status *string `json:"status"`
	Genre  *string `json:"genre"`

	OrderBy *string `json:"order_by"`
	// The maximum number of books to return.
	Limit *int `json:"limit"`
}

// UpdateBook carries a partial set of fields; nil fields are left untouched.
type UpdateBook struct {
	Title      *string `json:"title"`
	Author     *string `json:"author"`
	ISBN       *string `json:"isbn"`
	Pages      *int    `json:"pages"`
	Status     *string `json:"status"`
	CoverColor *string `json:"cover_color"`
	Cover      *string `json:"cover"`
	Genre      *string `json:"genre"`
	Rating     *int    `json:"rating"`
}
