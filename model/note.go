package model

type Note struct {
	ID        int      `json:"id"`
	BookID    int      `json:"book_id"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
}

type FindNote struct {
	ID     *int `json:"id"`
	BookID *int `json:"book_id"`
	Limit  *int `json:"limit"`
}

type UpdateNote struct {
	Content *string  `json:"content"`
	Tags    []string `json:"tags"`
}
