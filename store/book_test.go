package store

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/kimhaegyeong/reading-tracker/model"
)

func TestAddAndGetBook(t *testing.T) {
	s := newTestStore(t)

	rating := 4
	book, err := s.AddBook(&model.Book{
		Title:  "The Left Hand of Darkness",
		Author: "Ursula K. Le Guin",
		ISBN:   "9780441478125",
		Pages:  304,
		Genre:  "sci-fi",
		Rating: &rating,
	})
	if err != nil {
		t.Fatalf("Failed to add book: %v", err)
	}
	if book.ID == 0 {
		t.Fatalf("Expected a generated id, got 0")
	}
	if book.Status != model.StatusWantToRead {
		t.Errorf("Expected default status %q, got %q", model.StatusWantToRead, book.Status)
	}
	if book.CoverColor != model.DefaultCoverColor {
		t.Errorf("Expected default cover color %q, got %q", model.DefaultCoverColor, book.CoverColor)
	}
	if book.CreatedAt == "" || book.UpdatedAt == "" {
		t.Errorf("Expected timestamps to be set, got created_at=%q updated_at=%q", book.CreatedAt, book.UpdatedAt)
	}

	got, err := s.GetBook(&model.FindBook{ID: &book.ID})
	if err != nil {
		t.Fatalf("Failed to get book: %v", err)
	}
	if got == nil {
		t.Fatalf("Expected book %d, got nil", book.ID)
	}
	if got.Title != book.Title || got.Author != book.Author || got.ISBN != book.ISBN {
		t.Errorf("Round-trip mismatch: %+v vs %+v", got, book)
	}
	if got.Rating == nil || *got.Rating != rating {
		t.Errorf("Expected rating %d, got %v", rating, got.Rating)
	}
}

func TestAddBookValidation(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddBook(&model.Book{Author: "No Title"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for missing title, got %v", err)
	}
	if _, err := s.AddBook(&model.Book{Title: "No Author"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for missing author, got %v", err)
	}
	if _, err := s.AddBook(&model.Book{Title: "Bad Pages", Author: "A", Pages: -1}); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for negative pages, got %v", err)
	}
}

func TestAddBookDuplicates(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddBook(&model.Book{
		Title:  "Dune",
		Author: "Frank Herbert",
		ISBN:   "9780441172719",
	}); err != nil {
		t.Fatalf("Failed to add book: %v", err)
	}

	// Same ISBN, different title.
	_, err := s.AddBook(&model.Book{
		Title:  "Dune (Reissue)",
		Author: "Frank Herbert",
		ISBN:   "9780441172719",
	})
	if !errors.Is(err, ErrDuplicateBook) {
		t.Errorf("Expected ErrDuplicateBook for same ISBN, got %v", err)
	}

	// Same title and author, no ISBN.
	_, err = s.AddBook(&model.Book{
		Title:  "Dune",
		Author: "Frank Herbert",
	})
	if !errors.Is(err, ErrDuplicateBook) {
		t.Errorf("Expected ErrDuplicateBook for same title/author, got %v", err)
	}

	// Same title, different author is fine.
	if _, err := s.AddBook(&model.Book{
		Title:  "Dune",
		Author: "Someone Else",
	}); err != nil {
		t.Errorf("Expected same title by another author to be accepted, got %v", err)
	}
}

func TestUpdateBook(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "Updatable")

	status := model.StatusCompleted
	rating := 5
	updated, err := s.UpdateBook(book.ID, &model.UpdateBook{
		Status: &status,
		Rating: &rating,
	})
	if err != nil {
		t.Fatalf("Failed to update book: %v", err)
	}
	if updated.Status != model.StatusCompleted {
		t.Errorf("Expected status %q, got %q", model.StatusCompleted, updated.Status)
	}
	if updated.CompletedDate == "" {
		t.Errorf("Expected completed_date to be stamped on completion")
	}
	if updated.Rating == nil || *updated.Rating != rating {
		t.Errorf("Expected rating %d, got %v", rating, updated.Rating)
	}
	// Untouched fields survive a partial update.
	if updated.Title != book.Title || updated.Pages != book.Pages {
		t.Errorf("Partial update clobbered fields: %+v", updated)
	}
}

func TestUpdateBookNoop(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "Untouched")

	got, err := s.UpdateBook(book.ID, &model.UpdateBook{})
	if err != nil {
		t.Fatalf("Empty update failed: %v", err)
	}
	if got == nil || got.UpdatedAt != book.UpdatedAt {
		t.Errorf("Empty update should be a no-op, got %+v", got)
	}
}

func TestUpdateBookMissing(t *testing.T) {
	s := newTestStore(t)

	title := "Ghost"
	got, err := s.UpdateBook(999, &model.UpdateBook{Title: &title})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing book, got %+v", got)
	}
}

func TestRemoveBookCascades(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "Doomed")

	if _, err := s.AddSession(&model.ReadingSession{
		BookID:    book.ID,
		StartTime: "2026-08-20 09:00:00",
	}); err != nil {
		t.Fatalf("Failed to add session: %v", err)
	}
	if _, err := s.AddQuote(&model.Quote{BookID: book.ID, Content: "quote"}); err != nil {
		t.Fatalf("Failed to add quote: %v", err)
	}
	if _, err := s.AddNote(&model.Note{BookID: book.ID, Content: "note"}); err != nil {
		t.Fatalf("Failed to add note: %v", err)
	}

	if err := s.RemoveBook(book.ID); err != nil {
		t.Fatalf("Failed to remove book: %v", err)
	}

	if got, _ := s.GetBook(&model.FindBook{ID: &book.ID}); got != nil {
		t.Errorf("Expected book to be gone, got %+v", got)
	}
	if quotes, _ := s.ListQuotes(&model.FindQuote{BookID: &book.ID}); len(quotes) != 0 {
		t.Errorf("Expected no quotes after cascade, got %d", len(quotes))
	}
	if notes, _ := s.ListNotes(&model.FindNote{BookID: &book.ID}); len(notes) != 0 {
		t.Errorf("Expected no notes after cascade, got %d", len(notes))
	}
	if sessions, _ := s.ListSessions(&model.FindSession{BookID: &book.ID}); len(sessions) != 0 {
		t.Errorf("Expected no sessions after cascade, got %d", len(sessions))
	}
}

func TestListBooksByStatus(t *testing.T) {
	s := newTestStore(t)
	addTestBook(t, s, "One")
	book := addTestBook(t, s, "Two")

	status := model.StatusReading
	if _, err := s.UpdateBook(book.ID, &model.UpdateBook{Status: &status}); err != nil {
		t.Fatalf("Failed to update book: %v", err)
	}

	reading, err := s.ListBooks(&model.FindBook{Status: &status})
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}
	if len(reading) != 1 || reading[0].ID != book.ID {
		t.Errorf("Expected only book %d in reading list, got %+v", book.ID, reading)
	}
}
