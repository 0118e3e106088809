package store

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/kimhaegyeong/reading-tracker/model"
)

func TestAddAndListQuotes(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "Quotable")

	page := 42
	quote, err := s.AddQuote(&model.Quote{
		BookID:  book.ID,
		Content: "The mystery of life isn't a problem to solve.",
		Memo:    "ch. 3",
		Page:    &page,
		Tags:    []string{"favorite", "philosophy"},
	})
	if err != nil {
		t.Fatalf("Failed to add quote: %v", err)
	}
	if quote.ID == 0 {
		t.Fatalf("Expected a generated id, got 0")
	}
	if len(quote.Tags) != 2 || quote.Tags[0] != "favorite" {
		t.Errorf("Tags round-trip mismatch: %v", quote.Tags)
	}

	quotes, err := s.ListQuotes(&model.FindQuote{BookID: &book.ID})
	if err != nil {
		t.Fatalf("Failed to list quotes: %v", err)
	}
	if len(quotes) != 1 || quotes[0].Content != quote.Content {
		t.Errorf("Expected the inserted quote back, got %+v", quotes)
	}
}

func TestAddQuoteValidation(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "Quotable")

	if _, err := s.AddQuote(&model.Quote{BookID: book.ID, Content: "  "}); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for blank content, got %v", err)
	}
	if _, err := s.AddQuote(&model.Quote{BookID: 999, Content: "orphan"}); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("Expected ErrBookNotFound for unknown book, got %v", err)
	}
}

func TestUpdateQuote(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "Quotable")

	quote, err := s.AddQuote(&model.Quote{BookID: book.ID, Content: "before", Tags: []string{"a"}})
	if err != nil {
		t.Fatalf("Failed to add quote: %v", err)
	}

	content := "after"
	updated, err := s.UpdateQuote(quote.ID, &model.UpdateQuote{
		Content: &content,
		Tags:    []string{"b", "c"},
	})
	if err != nil {
		t.Fatalf("Failed to update quote: %v", err)
	}
	if updated.Content != "after" {
		t.Errorf("Expected updated content, got %q", updated.Content)
	}
	if len(updated.Tags) != 2 {
		t.Errorf("Expected replaced tags, got %v", updated.Tags)
	}

	// Unknown id resolves to nil, not an error.
	missing, err := s.UpdateQuote(999, &model.UpdateQuote{Content: &content})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for missing quote, got %+v", missing)
	}
}

func TestRemoveQuote(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "Quotable")

	quote, err := s.AddQuote(&model.Quote{BookID: book.ID, Content: "gone soon"})
	if err != nil {
		t.Fatalf("Failed to add quote: %v", err)
	}
	if err := s.RemoveQuote(quote.ID); err != nil {
		t.Fatalf("Failed to remove quote: %v", err)
	}
	if got, _ := s.GetQuote(&model.FindQuote{ID: &quote.ID}); got != nil {
		t.Errorf("Expected quote to be gone, got %+v", got)
	}
}
