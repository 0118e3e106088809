package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kimhaegyeong/reading-tracker/config"
	"github.com/kimhaegyeong/reading-tracker/log"
	"github.com/kimhaegyeong/reading-tracker/model"
	"github.com/kimhaegyeong/reading-tracker/store/db"
)

// Initialize the logger and config
func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

// newTestStore opens a fresh database file in a per-test temp directory and
// runs the real migration against it.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	database, err := db.NewDB(dsn)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})

	return NewStore(database)
}

// addTestBook inserts a book with sensible defaults for tests that just need
// a parent row.
func addTestBook(t *testing.T, s *Store, title string) *model.Book {
	t.Helper()

	book, err := s.AddBook(&model.Book{
		Title:  title,
		Author: "Test Author",
		Pages:  300,
	})
	if err != nil {
		t.Fatalf("Failed to add book: %v", err)
	}
	return book
}
