package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kimhaegyeong/reading-tracker/log"
	"github.com/kimhaegyeong/reading-tracker/model"
)

const bookColumns = `
            id,
            title,
            author,
            isbn,
            pages,
            status,
            cover_color,
            cover,
            genre,
            rating,
            completed_date,
            created_at,
            updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*model.Book, error) {
	var book model.Book
	var isbn, cover, genre, completedDate sql.NullString
	var pages, rating sql.NullInt64
	if err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&isbn,
		&pages,
		&book.Status,
		&book.CoverColor,
		&cover,
		&genre,
		&rating,
		&completedDate,
		&book.CreatedAt,
		&book.UpdatedAt,
	); err != nil {
		return nil, err
	}
	book.ISBN = isbn.String
	book.Pages = int(pages.Int64)
	book.Cover = cover.String
	book.Genre = genre.String
	book.CompletedDate = completedDate.String
	if rating.Valid {
		v := int(rating.Int64)
		book.Rating = &v
	}
	return &book, nil
}

// AddBook validates and inserts a new book. A book sharing a non-empty ISBN
// with an existing row, or an identical (title, author) pair, is rejected
// with ErrDuplicateBook before anything is written. This check lives here so
// every insertion path goes through it.
func (s *Store) AddBook(book *model.Book) (*model.Book, error) {
	if strings.TrimSpace(book.Title) == "" {
		return nil, errors.Wrap(ErrInvalid, "title is required")
	}
	if strings.TrimSpace(book.Author) == "" {
		return nil, errors.Wrap(ErrInvalid, "author is required")
	}
	if book.Pages < 0 {
		return nil, errors.Wrap(ErrInvalid, "pages must not be negative")
	}
	if book.Status == "" {
		book.Status = model.StatusWantToRead
	}
	if book.CoverColor == "" {
		book.CoverColor = model.DefaultCoverColor
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	dupStmt := `
        SELECT EXISTS(
            SELECT 1 FROM books
            WHERE (? != '' AND isbn = ?) OR (title = ? AND author = ?)
        )`
	var exists bool
	if err := tx.QueryRow(dupStmt, book.ISBN, book.ISBN, book.Title, book.Author).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Wrapf(ErrDuplicateBook, "title: %q, author: %q", book.Title, book.Author)
	}

	stmt := `
        INSERT INTO books (
            title,
            author,
            isbn,
            pages,
            status,
            cover_color,
            cover,
            genre,
            rating
        ) VALUES (?,?,?,?,?,?,?,?,?)
        RETURNING` + bookColumns
	args := []any{
		book.Title,
		book.Author,
		book.ISBN,
		book.Pages,
		book.Status,
		book.CoverColor,
		book.Cover,
		book.Genre,
		book.Rating,
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	newBook, err := scanBook(tx.QueryRow(stmt, args...))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.BookCache.Store(newBook.ID, newBook)
	return newBook, nil
}

// GetBook returns the first match or (nil, nil) when absent.
func (s *Store) GetBook(find *model.FindBook) (*model.Book, error) {
	if find.ID != nil {
		if cache, ok := s.BookCache.Load(*find.ID); ok {
			return cache.(*model.Book), nil
		}
	}

	list, err := s.ListBooks(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	book := list[0]
	s.BookCache.Store(book.ID, book)
	return book, nil
}

func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Title; v != nil {
		where, args = append(where, "title = ?"), append(args, *v)
	}
	if v := find.Author; v != nil {
		where, args = append(where, "author = ?"), append(args, *v)
	}
	if v := find.ISBN; v != nil {
		where, args = append(where, "isbn = ?"), append(args, *v)
	}
	if v := find.Status; v != nil {
		where, args = append(where, "status = ?"), append(args, *v)
	}
	if v := find.Genre; v != nil {
		where, args = append(where, "genre = ?"), append(args, *v)
	}

	// Most recently added first.
	orderBy := []string{"created_at DESC", "id DESC"}
	if find.OrderBy != nil {
		orderBy = []string{*find.OrderBy}
	}

	query := `
        SELECT` + bookColumns + `
        FROM books
        WHERE ` + strings.Join(where, " AND ") + ` ORDER BY ` + strings.Join(orderBy, ", ")
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			log.Error("Failed to scan book", zap.Error(err))
			return nil, err
		}
		list = append(list, book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateBook merges the supplied fields into the stored row and refreshes
// updated_at. An empty update is a harmless no-op. A status change to
// completed also stamps completed_date.
func (s *Store) UpdateBook(id int, update *model.UpdateBook) (*model.Book, error) {
	set, args := []string{}, []any{}

	if v := update.Title; v != nil {
		if strings.TrimSpace(*v) == "" {
			return nil, errors.Wrap(ErrInvalid, "title is required")
		}
		set, args = append(set, "title = ?"), append(args, *v)
	}
	if v := update.Author; v != nil {
		if strings.TrimSpace(*v) == "" {
			return nil, errors.Wrap(ErrInvalid, "author is required")
		}
		set, args = append(set, "author = ?"), append(args, *v)
	}
	if v := update.ISBN; v != nil {
		set, args = append(set, "isbn = ?"), append(args, *v)
	}
	if v := update.Pages; v != nil {
		if *v < 0 {
			return nil, errors.Wrap(ErrInvalid, "pages must not be negative")
		}
		set, args = append(set, "pages = ?"), append(args, *v)
	}
	if v := update.Status; v != nil {
		set, args = append(set, "status = ?"), append(args, *v)
		if *v == model.StatusCompleted {
			set = append(set, "completed_date = CURRENT_TIMESTAMP")
		}
	}
	if v := update.CoverColor; v != nil {
		set, args = append(set, "cover_color = ?"), append(args, *v)
	}
	if v := update.Cover; v != nil {
		set, args = append(set, "cover = ?"), append(args, *v)
	}
	if v := update.Genre; v != nil {
		set, args = append(set, "genre = ?"), append(args, *v)
	}
	if v := update.Rating; v != nil {
		set, args = append(set, "rating = ?"), append(args, *v)
	}

	if len(set) == 0 {
		return s.GetBook(&model.FindBook{ID: &id})
	}

	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	stmt := `
        UPDATE books
        SET ` + strings.Join(set, ", ") + `
        WHERE id = ?
        RETURNING` + bookColumns

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	book, err := scanBook(tx.QueryRow(stmt, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.BookCache.Store(book.ID, book)
	return book, nil
}

// RemoveBook deletes the book and every quote, note and reading session
// referencing it inside one transaction, so a reader never observes an
// orphaned child row.
func (s *Store) RemoveBook(id int) error {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM quotes WHERE book_id = ?`,
		`DELETE FROM notes WHERE book_id = ?`,
		`DELETE FROM reading_sessions WHERE book_id = ?`,
		`DELETE FROM books WHERE id = ?`,
	} {
		log.Debug("SQL query and args:")
		log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %d\n", stmt, id))
		if _, err := tx.Exec(stmt, id); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.BookCache.Delete(id)
	return nil
}

func (s *Store) CheckBook(bookID int) bool {
	stmt := `
        SELECT EXISTS(SELECT 1 FROM books WHERE id = ?)
    `
	var exists bool
	if err := s.db.QueryRow(stmt, bookID).Scan(&exists); err != nil {
		return false
	}
	return exists
}
