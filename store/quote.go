package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kimhaegyeong/reading-tracker/log"
	"github.com/kimhaegyeong/reading-tracker/model"
	"github.com/kimhaegyeong/reading-tracker/util"
)

func scanQuote(row rowScanner) (*model.Quote, error) {
	var quote model.Quote
	var memo, tags sql.NullString
	var page sql.NullInt64
	if err := row.Scan(
		&quote.ID,
		&quote.BookID,
		&quote.Content,
		&memo,
		&page,
		&tags,
		&quote.CreatedAt,
	); err != nil {
		return nil, err
	}
	quote.Memo = memo.String
	if page.Valid {
		v := int(page.Int64)
		quote.Page = &v
	}
	quote.Tags = util.SplitTags(tags.String)
	return &quote, nil
}

func (s *Store) AddQuote(quote *model.Quote) (*model.Quote, error) {
	if strings.TrimSpace(quote.Content) == "" {
		return nil, errors.Wrap(ErrInvalid, "content is required")
	}
	if !s.CheckBook(quote.BookID) {
		return nil, errors.Wrapf(ErrBookNotFound, "book_id: %d", quote.BookID)
	}

	stmt := `
        INSERT INTO quotes (
            book_id,
            content,
            memo,
            page,
            tags
        ) VALUES (?,?,?,?,?)
        RETURNING id, book_id, content, memo, page, tags, created_at`
	args := []any{
		quote.BookID,
		quote.Content,
		quote.Memo,
		quote.Page,
		util.JoinTags(quote.Tags),
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	newQuote, err := scanQuote(tx.QueryRow(stmt, args...))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return newQuote, nil
}

func (s *Store) GetQuote(find *model.FindQuote) (*model.Quote, error) {
	list, err := s.ListQuotes(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListQuotes(find *model.FindQuote) ([]*model.Quote, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "book_id = ?"), append(args, *v)
	}

	query := `
        SELECT
            id,
            book_id,
            content,
            memo,
            page,
            tags,
            created_at
        FROM quotes
        WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at DESC, id DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query quotes", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Quote, 0)
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			log.Error("Failed to scan quote", zap.Error(err))
			return nil, err
		}
		list = append(list, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) UpdateQuote(id int, update *model.UpdateQuote) (*model.Quote, error) {
	set, args := []string{}, []any{}

	if v := update.Content; v != nil {
		if strings.TrimSpace(*v) == "" {
			return nil, errors.Wrap(ErrInvalid, "content is required")
		}
		set, args = append(set, "content = ?"), append(args, *v)
	}
	if v := update.Memo; v != nil {
		set, args = append(set, "memo = ?"), append(args, *v)
	}
	if v := update.Page; v != nil {
		set, args = append(set, "page = ?"), append(args, *v)
	}
	if update.Tags != nil {
		set, args = append(set, "tags = ?"), append(args, util.JoinTags(update.Tags))
	}

	if len(set) == 0 {
		return s.GetQuote(&model.FindQuote{ID: &id})
	}

	args = append(args, id)
	stmt := `
        UPDATE quotes
        SET ` + strings.Join(set, ", ") + `
        WHERE id = ?
        RETURNING id, book_id, content, memo, page, tags, created_at`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	quote, err := scanQuote(tx.QueryRow(stmt, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *Store) RemoveQuote(id int) error {
	stmt := `DELETE FROM quotes WHERE id = ?`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %d\n", stmt, id))

	if _, err := tx.Exec(stmt, id); err != nil {
		return err
	}
	return tx.Commit()
}
