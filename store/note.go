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

func scanNote(row rowScanner) (*model.Note, error) {
	var note model.Note
	var tags sql.NullString
	if err := row.Scan(
		&note.ID,
		&note.BookID,
		&note.Content,
		&tags,
		&note.CreatedAt,
	); err != nil {
		return nil, err
	}
	note.Tags = util.SplitTags(tags.String)
	return &note, nil
}

func (s *Store) AddNote(note *model.Note) (*model.Note, error) {
	if strings.TrimSpace(note.Content) == "" {
		return nil, errors.Wrap(ErrInvalid, "content is required")
	}
	if !s.CheckBook(note.BookID) {
		return nil, errors.Wrapf(ErrBookNotFound, "book_id: %d", note.BookID)
	}

	stmt := `
        INSERT INTO notes (
            book_id,
            content,
            tags
        ) VALUES (?,?,?)
        RETURNING id, book_id, content, tags, created_at`
	args := []any{
		note.BookID,
		note.Content,
		util.JoinTags(note.Tags),
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

	newNote, err := scanNote(tx.QueryRow(stmt, args...))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return newNote, nil
}

func (s *Store) GetNote(find *model.FindNote) (*model.Note, error) {
	list, err := s.ListNotes(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListNotes(find *model.FindNote) ([]*model.Note, error) {
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
            tags,
            created_at
        FROM notes
        WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at DESC, id DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query notes", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error("Failed to scan note", zap.Error(err))
			return nil, err
		}
		list = append(list, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) UpdateNote(id int, update *model.UpdateNote) (*model.Note, error) {
	set, args := []string{}, []any{}

	if v := update.Content; v != nil {
		if strings.TrimSpace(*v) == "" {
			return nil, errors.Wrap(ErrInvalid, "content is required")
		}
		set, args = append(set, "content = ?"), append(args, *v)
	}
	if update.Tags != nil {
		set, args = append(set, "tags = ?"), append(args, util.JoinTags(update.Tags))
	}

	if len(set) == 0 {
		return s.GetNote(&model.FindNote{ID: &id})
	}

	args = append(args, id)
	stmt := `
        UPDATE notes
        SET ` + strings.Join(set, ", ") + `
        WHERE id = ?
        RETURNING id, book_id, content, tags, created_at`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	note, err := scanNote(tx.QueryRow(stmt, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Store) RemoveNote(id int) error {
	stmt := `DELETE FROM notes WHERE id = ?`

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
