package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kimhaegyeong/reading-tracker/log"
	"github.com/kimhaegyeong/reading-tracker/model"
	"github.com/kimhaegyeong/reading-tracker/util"
)

func scanSession(row rowScanner) (*model.ReadingSession, error) {
	var session model.ReadingSession
	var endTime, memo sql.NullString
	if err := row.Scan(
		&session.ID,
		&session.BookID,
		&session.StartTime,
		&endTime,
		&session.DurationMinutes,
		&session.PagesRead,
		&memo,
		&session.CreatedAt,
	); err != nil {
		return nil, err
	}
	session.EndTime = endTime.String
	session.Memo = memo.String
	return &session, nil
}

// AddSession records a finished reading session. The referenced book must
// exist; the store does not rely on the engine to enforce the foreign key.
func (s *Store) AddSession(session *model.ReadingSession) (*model.ReadingSession, error) {
	if session.StartTime == "" {
		return nil, errors.Wrap(ErrInvalid, "start_time is required")
	}
	if session.DurationMinutes < 0 {
		return nil, errors.Wrap(ErrInvalid, "duration_minutes must not be negative")
	}
	if session.PagesRead < 0 {
		return nil, errors.Wrap(ErrInvalid, "pages_read must not be negative")
	}
	if !s.CheckBook(session.BookID) {
		return nil, errors.Wrapf(ErrBookNotFound, "book_id: %d", session.BookID)
	}

	stmt := `
        INSERT INTO reading_sessions (
            book_id,
            start_time,
            end_time,
            duration_minutes,
            pages_read,
            memo
        ) VALUES (?,?,?,?,?,?)
        RETURNING id, book_id, start_time, end_time, duration_minutes, pages_read, memo, created_at`
	args := []any{
		session.BookID,
		session.StartTime,
		session.EndTime,
		session.DurationMinutes,
		session.PagesRead,
		session.Memo,
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

	newSession, err := scanSession(tx.QueryRow(stmt, args...))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return newSession, nil
}

func (s *Store) ListSessions(find *model.FindSession) ([]*model.ReadingSession, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "book_id = ?"), append(args, *v)
	}
	if v := find.Date; v != nil {
		where, args = append(where, "date(start_time) = ?"), append(args, *v)
	}

	query := `
        SELECT
            id,
            book_id,
            start_time,
            end_time,
            duration_minutes,
            pages_read,
            memo,
            created_at
        FROM reading_sessions
        WHERE ` + strings.Join(where, " AND ") + ` ORDER BY start_time DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query reading sessions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.ReadingSession, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			log.Error("Failed to scan reading session", zap.Error(err))
			return nil, err
		}
		list = append(list, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// SessionsByDate returns the sessions of one calendar day joined with their
// book titles, earliest first, for the per-day drill-down.
func (s *Store) SessionsByDate(date string) ([]*model.SessionWithBook, error) {
	query := `
        SELECT
            rs.id,
            rs.book_id,
            rs.start_time,
            rs.end_time,
            rs.duration_minutes,
            rs.pages_read,
            rs.memo,
            rs.created_at,
            b.title
        FROM reading_sessions rs
        JOIN books b ON rs.book_id = b.id
        WHERE date(rs.start_time) = ?
        ORDER BY rs.start_time ASC`

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %s\n", query, date))

	rows, err := s.db.Query(query, date)
	if err != nil {
		log.Error("Failed to query sessions by date", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.SessionWithBook, 0)
	for rows.Next() {
		var session model.SessionWithBook
		var endTime, memo sql.NullString
		if err := rows.Scan(
			&session.ID,
			&session.BookID,
			&session.StartTime,
			&endTime,
			&session.DurationMinutes,
			&session.PagesRead,
			&memo,
			&session.CreatedAt,
			&session.BookTitle,
		); err != nil {
			log.Error("Failed to scan session", zap.Error(err))
			return nil, err
		}
		session.EndTime = endTime.String
		session.Memo = memo.String
		list = append(list, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// TodaySessions is SessionsByDate for the calendar day of now.
func (s *Store) TodaySessions(now time.Time) ([]*model.SessionWithBook, error) {
	return s.SessionsByDate(util.FormatDate(now))
}

func (s *Store) RemoveSession(id int) error {
	stmt := `DELETE FROM reading_sessions WHERE id = ?`

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
