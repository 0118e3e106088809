package store

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/kimhaegyeong/reading-tracker/log"
	"github.com/kimhaegyeong/reading-tracker/model"
	"github.com/kimhaegyeong/reading-tracker/util"
)

// The aggregation queries below are pure reads over the entity tables.
// Nothing here keeps incremental counters; every value is recomputed from
// the raw rows, so aggregates always reflect the latest committed writes.

// genrePalette is the fixed chart palette; genres are colored by rank order.
var genrePalette = []string{
	"#3b82f6", "#f59e42", "#10b981", "#f43f5e", "#a78bfa",
	"#fbbf24", "#6366f1", "#14b8a6", "#eab308", "#ef4444",
}

// TotalStats sums duration and pages across all reading sessions.
func (s *Store) TotalStats() (*model.TotalStats, error) {
	stmt := `
        SELECT
            COALESCE(SUM(duration_minutes), 0),
            COALESCE(SUM(pages_read), 0)
        FROM reading_sessions`

	stats := &model.TotalStats{}
	if err := s.db.QueryRow(stmt).Scan(&stats.TotalMinutes, &stats.TotalPages); err != nil {
		log.Error("Failed to query total stats", zap.Error(err))
		return nil, err
	}
	return stats, nil
}

// MonthlyStats partitions the year's sessions by calendar month. The result
// always holds exactly 12 entries, zero-filled for months without sessions,
// so charts get a full series.
func (s *Store) MonthlyStats(year int) ([]*model.MonthlyStat, error) {
	stats := make([]*model.MonthlyStat, 12)
	for i := range stats {
		stats[i] = &model.MonthlyStat{Month: i + 1}
	}

	query := `
        SELECT
            CAST(strftime('%m', start_time) AS INTEGER) AS month,
            COUNT(DISTINCT book_id),
            COALESCE(SUM(duration_minutes), 0),
            COALESCE(SUM(pages_read), 0)
        FROM reading_sessions
        WHERE strftime('%Y', start_time) = ?
        GROUP BY month
        ORDER BY month ASC`

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %d\n", query, year))

	rows, err := s.db.Query(query, fmt.Sprintf("%04d", year))
	if err != nil {
		log.Error("Failed to query monthly stats", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var month, books, minutes, pages int
		if err := rows.Scan(&month, &books, &minutes, &pages); err != nil {
			log.Error("Failed to scan monthly stat", zap.Error(err))
			return nil, err
		}
		if month >= 1 && month <= 12 {
			stats[month-1] = &model.MonthlyStat{
				Month:   month,
				Books:   books,
				Minutes: minutes,
				Pages:   pages,
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// GenreStats reports each genre's share (percent) of the books the user has
// engaged with: completed books plus books with at least one session.
// Unread catalog entries would skew the chart, so they are left out. Books
// without a genre are grouped under "unspecified".
func (s *Store) GenreStats() ([]*model.GenreStat, error) {
	query := `
        SELECT
            CASE WHEN genre IS NULL OR genre = '' THEN 'unspecified' ELSE genre END AS name,
            COUNT(*) AS value
        FROM books b
        WHERE b.status = ?
           OR EXISTS (SELECT 1 FROM reading_sessions rs WHERE rs.book_id = b.id)
        GROUP BY name
        ORDER BY value DESC, name ASC`

	rows, err := s.db.Query(query, model.StatusCompleted)
	if err != nil {
		log.Error("Failed to query genre stats", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	type bucket struct {
		name  string
		count int
	}
	buckets := make([]bucket, 0)
	total := 0
	for rows.Next() {
		var b bucket
		if err := rows.Scan(&b.name, &b.count); err != nil {
			log.Error("Failed to scan genre stat", zap.Error(err))
			return nil, err
		}
		buckets = append(buckets, b)
		total += b.count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats := make([]*model.GenreStat, 0, len(buckets))
	for i, b := range buckets {
		stats = append(stats, &model.GenreStat{
			Name:  b.name,
			Value: int(math.Round(float64(b.count) / float64(total) * 100)),
			Color: genrePalette[i%len(genrePalette)],
		})
	}
	return stats, nil
}

// BooksReadCount counts the books completed within the given year.
func (s *Store) BooksReadCount(year int) (int, error) {
	stmt := `
        SELECT COUNT(*)
        FROM books
        WHERE status = ? AND strftime('%Y', completed_date) = ?`

	var count int
	if err := s.db.QueryRow(stmt, model.StatusCompleted, fmt.Sprintf("%04d", year)).Scan(&count); err != nil {
		log.Error("Failed to query books read count", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// RecentBooks returns the n most recently completed books.
func (s *Store) RecentBooks(n int) ([]*model.RecentBook, error) {
	query := `
        SELECT title, author, COALESCE(completed_date, ''), rating
        FROM books
        WHERE status = ?
        ORDER BY completed_date DESC
        LIMIT ?`

	rows, err := s.db.Query(query, model.StatusCompleted, n)
	if err != nil {
		log.Error("Failed to query recent books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.RecentBook, 0)
	for rows.Next() {
		var book model.RecentBook
		var rating sql.NullInt64
		if err := rows.Scan(&book.Title, &book.Author, &book.CompletedDate, &rating); err != nil {
			log.Error("Failed to scan recent book", zap.Error(err))
			return nil, err
		}
		if rating.Valid {
			v := int(rating.Int64)
			book.Rating = &v
		}
		list = append(list, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// DailyHistory returns the distinct calendar days with at least one
// session, most recent first.
func (s *Store) DailyHistory() ([]string, error) {
	query := `
        SELECT DISTINCT date(start_time) AS day
        FROM reading_sessions
        ORDER BY day DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		log.Error("Failed to query daily history", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	days := make([]string, 0)
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

// StreakStats walks the distinct session days and measures consecutive-day
// runs. The current streak is the run anchored at today (zero when there is
// no session today); the longest streak is the maximum run anywhere in the
// history. today is a parameter so callers and tests fix the reference day
// instead of depending on the wall clock.
func (s *Store) StreakStats(today time.Time) (*model.StreakStats, error) {
	query := `
        SELECT DISTINCT date(start_time) AS day
        FROM reading_sessions
        ORDER BY day ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		log.Error("Failed to query streak dates", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	days := make([]time.Time, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		day, err := util.ParseDate(raw)
		if err != nil {
			log.Warn("Skipping unparsable session day", zap.String("day", raw), zap.Error(err))
			continue
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(days) == 0 {
		return &model.StreakStats{}, nil
	}

	current, longest := 1, 1
	for i := 1; i < len(days); i++ {
		// Rounding keeps the day arithmetic correct across DST shifts.
		diff := int(math.Round(days[i].Sub(days[i-1]).Hours() / 24))
		if diff == 1 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}

	// The run ending on the most recent day only counts as the current
	// streak when that day is today.
	last := days[len(days)-1]
	todayDay := util.FormatDate(today)
	if util.FormatDate(last) != todayDay {
		current = 0
	}

	return &model.StreakStats{
		CurrentStreak: current,
		LongestStreak: longest,
	}, nil
}

// GoalProgress reports how far along the yearly reading goal is, capped at
// 100 percent.
func (s *Store) GoalProgress(year int) (*model.GoalProgress, error) {
	booksRead, err := s.BooksReadCount(year)
	if err != nil {
		return nil, err
	}
	goal := s.YearlyGoal()

	percent := int(math.Round(float64(booksRead) / float64(goal) * 100))
	if percent > 100 {
		percent = 100
	}

	return &model.GoalProgress{
		Year:      year,
		Goal:      goal,
		BooksRead: booksRead,
		Percent:   percent,
	}, nil
}

// TotalBookPages sums the page counts of books being read or completed.
func (s *Store) TotalBookPages() (int, error) {
	stmt := `
        SELECT COALESCE(SUM(pages), 0)
        FROM books
        WHERE status = ? OR status = ?`

	var pages int
	if err := s.db.QueryRow(stmt, model.StatusCompleted, model.StatusReading).Scan(&pages); err != nil {
		log.Error("Failed to query total book pages", zap.Error(err))
		return 0, err
	}
	return pages, nil
}
