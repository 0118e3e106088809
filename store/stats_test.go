package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimhaegyeong/reading-tracker/model"
)

func addSessionOn(t *testing.T, s *Store, bookID int, day string, minutes, pages int) {
	t.Helper()
	_, err := s.AddSession(&model.ReadingSession{
		BookID:          bookID,
		StartTime:       day + " 20:00:00",
		DurationMinutes: minutes,
		PagesRead:       pages,
	})
	require.NoError(t, err)
}

func completeBook(t *testing.T, s *Store, bookID int) {
	t.Helper()
	status := model.StatusCompleted
	_, err := s.UpdateBook(bookID, &model.UpdateBook{Status: &status})
	require.NoError(t, err)
}

func TestTotalStats(t *testing.T) {
	s := newTestStore(t)

	// Empty database sums to zero instead of NULL.
	stats, err := s.TotalStats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalMinutes)
	assert.Equal(t, 0, stats.TotalPages)

	book := addTestBook(t, s, "Stat Book")
	addSessionOn(t, s, book.ID, "2026-08-18", 30, 20)
	addSessionOn(t, s, book.ID, "2026-08-19", 45, 35)

	stats, err = s.TotalStats()
	require.NoError(t, err)
	assert.Equal(t, 75, stats.TotalMinutes)
	assert.Equal(t, 55, stats.TotalPages)

	// Reads do not change anything; asking twice gives the same answer.
	again, err := s.TotalStats()
	require.NoError(t, err)
	assert.Equal(t, stats, again)
}

func TestMonthlyStats(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "Monthly Book")

	addSessionOn(t, s, book.ID, "2026-03-10", 30, 10)
	addSessionOn(t, s, book.ID, "2026-03-12", 20, 5)
	addSessionOn(t, s, book.ID, "2026-07-01", 60, 40)
	// A different year must not leak in.
	addSessionOn(t, s, book.ID, "2025-03-10", 999, 999)

	stats, err := s.MonthlyStats(2026)
	require.NoError(t, err)
	require.Len(t, stats, 12)

	for i, stat := range stats {
		assert.Equal(t, i+1, stat.Month)
	}
	assert.Equal(t, 50, stats[2].Minutes)
	assert.Equal(t, 15, stats[2].Pages)
	assert.Equal(t, 1, stats[2].Books)
	assert.Equal(t, 60, stats[6].Minutes)
	// Months without sessions are zero-filled.
	assert.Equal(t, 0, stats[0].Minutes)
	assert.Equal(t, 0, stats[11].Books)
}

func TestGenreStats(t *testing.T) {
	s := newTestStore(t)

	mkBook := func(title, genre string) *model.Book {
		book, err := s.AddBook(&model.Book{Title: title, Author: "A", Genre: genre})
		require.NoError(t, err)
		return book
	}

	b1 := mkBook("SF One", "sci-fi")
	b2 := mkBook("SF Two", "sci-fi")
	b3 := mkBook("Essay", "")
	// Never-touched books stay out of the chart.
	mkBook("Untouched", "history")

	completeBook(t, s, b1.ID)
	completeBook(t, s, b2.ID)
	addSessionOn(t, s, b3.ID, "2026-08-19", 10, 5)

	stats, err := s.GenreStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "sci-fi", stats[0].Name)
	assert.Equal(t, 67, stats[0].Value)
	assert.Equal(t, "unspecified", stats[1].Name)
	assert.Equal(t, 33, stats[1].Value)
	// Colors come from the fixed palette in rank order.
	assert.Equal(t, "#3b82f6", stats[0].Color)
	assert.Equal(t, "#f59e42", stats[1].Color)
}

func TestStreakStats(t *testing.T) {
	today := time.Date(2026, 8, 20, 12, 0, 0, 0, time.Local)
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format("2006-01-02")
	}

	t.Run("empty", func(t *testing.T) {
		s := newTestStore(t)
		stats, err := s.StreakStats(today)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.CurrentStreak)
		assert.Equal(t, 0, stats.LongestStreak)
	})

	t.Run("three consecutive days ending today", func(t *testing.T) {
		s := newTestStore(t)
		book := addTestBook(t, s, "Streak Book")
		for _, d := range []string{day(-2), day(-1), day(0)} {
			addSessionOn(t, s, book.ID, d, 10, 5)
		}
		stats, err := s.StreakStats(today)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.CurrentStreak)
		assert.Equal(t, 3, stats.LongestStreak)
	})

	t.Run("gap resets the run", func(t *testing.T) {
		s := newTestStore(t)
		book := addTestBook(t, s, "Streak Book")
		for _, d := range []string{day(-2), day(0)} {
			addSessionOn(t, s, book.ID, d, 10, 5)
		}
		stats, err := s.StreakStats(today)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.CurrentStreak)
		assert.Equal(t, 1, stats.LongestStreak)
	})

	t.Run("past run does not count as current", func(t *testing.T) {
		s := newTestStore(t)
		book := addTestBook(t, s, "Streak Book")
		for _, d := range []string{day(-5), day(-4), day(-3)} {
			addSessionOn(t, s, book.ID, d, 10, 5)
		}
		stats, err := s.StreakStats(today)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.CurrentStreak)
		assert.Equal(t, 3, stats.LongestStreak)
	})

	t.Run("several sessions on one day count once", func(t *testing.T) {
		s := newTestStore(t)
		book := addTestBook(t, s, "Streak Book")
		addSessionOn(t, s, book.ID, day(0), 10, 5)
		addSessionOn(t, s, book.ID, day(0), 20, 5)
		addSessionOn(t, s, book.ID, day(-1), 10, 5)
		stats, err := s.StreakStats(today)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.CurrentStreak)
		assert.Equal(t, 2, stats.LongestStreak)
	})
}

func TestDailyHistory(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "History Book")

	addSessionOn(t, s, book.ID, "2026-08-18", 10, 5)
	addSessionOn(t, s, book.ID, "2026-08-18", 20, 5)
	addSessionOn(t, s, book.ID, "2026-08-20", 10, 5)

	days, err := s.DailyHistory()
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-20", "2026-08-18"}, days)
}

func TestGoalProgress(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpsertSetting(&model.Setting{Key: model.SettingKeyYearlyGoal, Value: "2"})
	require.NoError(t, err)

	year := time.Now().Year()

	progress, err := s.GoalProgress(year)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.BooksRead)
	assert.Equal(t, 0, progress.Percent)
	assert.Equal(t, 2, progress.Goal)

	// completed_date is stamped with the current timestamp, so completions
	// land in the current year.
	for i := 0; i < 2; i++ {
		book := addTestBook(t, s, fmt.Sprintf("Goal Book %d", i))
		completeBook(t, s, book.ID)
	}

	progress, err = s.GoalProgress(year)
	require.NoError(t, err)
	assert.Equal(t, 2, progress.BooksRead)
	assert.Equal(t, 100, progress.Percent)

	// Overshooting the goal stays capped at 100.
	book := addTestBook(t, s, "Goal Book 2")
	completeBook(t, s, book.ID)

	progress, err = s.GoalProgress(year)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.BooksRead)
	assert.Equal(t, 100, progress.Percent)
}

func TestRecentBooks(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		book := addTestBook(t, s, fmt.Sprintf("Recent %d", i))
		completeBook(t, s, book.ID)
	}
	addTestBook(t, s, "Still Reading")

	books, err := s.RecentBooks(2)
	require.NoError(t, err)
	assert.Len(t, books, 2)
	for _, book := range books {
		assert.NotEmpty(t, book.CompletedDate)
	}
}

func TestTotalBookPages(t *testing.T) {
	s := newTestStore(t)

	b1 := addTestBook(t, s, "Pages One")
	b2 := addTestBook(t, s, "Pages Two")
	addTestBook(t, s, "Pages Want")

	status := model.StatusReading
	_, err := s.UpdateBook(b1.ID, &model.UpdateBook{Status: &status})
	require.NoError(t, err)
	completeBook(t, s, b2.ID)

	// Only reading and completed books count, at 300 pages each.
	pages, err := s.TotalBookPages()
	require.NoError(t, err)
	assert.Equal(t, 600, pages)
}
