package model

// Derived aggregates. None of these are persisted; every value is
// recomputed from the raw tables on each call.

type TotalStats struct {
	TotalMinutes int `json:"totalMinutes"`
	TotalPages   int `json:"totalPages"`
}

type MonthlyStat struct {
	Month   int `json:"month"`
	Books   int `json:"books"`
	Minutes int `json:"minutes"`
	Pages   int `json:"pages"`
}

type GenreStat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type StreakStats struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

type RecentBook struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	CompletedDate string `json:"completedDate"`
	Rating        *int   `json:"rating"`
}

type GoalProgress struct {
	Year      int `json:"year"`
	Goal      int `json:"goal"`
	BooksRead int `json:"booksRead"`
	Percent   int `json:"percent"`
}
