package model

// SettingKeyYearlyGoal stores the number of books the user wants to finish
// in a calendar year.
const SettingKeyYearlyGoal = "yearly_goal"

type Setting struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at"`
}
