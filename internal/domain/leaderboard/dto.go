package leaderboard

import "time"

// Profile is the display identity resolved for a ranked owner.
type Profile struct {
	Name        string
	FirstName   string
	LastName    string
	DisplayName string
	Email       string
	AvatarURL   string
	PhotoURL    string
	Picture     string
}

// Entry is one leaderboard row: an owner's all-time average of the
// per-record achievement percentages, enriched with display identity.
type Entry struct {
	Rank               int     `json:"rank"`
	OwnerID            string  `json:"owner_id"`
	Name               string  `json:"name"`
	AvatarURL          string  `json:"avatar_url,omitempty"`
	PercentageAchieved float64 `json:"percentage_achieved"`
	ReportCount        int     `json:"report_count"`
	LatestReportDate   time.Time `json:"latest_report_date"`
}
