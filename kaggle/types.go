package kaggle

import "time"

// Competition describes a Kaggle competition as returned by competitions/list.
type Competition struct {
	ID               int       `json:"id"`
	Ref              string    `json:"ref"`
	Title            string    `json:"title"`
	URL              string    `json:"url"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Reward           string    `json:"reward"`
	Deadline         time.Time `json:"deadline"`
	EnabledDate      time.Time `json:"enabledDate"`
	MaxTeamSize      int       `json:"maxTeamSize"`
	EvaluationMetric string    `json:"evaluationMetric"`
	TotalTeams       int       `json:"totalTeams"`
	UserHasEntered   bool      `json:"userHasEntered"`
	Tags             []Tag     `json:"tags"`
}

// Active reports whether the competition deadline has not yet passed.
// Competitions without a deadline are treated as active.
func (c Competition) Active(now time.Time) bool {
	return c.Deadline.IsZero() || c.Deadline.After(now)
}

// Dataset describes a Kaggle dataset.
type Dataset struct {
	Ref             string    `json:"ref"`
	Title           string    `json:"title"`
	Subtitle        string    `json:"subtitle"`
	Description     string    `json:"description"`
	TotalBytes      int64     `json:"totalBytes"`
	LastUpdated     time.Time `json:"lastUpdated"`
	DownloadCount   int       `json:"downloadCount"`
	VoteCount       int       `json:"voteCount"`
	UsabilityRating float64   `json:"usabilityRating"`
	LicenseName     string    `json:"licenseName"`
	Tags            []Tag     `json:"tags"`
}

// DatasetFile describes a single file within a dataset.
type DatasetFile struct {
	Name         string    `json:"name"`
	TotalBytes   int64     `json:"totalBytes"`
	CreationDate time.Time `json:"creationDate"`
}

// Model describes a Kaggle model hub entry.
type Model struct {
	ID          int       `json:"id"`
	Ref         string    `json:"ref"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Author      string    `json:"author"`
	Slug        string    `json:"slug"`
	IsPrivate   bool      `json:"isPrivate"`
	Description string    `json:"description"`
	PublishTime time.Time `json:"publishTime"`
}

// Tag is a label attached to competitions and datasets.
type Tag struct {
	Ref  string `json:"ref"`
	Name string `json:"name"`
}
