package domain

// Tag is a problem topic.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Language is a judge language the backend accepts for submissions.
type Language struct {
	ID       int64  `json:"id"`
	JudgeID  int    `json:"langId"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}
