package models

// Theme is a topic tag applied to rooms. Titles are deduplicated by get-or-create
// rather than a schema constraint.
type Theme struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:100;index" json:"title"`
}

func (t Theme) String() string {
	return t.Title
}
