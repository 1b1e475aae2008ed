package models

// WorkSession is one tracked stretch of work, or a manual correction when Duration is negative
type WorkSession struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Start    int64  `gorm:"not null;index" json:"start"`       // unix seconds
	Duration int64  `gorm:"not null" json:"duration"`          // signed seconds
	Notes    string `gorm:"type:text;default:''" json:"notes"`
}

// TableName keeps the table name stable across renames of the Go type
func (WorkSession) TableName() string {
	return "worktime"
}

// WorkSessionInput holds the fields of a session before the store assigns an ID
type WorkSessionInput struct {
	Start    int64
	Duration int64
	Notes    string
}

// Input returns the session without its ID
func (s WorkSession) Input() WorkSessionInput {
	return WorkSessionInput{Start: s.Start, Duration: s.Duration, Notes: s.Notes}
}
