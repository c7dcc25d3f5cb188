package models

import "fmt"

// PerformanceTier classifies a session score.
type PerformanceTier string

const (
	TierExcellent PerformanceTier = "excellent"
	TierGood      PerformanceTier = "good"
	TierRegular   PerformanceTier = "regular"
	TierWeak      PerformanceTier = "weak"
)

// Valid reports whether the tier is one of the four known values.
func (t PerformanceTier) Valid() bool {
	switch t {
	case TierExcellent, TierGood, TierRegular, TierWeak:
		return true
	}
	return false
}

// StudySession is one recorded practice-question attempt. Records are
// immutable once created; SubjectName is a snapshot taken at creation so
// later catalog edits never rewrite history.
type StudySession struct {
	ID           int64           `json:"id"`
	SubjectID    int             `json:"subjectId"`
	SubjectName  string          `json:"subjectName"`
	Topic        string          `json:"topic"`
	Correct      int             `json:"correct"`
	Total        int             `json:"total"`
	Percentage   int             `json:"percentage"`
	Date         Date            `json:"date"`
	Performance  PerformanceTier `json:"performance"`
	NextReview   Date            `json:"nextReview"`
	Observations string          `json:"observations"`
}

// Validate reports whether a persisted session record is well formed.
func (s StudySession) Validate() error {
	if s.ID <= 0 {
		return errFieldf("session id must be positive, got %d", s.ID)
	}
	if s.SubjectName == "" {
		return errFieldf("session %d has no subject name", s.ID)
	}
	if s.Topic == "" {
		return errFieldf("session %d has no topic", s.ID)
	}
	if s.Total < 1 {
		return errFieldf("session %d total must be at least 1, got %d", s.ID, s.Total)
	}
	if s.Correct < 0 || s.Correct > s.Total {
		return errFieldf("session %d correct %d out of range [0,%d]", s.ID, s.Correct, s.Total)
	}
	if s.Percentage < 0 || s.Percentage > 100 {
		return errFieldf("session %d percentage %d out of range", s.ID, s.Percentage)
	}
	if !s.Performance.Valid() {
		return errFieldf("session %d has unknown performance %q", s.ID, s.Performance)
	}
	if s.Date.IsZero() {
		return errFieldf("session %d has no date", s.ID)
	}
	if s.NextReview.IsZero() {
		return errFieldf("session %d has no next review date", s.ID)
	}
	return nil
}

func errFieldf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
