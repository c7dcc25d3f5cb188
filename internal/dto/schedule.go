package dto

import "github.com/noah-isme/enare-prep-api/internal/models"

// ReviewStatus ranks a queue entry against the reference date.
type ReviewStatus string

const (
	ReviewOverdue  ReviewStatus = "overdue"
	ReviewToday    ReviewStatus = "today"
	ReviewUpcoming ReviewStatus = "upcoming"
)

// ReviewItem is one scheduled review derived from a recorded session.
type ReviewItem struct {
	SessionID   int64        `json:"sessionId"`
	SubjectName string       `json:"subjectName"`
	Topic       string       `json:"topic"`
	LastStudied models.Date  `json:"lastStudied"`
	Percentage  int          `json:"percentage"`
	NextReview  models.Date  `json:"nextReview"`
	Status      ReviewStatus `json:"status"`
}

// ScheduleResponse is the review queue for a reference date.
type ScheduleResponse struct {
	Date  models.Date  `json:"date"`
	Items []ReviewItem `json:"items"`
}
