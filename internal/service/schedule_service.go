package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/enare-prep-api/internal/dto"
	"github.com/noah-isme/enare-prep-api/internal/models"
)

// ScheduleService derives the review queue from recorded sessions.
type ScheduleService struct {
	sessions sessionReader
	logger   *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(sessions sessionReader, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{sessions: sessions, logger: logger}
}

// Queue emits one review item per recorded session, ranked against the
// reference date and sorted ascending by next-review date (stable for ties).
// A topic studied twice yields two independent entries; the queue never
// collapses repeats into a single slot.
func (s *ScheduleService) Queue(ctx context.Context, today models.Date) (*dto.ScheduleResponse, error) {
	sessions, err := s.sessions.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ReviewItem, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, dto.ReviewItem{
			SessionID:   session.ID,
			SubjectName: session.SubjectName,
			Topic:       session.Topic,
			LastStudied: session.Date,
			Percentage:  session.Percentage,
			NextReview:  session.NextReview,
			Status:      reviewStatus(session.NextReview, today),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].NextReview.Before(items[j].NextReview)
	})

	return &dto.ScheduleResponse{Date: today, Items: items}, nil
}

func reviewStatus(nextReview, today models.Date) dto.ReviewStatus {
	switch {
	case nextReview.Before(today):
		return dto.ReviewOverdue
	case nextReview.Equal(today):
		return dto.ReviewToday
	default:
		return dto.ReviewUpcoming
	}
}
