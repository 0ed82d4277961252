package services

import (
	"context"
	"encoding/json"

	"github.com/plategate/apiserver/internal/events"
	"github.com/plategate/apiserver/types"
	"github.com/rs/zerolog"
)

// DetectionRepository defines persistence operations for detection batches.
type DetectionRepository interface {
	CreateBatch(ctx context.Context, detections []types.Detection) ([]types.Detection, error)
	List(ctx context.Context) ([]types.Detection, error)
}

// DetectionService encapsulates detection-history use-cases.
type DetectionService struct {
	repo      DetectionRepository
	publisher EventPublisher
	logger    zerolog.Logger
}

func NewDetectionService(repo DetectionRepository, publisher EventPublisher, logger zerolog.Logger) *DetectionService {
	return &DetectionService{repo: repo, publisher: publisher, logger: logger}
}

// AddBatch inserts the whole batch atomically. Field completeness is
// checked at the handler boundary before any element reaches here.
func (s *DetectionService) AddBatch(ctx context.Context, detections []types.Detection) ([]types.Detection, error) {
	created, err := s.repo.CreateBatch(ctx, detections)
	if err != nil {
		return nil, err
	}
	for _, detection := range created {
		s.publish(detection)
	}
	return created, nil
}

func (s *DetectionService) List(ctx context.Context) ([]types.Detection, error) {
	return s.repo.List(ctx)
}

func (s *DetectionService) publish(detection types.Detection) {
	if s.publisher == nil {
		return
	}
	data, err := json.Marshal(detection)
	if err != nil {
		s.logger.Error().Err(err).Msg("marshal detection event")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if _, err := s.publisher.Publish(ctx, events.DetectionChannel, data, nil); err != nil {
			s.logger.Error().Err(err).Msg("publish detection event")
		}
	}()
}
