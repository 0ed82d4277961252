package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/plategate/apiserver/internal/events"
	"github.com/plategate/apiserver/types"
	"github.com/rs/zerolog"
)

const publishTimeout = 10 * time.Second

// EventPublisher is the subset of the broker API the services need.
// A nil publisher disables event fan-out.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// AccessRepository defines persistence operations for access events and
// unknown-plate sightings.
type AccessRepository interface {
	Create(ctx context.Context, event types.AccessEvent) (types.AccessEvent, error)
	List(ctx context.Context) ([]types.AccessEvent, error)
	CreateUnknown(ctx context.Context, sighting types.UnknownPlate) (types.UnknownPlate, error)
	ListUnknown(ctx context.Context) ([]types.UnknownPlate, error)
}

// AccessService encapsulates access-history use-cases.
type AccessService struct {
	repo      AccessRepository
	publisher EventPublisher
	logger    zerolog.Logger
}

func NewAccessService(repo AccessRepository, publisher EventPublisher, logger zerolog.Logger) *AccessService {
	return &AccessService{repo: repo, publisher: publisher, logger: logger}
}

func (s *AccessService) Add(ctx context.Context, event types.AccessEvent) (types.AccessEvent, error) {
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return types.AccessEvent{}, err
	}
	s.publish(events.AccessChannel, created)
	return created, nil
}

func (s *AccessService) List(ctx context.Context) ([]types.AccessEvent, error) {
	return s.repo.List(ctx)
}

func (s *AccessService) AddUnknown(ctx context.Context, sighting types.UnknownPlate) (types.UnknownPlate, error) {
	created, err := s.repo.CreateUnknown(ctx, sighting)
	if err != nil {
		return types.UnknownPlate{}, err
	}
	s.publish(events.UnknownPlateChannel, created)
	return created, nil
}

func (s *AccessService) ListUnknown(ctx context.Context) ([]types.UnknownPlate, error) {
	return s.repo.ListUnknown(ctx)
}

// publish fans the stored record out to the broker off the request path.
// Failures are logged and never surface to the caller.
func (s *AccessService) publish(channel string, record any) {
	if s.publisher == nil {
		return
	}
	data, err := json.Marshal(record)
	if err != nil {
		s.logger.Error().Err(err).Str("channel", channel).Msg("marshal event")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if _, err := s.publisher.Publish(ctx, channel, data, nil); err != nil {
			s.logger.Error().Err(err).Str("channel", channel).Msg("publish event")
		}
	}()
}
