package airplanes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Domenick1991/airplanes/internal/domain"
	"github.com/Domenick1991/airplanes/internal/kafka"
	"github.com/Domenick1991/airplanes/internal/metrics"
	"github.com/Domenick1991/airplanes/internal/repository"
	"github.com/sirupsen/logrus"
)

const DefaultMaxAirplanes = 10

type AirplaneUseCase interface {
	Create(ctx context.Context, input CreateAirplaneInput) (*domain.Airplane, error)
	List(ctx context.Context) ([]domain.Airplane, error)
	Count(ctx context.Context) (int, error)
	MaxAirplanes() int
}

type Cache interface {
	GetAirplanes(ctx context.Context) ([]domain.Airplane, error)
	ListGeneration(ctx context.Context) (int64, error)
	// SetAirplanes must drop the list when the generation moved past gen.
	SetAirplanes(ctx context.Context, gen int64, airplanes []domain.Airplane) error
	InvalidateAirplanes(ctx context.Context) error
}

type Producer interface {
	PublishAirplaneEvent(ctx context.Context, topic string, event kafka.AirplaneEvent) error
}

// Recorder is the slice of *metrics.Metrics the service reports to.
type Recorder interface {
	AirplaneCreated()
	CreateRejected(reason string)
	ListCacheLookup(hit bool)
}

type CreateAirplaneInput struct {
	ID         int64 `json:"id"`
	Passengers int64 `json:"passengers"`
}

type AirplaneService struct {
	repo         repository.AirplaneRepository
	cache        Cache
	producer     Producer
	eventsTopic  string
	maxAirplanes int
	recorder     Recorder
	log          logrus.FieldLogger
	now          func() time.Time
}

type AirplaneServiceOption func(*AirplaneService)

func WithEventsTopic(topic string) AirplaneServiceOption {
	return func(s *AirplaneService) {
		s.eventsTopic = topic
	}
}

func WithMaxAirplanes(n int) AirplaneServiceOption {
	return func(s *AirplaneService) {
		if n > 0 {
			s.maxAirplanes = n
		}
	}
}

func WithRecorder(r Recorder) AirplaneServiceOption {
	return func(s *AirplaneService) {
		s.recorder = r
	}
}

func WithLogger(log logrus.FieldLogger) AirplaneServiceOption {
	return func(s *AirplaneService) {
		s.log = log
	}
}

func withClock(now func() time.Time) AirplaneServiceOption {
	return func(s *AirplaneService) {
		s.now = now
	}
}

// NewAirplaneService accepts nil cache and producer; both features are then skipped.
func NewAirplaneService(repo repository.AirplaneRepository, cache Cache, producer Producer, opts ...AirplaneServiceOption) *AirplaneService {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &AirplaneService{
		repo:         repo,
		cache:        cache,
		producer:     producer,
		maxAirplanes: DefaultMaxAirplanes,
		recorder:     nopRecorder{},
		log:          discard,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AirplaneService) MaxAirplanes() int {
	return s.maxAirplanes
}

func (s *AirplaneService) Create(ctx context.Context, input CreateAirplaneInput) (*domain.Airplane, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.recorder.CreateRejected(metrics.ReasonInternal)
		return nil, fmt.Errorf("count airplanes: %w", err)
	}
	if count >= s.maxAirplanes {
		s.log.Warnf("Attempted to create more than %d airplanes.", s.maxAirplanes)
		s.recorder.CreateRejected(metrics.ReasonLimit)
		return nil, domain.ErrLimitReached
	}

	if err := domain.ValidateAirplane(input.ID, input.Passengers); err != nil {
		s.log.WithFields(logrus.Fields{"id": input.ID, "passengers": input.Passengers}).Warn("invalid airplane received")
		s.recorder.CreateRejected(metrics.ReasonValidation)
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"id": input.ID, "passengers": input.Passengers}).Info("creating airplane")

	airplane := &domain.Airplane{ID: input.ID, Passengers: input.Passengers}
	if err := s.repo.Create(ctx, airplane, s.maxAirplanes); err != nil {
		switch {
		case errors.Is(err, domain.ErrLimitReached):
			s.recorder.CreateRejected(metrics.ReasonLimit)
			return nil, err
		case errors.Is(err, domain.ErrAlreadyExists):
			s.recorder.CreateRejected(metrics.ReasonDuplicate)
			return nil, domain.NewFieldError(domain.FieldID, domain.MsgDuplicateID)
		}
		s.recorder.CreateRejected(metrics.ReasonInternal)
		return nil, fmt.Errorf("create airplane %d: %w", input.ID, err)
	}
	s.recorder.AirplaneCreated()

	if s.cache != nil {
		if err := s.cache.InvalidateAirplanes(ctx); err != nil {
			s.log.WithError(err).Warn("failed to invalidate airplanes cache")
		}
	}
	if err := s.publish(ctx, kafka.EventAirplaneCreated, *airplane); err != nil {
		s.log.WithError(err).WithField("id", airplane.ID).Warn("failed to publish airplane_created event")
	}
	return airplane, nil
}

func (s *AirplaneService) List(ctx context.Context) ([]domain.Airplane, error) {
	if s.cache == nil {
		return s.repo.List(ctx)
	}

	cached, err := s.cache.GetAirplanes(ctx)
	if err != nil {
		s.log.WithError(err).Debug("airplanes cache read failed")
	}
	if err == nil && cached != nil {
		s.recorder.ListCacheLookup(true)
		return cached, nil
	}
	s.recorder.ListCacheLookup(false)

	// The generation is read before the repository so a create committed
	// after this point makes the snapshot below uncacheable.
	gen, genErr := s.cache.ListGeneration(ctx)
	if genErr != nil {
		s.log.WithError(genErr).Debug("airplanes cache generation read failed")
	}

	airplanes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		if err := s.cache.SetAirplanes(ctx, gen, airplanes); err != nil {
			s.log.WithError(err).Debug("airplanes cache write failed")
		}
	}
	return airplanes, nil
}

func (s *AirplaneService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *AirplaneService) publish(ctx context.Context, eventType string, airplane domain.Airplane) error {
	if s.producer == nil || s.eventsTopic == "" {
		return nil
	}
	return s.producer.PublishAirplaneEvent(ctx, s.eventsTopic, kafka.NewAirplaneEvent(eventType, airplane, s.now()))
}

type nopRecorder struct{}

func (nopRecorder) AirplaneCreated()      {}
func (nopRecorder) CreateRejected(string) {}
func (nopRecorder) ListCacheLookup(bool)  {}

var (
	_ AirplaneUseCase = (*AirplaneService)(nil)
	_ Recorder        = (*metrics.Metrics)(nil)
)
