package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/airplanes/internal/domain"
)

// MemoryAirplaneRepository keeps airplanes in process memory. It backs local runs without a database.
type MemoryAirplaneRepository struct {
	mu        sync.RWMutex
	airplanes map[int64]domain.Airplane
	now       func() time.Time
}

func NewMemoryAirplaneRepository() *MemoryAirplaneRepository {
	return &MemoryAirplaneRepository{
		airplanes: make(map[int64]domain.Airplane),
		now:       time.Now,
	}
}

func (r *MemoryAirplaneRepository) EnsureSchema(context.Context) error {
	return nil
}

func (r *MemoryAirplaneRepository) Create(_ context.Context, airplane *domain.Airplane, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.airplanes) >= limit {
		return domain.ErrLimitReached
	}
	if _, ok := r.airplanes[airplane.ID]; ok {
		return domain.ErrAlreadyExists
	}
	airplane.CreatedAt = r.now().UTC()
	r.airplanes[airplane.ID] = *airplane
	return nil
}

func (r *MemoryAirplaneRepository) List(context.Context) ([]domain.Airplane, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	airplanes := make([]domain.Airplane, 0, len(r.airplanes))
	for _, a := range r.airplanes {
		airplanes = append(airplanes, a)
	}
	sort.Slice(airplanes, func(i, j int) bool { return airplanes[i].ID < airplanes[j].ID })
	return airplanes, nil
}

func (r *MemoryAirplaneRepository) Count(context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.airplanes), nil
}

var _ AirplaneRepository = (*MemoryAirplaneRepository)(nil)
