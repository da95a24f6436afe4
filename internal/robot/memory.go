package robot

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"robotdemo/internal/models"
)

// MemoryRepository keeps robots in insertion order in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	order   []string
	byID    map[string]models.Robot
	latency time.Duration
	now     func() time.Time
	newID   func() string
}

type Option func(*MemoryRepository)

// WithLatency delays every operation by d to emulate a remote store.
func WithLatency(d time.Duration) Option {
	return func(r *MemoryRepository) { r.latency = d }
}

func WithClock(now func() time.Time) Option {
	return func(r *MemoryRepository) { r.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(r *MemoryRepository) { r.newID = gen }
}

func NewMemoryRepository(seed []models.Robot, opts ...Option) *MemoryRepository {
	r := &MemoryRepository{
		byID:  make(map[string]models.Robot, len(seed)),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(r)
	}
	for _, rb := range seed {
		if _, dup := r.byID[rb.ID]; dup {
			continue
		}
		r.order = append(r.order, rb.ID)
		r.byID[rb.ID] = rb
	}
	return r
}

func (r *MemoryRepository) wait(ctx context.Context) error {
	if r.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(r.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (r *MemoryRepository) snapshot() []models.Robot {
	out := make([]models.Robot, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.Robot, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(), nil
}

func (r *MemoryRepository) ListPaginated(ctx context.Context, page, perPage int) (Page, error) {
	if page < 1 || perPage < 1 {
		return Page{}, ErrInvalidPagination
	}
	if err := r.wait(ctx); err != nil {
		return Page{}, err
	}
	r.mu.RLock()
	all := r.snapshot()
	r.mu.RUnlock()

	start, end := pageBounds(len(all), page, perPage)
	return Page{
		Items:       all[start:end],
		Total:       len(all),
		TotalPages:  totalPages(len(all), perPage),
		CurrentPage: page,
	}, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Robot, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rb, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &rb, nil
}

func (r *MemoryRepository) Create(ctx context.Context, in CreateInput) (models.Robot, error) {
	if err := r.wait(ctx); err != nil {
		return models.Robot{}, err
	}
	status := in.Status
	if status == "" {
		status = models.StatusInactive
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.newID()
	for _, taken := r.byID[id]; taken; _, taken = r.byID[id] {
		id = r.newID()
	}
	now := r.now()
	rb := models.Robot{ID: id, Name: in.Name, Status: status, CreatedAt: now, UpdatedAt: now}
	r.order = append(r.order, id)
	r.byID[id] = rb
	return rb, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, in UpdateInput) (*models.Robot, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rb, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	if in.Name != nil {
		rb.Name = *in.Name
	}
	if in.Status != nil {
		rb.Status = *in.Status
	}
	if now := r.now(); now.After(rb.UpdatedAt) {
		rb.UpdatedAt = now
	}
	r.byID[id] = rb
	return &rb, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	if err := r.wait(ctx); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}
