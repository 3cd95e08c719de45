package brief

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IntakeRecord is what the intake log keeps about one submission. The brief
// body itself is never stored.
type IntakeRecord struct {
	ID              uuid.UUID
	Kind            Kind
	Email           string
	IPHash          string
	Stage           Stage
	EngagementModel EngagementModel
	BudgetRange     BudgetRange
	DispatchID      string
	Reason          string
	CreatedAt       time.Time
}

// Filter narrows a Query. Zero fields do not filter. Results are newest first.
type Filter struct {
	Email  string
	IPHash string
	Kind   Kind
	Since  time.Time
	Limit  int
}

func (f Filter) Match(r IntakeRecord) bool {
	switch {
	case f.Email != "" && r.Email != f.Email:
		return false
	case f.IPHash != "" && r.IPHash != f.IPHash:
		return false
	case f.Kind != "" && r.Kind != f.Kind:
		return false
	case !f.Since.IsZero() && r.CreatedAt.Before(f.Since):
		return false
	}
	return true
}

type Repository interface {
	Append(ctx context.Context, rec IntakeRecord) error
	Query(ctx context.Context, f Filter) ([]IntakeRecord, error)
}

// MemoryRepository is an in-process Repository.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []IntakeRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Append(ctx context.Context, rec IntakeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *MemoryRepository) Query(ctx context.Context, f Filter) ([]IntakeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []IntakeRecord
	for _, r := range slices.Backward(m.records) {
		if !f.Match(r) {
			continue
		}
		out = append(out, r)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}
