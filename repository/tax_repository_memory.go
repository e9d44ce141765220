package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"income-tax/domain"
)

// DefaultHistorySize bounds the in-memory history.
const DefaultHistorySize = 1000

// TaxRepositoryMemory is an in-memory implementation of TaxRepository. Once
// full, the oldest calculation is dropped.
type TaxRepositoryMemory struct {
	mu      sync.RWMutex
	data    []domain.Calculation
	maxSize int
	now     func() time.Time
}

// NewTaxRepositoryMemory creates a new in-memory history of at most maxSize
// entries; maxSize <= 0 uses DefaultHistorySize.
func NewTaxRepositoryMemory(maxSize int) *TaxRepositoryMemory {
	if maxSize <= 0 {
		maxSize = DefaultHistorySize
	}
	return &TaxRepositoryMemory{
		data:    []domain.Calculation{},
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Save stores the calculation in memory.
func (r *TaxRepositoryMemory) Save(
	_ context.Context,
	input domain.TaxInput,
	result domain.TaxResult,
) (domain.Calculation, error) {
	calc := domain.Calculation{
		ID:        uuid.NewString(),
		Input:     input,
		Result:    result,
		CreatedAt: r.now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, calc)
	if len(r.data) > r.maxSize {
		r.data = r.data[len(r.data)-r.maxSize:]
	}
	return calc, nil
}

// List returns up to limit calculations, most recent first. limit <= 0
// returns everything.
func (r *TaxRepositoryMemory) List(_ context.Context, limit int) ([]domain.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.data)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.Calculation, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}
