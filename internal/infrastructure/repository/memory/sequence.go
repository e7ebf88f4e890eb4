package memory

import (
	"context"
	"sync/atomic"

	"github.com/mrops-br/product-ms/internal/domain"
)

// ProductSequence is a process-local domain.ProductSequence.
// Values do not survive a restart; use the gormdb sequence for durable ids.
type ProductSequence struct {
	next atomic.Int64
}

// NewProductSequence creates a sequence starting at domain.FirstProductSequence
func NewProductSequence() *ProductSequence {
	s := &ProductSequence{}
	s.next.Store(domain.FirstProductSequence)
	return s
}

// Next returns the current value and advances the sequence
func (s *ProductSequence) Next(_ context.Context) (int64, error) {
	return s.next.Add(1) - 1, nil
}
