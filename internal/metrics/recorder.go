package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/labworks/labextract/internal/layout"
	"github.com/labworks/labextract/internal/result"
	"github.com/labworks/labextract/internal/words"
)

// DefaultCapacity is the number of metrics kept when none is given.
const DefaultCapacity = 10000

// Recorder keeps the most recent metrics in memory.
type Recorder struct {
	mu       sync.RWMutex
	metrics  []Metric
	next     int
	full     bool
	capacity int
	now      func() time.Time
}

// NewRecorder creates a recorder that keeps the last capacity metrics.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{
		metrics:  make([]Metric, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// RecordOpts provides context for a metric recording.
type RecordOpts struct {
	RequestID string
	SampleID  string
	Operation string
	Rows      int
	Document  *result.Document // counts matched codes when set
	Start     time.Time
	Err       error
}

// Record stores one metric built from opts and returns it.
func (r *Recorder) Record(opts RecordOpts) Metric {
	now := r.now()
	m := Metric{
		ID:        uuid.New().String(),
		RequestID: opts.RequestID,
		SampleID:  opts.SampleID,
		Operation: opts.Operation,
		Rows:      opts.Rows,
		Success:   opts.Err == nil,
		ErrorType: errorType(opts.Err),
		CreatedAt: now,
	}
	if !opts.Start.IsZero() {
		m.TotalSeconds = now.Sub(opts.Start).Seconds()
	}
	if opts.Document != nil {
		for _, p := range opts.Document.Pairs {
			if p.Value != "" {
				m.Matched++
			}
		}
	}

	r.mu.Lock()
	r.metrics[r.next] = m
	r.next = (r.next + 1) % r.capacity
	if r.next == 0 {
		r.full = true
	}
	r.mu.Unlock()
	return m
}

// errorType classifies err into a short label.
func errorType(err error) string {
	if err == nil {
		return ""
	}
	var decodeErr *words.DecodeError
	var malformedErr *layout.MalformedIntermediateError
	switch {
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &malformedErr):
		return "malformed_rows"
	case errors.Is(err, result.ErrInvalidSampleID):
		return "invalid_seqn"
	default:
		return "internal"
	}
}

// snapshot returns stored metrics oldest first.
func (r *Recorder) snapshot() []Metric {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.full {
		out := make([]Metric, r.next)
		copy(out, r.metrics[:r.next])
		return out
	}
	out := make([]Metric, 0, r.capacity)
	out = append(out, r.metrics[r.next:]...)
	out = append(out, r.metrics[:r.next]...)
	return out
}
