package advisor

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"portfolioadvisor/internal/allocation"
)

// Operation is a user action against their latest recommendation, such as
// an investment into one instrument.
type Operation struct {
	Type       string                `json:"type"`
	Instrument allocation.Instrument `json:"instrument"`
	Amount     float64               `json:"amount"`
	Timestamp  time.Time             `json:"timestamp"`
}

func (o Operation) validate() (Operation, error) {
	o.Type = strings.ToLower(strings.TrimSpace(o.Type))
	if o.Type == "" {
		return o, fmt.Errorf("%w: operation type is required", allocation.ErrInvalidInput)
	}
	inst, err := allocation.ParseInstrument(string(o.Instrument))
	if err != nil {
		return o, err
	}
	o.Instrument = inst
	if math.IsNaN(o.Amount) || math.IsInf(o.Amount, 0) || o.Amount <= 0 {
		return o, fmt.Errorf("%w: operation amount must be positive, got %v", allocation.ErrInvalidInput, o.Amount)
	}
	return o, nil
}

// RecordOperation logs op against the user's latest recommendation. The
// portfolio is carried over unchanged into a new record that carries the
// operation; ErrNotFound is returned when the user has no recommendation yet.
func (s *Service) RecordOperation(ctx context.Context, userID string, op Operation) (*Record, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", allocation.ErrInvalidProfile)
	}
	op, err := op.validate()
	if err != nil {
		return nil, err
	}

	latest, err := s.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}

	rec := *latest
	rec.ID = s.newID()
	rec.CreatedAt = s.now().UTC()
	op.Timestamp = rec.CreatedAt
	rec.Operation = &op
	if err := s.log.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("saving operation: %w", err)
	}

	s.logger.Infow("portfolio operation recorded",
		"id", rec.ID,
		"user_id", userID,
		"operation", op.Type,
		"instrument", op.Instrument,
		"amount", op.Amount,
	)
	return &rec, nil
}
