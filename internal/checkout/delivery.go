package checkout

import (
	"strings"
	"time"
)

type Method string

const (
	MethodPickup   Method = "PICKUP"
	MethodDelivery Method = "DELIVERY"
)

type Timing string

const (
	TimingImmediate Timing = "IMMEDIATE"
	TimingScheduled Timing = "SCHEDULED"
)

// DeliverySelection captures how and when the order should be fulfilled.
// Address is required only for delivery; ScheduledAt only for scheduled
// timing.
type DeliverySelection struct {
	Method      Method    `json:"method"`
	Timing      Timing    `json:"timing"`
	ScheduledAt time.Time `json:"scheduled_at,omitempty"`
	Address     string    `json:"address,omitempty"`
}

// Validate checks the selection against the supplied now. A scheduled time
// must be strictly in the future; the schedule picker on the client does
// not enforce this, so the core does.
func (d DeliverySelection) Validate(now time.Time) error {
	if d.Method == MethodDelivery && strings.TrimSpace(d.Address) == "" {
		return ErrMissingAddress
	}
	if d.Timing == TimingScheduled && !d.ScheduledAt.After(now) {
		return ErrInvalidSchedule
	}
	return nil
}
