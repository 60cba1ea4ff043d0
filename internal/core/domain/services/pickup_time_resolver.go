package services

import (
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

const (
	DefaultPickupLead     = 15 * time.Minute
	DefaultPickupMaxAhead = 48 * time.Hour
)

// PickupTimeResolver fills in a missing pick-up start and checks that a
// supplied one lies in [now, now+maxAhead].
type PickupTimeResolver struct {
	lead     time.Duration
	maxAhead time.Duration
}

// NewPickupTimeResolver falls back to DefaultPickupLead and
// DefaultPickupMaxAhead for non-positive durations.
func NewPickupTimeResolver(lead, maxAhead time.Duration) PickupTimeResolver {
	if lead <= 0 {
		lead = DefaultPickupLead
	}
	if maxAhead <= 0 {
		maxAhead = DefaultPickupMaxAhead
	}
	return PickupTimeResolver{lead: lead, maxAhead: maxAhead}
}

// Resolve sets the package's pick-up window. Without a start, the start
// becomes now+lead truncated to the minute.
func (r PickupTimeResolver) Resolve(p *order.Package, now time.Time) error {
	start := p.PickUpStart()
	if start == nil {
		p.SetPickupWindow(now.Add(r.lead).Truncate(time.Minute))
		return nil
	}
	if err := r.Check(*start, now); err != nil {
		return err
	}
	p.SetPickupWindow(*start)
	return nil
}

// Check validates an explicit start without touching any package.
func (r PickupTimeResolver) Check(start, now time.Time) error {
	latest := now.Add(r.maxAhead)
	if start.Before(now) || start.After(latest) {
		return errs.NewValueIsOutOfRangeError("pickUpStart", start.UTC(), now.UTC(), latest.UTC())
	}
	return nil
}
