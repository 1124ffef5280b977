package entity

import "time"

// DefaultExpiryMinutes is the payment window used when none is configured.
const DefaultExpiryMinutes = 15

// ComputeExpiresAt returns the deadline of a payment created at createdAt
// under a window of windowMinutes.
func ComputeExpiresAt(createdAt time.Time, windowMinutes int) time.Time {
	return createdAt.Add(time.Duration(windowMinutes) * time.Minute)
}

// ExpiryPolicy is the single source of the payment window. The read path and
// the expiry sweep must share one value so they never disagree on a deadline.
type ExpiryPolicy struct {
	WindowMinutes int
}

// NewExpiryPolicy returns a policy for windowMinutes, falling back to
// DefaultExpiryMinutes for non-positive values.
func NewExpiryPolicy(windowMinutes int) ExpiryPolicy {
	if windowMinutes <= 0 {
		windowMinutes = DefaultExpiryMinutes
	}
	return ExpiryPolicy{WindowMinutes: windowMinutes}
}

// ExpiresAt returns the deadline for a payment created at createdAt.
func (p ExpiryPolicy) ExpiresAt(createdAt time.Time) time.Time {
	return ComputeExpiresAt(createdAt, p.WindowMinutes)
}

// Threshold returns the creation time at or before which a pending payment
// is due for expiry at now.
func (p ExpiryPolicy) Threshold(now time.Time) time.Time {
	return now.Add(-time.Duration(p.WindowMinutes) * time.Minute)
}

// IsDue reports whether a payment created at createdAt has reached its
// deadline at now.
func (p ExpiryPolicy) IsDue(createdAt, now time.Time) bool {
	return !p.ExpiresAt(createdAt).After(now)
}

// Apply fills payment.ExpiresAt.
func (p ExpiryPolicy) Apply(payment *Payment) *Payment {
	if payment != nil {
		payment.ExpiresAt = p.ExpiresAt(payment.CreatedAt)
	}
	return payment
}
