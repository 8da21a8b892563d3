// server/internal/loads/sla.go
package loads

import (
	"time"

	"gesla-logistics-api-server/internal/models"
)

// SLAStatus classifies a load's delivery punctuality.
type SLAStatus string

const (
	SLAOnTime        SLAStatus = "ON_TIME"
	SLALate          SLAStatus = "LATE"
	SLAPending       SLAStatus = "PENDING"
	SLANotApplicable SLAStatus = "NOT_APPLICABLE"
)

// EvaluateSLA classifies one load against its expected delivery date.
// The whole expected day counts as on-time: the cutoff is 23:59:59 of
// the expected date, not midnight. Cancelled loads and loads without an
// expected date are not applicable and stay out of the rate denominator.
func EvaluateSLA(l models.Load, now time.Time) SLAStatus {
	if l.Status == models.StatusCancelled || l.ExpectedDeliveryDate == nil {
		return SLANotApplicable
	}
	cutoff := endOfDay(*l.ExpectedDeliveryDate)

	if l.Status == models.StatusCompleted {
		if l.ActualDeliveryDate == nil {
			return SLAPending
		}
		if l.ActualDeliveryDate.After(cutoff) {
			return SLALate
		}
		return SLAOnTime
	}

	// Still in flight: overdue once the expected day has fully passed.
	if now.After(cutoff) {
		return SLALate
	}
	return SLAPending
}

// SLARate is the aggregate on-time percentage over a set of loads,
// unrounded. An empty evaluated set is 100% by definition.
func SLARate(loads []models.Load, now time.Time) float64 {
	evaluated, late := 0, 0
	for _, l := range loads {
		switch EvaluateSLA(l, now) {
		case SLANotApplicable:
			continue
		case SLALate:
			late++
		}
		evaluated++
	}
	if evaluated == 0 {
		return 100
	}
	return float64(evaluated-late) / float64(evaluated) * 100
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}
