package loads

import (
	"testing"
	"time"

	"gesla-logistics-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

var slaNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func slaLoad(status models.LoadStatus, expected, actual *time.Time) models.Load {
	return models.Load{
		Status:               status,
		Active:               true,
		ExpectedDeliveryDate: expected,
		ActualDeliveryDate:   actual,
	}
}

func TestEvaluateSLANotApplicable(t *testing.T) {
	assert.Equal(t, SLANotApplicable, EvaluateSLA(slaLoad(models.StatusTransit, nil, nil), slaNow))

	expected := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cancelled := slaLoad(models.StatusCancelled, &expected, nil)
	assert.Equal(t, SLANotApplicable, EvaluateSLA(cancelled, slaNow))
}

func TestEvaluateSLAEndOfDayCutoff(t *testing.T) {
	expected := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)

	// Delivered late in the evening of the expected day: still on time.
	sameDayEvening := time.Date(2026, 3, 5, 23, 59, 59, 0, time.UTC)
	l := slaLoad(models.StatusCompleted, &expected, &sameDayEvening)
	assert.Equal(t, SLAOnTime, EvaluateSLA(l, slaNow))

	// First instant past midnight: late.
	pastMidnight := time.Date(2026, 3, 6, 0, 0, 0, 1000000, time.UTC)
	l = slaLoad(models.StatusCompleted, &expected, &pastMidnight)
	assert.Equal(t, SLALate, EvaluateSLA(l, slaNow))
}

func TestEvaluateSLAInFlight(t *testing.T) {
	// Expected day not yet over: pending.
	future := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, SLAPending, EvaluateSLA(slaLoad(models.StatusTransit, &future, nil), slaNow))

	sameDay := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, SLAPending, EvaluateSLA(slaLoad(models.StatusDispatched, &sameDay, nil), slaNow))

	// Overdue in flight: already late before completion.
	past := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, SLALate, EvaluateSLA(slaLoad(models.StatusDispatched, &past, nil), slaNow))
}

func TestEvaluateSLACompletedWithoutActualDate(t *testing.T) {
	expected := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	l := slaLoad(models.StatusCompleted, &expected, nil)
	assert.Equal(t, SLAPending, EvaluateSLA(l, slaNow))
}

func TestSLARate(t *testing.T) {
	expected := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	onTime := expected.Add(6 * time.Hour)
	lateArrival := expected.AddDate(0, 0, 3)

	loads := []models.Load{
		slaLoad(models.StatusCompleted, &expected, &onTime),
		slaLoad(models.StatusCompleted, &expected, &onTime),
		slaLoad(models.StatusCompleted, &expected, &lateArrival),
		slaLoad(models.StatusCompleted, &expected, &lateArrival),
		// Not applicable, excluded from the denominator.
		slaLoad(models.StatusTransit, nil, nil),
		slaLoad(models.StatusCancelled, &expected, nil),
	}

	assert.Equal(t, 50.0, SLARate(loads, slaNow))
}

func TestSLARateEmptySet(t *testing.T) {
	assert.Equal(t, 100.0, SLARate(nil, slaNow))
	assert.Equal(t, 100.0, SLARate([]models.Load{slaLoad(models.StatusTransit, nil, nil)}, slaNow))
}

func TestSLARateUnrounded(t *testing.T) {
	expected := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	onTime := expected.Add(time.Hour)
	lateArrival := expected.AddDate(0, 0, 1)

	loads := []models.Load{
		slaLoad(models.StatusCompleted, &expected, &onTime),
		slaLoad(models.StatusCompleted, &expected, &onTime),
		slaLoad(models.StatusCompleted, &expected, &lateArrival),
	}

	assert.InDelta(t, 66.666666, SLARate(loads, slaNow), 0.0001)
}
