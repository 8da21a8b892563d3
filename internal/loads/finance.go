// server/internal/loads/finance.go
package loads

import (
	"fmt"
	"sort"
	"time"

	"gesla-logistics-api-server/internal/models"
)

// GoodMarginThreshold is the unrounded margin above which the UI shows the
// "good margin" badge.
const GoodMarginThreshold = 15.0

// Financials is the per-load money derivation. Values are never rounded
// here; rounding happens only at display time.
type Financials struct {
	Revenue       float64 `json:"revenue"`
	TotalCost     float64 `json:"totalCost"`
	Profit        float64 `json:"profit"`
	MarginPercent float64 `json:"marginPercent"`
	AvgCostPerKg  float64 `json:"avgCostPerKg"`
}

func (f Financials) GoodMargin() bool {
	return f.MarginPercent > GoodMarginThreshold
}

// Compute derives the financials of one load. Records created before the
// financial sub-object existed fall back to the legacy root freightValue
// and a zero customerFreightValue.
func Compute(l models.Load) Financials {
	freight := l.FreightValue
	extras := 0.0
	revenue := 0.0
	if l.Financial != nil {
		if l.Financial.FreightValue != 0 {
			freight = l.Financial.FreightValue
		}
		extras = l.Financial.ExtraCosts
		revenue = l.Financial.CustomerFreightValue
	}

	f := Financials{
		Revenue:   revenue,
		TotalCost: freight + extras,
	}
	f.Profit = f.Revenue - f.TotalCost
	if f.Revenue > 0 {
		f.MarginPercent = f.Profit / f.Revenue * 100
	}
	if l.TotalWeight > 0 {
		f.AvgCostPerKg = f.TotalCost / l.TotalWeight
	}
	return f
}

// GroupTotals is one bucket of a collection-level aggregation.
type GroupTotals struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	Revenue    float64 `json:"revenue"`
	Cost       float64 `json:"cost"`
	Profit     float64 `json:"profit"`
	Late       int     `json:"late"`
	Evaluated  int     `json:"evaluated"`
	SLAPercent float64 `json:"slaPercent"`
}

// GroupKey extracts the bucket key for one load.
type GroupKey func(models.Load) string

func ByCarrier(l models.Load) string      { return l.Carrier }
func ByClientID(l models.Load) string     { return l.ClientID }
func ByShippingType(l models.Load) string { return string(l.ShippingType) }
func ByMonth(l models.Load) string        { return l.Date.Format("2006-01") }
func ByDay(l models.Load) string          { return l.Date.Format("2006-01-02") }

// Aggregate buckets the loads by key, summing revenue/cost/count and the
// per-group delay counts that yield an SLA percentage per group. Results
// come back sorted by key for stable output.
func Aggregate(loads []models.Load, now time.Time, key GroupKey) []GroupTotals {
	buckets := map[string]*GroupTotals{}
	for _, l := range loads {
		k := key(l)
		g, ok := buckets[k]
		if !ok {
			g = &GroupTotals{Key: k}
			buckets[k] = g
		}
		f := Compute(l)
		g.Count++
		g.Revenue += f.Revenue
		g.Cost += f.TotalCost
		g.Profit += f.Profit

		switch EvaluateSLA(l, now) {
		case SLANotApplicable:
		case SLALate:
			g.Late++
			g.Evaluated++
		default:
			g.Evaluated++
		}
	}

	groups := make([]GroupTotals, 0, len(buckets))
	for _, g := range buckets {
		if g.Evaluated == 0 {
			g.SLAPercent = 100
		} else {
			g.SLAPercent = float64(g.Evaluated-g.Late) / float64(g.Evaluated) * 100
		}
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

// TopByCost ranks groups by total cost descending and truncates to n.
func TopByCost(groups []GroupTotals, n int) []GroupTotals {
	ranked := make([]GroupTotals, len(groups))
	copy(ranked, groups)
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Cost > ranked[j].Cost })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Summary is the dashboard headline block.
type Summary struct {
	TotalLoads    int                       `json:"totalLoads"`
	ByStatus      map[models.LoadStatus]int `json:"byStatus"`
	Revenue       float64                   `json:"revenue"`
	Cost          float64                   `json:"cost"`
	Profit        float64                   `json:"profit"`
	MarginPercent float64                   `json:"marginPercent"`
	SLAPercent    float64                   `json:"slaPercent"`
	PendingFiscal int                       `json:"pendingFiscal"`
}

// Summarize computes the dashboard headline over a set of loads. The caller
// passes active loads only; soft-deleted records never reach aggregates.
func Summarize(loads []models.Load, now time.Time) Summary {
	s := Summary{ByStatus: map[models.LoadStatus]int{}}
	for _, l := range loads {
		f := Compute(l)
		s.TotalLoads++
		s.ByStatus[l.Status]++
		s.Revenue += f.Revenue
		s.Cost += f.TotalCost
		s.Profit += f.Profit
		if IsPendingFiscal(l) {
			s.PendingFiscal++
		}
	}
	if s.Revenue > 0 {
		s.MarginPercent = s.Profit / s.Revenue * 100
	}
	s.SLAPercent = SLARate(loads, now)
	return s
}

// FormatCurrency renders a value for display with two decimals. Used by the
// report exporter; JSON consumers round on their side.
func FormatCurrency(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
