// server/internal/loads/normalize.go
package loads

import (
	"fmt"

	"gesla-logistics-api-server/internal/models"
)

// NormalizeFinancial migrates a missing financial sub-object on write and
// keeps the legacy root freightValue mirrored. Records created before the
// sub-object existed only carry the root field.
func NormalizeFinancial(l *models.Load) {
	if l.Financial == nil {
		l.Financial = &models.LoadFinancial{
			FreightValue: l.FreightValue,
		}
	}
	if l.Financial.Currency == "" {
		l.Financial.Currency = "BRL"
	}
	if l.Financial.FreightValue == 0 && l.FreightValue != 0 {
		l.Financial.FreightValue = l.FreightValue
	}
	// Legacy mirror follows the sub-object.
	l.FreightValue = l.Financial.FreightValue
}

// NormalizeVehicle guarantees the vehicle sub-object exists.
func NormalizeVehicle(l *models.Load) {
	if l.Vehicle == nil {
		l.Vehicle = &models.LoadVehicle{}
	}
}

// SynthesizeDisplayFields fills the top-level client/destination fields
// from the delivery list. With more than one delivery the client name gets
// a count suffix and the destination comes from the first delivery; the
// load-level clientType is always the first delivery's.
func SynthesizeDisplayFields(l *models.Load) {
	if len(l.Deliveries) == 0 {
		return
	}
	first := l.Deliveries[0]

	l.Client = first.Client
	l.ClientID = first.ClientID
	l.ClientType = first.ClientType
	l.DestinationCity = first.DestinationCity
	l.DestinationUF = first.DestinationUF
	if n := len(l.Deliveries); n > 1 {
		l.Client = fmt.Sprintf("%s +%d", first.Client, n-1)
	}

	// Totals are derived from line items unless explicitly overridden.
	if l.TotalWeight == 0 || l.TotalVolume == 0 {
		weight, volume := 0.0, 0.0
		for _, d := range l.Deliveries {
			for _, it := range d.Items {
				weight += it.Weight
				volume += it.Volume
			}
		}
		if l.TotalWeight == 0 {
			l.TotalWeight = weight
		}
		if l.TotalVolume == 0 {
			l.TotalVolume = volume
		}
	}
}
