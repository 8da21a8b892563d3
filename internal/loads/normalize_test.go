package loads

import (
	"testing"

	"gesla-logistics-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFinancialMigratesLegacyRecord(t *testing.T) {
	l := models.Load{FreightValue: 6000}

	NormalizeFinancial(&l)

	require.NotNil(t, l.Financial)
	assert.Equal(t, 6000.0, l.Financial.FreightValue)
	assert.Equal(t, 0.0, l.Financial.CustomerFreightValue)
	assert.Equal(t, "BRL", l.Financial.Currency)
	assert.Equal(t, 6000.0, l.FreightValue)
}

func TestNormalizeFinancialMirrorsRoot(t *testing.T) {
	l := models.Load{
		FreightValue: 5000, // stale
		Financial:    &models.LoadFinancial{FreightValue: 7000, Currency: "BRL"},
	}

	NormalizeFinancial(&l)
	assert.Equal(t, 7000.0, l.FreightValue)
}

func TestSynthesizeSingleDelivery(t *testing.T) {
	l := models.Load{
		Deliveries: []models.Delivery{{
			ClientID:        "c1",
			Client:          "Acme",
			ClientType:      models.ClientContributor,
			DestinationCity: "Curitiba",
			DestinationUF:   "PR",
			Items: []models.DeliveryItem{
				{Weight: 400, Volume: 2},
				{Weight: 600, Volume: 3},
			},
		}},
	}

	SynthesizeDisplayFields(&l)

	assert.Equal(t, "Acme", l.Client)
	assert.Equal(t, "c1", l.ClientID)
	assert.Equal(t, "Curitiba", l.DestinationCity)
	assert.Equal(t, "PR", l.DestinationUF)
	assert.Equal(t, 1000.0, l.TotalWeight)
	assert.Equal(t, 5.0, l.TotalVolume)
}

func TestSynthesizeMultiDeliverySuffix(t *testing.T) {
	l := models.Load{
		Deliveries: []models.Delivery{
			{ClientID: "c1", Client: "Acme", ClientType: models.ClientNonContributor, Items: []models.DeliveryItem{{Weight: 100}}},
			{ClientID: "c2", Client: "Beta", Items: []models.DeliveryItem{{Weight: 200}}},
			{ClientID: "c3", Client: "Gama", Items: []models.DeliveryItem{{Weight: 300}}},
		},
	}

	SynthesizeDisplayFields(&l)

	assert.Equal(t, "Acme +2", l.Client)
	assert.Equal(t, "c1", l.ClientID)
	assert.Equal(t, models.ClientNonContributor, l.ClientType)
	assert.Equal(t, 600.0, l.TotalWeight)
}

func TestSynthesizeRespectsExplicitTotals(t *testing.T) {
	l := models.Load{
		TotalWeight: 2500,
		Deliveries: []models.Delivery{
			{Client: "Acme", Items: []models.DeliveryItem{{Weight: 100, Volume: 1}}},
		},
	}

	SynthesizeDisplayFields(&l)

	assert.Equal(t, 2500.0, l.TotalWeight)
	assert.Equal(t, 1.0, l.TotalVolume)
}
