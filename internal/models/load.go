// server/internal/models/load.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoadStatus is the lifecycle state of a load. Forward progression is
// TRANSIT -> ARRIVED -> IDENTIFIED -> BILLED -> DISPATCHED -> COMPLETED,
// but the engine does not forbid jumps: any state is reachable from any
// other by explicit user action. CANCELLED is reachable at any point.
type LoadStatus string

const (
	StatusTransit    LoadStatus = "TRANSIT"
	StatusArrived    LoadStatus = "ARRIVED"
	StatusIdentified LoadStatus = "IDENTIFIED"
	StatusBilled     LoadStatus = "BILLED"
	StatusDispatched LoadStatus = "DISPATCHED"
	StatusCompleted  LoadStatus = "COMPLETED"
	StatusCancelled  LoadStatus = "CANCELLED"
)

// IsArchived reports whether the status belongs in the archive view.
func (s LoadStatus) IsArchived() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ShippingType indicates who bears the freight cost.
type ShippingType string

const (
	ShippingCIF ShippingType = "CIF"
	ShippingFOB ShippingType = "FOB"
)

// ClientType drives the DIFAL obligation check.
type ClientType string

const (
	ClientContributor    ClientType = "CONTRIBUTOR"
	ClientNonContributor ClientType = "NON_CONTRIBUTOR"
)

// LoadFinancial groups the money fields of a load. Records created before
// this sub-object existed may lack it entirely; the engine defaults the
// missing fields on read instead of failing.
type LoadFinancial struct {
	FreightValue         float64 `bson:"freightValue" json:"freightValue"`                 // paid to the carrier/driver
	CustomerFreightValue float64 `bson:"customerFreightValue" json:"customerFreightValue"` // billed to the client (revenue)
	ExtraCosts           float64 `bson:"extraCosts" json:"extraCosts"`
	InvoiceValue         float64 `bson:"invoiceValue" json:"invoiceValue"` // declared goods value, for insurance
	Currency             string  `bson:"currency" json:"currency"`
}

// LoadVehicle carries the vehicle/driver assignment of a load.
type LoadVehicle struct {
	Plate       string `bson:"plate" json:"plate"`
	Model       string `bson:"model" json:"model"`
	DriverName  string `bson:"driverName" json:"driverName"`
	DriverPhone string `bson:"driverPhone" json:"driverPhone"`
}

// DeliveryItem is one line item inside a delivery point.
type DeliveryItem struct {
	MaterialID  string  `bson:"materialID,omitempty" json:"materialID"`
	Description string  `bson:"description" json:"description"`
	Quantity    float64 `bson:"quantity" json:"quantity"`
	Unit        string  `bson:"unit" json:"unit"` // e.g. "kg", "un", "pallet"
	Weight      float64 `bson:"weight" json:"weight"`
	Volume      float64 `bson:"volume" json:"volume"`
	UnitValue   float64 `bson:"unitValue" json:"unitValue"`
}

// Delivery is one destination within a load. A load has 1..N of these.
type Delivery struct {
	ClientID        string         `bson:"clientID" json:"clientID"`
	Client          string         `bson:"client" json:"client"` // denormalized display name
	ClientType      ClientType     `bson:"clientType" json:"clientType"`
	Address         string         `bson:"address" json:"address"`
	DestinationCity string         `bson:"destinationCity" json:"destinationCity"`
	DestinationUF   string         `bson:"destinationUF" json:"destinationUF"`
	Items           []DeliveryItem `bson:"items" json:"items"`
}

// HistoryEvent is one entry of the append-only status history.
type HistoryEvent struct {
	Status    LoadStatus `bson:"status" json:"status"`
	Timestamp time.Time  `bson:"timestamp" json:"timestamp"`
	UserID    string     `bson:"userId" json:"userId"`
	Notes     string     `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Load is the central entity: one shipment tracked from creation through
// transit, billing, dispatch and delivery.
type Load struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	LoadID   string             `bson:"loadID" json:"loadID"`     // opaque, immutable
	PortCode string             `bson:"portCode" json:"portCode"` // human-readable, e.g. "GSL-26-042"

	Status       LoadStatus   `bson:"status" json:"status"`
	ShippingType ShippingType `bson:"shippingType" json:"shippingType"`
	ClientType   ClientType   `bson:"clientType" json:"clientType"`
	MovementType string       `bson:"movementType" json:"movementType"`

	ClientID        string `bson:"clientID" json:"clientID"`
	Client          string `bson:"client" json:"client"`
	CarrierID       string `bson:"carrierID" json:"carrierID"`
	Carrier         string `bson:"carrier" json:"carrier"`
	DestinationCity string `bson:"destinationCity" json:"destinationCity"`
	DestinationUF   string `bson:"destinationUF" json:"destinationUF"`

	Deliveries []Delivery     `bson:"deliveries" json:"deliveries"`
	Financial  *LoadFinancial `bson:"financial,omitempty" json:"financial,omitempty"`
	Vehicle    *LoadVehicle   `bson:"vehicle,omitempty" json:"vehicle,omitempty"`

	// Legacy mirror of Financial.FreightValue, kept in sync for records
	// and consumers that predate the financial sub-object.
	FreightValue float64 `bson:"freightValue" json:"freightValue"`

	HasDifal      bool   `bson:"hasDifal" json:"hasDifal"`
	DifalGuide    string `bson:"difalGuide" json:"difalGuide"`       // attached document name, "" when missing
	PaymentProof  string `bson:"paymentProof" json:"paymentProof"`   // attached document name, "" when missing
	DeliveryProof string `bson:"deliveryProof" json:"deliveryProof"` // proof of delivery document name

	Date                 time.Time  `bson:"date" json:"date"` // issue timestamp
	ExpectedDeliveryDate *time.Time `bson:"expectedDeliveryDate,omitempty" json:"expectedDeliveryDate,omitempty"`
	ActualDeliveryDate   *time.Time `bson:"actualDeliveryDate,omitempty" json:"actualDeliveryDate,omitempty"`

	TotalWeight float64 `bson:"totalWeight" json:"totalWeight"`
	TotalVolume float64 `bson:"totalVolume" json:"totalVolume"`

	History   []HistoryEvent `bson:"history" json:"history"`
	Active    bool           `bson:"active" json:"active"`
	CreatedBy string         `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}
