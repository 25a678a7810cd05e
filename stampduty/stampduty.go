// Package stampduty is the single source of truth for stamp-duty
// computation. Every flow that prices a stamp (wizard quote, order
// creation, admin tooling) goes through Compute.
package stampduty

import "math"

// Document types with a dedicated duty rate.
const (
	SaleDeed        = "sale_deed"
	LeaseDeed       = "lease_deed"
	GiftDeed        = "gift_deed"
	PowerOfAttorney = "power_of_attorney"
)

// DoorDeliveryFee is the flat surcharge for physical (door) delivery,
// in rupees. Digital delivery carries no surcharge.
const DoorDeliveryFee int64 = 50

const defaultRate = 0.02

var rates = map[string]float64{
	SaleDeed:        0.05,
	LeaseDeed:       0.02,
	GiftDeed:        0.03,
	PowerOfAttorney: 0.001,
}

// RateFor returns the duty rate for a document type. Unrecognized
// types fall back to the default rate.
func RateFor(documentType string) float64 {
	if r, ok := rates[documentType]; ok {
		return r
	}
	return defaultRate
}

// Breakdown is the result of a duty computation.
type Breakdown struct {
	StampAmount int64 `json:"stampAmount"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`
}

// Compute prices a stamp: duty rounded to the nearest rupee, plus the
// flat door-delivery surcharge when applicable.
func Compute(documentType string, transactionValue int64, deliveryType string) Breakdown {
	stamp := int64(math.Round(float64(transactionValue) * RateFor(documentType)))

	var delivery int64
	if IsDoorDelivery(deliveryType) {
		delivery = DoorDeliveryFee
	}

	return Breakdown{
		StampAmount: stamp,
		DeliveryFee: delivery,
		Total:       stamp + delivery,
	}
}

// IsDoorDelivery reports whether a delivery type means physical
// delivery. Historical clients sent "physical"; current ones send
// "door".
func IsDoorDelivery(deliveryType string) bool {
	return deliveryType == "door" || deliveryType == "physical"
}
