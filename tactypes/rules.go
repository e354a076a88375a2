package tactypes

import "time"

const GameLength = 9 * time.Minute

// FlightPhase is one interval of the time-phased flight pricing policy. A
// phase is active from After until the next phase starts. MaxAskFraction
// bounds the acceptable ask as a fraction of the running maximum ask seen
// across flight auctions; AcceptAny overrides price discipline entirely.
type FlightPhase struct {
	After          time.Duration `json:"after"`
	MaxAskFraction float64       `json:"max_ask_fraction"`
	AcceptAny      bool          `json:"accept_any,omitempty"`
}

type FlightRules struct {
	Phases []FlightPhase `json:"phases"`

	// HotelFeasibilityGate caps flight purchases at the number of complete,
	// hotel-covered stays the flight day can support.
	HotelFeasibilityGate bool `json:"hotel_feasibility_gate"`
}

// ActivePhase returns the phase covering the given elapsed game time.
func (r FlightRules) ActivePhase(elapsed time.Duration) FlightPhase {
	active := r.Phases[0]
	for _, phase := range r.Phases {
		if elapsed >= phase.After {
			active = phase
		}
	}
	return active
}

var DefaultFlightRules = FlightRules{
	Phases: []FlightPhase{
		{After: 0, MaxAskFraction: 0.5},
		{After: 6 * time.Minute, MaxAskFraction: 2.0 / 3.0},
		{After: 8 * time.Minute, AcceptAny: true},
	},
	HotelFeasibilityGate: true,
}

// HotelRules parameterize the ascending-auction chase: the submitted price is
// PriceIncrement + (bid/ask)·BidAskMultiplier + ask, clamped to PriceCeiling.
type HotelRules struct {
	BidAskMultiplier float64 `json:"bid_ask_multiplier"`
	PriceIncrement   float64 `json:"price_increment"`
	PriceCeiling     float64 `json:"price_ceiling"`

	// OpeningPrice seeds the initial bid pass at game start, before any
	// hotel quote has arrived.
	OpeningPrice float64 `json:"opening_price"`
}

var DefaultHotelRules = HotelRules{
	BidAskMultiplier: 100,
	PriceIncrement:   70,
	PriceCeiling:     800,
	OpeningPrice:     200,
}

// EntertainmentRules parameterize the surplus-sale decay curve. The sale
// price decays linearly from the type's maximum client valuation toward
// SellFloorFraction of its mean valuation, and never below that floor.
type EntertainmentRules struct {
	SellFloorFraction float64 `json:"sell_floor_fraction"`
}

var DefaultEntertainmentRules = EntertainmentRules{
	SellFloorFraction: 0.5,
}
