package tactypes

import "errors"

var ErrAuctionClosed = errors.New("auction is closed")

// ClientPreference is one client's immutable preference set, supplied once
// per game. Days are in [FirstDay, LastDay]; values are utility scores.
type ClientPreference struct {
	Arrival             int    `json:"arrival"`
	Departure           int    `json:"departure"`
	HotelValue          int    `json:"hotel_value"`
	EntertainmentValues [3]int `json:"entertainment_values"`
}

// Quote is the full market picture for one auction. Quotes are replaced
// wholesale on every update; nothing merges partial quotes.
type Quote struct {
	Auction  int     `json:"auction"`
	AskPrice float64 `json:"ask_price"`
	BidPrice float64 `json:"bid_price"`
	Closed   bool    `json:"closed"`

	// HotelQueueWait is the server's contention hint; hotel auctions only.
	HotelQueueWait int `json:"hqw,omitempty"`
}

// BidPoint is one (quantity, unit price) entry in a bid. Negative quantity
// offers to sell.
type BidPoint struct {
	Quantity int     `json:"q"`
	Price    float64 `json:"p"`
}

// Bid is an atomically submitted set of bid points for a single auction. A
// submitted bid replaces any previously active bid on the same auction.
type Bid struct {
	Auction int        `json:"auction"`
	Points  []BidPoint `json:"points"`
}

func NewBid(auction int, quantity int, price float64) Bid {
	return Bid{
		Auction: auction,
		Points:  []BidPoint{{Quantity: quantity, Price: price}},
	}
}

// TargetHoldings maps auction id to desired quantity. Built once by the
// allocation planner, additively, and read-only thereafter. Never negative.
type TargetHoldings [NumAuctions]int

func (t *TargetHoldings) Add(auction int, quantity int) {
	t[auction] += quantity
}

func (t *TargetHoldings) Target(auction int) int {
	return t[auction]
}

// AuctionState is the per-auction bidding lifecycle.
type AuctionState int

const (
	StateNoPosition AuctionState = iota
	StatePendingBid
	StateSatisfied
	StateClosed
)

func (s AuctionState) String() string {
	switch s {
	case StateNoPosition:
		return "no-position"
	case StatePendingBid:
		return "pending-bid"
	case StateSatisfied:
		return "satisfied"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// HoldingsClient reads the quantities the agent currently owns. The auction
// server updates ownership out of band; the core never writes it.
type HoldingsClient interface {
	Owned(auction int) int
}

// BidSubmitter accepts bids fire-and-forget. Outcomes arrive asynchronously
// as BidOutcome events.
type BidSubmitter interface {
	SubmitBid(bid Bid) error
}
