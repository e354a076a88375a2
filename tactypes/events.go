package tactypes

import "time"

// Event is delivered by the host adapter through the agent's single dispatch
// entry point. The adapter translates wire messages into these types.
type Event interface {
	EventType() string
}

type GameStarted struct {
	GameID      int
	Preferences []ClientPreference
	GameLength  time.Duration
}

func (GameStarted) EventType() string { return "game-started" }

type QuoteUpdated struct {
	Quote Quote
}

func (QuoteUpdated) EventType() string { return "quote-updated" }

type BidOutcomeKind int

const (
	BidUpdated BidOutcomeKind = iota
	BidRejected
	BidErrored
)

func (k BidOutcomeKind) String() string {
	switch k {
	case BidUpdated:
		return "updated"
	case BidRejected:
		return "rejected"
	case BidErrored:
		return "errored"
	}
	return "unknown"
}

type BidOutcome struct {
	Auction int
	Kind    BidOutcomeKind
	Reason  string
}

func (BidOutcome) EventType() string { return "bid-outcome" }

type AuctionClosed struct {
	Auction int
}

func (AuctionClosed) EventType() string { return "auction-closed" }

type GameStopped struct {
	GameID int
}

func (GameStopped) EventType() string { return "game-stopped" }
