package bidengine

import (
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/tacware/travelagent/allocation"
	"github.com/tacware/travelagent/pricetracker"
	"github.com/tacware/travelagent/tactypes"
)

type Config struct {
	Flight        tactypes.FlightRules
	Hotel         tactypes.HotelRules
	Entertainment tactypes.EntertainmentRules
	GameLength    time.Duration
}

func DefaultConfig() Config {
	return Config{
		Flight:        tactypes.DefaultFlightRules,
		Hotel:         tactypes.DefaultHotelRules,
		Entertainment: tactypes.DefaultEntertainmentRules,
		GameLength:    tactypes.GameLength,
	}
}

// Engine turns quote updates into bid decisions. It is constructed once per
// game, after the allocation planner has produced its plan, and is driven
// from a single event-handling path: no internal locking, no blocking calls.
// Each quote update yields at most one replacement bid.
type Engine struct {
	logger    lager.Logger
	clk       clock.Clock
	gameStart time.Time
	config    Config

	plan      *allocation.Plan
	tracker   *pricetracker.Tracker
	holdings  tactypes.HoldingsClient
	submitter tactypes.BidSubmitter

	states [tactypes.NumAuctions]tactypes.AuctionState
}

func New(
	plan *allocation.Plan,
	tracker *pricetracker.Tracker,
	holdings tactypes.HoldingsClient,
	submitter tactypes.BidSubmitter,
	clk clock.Clock,
	config Config,
	logger lager.Logger,
) *Engine {
	return &Engine{
		logger:    logger.Session("bidengine"),
		clk:       clk,
		gameStart: clk.Now(),
		config:    config,
		plan:      plan,
		tracker:   tracker,
		holdings:  holdings,
		submitter: submitter,
	}
}

// InitialBids seeds an opening bid on every hotel auction with a positive
// deficit. Flights and entertainment wait for their first quote.
func (e *Engine) InitialBids() {
	for auction := 0; auction < tactypes.NumAuctions; auction++ {
		category, err := tactypes.CategoryOf(auction)
		if err != nil || category != tactypes.CategoryHotel {
			continue
		}

		deficit := e.plan.Targets.Target(auction) - e.holdings.Owned(auction)
		if deficit <= 0 {
			continue
		}

		e.submit(tactypes.NewBid(auction, deficit, e.config.Hotel.OpeningPrice))
	}
}

// HandleQuote evaluates one quote update, records it, and submits at most
// one replacement bid for the quoted auction.
func (e *Engine) HandleQuote(quote tactypes.Quote) {
	category, err := tactypes.CategoryOf(quote.Auction)
	if err != nil {
		e.logger.Error("unknown-auction", err, lager.Data{"auction": quote.Auction})
		return
	}

	if e.states[quote.Auction] == tactypes.StateClosed {
		return
	}
	if quote.Closed {
		e.MarkClosed(quote.Auction)
		return
	}

	e.tracker.Record(quote)

	var bid *tactypes.Bid
	switch category {
	case tactypes.CategoryFlight:
		bid = e.flightBid(quote)
	case tactypes.CategoryHotel:
		bid = e.hotelBid(quote)
	case tactypes.CategoryEntertainment:
		bid = e.entertainmentBid(quote)
	}

	if bid != nil {
		e.submit(*bid)
	}
}

// MarkClosed transitions the auction to its terminal state; any remaining
// deficit is simply unmet.
func (e *Engine) MarkClosed(auction int) {
	if auction < 0 || auction >= tactypes.NumAuctions {
		return
	}
	if e.states[auction] == tactypes.StateClosed {
		return
	}

	e.states[auction] = tactypes.StateClosed
	deficit := e.plan.Targets.Target(auction) - e.holdings.Owned(auction)
	if deficit > 0 {
		e.logger.Info("closed-with-deficit", lager.Data{"auction": auction, "deficit": deficit})
	}
}

func (e *Engine) State(auction int) tactypes.AuctionState {
	if auction < 0 || auction >= tactypes.NumAuctions {
		return tactypes.StateClosed
	}
	return e.states[auction]
}

func (e *Engine) States() []tactypes.AuctionState {
	return append([]tactypes.AuctionState{}, e.states[:]...)
}

func (e *Engine) submit(bid tactypes.Bid) {
	err := e.submitter.SubmitBid(bid)
	if err != nil {
		// Not retried here; the next quote update re-evaluates fresh.
		e.logger.Error("submit-failed", err, lager.Data{"auction": bid.Auction})
		return
	}

	e.states[bid.Auction] = tactypes.StatePendingBid
	e.logger.Debug("submitted", lager.Data{"auction": bid.Auction, "points": bid.Points})
}

func (e *Engine) markSatisfied(auction int) {
	if e.states[auction] != tactypes.StateClosed {
		e.states[auction] = tactypes.StateSatisfied
	}
}

func (e *Engine) deficit(auction int) int {
	return e.plan.Targets.Target(auction) - e.holdings.Owned(auction)
}

func (e *Engine) elapsed() time.Duration {
	return e.clk.Since(e.gameStart)
}

// elapsedFraction is game progress in [0, 1].
func (e *Engine) elapsedFraction() float64 {
	if e.config.GameLength <= 0 {
		return 1
	}
	fraction := float64(e.elapsed()) / float64(e.config.GameLength)
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}
