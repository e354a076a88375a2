package bidengine

import (
	"math"

	"code.cloudfoundry.org/lager/v3"
	"github.com/tacware/travelagent/tactypes"
)

/*

Flight auctions post continuously drifting ask prices, so the policy is
time-phased price discipline:

	Cap the target at the hotel-feasibility bound for the flight's day
	    Compute the deficit; do nothing unless it is positive
	        Accept the current ask only if it is within the active phase's
	        fraction of the running maximum ask; the final phase accepts any
	        price rather than miss the flight entirely

*/

func (e *Engine) flightBid(quote tactypes.Quote) *tactypes.Bid {
	if e.deficit(quote.Auction) <= 0 {
		e.markSatisfied(quote.Auction)
		return nil
	}

	target := e.plan.Targets.Target(quote.Auction)
	if e.config.Flight.HotelFeasibilityGate {
		bound := e.flightFeasibilityBound(quote.Auction)
		if target > bound {
			target = bound
		}
	}

	deficit := target - e.holdings.Owned(quote.Auction)
	if deficit <= 0 {
		return nil
	}

	phase := e.config.Flight.ActivePhase(e.elapsed())
	if !phase.AcceptAny {
		_, maxAsk := e.tracker.CategoryRange(tactypes.CategoryFlight)
		ceiling := phase.MaxAskFraction * maxAsk
		if quote.AskPrice > ceiling {
			e.logger.Debug("flight-ask-above-ceiling", lager.Data{
				"auction": quote.Auction,
				"ask":     quote.AskPrice,
				"ceiling": ceiling,
			})
			return nil
		}
	}

	bid := tactypes.NewBid(quote.Auction, deficit, quote.AskPrice)
	return &bid
}

// flightFeasibilityBound is the largest number of complete, hotel-covered
// stays the flight's day can support: a client's stay counts only when every
// night of it has at least one owned hotel unit, and the bound is the
// thinnest night's cover among the supporting stays. Zero when no stay
// touching the day is covered.
func (e *Engine) flightFeasibilityBound(auction int) int {
	_, direction, flightDay, err := tactypes.Decompose(auction)
	if err != nil {
		return 0
	}

	var cover [tactypes.LastDay - tactypes.FirstDay]int
	for day := tactypes.FirstDay; day < tactypes.LastDay; day++ {
		cheap, _ := tactypes.AuctionFor(tactypes.CategoryHotel, tactypes.TypeCheapHotel, day)
		good, _ := tactypes.AuctionFor(tactypes.CategoryHotel, tactypes.TypeGoodHotel, day)
		cover[day-tactypes.FirstDay] = e.holdings.Owned(cheap) + e.holdings.Owned(good)
	}

	bound := 0
	found := false
	for _, pkg := range e.plan.Packages {
		if direction == tactypes.TypeInboundFlight && pkg.Arrival != flightDay {
			continue
		}
		if direction == tactypes.TypeOutboundFlight && pkg.Departure != flightDay {
			continue
		}

		stayBound := math.MaxInt
		supported := true
		for day := pkg.Arrival; day < pkg.Departure; day++ {
			nights := cover[day-tactypes.FirstDay]
			if nights == 0 {
				supported = false
				break
			}
			if nights < stayBound {
				stayBound = nights
			}
		}
		if !supported {
			continue
		}

		if !found || stayBound < bound {
			bound = stayBound
			found = true
		}
	}

	if !found {
		return 0
	}
	return bound
}
