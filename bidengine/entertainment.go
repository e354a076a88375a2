package bidengine

import (
	"github.com/tacware/travelagent/tactypes"
)

/*

Entertainment runs both sides of the market:

	Surplus (negative deficit) is offered at a price decaying linearly over
	game time from the type's maximum client valuation toward a floor tied
	to its mean valuation, never below the floor
	    A positive deficit is bid at a price rising from the type's minimum
	    client valuation toward its mean, capped so the total spend cannot
	    exceed the type's aggregate valuation

*/

func (e *Engine) entertainmentBid(quote tactypes.Quote) *tactypes.Bid {
	deficit := e.deficit(quote.Auction)
	if deficit == 0 {
		e.markSatisfied(quote.Auction)
		return nil
	}

	entertainmentType, err := tactypes.TypeOf(quote.Auction)
	if err != nil {
		return nil
	}
	demand := e.plan.Demand[entertainmentType]
	fraction := e.elapsedFraction()

	if deficit < 0 {
		floor := e.config.Entertainment.SellFloorFraction * demand.Mean
		price := demand.Max - fraction*(demand.Max-floor)
		if price < floor {
			price = floor
		}

		// deficit is negative: sell exactly the surplus
		bid := tactypes.NewBid(quote.Auction, deficit, price)
		return &bid
	}

	price := demand.Min + fraction*(demand.Mean-demand.Min)
	if price*float64(deficit) > demand.Total && demand.Total > 0 {
		price = demand.Total / float64(deficit)
	}

	bid := tactypes.NewBid(quote.Auction, deficit, price)
	return &bid
}
