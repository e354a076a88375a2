package bidengine

import (
	"github.com/tacware/travelagent/tactypes"
)

/*

Hotel auctions are ascending and must be chased: while the deficit is
positive the engine rebids the full deficit on every quote update at

	increment + (bid/ask)·multiplier + ask

clamped to the configured ceiling to bound the worst-case spend per night.
The bid/ask term is skipped when the ask is zero.

*/

func (e *Engine) hotelBid(quote tactypes.Quote) *tactypes.Bid {
	deficit := e.deficit(quote.Auction)
	if deficit <= 0 {
		e.markSatisfied(quote.Auction)
		return nil
	}

	ratio := 0.0
	if quote.AskPrice != 0 {
		ratio = quote.BidPrice / quote.AskPrice
	}

	price := e.config.Hotel.PriceIncrement + ratio*e.config.Hotel.BidAskMultiplier + quote.AskPrice
	if price > e.config.Hotel.PriceCeiling {
		price = e.config.Hotel.PriceCeiling
	}

	bid := tactypes.NewBid(quote.Auction, deficit, price)
	return &bid
}
