package pricetracker

import (
	"math"

	"github.com/tacware/travelagent/tactypes"
)

// History is the running price bookkeeping for one auction. MinAsk and
// MaxAsk start at +Inf/-Inf and only ever tighten. AskIncreaseRatio is
// current ask over previous ask; it is left untouched when the previous ask
// was zero.
type History struct {
	MinAsk           float64 `json:"min_ask"`
	MaxAsk           float64 `json:"max_ask"`
	LastAsk          float64 `json:"last_ask"`
	LastBid          float64 `json:"last_bid"`
	AskIncreaseRatio float64 `json:"ask_increase_ratio"`
	Updates          int     `json:"updates"`
}

// Tracker consumes quote updates and maintains per-auction histories plus a
// per-category running ask floor/ceiling. Pure bookkeeping: it never rejects
// input.
type Tracker struct {
	histories   [tactypes.NumAuctions]History
	categoryMin [3]float64
	categoryMax [3]float64
}

func New() *Tracker {
	t := &Tracker{}
	for i := range t.histories {
		t.histories[i].MinAsk = math.Inf(1)
		t.histories[i].MaxAsk = math.Inf(-1)
	}
	for i := range t.categoryMin {
		t.categoryMin[i] = math.Inf(1)
		t.categoryMax[i] = math.Inf(-1)
	}
	return t
}

func (t *Tracker) Record(quote tactypes.Quote) {
	category, err := tactypes.CategoryOf(quote.Auction)
	if err != nil {
		return
	}

	history := &t.histories[quote.Auction]

	if quote.AskPrice < history.MinAsk {
		history.MinAsk = quote.AskPrice
	}
	if quote.AskPrice > history.MaxAsk {
		history.MaxAsk = quote.AskPrice
	}
	if history.LastAsk != 0 {
		history.AskIncreaseRatio = quote.AskPrice / history.LastAsk
	}
	history.LastAsk = quote.AskPrice
	history.LastBid = quote.BidPrice
	history.Updates++

	if quote.AskPrice < t.categoryMin[category] {
		t.categoryMin[category] = quote.AskPrice
	}
	if quote.AskPrice > t.categoryMax[category] {
		t.categoryMax[category] = quote.AskPrice
	}
}

func (t *Tracker) History(auction int) History {
	if auction < 0 || auction >= tactypes.NumAuctions {
		return History{MinAsk: math.Inf(1), MaxAsk: math.Inf(-1)}
	}
	return t.histories[auction]
}

func (t *Tracker) Histories() []History {
	return append([]History{}, t.histories[:]...)
}

// CategoryRange returns the running ask floor and ceiling across every
// auction in the category.
func (t *Tracker) CategoryRange(category tactypes.Category) (float64, float64) {
	return t.categoryMin[category], t.categoryMax[category]
}
