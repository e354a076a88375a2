package pricetracker_test

import (
	"math"

	"github.com/tacware/travelagent/pricetracker"
	"github.com/tacware/travelagent/tactypes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Tracker", func() {
	var tracker *pricetracker.Tracker

	BeforeEach(func() {
		tracker = pricetracker.New()
	})

	It("starts histories at +Inf/-Inf", func() {
		history := tracker.History(0)
		Ω(math.IsInf(history.MinAsk, 1)).Should(BeTrue())
		Ω(math.IsInf(history.MaxAsk, -1)).Should(BeTrue())
	})

	It("tracks last ask and bid per auction", func() {
		tracker.Record(tactypes.Quote{Auction: 8, AskPrice: 120, BidPrice: 90})
		tracker.Record(tactypes.Quote{Auction: 9, AskPrice: 300, BidPrice: 10})

		Ω(tracker.History(8).LastAsk).Should(Equal(120.0))
		Ω(tracker.History(8).LastBid).Should(Equal(90.0))
		Ω(tracker.History(9).LastAsk).Should(Equal(300.0))
	})

	It("monotonically tightens min and max ask", func() {
		asks := []float64{250, 180, 320, 200, 310}
		minSeen := math.Inf(1)
		maxSeen := math.Inf(-1)

		for _, ask := range asks {
			tracker.Record(tactypes.Quote{Auction: 0, AskPrice: ask})

			history := tracker.History(0)
			Ω(history.MinAsk).Should(BeNumerically("<=", minSeen))
			Ω(history.MaxAsk).Should(BeNumerically(">=", maxSeen))
			minSeen = history.MinAsk
			maxSeen = history.MaxAsk
		}

		Ω(tracker.History(0).MinAsk).Should(Equal(180.0))
		Ω(tracker.History(0).MaxAsk).Should(Equal(320.0))
	})

	Describe("ask increase ratio", func() {
		It("is the current ask over the previous ask", func() {
			tracker.Record(tactypes.Quote{Auction: 10, AskPrice: 100})
			tracker.Record(tactypes.Quote{Auction: 10, AskPrice: 150})

			Ω(tracker.History(10).AskIncreaseRatio).Should(Equal(1.5))
		})

		It("skips the update when the previous ask was zero", func() {
			tracker.Record(tactypes.Quote{Auction: 10, AskPrice: 0})
			tracker.Record(tactypes.Quote{Auction: 10, AskPrice: 150})

			Ω(tracker.History(10).AskIncreaseRatio).Should(BeZero())

			tracker.Record(tactypes.Quote{Auction: 10, AskPrice: 300})
			Ω(tracker.History(10).AskIncreaseRatio).Should(Equal(2.0))
		})
	})

	It("tracks a running floor and ceiling per category", func() {
		tracker.Record(tactypes.Quote{Auction: 0, AskPrice: 350})
		tracker.Record(tactypes.Quote{Auction: 3, AskPrice: 270})
		tracker.Record(tactypes.Quote{Auction: 5, AskPrice: 410})
		tracker.Record(tactypes.Quote{Auction: 8, AskPrice: 50})

		floor, ceiling := tracker.CategoryRange(tactypes.CategoryFlight)
		Ω(floor).Should(Equal(270.0))
		Ω(ceiling).Should(Equal(410.0))

		floor, ceiling = tracker.CategoryRange(tactypes.CategoryHotel)
		Ω(floor).Should(Equal(50.0))
		Ω(ceiling).Should(Equal(50.0))
	})

	It("ignores quotes for auctions outside the id space", func() {
		tracker.Record(tactypes.Quote{Auction: 99, AskPrice: 10})
		history := tracker.History(99)
		Ω(math.IsInf(history.MinAsk, 1)).Should(BeTrue())
	})
})
