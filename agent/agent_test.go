package agent_test

import (
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"code.cloudfoundry.org/lager/v3/lagertest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"

	"github.com/tacware/travelagent/agent"
	"github.com/tacware/travelagent/bidengine"
	"github.com/tacware/travelagent/tactypes"
	"github.com/tacware/travelagent/tactypes/fakes"
)

var _ = Describe("Agent", func() {
	var (
		logger    *lagertest.TestLogger
		clk       *fakeclock.FakeClock
		holdings  *fakes.FakeHoldingsClient
		submitter *fakes.FakeBidSubmitter
		theAgent  *agent.Agent

		preferences []tactypes.ClientPreference
	)

	BeforeEach(func() {
		logger = lagertest.NewTestLogger("test")
		clk = fakeclock.NewFakeClock(time.Now())
		holdings = fakes.NewFakeHoldingsClient()
		submitter = fakes.NewFakeBidSubmitter()
		theAgent = agent.New(holdings, submitter, clk, bidengine.DefaultConfig(), logger)

		preferences = make([]tactypes.ClientPreference, tactypes.NumClients)
		for i := range preferences {
			preferences[i] = tactypes.ClientPreference{
				Arrival:             1,
				Departure:           2,
				HotelValue:          60,
				EntertainmentValues: [3]int{100, 50, 20},
			}
		}
	})

	startGame := func() {
		theAgent.Dispatch(tactypes.GameStarted{
			GameID:      17,
			Preferences: preferences,
			GameLength:  tactypes.GameLength,
		})
	}

	Describe("game start", func() {
		It("plans and seeds the initial hotel bids", func() {
			startGame()

			bids := submitter.Bids()
			Ω(bids).ShouldNot(BeEmpty())
			for _, bid := range bids {
				category, err := tactypes.CategoryOf(bid.Auction)
				Ω(err).ShouldNot(HaveOccurred())
				Ω(category).Should(Equal(tactypes.CategoryHotel))
			}

			snapshot := theAgent.Snapshot()
			Ω(snapshot.Started).Should(BeTrue())
			Ω(snapshot.GameID).Should(Equal(17))
			Ω(snapshot.Targets[0]).Should(Equal(tactypes.NumClients), "everyone flies in on day 1")
		})

		It("ignores a duplicate game start", func() {
			startGame()
			firstTargets := theAgent.Snapshot().Targets

			startGame()
			Ω(theAgent.Snapshot().Targets).Should(Equal(firstTargets))
		})

		It("survives invalid preferences without starting", func() {
			theAgent.Dispatch(tactypes.GameStarted{GameID: 17, Preferences: nil})

			Ω(theAgent.Snapshot().Started).Should(BeFalse())
			Ω(logger).Should(gbytes.Say("planning-failed"))
		})
	})

	Describe("event ordering", func() {
		It("ignores quote updates before the game starts", func() {
			theAgent.Dispatch(tactypes.QuoteUpdated{Quote: tactypes.Quote{Auction: 8, AskPrice: 100}})
			Ω(submitter.Bids()).Should(BeEmpty())
		})

		It("drives the bidding engine once started", func() {
			startGame()
			submitter.Reset()

			// every client is at the threshold, so day 1 of the good hotel
			// carries the whole target
			goodHotel, err := tactypes.AuctionFor(tactypes.CategoryHotel, tactypes.TypeGoodHotel, 1)
			Ω(err).ShouldNot(HaveOccurred())
			theAgent.Dispatch(tactypes.QuoteUpdated{Quote: tactypes.Quote{Auction: goodHotel, AskPrice: 100, BidPrice: 50}})

			bid, ok := submitter.LastBid()
			Ω(ok).Should(BeTrue())
			Ω(bid.Auction).Should(Equal(goodHotel))
		})

		It("stops acting after the game stops", func() {
			startGame()
			theAgent.Dispatch(tactypes.GameStopped{GameID: 17})
			submitter.Reset()

			theAgent.Dispatch(tactypes.QuoteUpdated{Quote: tactypes.Quote{Auction: 12, AskPrice: 100, BidPrice: 50}})
			Ω(submitter.Bids()).Should(BeEmpty())
		})
	})

	Describe("auction closing", func() {
		It("marks the auction closed and ignores later quotes for it", func() {
			startGame()
			submitter.Reset()

			theAgent.Dispatch(tactypes.AuctionClosed{Auction: 12})
			theAgent.Dispatch(tactypes.QuoteUpdated{Quote: tactypes.Quote{Auction: 12, AskPrice: 100, BidPrice: 50}})

			Ω(submitter.Bids()).Should(BeEmpty())
			Ω(theAgent.Snapshot().States[12]).Should(Equal("closed"))
		})
	})

	Describe("bid outcomes", func() {
		It("records them for observability without retrying", func() {
			startGame()
			submitter.Reset()

			theAgent.Dispatch(tactypes.BidOutcome{Auction: 8, Kind: tactypes.BidRejected, Reason: "price below ask"})
			theAgent.Dispatch(tactypes.BidOutcome{Auction: 8, Kind: tactypes.BidErrored, Reason: "malformed"})
			theAgent.Dispatch(tactypes.BidOutcome{Auction: 8, Kind: tactypes.BidUpdated})

			Ω(submitter.Bids()).Should(BeEmpty())
			snapshot := theAgent.Snapshot()
			Ω(snapshot.BidOutcomes["rejected"]).Should(Equal(1))
			Ω(snapshot.BidOutcomes["errored"]).Should(Equal(1))
			Ω(snapshot.BidOutcomes["updated"]).Should(Equal(1))
		})
	})

	Describe("fault containment", func() {
		It("contains a panic inside an event handler", func() {
			theAgent = agent.New(holdings, panickySubmitter{}, clk, bidengine.DefaultConfig(), logger)

			Ω(func() { startGame() }).ShouldNot(Panic())
			Ω(logger).Should(gbytes.Say("event-handler-panicked"))

			// subsequent events still dispatch
			Ω(func() {
				theAgent.Dispatch(tactypes.QuoteUpdated{Quote: tactypes.Quote{Auction: 0, AskPrice: 100}})
			}).ShouldNot(Panic())
		})

		It("logs unknown events instead of failing", func() {
			Ω(func() { theAgent.Dispatch(unknownEvent{}) }).ShouldNot(Panic())
			Ω(logger).Should(gbytes.Say("ignoring-unknown-event"))
		})
	})
})

type unknownEvent struct{}

func (unknownEvent) EventType() string { return "unknown" }

type panickySubmitter struct{}

func (panickySubmitter) SubmitBid(tactypes.Bid) error { panic("gateway exploded") }
