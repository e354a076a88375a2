package tactypes_test

import (
	"time"

	. "github.com/tacware/travelagent/tactypes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Auction Geometry", func() {
	It("decomposes every auction id in the fixed id space", func() {
		for auction := 0; auction < NumAuctions; auction++ {
			_, _, _, err := Decompose(auction)
			Ω(err).ShouldNot(HaveOccurred(), "auction %d", auction)
		}
	})

	It("rejects ids outside the fixed id space", func() {
		_, _, _, err := Decompose(-1)
		Ω(err).Should(HaveOccurred())
		_, _, _, err = Decompose(NumAuctions)
		Ω(err).Should(HaveOccurred())
	})

	It("round-trips through AuctionFor", func() {
		for auction := 0; auction < NumAuctions; auction++ {
			category, resourceType, day, err := Decompose(auction)
			Ω(err).ShouldNot(HaveOccurred())

			roundTripped, err := AuctionFor(category, resourceType, day)
			Ω(err).ShouldNot(HaveOccurred())
			Ω(roundTripped).Should(Equal(auction))
		}
	})

	It("lays out the flight auctions by direction and day", func() {
		Ω(AuctionFor(CategoryFlight, TypeInboundFlight, 1)).Should(Equal(0))
		Ω(AuctionFor(CategoryFlight, TypeInboundFlight, 4)).Should(Equal(3))
		Ω(AuctionFor(CategoryFlight, TypeOutboundFlight, 2)).Should(Equal(4))
		Ω(AuctionFor(CategoryFlight, TypeOutboundFlight, 5)).Should(Equal(7))
	})

	It("lays out the hotel auctions by tier and day", func() {
		Ω(AuctionFor(CategoryHotel, TypeCheapHotel, 1)).Should(Equal(8))
		Ω(AuctionFor(CategoryHotel, TypeCheapHotel, 4)).Should(Equal(11))
		Ω(AuctionFor(CategoryHotel, TypeGoodHotel, 1)).Should(Equal(12))
		Ω(AuctionFor(CategoryHotel, TypeGoodHotel, 4)).Should(Equal(15))
	})

	It("lays out the entertainment auctions by type and day", func() {
		Ω(AuctionFor(CategoryEntertainment, TypeAlligatorWrestling, 1)).Should(Equal(16))
		Ω(AuctionFor(CategoryEntertainment, TypeAmusementPark, 1)).Should(Equal(20))
		Ω(AuctionFor(CategoryEntertainment, TypeMuseum, 4)).Should(Equal(27))
	})

	It("refuses days with no matching auction", func() {
		_, err := AuctionFor(CategoryFlight, TypeInboundFlight, 5)
		Ω(err).Should(HaveOccurred())
		_, err = AuctionFor(CategoryFlight, TypeOutboundFlight, 1)
		Ω(err).Should(HaveOccurred())
		_, err = AuctionFor(CategoryHotel, TypeGoodHotel, 5)
		Ω(err).Should(HaveOccurred())
		_, err = AuctionFor(CategoryEntertainment, TypeMuseum, 0)
		Ω(err).Should(HaveOccurred())
	})

	Describe("ActivePhase", func() {
		It("selects the last phase whose boundary has passed", func() {
			rules := DefaultFlightRules

			Ω(rules.ActivePhase(0).MaxAskFraction).Should(Equal(0.5))
			Ω(rules.ActivePhase(5 * time.Minute).MaxAskFraction).Should(Equal(0.5))
			Ω(rules.ActivePhase(6 * time.Minute).MaxAskFraction).Should(BeNumerically("~", 2.0/3.0))
			Ω(rules.ActivePhase(8 * time.Minute).AcceptAny).Should(BeTrue())
		})
	})
})
