package simulationserver

import (
	"fmt"
	"sync"

	"code.cloudfoundry.org/lager/v3"
	"github.com/tacware/travelagent/tactypes"
	"github.com/tacware/travelagent/util"
)

// Server is an in-process stand-in for the travel auction server. It owns the
// market state for all 28 auctions and plays both collaborator roles the
// decision core needs: it answers holdings queries and accepts bids.
//
// Bids never touch the agent synchronously. Fills, rejections and closures are
// queued as events; the simulation drains them and dispatches them back to the
// agent, which mirrors the asynchrony of the real server.
type Server struct {
	logger lager.Logger
	config Config

	lock       sync.Mutex
	asks       [tactypes.NumAuctions]float64
	bidPrices  [tactypes.NumAuctions]float64
	standing   [tactypes.NumAuctions]*tactypes.Bid
	closed     [tactypes.NumAuctions]bool
	owned      [tactypes.NumAuctions]int
	spend      float64
	minute     int
	closeOrder []int
	queue      []tactypes.Event
}

type Config struct {
	FlightOpenMin int
	FlightOpenMax int
	FlightDrift   int

	HotelOpenMin int
	HotelOpenMax int
	HotelRiseMax int

	EntertainmentOpenMin int
	EntertainmentOpenMax int
	EntertainmentJitter  int

	// tickets randomly endowed to the agent before the game starts
	EntertainmentEndowment int
}

func DefaultConfig() Config {
	return Config{
		FlightOpenMin: 250,
		FlightOpenMax: 400,
		FlightDrift:   30,

		HotelOpenMin: 0,
		HotelOpenMax: 60,
		HotelRiseMax: 40,

		EntertainmentOpenMin:   60,
		EntertainmentOpenMax:   140,
		EntertainmentJitter:    15,
		EntertainmentEndowment: 8,
	}
}

func New(config Config, logger lager.Logger) *Server {
	s := &Server{
		logger: logger.Session("simulation-server"),
		config: config,
	}

	for auction := 0; auction < tactypes.NumAuctions; auction++ {
		category, _ := tactypes.CategoryOf(auction)
		switch category {
		case tactypes.CategoryFlight:
			s.asks[auction] = float64(util.RandomIntIn(config.FlightOpenMin, config.FlightOpenMax))
		case tactypes.CategoryHotel:
			s.asks[auction] = float64(util.RandomIntIn(config.HotelOpenMin, config.HotelOpenMax))
		case tactypes.CategoryEntertainment:
			s.asks[auction] = float64(util.RandomIntIn(config.EntertainmentOpenMin, config.EntertainmentOpenMax))
			s.bidPrices[auction] = s.asks[auction] - float64(util.RandomIntIn(10, 40))
		}
	}

	// hotels close one per minute, in a random order
	hotels := []int{}
	for auction := tactypes.FirstHotelAuction; auction < tactypes.FirstEntertainmentAuction; auction++ {
		hotels = append(hotels, auction)
	}
	util.Shuffle(hotels)
	s.closeOrder = hotels

	for i := 0; i < config.EntertainmentEndowment; i++ {
		auction := util.RandomIntIn(tactypes.FirstEntertainmentAuction, tactypes.NumAuctions-1)
		s.owned[auction]++
	}

	return s
}

// Owned implements tactypes.HoldingsClient.
func (s *Server) Owned(auction int) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	if auction < 0 || auction >= tactypes.NumAuctions {
		return 0
	}
	return s.owned[auction]
}

// SubmitBid implements tactypes.BidSubmitter.
func (s *Server) SubmitBid(bid tactypes.Bid) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if bid.Auction < 0 || bid.Auction >= tactypes.NumAuctions {
		return fmt.Errorf("no such auction: %d", bid.Auction)
	}
	if s.closed[bid.Auction] {
		return tactypes.ErrAuctionClosed
	}
	if len(bid.Points) == 0 {
		s.queue = append(s.queue, tactypes.BidOutcome{
			Auction: bid.Auction,
			Kind:    tactypes.BidRejected,
			Reason:  "empty bid",
		})
		return nil
	}

	stored := bid
	s.standing[bid.Auction] = &stored
	s.queue = append(s.queue, tactypes.BidOutcome{Auction: bid.Auction, Kind: tactypes.BidUpdated})

	s.matchStanding(bid.Auction)
	return nil
}

// OpeningQuotes publishes the first quote for every auction.
func (s *Server) OpeningQuotes() []tactypes.Event {
	s.lock.Lock()
	defer s.lock.Unlock()

	for auction := 0; auction < tactypes.NumAuctions; auction++ {
		s.queueQuote(auction)
	}
	return s.drain()
}

// Tick advances the market by one game minute and returns everything that
// happened, including outcomes queued by earlier bids.
func (s *Server) Tick() []tactypes.Event {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.minute++

	for auction := 0; auction < tactypes.NumAuctions; auction++ {
		if s.closed[auction] {
			continue
		}

		category, _ := tactypes.CategoryOf(auction)
		switch category {
		case tactypes.CategoryFlight:
			s.asks[auction] += float64(util.RandomIntIn(-10, s.config.FlightDrift))
			if s.asks[auction] < 150 {
				s.asks[auction] = 150
			}
		case tactypes.CategoryHotel:
			if s.standing[auction] != nil {
				s.asks[auction] += float64(util.RandomIntIn(0, s.config.HotelRiseMax))
			}
		case tactypes.CategoryEntertainment:
			jitter := s.config.EntertainmentJitter
			s.asks[auction] += float64(util.RandomIntIn(-jitter, jitter))
			if s.asks[auction] < 20 {
				s.asks[auction] = 20
			}
			s.bidPrices[auction] += float64(util.RandomIntIn(-jitter, jitter))
			if s.bidPrices[auction] < 0 {
				s.bidPrices[auction] = 0
			}
			if s.bidPrices[auction] > s.asks[auction] {
				s.bidPrices[auction] = s.asks[auction] - 1
			}
		}

		s.matchStanding(auction)
		s.queueQuote(auction)
	}

	if s.minute-1 < len(s.closeOrder) {
		s.closeHotel(s.closeOrder[s.minute-1])
	}

	return s.drain()
}

// Drain returns events queued since the last call without advancing time.
func (s *Server) Drain() []tactypes.Event {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.drain()
}

func (s *Server) Spend() float64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.spend
}

func (s *Server) Closed(auction int) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.closed[auction]
}

func (s *Server) Holdings() []int {
	s.lock.Lock()
	defer s.lock.Unlock()

	owned := make([]int, tactypes.NumAuctions)
	copy(owned, s.owned[:])
	return owned
}

// internal, caller holds the lock

func (s *Server) matchStanding(auction int) {
	bid := s.standing[auction]
	if bid == nil || s.closed[auction] {
		return
	}

	category, _ := tactypes.CategoryOf(auction)
	if category == tactypes.CategoryHotel {
		// hotels only trade when the auction closes
		return
	}

	point := bid.Points[0]
	switch {
	case point.Quantity > 0 && point.Price >= s.asks[auction]:
		s.owned[auction] += point.Quantity
		s.spend += float64(point.Quantity) * s.asks[auction]
		s.standing[auction] = nil
		s.logger.Debug("filled-buy", lager.Data{"auction": auction, "quantity": point.Quantity, "price": s.asks[auction]})

	case point.Quantity < 0 && point.Price <= s.bidPrices[auction]:
		sold := -point.Quantity
		if sold > s.owned[auction] {
			sold = s.owned[auction]
		}
		s.owned[auction] -= sold
		s.spend -= float64(sold) * s.bidPrices[auction]
		s.standing[auction] = nil
		s.logger.Debug("filled-sell", lager.Data{"auction": auction, "quantity": sold, "price": s.bidPrices[auction]})
	}
}

func (s *Server) closeHotel(auction int) {
	if s.closed[auction] {
		return
	}
	s.closed[auction] = true

	if bid := s.standing[auction]; bid != nil {
		point := bid.Points[0]
		if point.Quantity > 0 && point.Price >= s.asks[auction] {
			s.owned[auction] += point.Quantity
			s.spend += float64(point.Quantity) * s.asks[auction]
			s.logger.Info("hotel-awarded", lager.Data{"auction": auction, "quantity": point.Quantity, "price": s.asks[auction]})
		} else {
			s.queue = append(s.queue, tactypes.BidOutcome{
				Auction: auction,
				Kind:    tactypes.BidRejected,
				Reason:  "closing price above bid",
			})
		}
		s.standing[auction] = nil
	}

	s.queue = append(s.queue, tactypes.QuoteUpdated{Quote: tactypes.Quote{
		Auction:  auction,
		AskPrice: s.asks[auction],
		BidPrice: s.bidPrices[auction],
		Closed:   true,
	}})
	s.queue = append(s.queue, tactypes.AuctionClosed{Auction: auction})
}

func (s *Server) queueQuote(auction int) {
	bidPrice := s.bidPrices[auction]
	if standing := s.standing[auction]; standing != nil && standing.Points[0].Price > bidPrice {
		bidPrice = standing.Points[0].Price
	}

	s.queue = append(s.queue, tactypes.QuoteUpdated{Quote: tactypes.Quote{
		Auction:  auction,
		AskPrice: s.asks[auction],
		BidPrice: bidPrice,
		Closed:   s.closed[auction],
	}})
}

func (s *Server) drain() []tactypes.Event {
	events := s.queue
	s.queue = nil
	return events
}
