package tactypes

import "fmt"

// The auction id space is fixed by the game: 28 auctions partitioned by
// category. The id arithmetic below is contract, not convention; every
// component goes through these functions instead of inline range checks.
//
//	0..3    inbound flights, days 1..4
//	4..7    outbound flights, days 2..5
//	8..11   cheap hotel, days 1..4
//	12..15  good hotel, days 1..4
//	16..27  entertainment, three types, days 1..4 each
const (
	NumAuctions = 28
	NumClients  = 8

	FirstDay = 1
	LastDay  = 5
)

type Category int

const (
	CategoryFlight Category = iota
	CategoryHotel
	CategoryEntertainment
)

func (c Category) String() string {
	switch c {
	case CategoryFlight:
		return "flight"
	case CategoryHotel:
		return "hotel"
	case CategoryEntertainment:
		return "entertainment"
	}
	return "unknown"
}

// Types within a category.
const (
	TypeInboundFlight  = 0
	TypeOutboundFlight = 1

	TypeCheapHotel = 0
	TypeGoodHotel  = 1

	TypeAlligatorWrestling = 0
	TypeAmusementPark      = 1
	TypeMuseum             = 2

	NumEntertainmentTypes = 3
)

const (
	flightBase        = 0
	hotelBase         = 8
	entertainmentBase = 16

	FirstFlightAuction        = flightBase
	FirstHotelAuction         = hotelBase
	FirstEntertainmentAuction = entertainmentBase
)

func CategoryOf(auction int) (Category, error) {
	switch {
	case auction >= flightBase && auction < hotelBase:
		return CategoryFlight, nil
	case auction >= hotelBase && auction < entertainmentBase:
		return CategoryHotel, nil
	case auction >= entertainmentBase && auction < NumAuctions:
		return CategoryEntertainment, nil
	}
	return 0, fmt.Errorf("auction %d out of range", auction)
}

// Decompose maps an auction id to its (category, type, day) triple. It is
// total over [0, NumAuctions) and the inverse of AuctionFor.
func Decompose(auction int) (Category, int, int, error) {
	category, err := CategoryOf(auction)
	if err != nil {
		return 0, 0, 0, err
	}

	switch category {
	case CategoryFlight:
		if auction < flightBase+4 {
			return CategoryFlight, TypeInboundFlight, auction - flightBase + 1, nil
		}
		return CategoryFlight, TypeOutboundFlight, auction - flightBase - 4 + 2, nil
	case CategoryHotel:
		offset := auction - hotelBase
		return CategoryHotel, offset / 4, offset%4 + 1, nil
	default:
		offset := auction - entertainmentBase
		return CategoryEntertainment, offset / 4, offset%4 + 1, nil
	}
}

// AuctionFor maps a (category, type, day) triple back to its auction id.
func AuctionFor(category Category, resourceType int, day int) (int, error) {
	switch category {
	case CategoryFlight:
		switch resourceType {
		case TypeInboundFlight:
			if day < FirstDay || day > LastDay-1 {
				return 0, fmt.Errorf("no inbound flight on day %d", day)
			}
			return flightBase + day - 1, nil
		case TypeOutboundFlight:
			if day < FirstDay+1 || day > LastDay {
				return 0, fmt.Errorf("no outbound flight on day %d", day)
			}
			return flightBase + 4 + day - 2, nil
		}
		return 0, fmt.Errorf("unknown flight type %d", resourceType)
	case CategoryHotel:
		if resourceType != TypeCheapHotel && resourceType != TypeGoodHotel {
			return 0, fmt.Errorf("unknown hotel type %d", resourceType)
		}
		if day < FirstDay || day > LastDay-1 {
			return 0, fmt.Errorf("no hotel night on day %d", day)
		}
		return hotelBase + resourceType*4 + day - 1, nil
	case CategoryEntertainment:
		if resourceType < 0 || resourceType >= NumEntertainmentTypes {
			return 0, fmt.Errorf("unknown entertainment type %d", resourceType)
		}
		if day < FirstDay || day > LastDay-1 {
			return 0, fmt.Errorf("no entertainment on day %d", day)
		}
		return entertainmentBase + resourceType*4 + day - 1, nil
	}
	return 0, fmt.Errorf("unknown category %d", category)
}

func DayOf(auction int) (int, error) {
	_, _, day, err := Decompose(auction)
	return day, err
}

func TypeOf(auction int) (int, error) {
	_, resourceType, _, err := Decompose(auction)
	return resourceType, err
}
