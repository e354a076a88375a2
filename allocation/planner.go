package allocation

import (
	"fmt"

	"code.cloudfoundry.org/lager/v3"
	"github.com/tacware/travelagent/tactypes"
)

// ClientPackage is one client's resolved travel package: the stay interval,
// the chosen hotel tier, and the single entertainment type the planner will
// buy for (NoEntertainment when the client's scores tie).
type ClientPackage struct {
	Arrival             int    `json:"arrival"`
	Departure           int    `json:"departure"`
	HotelValue          int    `json:"hotel_value"`
	EntertainmentValues [3]int `json:"entertainment_values"`
	HotelType           int    `json:"hotel_type"`
	EntertainmentType   int    `json:"entertainment_type"`
}

const NoEntertainment = -1

// EntertainmentDemand aggregates the eight clients' valuations of one
// entertainment type. The bidding engine prices both sides of the
// entertainment market from these.
type EntertainmentDemand struct {
	Max   float64 `json:"max"`
	Min   float64 `json:"min"`
	Mean  float64 `json:"mean"`
	Total float64 `json:"total"`
}

// Plan is the planner's output: the target-holdings table plus the
// cross-client aggregates the bidding engine needs. It is built once per
// game and read-only thereafter.
type Plan struct {
	Targets        tactypes.TargetHoldings                             `json:"targets"`
	Packages       []ClientPackage                                     `json:"packages"`
	Demand         [tactypes.NumEntertainmentTypes]EntertainmentDemand `json:"demand"`
	HotelThreshold int                                                 `json:"hotel_threshold"`
}

type Planner struct {
	holdings tactypes.HoldingsClient
	logger   lager.Logger
}

func NewPlanner(holdings tactypes.HoldingsClient, logger lager.Logger) *Planner {
	return &Planner{
		holdings: holdings,
		logger:   logger.Session("allocation"),
	}
}

// Plan folds the eight preference sets into target holdings, one pass over
// the clients, each auction's target assembled additively and never
// revisited. Same input yields the same plan.
func (p *Planner) Plan(preferences []tactypes.ClientPreference) (*Plan, error) {
	if len(preferences) != tactypes.NumClients {
		return nil, fmt.Errorf("expected %d client preferences, got %d", tactypes.NumClients, len(preferences))
	}
	for i, pref := range preferences {
		if pref.Arrival < tactypes.FirstDay || pref.Departure > tactypes.LastDay || pref.Arrival >= pref.Departure {
			return nil, fmt.Errorf("client %d has invalid stay [%d, %d)", i, pref.Arrival, pref.Departure)
		}
	}

	plan := &Plan{
		Packages:       make([]ClientPackage, 0, tactypes.NumClients),
		HotelThreshold: hotelTierThreshold(preferences),
		Demand:         entertainmentDemand(preferences),
	}

	for i, pref := range preferences {
		pkg := ClientPackage{
			Arrival:             pref.Arrival,
			Departure:           pref.Departure,
			HotelValue:          pref.HotelValue,
			EntertainmentValues: pref.EntertainmentValues,
			HotelType:           tactypes.TypeCheapHotel,
			EntertainmentType:   topEntertainmentType(pref.EntertainmentValues),
		}
		if pref.HotelValue >= plan.HotelThreshold {
			pkg.HotelType = tactypes.TypeGoodHotel
		}

		if err := p.allocateClient(plan, pkg); err != nil {
			return nil, fmt.Errorf("client %d: %s", i, err)
		}

		plan.Packages = append(plan.Packages, pkg)
	}

	p.logger.Info("planned", lager.Data{
		"hotel-threshold": plan.HotelThreshold,
		"targets":         plan.Targets,
	})

	return plan, nil
}

func (p *Planner) allocateClient(plan *Plan, pkg ClientPackage) error {
	inbound, err := tactypes.AuctionFor(tactypes.CategoryFlight, tactypes.TypeInboundFlight, pkg.Arrival)
	if err != nil {
		return err
	}
	plan.Targets.Add(inbound, 1)

	outbound, err := tactypes.AuctionFor(tactypes.CategoryFlight, tactypes.TypeOutboundFlight, pkg.Departure)
	if err != nil {
		return err
	}
	plan.Targets.Add(outbound, 1)

	for day := pkg.Arrival; day < pkg.Departure; day++ {
		hotel, err := tactypes.AuctionFor(tactypes.CategoryHotel, pkg.HotelType, day)
		if err != nil {
			return err
		}
		plan.Targets.Add(hotel, 1)
	}

	// Only the top-ranked entertainment type is targeted for purchase; the
	// other two are serviced exclusively by the surplus-selling policy. A
	// tied top score means no target at all for this client.
	if pkg.EntertainmentType == NoEntertainment {
		p.logger.Debug("entertainment-tie", lager.Data{"scores": pkg.EntertainmentValues})
		return nil
	}

	auction, err := p.bestEntertainmentAuction(plan, pkg)
	if err != nil {
		return err
	}
	plan.Targets.Add(auction, 1)
	return nil
}

// bestEntertainmentAuction picks one day of the client's stay for its
// top-ranked type: the first day with excess owned tickets, otherwise the
// arrival day.
func (p *Planner) bestEntertainmentAuction(plan *Plan, pkg ClientPackage) (int, error) {
	for day := pkg.Arrival; day < pkg.Departure; day++ {
		auction, err := tactypes.AuctionFor(tactypes.CategoryEntertainment, pkg.EntertainmentType, day)
		if err != nil {
			return 0, err
		}
		if plan.Targets.Target(auction) < p.holdings.Owned(auction) {
			return auction, nil
		}
	}
	return tactypes.AuctionFor(tactypes.CategoryEntertainment, pkg.EntertainmentType, pkg.Arrival)
}

// hotelTierThreshold is the integer-truncated average hotel value across all
// clients; a client at or above it gets the good hotel.
func hotelTierThreshold(preferences []tactypes.ClientPreference) int {
	total := 0
	for _, pref := range preferences {
		total += pref.HotelValue
	}
	return total / len(preferences)
}

func topEntertainmentType(values [3]int) int {
	top := NoEntertainment
	for candidate := 0; candidate < tactypes.NumEntertainmentTypes; candidate++ {
		strictlyGreatest := true
		for other := 0; other < tactypes.NumEntertainmentTypes; other++ {
			if other != candidate && values[candidate] <= values[other] {
				strictlyGreatest = false
				break
			}
		}
		if strictlyGreatest {
			top = candidate
			break
		}
	}
	return top
}

func entertainmentDemand(preferences []tactypes.ClientPreference) [tactypes.NumEntertainmentTypes]EntertainmentDemand {
	var demand [tactypes.NumEntertainmentTypes]EntertainmentDemand

	for entertainmentType := 0; entertainmentType < tactypes.NumEntertainmentTypes; entertainmentType++ {
		d := EntertainmentDemand{Max: float64(preferences[0].EntertainmentValues[entertainmentType])}
		d.Min = d.Max

		for _, pref := range preferences {
			value := float64(pref.EntertainmentValues[entertainmentType])
			if value > d.Max {
				d.Max = value
			}
			if value < d.Min {
				d.Min = value
			}
			d.Total += value
		}
		d.Mean = d.Total / float64(len(preferences))

		demand[entertainmentType] = d
	}

	return demand
}
