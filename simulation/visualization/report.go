package visualization

import (
	"sync"
	"time"

	"code.cloudfoundry.org/workpool"
	"github.com/GaryBoone/GoStats/stats"
	"github.com/tacware/travelagent/pricetracker"
	"github.com/tacware/travelagent/tactypes"
)

// Report captures the outcome of one simulated game: what the planner wanted,
// what the agent ended up holding, what it paid, and the price trajectories it
// saw along the way.
type Report struct {
	GameID       int
	Targets      []int
	Owned        []int
	States       []string
	Histories    []pricetracker.History
	Spend        float64
	GameDuration time.Duration
}

type Stat struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Total  float64
}

func NewStat(data []float64) Stat {
	return Stat{
		Min:    stats.StatsMin(data),
		Max:    stats.StatsMax(data),
		Mean:   stats.StatsMean(data),
		StdDev: stats.StatsPopulationStandardDeviation(data),
		Total:  stats.StatsSum(data),
	}
}

func NewReport(
	gameID int,
	targets []int,
	states []string,
	histories []pricetracker.History,
	holdings tactypes.HoldingsClient,
	spend float64,
	duration time.Duration,
) *Report {
	return &Report{
		GameID:       gameID,
		Targets:      targets,
		Owned:        fetchHoldings(holdings),
		States:       states,
		Histories:    histories,
		Spend:        spend,
		GameDuration: duration,
	}
}

func (r *Report) Shortfall() int {
	shortfall := 0
	for auction := range r.Targets {
		shortfall += r.shortfallAt(auction)
	}
	return shortfall
}

func (r *Report) ShortfallFor(category tactypes.Category) int {
	shortfall := 0
	for auction := range r.Targets {
		if c, err := tactypes.CategoryOf(auction); err == nil && c == category {
			shortfall += r.shortfallAt(auction)
		}
	}
	return shortfall
}

// FillRate is the fraction of planned buy units the agent actually acquired.
func (r *Report) FillRate() float64 {
	wanted, got := 0, 0
	for auction, target := range r.Targets {
		if target <= 0 {
			continue
		}
		wanted += target
		owned := r.Owned[auction]
		if owned > target {
			owned = target
		}
		got += owned
	}
	if wanted == 0 {
		return 1
	}
	return float64(got) / float64(wanted)
}

func (r *Report) SpendPerClient() float64 {
	return r.Spend / float64(tactypes.NumClients)
}

// ClosingPriceStats summarizes the last observed ask per auction of the
// category. Auctions that never quoted are skipped.
func (r *Report) ClosingPriceStats(category tactypes.Category) Stat {
	prices := []float64{}
	for auction, history := range r.Histories {
		c, err := tactypes.CategoryOf(auction)
		if err != nil || c != category || history.Updates == 0 {
			continue
		}
		prices = append(prices, history.LastAsk)
	}
	return NewStat(prices)
}

func (r *Report) shortfallAt(auction int) int {
	deficit := r.Targets[auction] - r.Owned[auction]
	if deficit < 0 {
		return 0
	}
	return deficit
}

func fetchHoldings(holdings tactypes.HoldingsClient) []int {
	workPool, err := workpool.NewWorkPool(tactypes.NumAuctions)
	if err != nil {
		panic(err)
	}

	wg := &sync.WaitGroup{}
	wg.Add(tactypes.NumAuctions)
	lock := &sync.Mutex{}
	owned := make([]int, tactypes.NumAuctions)

	for auction := 0; auction < tactypes.NumAuctions; auction++ {
		auction := auction
		workPool.Submit(func() {
			count := holdings.Owned(auction)
			lock.Lock()
			owned[auction] = count
			lock.Unlock()
			wg.Done()
		})
	}
	wg.Wait()
	workPool.Stop()
	return owned
}
