package agent

import (
	"fmt"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/tacware/travelagent/allocation"
	"github.com/tacware/travelagent/bidengine"
	"github.com/tacware/travelagent/pricetracker"
	"github.com/tacware/travelagent/tactypes"
)

// Agent is the decision core's event entry point. The host adapter
// translates wire messages into tactypes events and feeds them to Dispatch;
// the agent runs the allocation planner on game start and drives the bidding
// engine for the rest of the game.
//
// Events are handled to completion, one at a time. The lock exists only so
// the observability handlers can take consistent snapshots; the decision
// path itself is single-threaded.
type Agent struct {
	logger    lager.Logger
	clk       clock.Clock
	holdings  tactypes.HoldingsClient
	submitter tactypes.BidSubmitter
	config    bidengine.Config

	lock        sync.Mutex
	gameID      int
	started     bool
	stopped     bool
	gameStart   time.Time
	plan        *allocation.Plan
	tracker     *pricetracker.Tracker
	engine      *bidengine.Engine
	bidOutcomes map[string]int
}

func New(
	holdings tactypes.HoldingsClient,
	submitter tactypes.BidSubmitter,
	clk clock.Clock,
	config bidengine.Config,
	logger lager.Logger,
) *Agent {
	return &Agent{
		logger:      logger.Session("agent"),
		clk:         clk,
		holdings:    holdings,
		submitter:   submitter,
		config:      config,
		bidOutcomes: map[string]int{},
	}
}

// Dispatch handles one event to completion. A fault in any handler is
// contained here: the game runs to a hard deadline and an escaped panic
// would forfeit every remaining decision.
func (a *Agent) Dispatch(event tactypes.Event) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("event-handler-panicked", fmt.Errorf("%v", r), lager.Data{
				"event": event.EventType(),
			})
		}
	}()

	a.lock.Lock()
	defer a.lock.Unlock()

	switch ev := event.(type) {
	case tactypes.GameStarted:
		a.handleGameStarted(ev)
	case tactypes.QuoteUpdated:
		a.handleQuoteUpdated(ev)
	case tactypes.BidOutcome:
		a.handleBidOutcome(ev)
	case tactypes.AuctionClosed:
		a.handleAuctionClosed(ev)
	case tactypes.GameStopped:
		a.handleGameStopped(ev)
	default:
		a.logger.Info("ignoring-unknown-event", lager.Data{"event": event.EventType()})
	}
}

func (a *Agent) handleGameStarted(ev tactypes.GameStarted) {
	if a.started {
		a.logger.Info("ignoring-duplicate-game-start", lager.Data{"game-id": ev.GameID})
		return
	}

	logger := a.logger.Session("game", lager.Data{"game-id": ev.GameID})
	logger.Info("started")

	planner := allocation.NewPlanner(a.holdings, logger)
	plan, err := planner.Plan(ev.Preferences)
	if err != nil {
		logger.Error("planning-failed", err)
		return
	}

	config := a.config
	if ev.GameLength > 0 {
		config.GameLength = ev.GameLength
	}

	a.gameID = ev.GameID
	a.gameStart = a.clk.Now()
	a.plan = plan
	a.tracker = pricetracker.New()
	a.engine = bidengine.New(plan, a.tracker, a.holdings, a.submitter, a.clk, config, logger)
	a.started = true
	a.stopped = false

	a.engine.InitialBids()
}

func (a *Agent) handleQuoteUpdated(ev tactypes.QuoteUpdated) {
	if !a.ready() {
		a.logger.Debug("ignoring-quote-before-game-start", lager.Data{"auction": ev.Quote.Auction})
		return
	}
	a.engine.HandleQuote(ev.Quote)
}

func (a *Agent) handleBidOutcome(ev tactypes.BidOutcome) {
	a.bidOutcomes[ev.Kind.String()]++

	data := lager.Data{"auction": ev.Auction, "reason": ev.Reason}
	switch ev.Kind {
	case tactypes.BidUpdated:
		a.logger.Debug("bid-updated", data)
	case tactypes.BidRejected:
		a.logger.Info("bid-rejected", data)
	case tactypes.BidErrored:
		a.logger.Error("bid-errored", fmt.Errorf("bid errored: %s", ev.Reason), data)
	}
}

func (a *Agent) handleAuctionClosed(ev tactypes.AuctionClosed) {
	if !a.ready() {
		return
	}
	a.logger.Info("auction-closed", lager.Data{"auction": ev.Auction})
	a.engine.MarkClosed(ev.Auction)
}

func (a *Agent) handleGameStopped(ev tactypes.GameStopped) {
	if !a.started || a.stopped {
		return
	}
	a.stopped = true
	a.logger.Info("game-stopped", lager.Data{
		"game-id":      ev.GameID,
		"bid-outcomes": a.bidOutcomes,
	})
}

func (a *Agent) ready() bool {
	return a.started && !a.stopped
}

// Snapshot is a consistent read-only view of the agent, served by the
// observability endpoints.
type Snapshot struct {
	GameID         int                    `json:"game_id"`
	Started        bool                   `json:"started"`
	Stopped        bool                   `json:"stopped"`
	Elapsed        time.Duration          `json:"elapsed"`
	HotelThreshold int                    `json:"hotel_threshold"`
	Targets        []int                  `json:"targets"`
	Owned          []int                  `json:"owned"`
	States         []string               `json:"states"`
	Histories      []pricetracker.History `json:"histories"`
	BidOutcomes    map[string]int         `json:"bid_outcomes"`
}

func (a *Agent) Snapshot() Snapshot {
	a.lock.Lock()
	defer a.lock.Unlock()

	snapshot := Snapshot{
		GameID:      a.gameID,
		Started:     a.started,
		Stopped:     a.stopped,
		BidOutcomes: map[string]int{},
	}
	for kind, count := range a.bidOutcomes {
		snapshot.BidOutcomes[kind] = count
	}

	if !a.started {
		return snapshot
	}

	snapshot.Elapsed = a.clk.Since(a.gameStart)
	snapshot.HotelThreshold = a.plan.HotelThreshold
	snapshot.Targets = make([]int, tactypes.NumAuctions)
	snapshot.Owned = make([]int, tactypes.NumAuctions)
	snapshot.States = make([]string, tactypes.NumAuctions)
	for auction := 0; auction < tactypes.NumAuctions; auction++ {
		snapshot.Targets[auction] = a.plan.Targets.Target(auction)
		snapshot.Owned[auction] = a.holdings.Owned(auction)
		snapshot.States[auction] = a.engine.State(auction).String()
	}
	snapshot.Histories = a.tracker.Histories()

	return snapshot
}
