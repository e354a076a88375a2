// Package agent_http_handlers serves read-only views of the running agent
// for operators: the full state snapshot, the allocation plan, and the
// tracked price histories. It never mutates the agent.
package agent_http_handlers

import (
	"encoding/json"
	"net/http"

	"code.cloudfoundry.org/lager/v3"
	"github.com/tacware/travelagent/agent"
	"github.com/tacware/travelagent/communication/http/routes"
	"github.com/tedsuo/rata"
)

// AgentViewer is the slice of the agent the handlers need.
type AgentViewer interface {
	Snapshot() agent.Snapshot
}

func New(agent AgentViewer, logger lager.Logger) rata.Handlers {
	return rata.Handlers{
		routes.State:        &state{agent: agent, logger: logger},
		routes.Plan:         &plan{agent: agent, logger: logger},
		routes.PriceHistory: &priceHistory{agent: agent, logger: logger},
	}
}

func writeJSON(w http.ResponseWriter, payload interface{}, logger lager.Logger) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		logger.Error("failed-to-encode", err)
	}
}
