package agent_http_handlers

import (
	"net/http"

	"code.cloudfoundry.org/lager/v3"
)

type state struct {
	agent  AgentViewer
	logger lager.Logger
}

func (h *state) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.Session("state")
	logger.Info("handling")
	writeJSON(w, h.agent.Snapshot(), logger)
}
