package agent_http_handlers

import (
	"net/http"

	"code.cloudfoundry.org/lager/v3"
)

type priceHistory struct {
	agent  AgentViewer
	logger lager.Logger
}

func (h *priceHistory) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.Session("price-history")
	logger.Info("handling")
	writeJSON(w, h.agent.Snapshot().Histories, logger)
}
