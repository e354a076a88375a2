package agent_http_handlers

import (
	"net/http"

	"code.cloudfoundry.org/lager/v3"
)

type planView struct {
	HotelThreshold int   `json:"hotel_threshold"`
	Targets        []int `json:"targets"`
}

type plan struct {
	agent  AgentViewer
	logger lager.Logger
}

func (h *plan) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.Session("plan")
	logger.Info("handling")

	snapshot := h.agent.Snapshot()
	writeJSON(w, planView{
		HotelThreshold: snapshot.HotelThreshold,
		Targets:        snapshot.Targets,
	}, logger)
}
