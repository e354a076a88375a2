package agent_http_handlers_test

import (
	"net/http"

	"github.com/tacware/travelagent/agent"
	"github.com/tacware/travelagent/communication/http/routes"
	"github.com/tacware/travelagent/pricetracker"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("State", func() {
	BeforeEach(func() {
		viewer.snapshot = agent.Snapshot{
			GameID:         42,
			Started:        true,
			HotelThreshold: 56,
			Targets:        []int{8, 0, 0, 0},
			Owned:          []int{3, 0, 0, 0},
			States:         []string{"pending-bid", "no-position", "no-position", "no-position"},
			Histories:      []pricetracker.History{{LastAsk: 310}},
			BidOutcomes:    map[string]int{"updated": 2},
		}
	})

	It("returns the full snapshot as JSON", func() {
		status, body := Request(routes.State, nil, nil)
		Ω(status).Should(Equal(http.StatusOK))

		Ω(body).Should(MatchJSON(JSONFor(viewer.snapshot)))
		Ω(viewer.calls).Should(Equal(1))
	})
})
