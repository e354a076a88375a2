package routes

import "github.com/tedsuo/rata"

const (
	State        = "STATE"
	Plan         = "PLAN"
	PriceHistory = "PRICE_HISTORY"
)

var Routes = rata.Routes{
	{Path: "/state", Method: "GET", Name: State},
	{Path: "/plan", Method: "GET", Name: Plan},
	{Path: "/price_history", Method: "GET", Name: PriceHistory},
}
