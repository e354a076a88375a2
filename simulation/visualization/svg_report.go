package visualization

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/GaryBoone/GoStats/stats"
	. "github.com/onsi/gomega"

	svg "github.com/ajstarks/svgo"
	"github.com/tacware/travelagent/tactypes"
)

const border = 5
const rowHeight = 9
const rowSpacing = 2
const unitWidth = 24
const auctionBoxWidth = unitWidth*10 + border*2
const auctionBoxHeight = tactypes.NumAuctions*(rowHeight+rowSpacing) + border*2

const headerHeight = 100

const graphWidth = 300
const graphTextX = 50
const graphBinX = 55
const binHeight = 14
const binSpacing = 2
const maxBinLength = graphWidth - graphBinX

const GameCardWidth = border*3 + auctionBoxWidth + graphWidth
const GameCardHeight = border*3 + auctionBoxHeight

type SVGReport struct {
	SVG       *svg.SVG
	f         *os.File
	fillRates []float64
	spends    []float64
	width     int
	height    int
}

func StartSVGReport(path string, width, height int) *SVGReport {
	f, err := os.Create(path)
	Ω(err).ShouldNot(HaveOccurred())
	s := svg.New(f)
	s.Start(width*GameCardWidth, headerHeight+height*GameCardHeight)
	return &SVGReport{
		f:      f,
		SVG:    s,
		width:  width,
		height: height,
	}
}

func (r *SVGReport) Done() {
	r.drawResults()
	r.SVG.End()
	r.f.Close()
}

func (r *SVGReport) DrawHeader(gameLength time.Duration, flightRules tactypes.FlightRules, hotelRules tactypes.HotelRules) {
	header := fmt.Sprintf(
		"%s games - %d flight phases - hotel increment %.0f ceiling %.0f",
		gameLength, len(flightRules.Phases), hotelRules.PriceIncrement, hotelRules.PriceCeiling,
	)
	r.SVG.Text(border, 40, header, `text-anchor:start;font-size:32px;font-family:Helvetica Neue`)
}

func (r *SVGReport) drawResults() {
	r.SVG.Text(border, 90, fmt.Sprintf(
		"Fill Rate: %.1f%% | Total Spend: %.0f",
		stats.StatsMean(r.fillRates)*100, stats.StatsSum(r.spends),
	), `text-anchor:start;font-size:32px;font-family:Helvetica Neue`)
}

func (r *SVGReport) DrawGameCard(x, y int, report *Report) {
	r.SVG.Translate(x*GameCardWidth, headerHeight+y*GameCardHeight)

	r.drawHoldings(report)
	y = r.drawClosingPriceHistogram(report)
	r.drawText(report, y+binSpacing*4)

	r.fillRates = append(r.fillRates, report.FillRate())
	r.spends = append(r.spends, report.Spend)

	r.SVG.Gend()
}

// drawHoldings renders one row per auction: a light target outline and a
// solid bar for what the agent actually holds.
func (r *SVGReport) drawHoldings(report *Report) {
	y := border
	for auction := 0; auction < tactypes.NumAuctions; auction++ {
		x := border
		r.SVG.Rect(x, y, unitWidth*10, rowHeight, "fill:#f7f7f7")

		target := report.Targets[auction]
		if target > 0 {
			r.SVG.Rect(x, y, unitWidth*target, rowHeight, "fill:none;stroke:#999;stroke-width:1")
		}

		owned := report.Owned[auction]
		if owned > 0 {
			r.SVG.Rect(x, y, unitWidth*owned, rowHeight, categoryStyle(auction))
		}

		y += rowHeight + rowSpacing
	}
}

func (r *SVGReport) drawClosingPriceHistogram(report *Report) int {
	prices := []float64{}
	for auction, history := range report.Histories {
		category, err := tactypes.CategoryOf(auction)
		if err != nil || category != tactypes.CategoryHotel || history.Updates == 0 {
			continue
		}
		prices = append(prices, history.LastAsk)
	}
	sort.Float64s(prices)

	bins := binUp([]float64{0, 50, 100, 150, 200, 300, 400, 600, 800, 1e9}, prices)
	labels := []string{"<50", "50-100", "100-150", "150-200", "200-300", "300-400", "400-600", "600-800", ">800"}

	r.SVG.Translate(border*2+auctionBoxWidth, border)

	yBottom := r.drawHistogram(bins, labels)

	r.SVG.Gend()

	return yBottom + border
}

func (r *SVGReport) drawText(report *Report, y int) {
	hotelStats := report.ClosingPriceStats(tactypes.CategoryHotel)
	flightStats := report.ClosingPriceStats(tactypes.CategoryFlight)

	missing := ""
	if shortfall := report.Shortfall(); shortfall > 0 {
		missing = fmt.Sprintf("SHORT %d units", shortfall)
	}

	lines := []string{
		fmt.Sprintf("Game %d %s", report.GameID, missing),
		fmt.Sprintf("%.1f%% filled in %s", report.FillRate()*100, report.GameDuration),
		fmt.Sprintf("Spend: %.0f (%.0f per client)", report.Spend, report.SpendPerClient()),
	}
	statLines := []string{
		"Hotel closing asks",
		fmt.Sprintf("...%.0f ± %.0f | %.0f - %.0f", hotelStats.Mean, hotelStats.StdDev, hotelStats.Min, hotelStats.Max),
		"Flight closing asks",
		fmt.Sprintf("...%.0f ± %.0f | %.0f - %.0f", flightStats.Mean, flightStats.StdDev, flightStats.Min, flightStats.Max),
	}

	r.SVG.Translate(border*2+auctionBoxWidth, y)
	r.SVG.Gstyle("font-family:Helvetica Neue")
	r.SVG.Textlines(8, 8, lines, 16, 18, "#333", "start")
	r.SVG.Textlines(8, 70, statLines, 13, 16, "#333", "start")
	r.SVG.Gend()
	r.SVG.Gend()
}

func (r *SVGReport) drawHistogram(bins []float64, labels []string) int {
	y := 0
	for i, percentage := range bins {
		r.SVG.Rect(graphBinX, y, maxBinLength, binHeight, `fill:#eee`)
		r.SVG.Text(graphTextX, y+binHeight-4, labels[i], `text-anchor:end;font-size:10px;font-family:Helvetica Neue`)
		if percentage > 0 {
			r.SVG.Rect(graphBinX, y, int(percentage*float64(maxBinLength)), binHeight, `fill:#333`)
			r.SVG.Text(graphBinX+binSpacing, y+binHeight-4, fmt.Sprintf("%.1f%%", percentage*100.0), `text-anchor:start;font-size:10px;font-family:Helvetica Neue;fill:#fff`)
		}
		y += binHeight + binSpacing
	}

	return y
}

func binUp(binBoundaries []float64, sortedData []float64) []float64 {
	bins := make([]float64, len(binBoundaries)-1)
	if len(sortedData) == 0 {
		return bins
	}

	currentBin := 0
	for _, d := range sortedData {
		for binBoundaries[currentBin+1] < d {
			currentBin += 1
		}
		bins[currentBin] += 1
	}

	for i := range bins {
		bins[i] = (bins[i] / float64(len(sortedData)))
	}

	return bins
}

func categoryStyle(auction int) string {
	category, err := tactypes.CategoryOf(auction)
	if err != nil {
		return "fill:#333"
	}
	switch category {
	case tactypes.CategoryFlight:
		return "fill:#4a90d9;stroke:none"
	case tactypes.CategoryHotel:
		return "fill:#d9774a;stroke:none"
	default:
		return "fill:#5cb85c;stroke:none"
	}
}
