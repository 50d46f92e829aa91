package chart

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"math"
	"strings"

	"github.com/malick97/Rental-Profit/models"
	"github.com/malick97/Rental-Profit/utils"
)

// Size is the pixel size of the chart.
type Size struct {
	Width  int
	Height int
}

// DefaultSize matches the default CHART_WIDTH and CHART_HEIGHT.
var DefaultSize = Size{Width: 900, Height: 500}

const (
	marginLeft   = 80.0
	marginRight  = 70.0
	marginTop    = 40.0
	marginBottom = 50.0
	tickCount    = 5

	profitColor = "#1f77b4"
	nightsColor = "#d62728"
)

type tick struct {
	Pos   float64
	Label string
}

type chartView struct {
	Width, Height int
	Left, Right   float64
	Top, Bottom   float64
	MidX          float64

	Empty        bool
	ProfitPoints string
	NightsPoints string
	ProfitColor  string
	NightsColor  string

	XTicks      []tick
	ProfitTicks []tick
	NightsTicks []tick

	OptimalX     float64
	OptimalLabel string
}

var svgTemplate = template.Must(template.New("chart").Funcs(template.FuncMap{
	"px": func(v float64) string { return fmt.Sprintf("%.1f", v) },
}).Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" font-family="sans-serif" font-size="12">
<rect width="100%" height="100%" fill="#ffffff"/>
<text x="{{px .MidX}}" y="22" text-anchor="middle" font-size="15">Profit and booked nights by nightly price</text>
{{- if .Empty}}
<text x="{{px .MidX}}" y="{{px .Bottom}}" text-anchor="middle" fill="#666666">Price sweep disabled</text>
{{- else}}
<line x1="{{px .Left}}" y1="{{px .Bottom}}" x2="{{px .Right}}" y2="{{px .Bottom}}" stroke="#333333"/>
<line x1="{{px .Left}}" y1="{{px .Top}}" x2="{{px .Left}}" y2="{{px .Bottom}}" stroke="{{.ProfitColor}}"/>
<line x1="{{px .Right}}" y1="{{px .Top}}" x2="{{px .Right}}" y2="{{px .Bottom}}" stroke="{{.NightsColor}}"/>
{{- range .XTicks}}
<line x1="{{px .Pos}}" y1="{{px $.Bottom}}" x2="{{px .Pos}}" y2="{{px $.Top}}" stroke="#eeeeee"/>
<text x="{{px .Pos}}" y="{{px $.Bottom}}" dy="18" text-anchor="middle">{{.Label}}</text>
{{- end}}
{{- range .ProfitTicks}}
<text x="{{px $.Left}}" y="{{px .Pos}}" dx="-6" dy="4" text-anchor="end" fill="{{$.ProfitColor}}">{{.Label}}</text>
{{- end}}
{{- range .NightsTicks}}
<text x="{{px $.Right}}" y="{{px .Pos}}" dx="6" dy="4" text-anchor="start" fill="{{$.NightsColor}}">{{.Label}}</text>
{{- end}}
<polyline class="profit" points="{{.ProfitPoints}}" fill="none" stroke="{{.ProfitColor}}" stroke-width="2"/>
<polyline class="nights" points="{{.NightsPoints}}" fill="none" stroke="{{.NightsColor}}" stroke-width="2" stroke-dasharray="6 4"/>
<line class="optimal" x1="{{px .OptimalX}}" y1="{{px .Top}}" x2="{{px .OptimalX}}" y2="{{px .Bottom}}" stroke="#2ca02c" stroke-dasharray="2 3"/>
<text x="{{px .OptimalX}}" y="{{px .Top}}" dy="-4" text-anchor="middle" fill="#2ca02c">{{.OptimalLabel}}</text>
{{- end}}
<text x="{{px .MidX}}" y="{{.Height}}" dy="-8" text-anchor="middle">Nightly price</text>
</svg>
`))

// WriteSVG draws the sweep as a dual-axis line chart: profit on the left
// axis, booked nights (dashed) on the right axis, and a marker at the
// optimal price. A disabled sweep yields a placeholder chart.
func WriteSVG(w io.Writer, opt models.OptimizationResult, size Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}
	if err := svgTemplate.Execute(w, buildView(opt, size)); err != nil {
		return fmt.Errorf("render chart svg: %w", err)
	}
	return nil
}

// BuildHTML wraps the chart SVG in a standalone page sized for a screenshot.
func BuildHTML(opt models.OptimizationResult, size Size) (string, error) {
	var svg bytes.Buffer
	if err := WriteSVG(&svg, opt, size); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>html,body{margin:0;padding:0;background:#fff}</style></head><body>`)
	b.Write(svg.Bytes())
	b.WriteString(`</body></html>`)
	return b.String(), nil
}

func buildView(opt models.OptimizationResult, size Size) chartView {
	v := chartView{
		Width:       size.Width,
		Height:      size.Height,
		Left:        marginLeft,
		Right:       float64(size.Width) - marginRight,
		Top:         marginTop,
		Bottom:      float64(size.Height) - marginBottom,
		MidX:        float64(size.Width) / 2,
		ProfitColor: profitColor,
		NightsColor: nightsColor,
	}
	n := len(opt.PriceGrid)
	if opt.SweepDisabled || n == 0 || len(opt.ProfitByPrice) != n || len(opt.BookedNightsByPrice) != n {
		v.Empty = true
		return v
	}

	xs := newScale(opt.PriceGrid[0], opt.PriceGrid[n-1], v.Left, v.Right)

	minProfit, maxProfit := opt.ProfitByPrice[0], opt.ProfitByPrice[0]
	maxNights := 1
	for i := range opt.PriceGrid {
		minProfit = math.Min(minProfit, opt.ProfitByPrice[i])
		maxProfit = math.Max(maxProfit, opt.ProfitByPrice[i])
		if opt.BookedNightsByPrice[i] > maxNights {
			maxNights = opt.BookedNightsByPrice[i]
		}
	}
	// y grows downwards
	ps := newScale(minProfit, maxProfit, v.Bottom, v.Top)
	ns := newScale(0, float64(maxNights), v.Bottom, v.Top)

	profit := make([]string, n)
	nights := make([]string, n)
	for i, p := range opt.PriceGrid {
		x := xs.at(p)
		profit[i] = fmt.Sprintf("%.1f,%.1f", x, ps.at(opt.ProfitByPrice[i]))
		nights[i] = fmt.Sprintf("%.1f,%.1f", x, ns.at(float64(opt.BookedNightsByPrice[i])))
	}
	v.ProfitPoints = strings.Join(profit, " ")
	v.NightsPoints = strings.Join(nights, " ")

	for i := 0; i < tickCount; i++ {
		f := float64(i) / float64(tickCount-1)
		price := xs.lo + f*(xs.hi-xs.lo)
		v.XTicks = append(v.XTicks, tick{Pos: xs.at(price), Label: fmt.Sprintf("%.0f", price)})

		pr := ps.lo + f*(ps.hi-ps.lo)
		v.ProfitTicks = append(v.ProfitTicks, tick{Pos: ps.at(pr), Label: utils.FormatMoney(pr)})

		nt := ns.lo + f*(ns.hi-ns.lo)
		v.NightsTicks = append(v.NightsTicks, tick{Pos: ns.at(nt), Label: fmt.Sprintf("%.0f", nt)})
	}

	v.OptimalX = xs.at(opt.OptimalPrice)
	v.OptimalLabel = fmt.Sprintf("optimal %s", utils.FormatMoney(opt.OptimalPrice))
	return v
}

// scale maps a data interval linearly onto a pixel interval.
type scale struct {
	lo, hi         float64
	pixLo, pixHigh float64
}

func newScale(lo, hi, pixLo, pixHigh float64) scale {
	if hi <= lo {
		lo, hi = lo-1, lo+1
	}
	return scale{lo: lo, hi: hi, pixLo: pixLo, pixHigh: pixHigh}
}

func (s scale) at(v float64) float64 {
	return s.pixLo + (v-s.lo)/(s.hi-s.lo)*(s.pixHigh-s.pixLo)
}
