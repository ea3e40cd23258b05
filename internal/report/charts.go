package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	domain "github.com/pip3-kill-me/ebay-scraper/pkg/types"
)

// WriteCharts renders the two run charts to a single HTML page: a bar chart
// of the top ranked deals by price-per-TB and a price-vs-capacity scatter
// of every deal inside the band.
func WriteCharts(path string, deals []domain.Deal, topN int) error {
	if len(deals) == 0 {
		return nil
	}

	page := components.NewPage()
	page.PageTitle = "eBay price-per-TB analysis"
	page.AddCharts(
		dealBarChart(deals, topN),
		priceCapacityScatter(deals),
	)

	f, err := os.Create(path) //nolint:gosec // chart path from trusted config
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering charts: %w", err)
	}
	return nil
}

func dealBarChart(deals []domain.Deal, topN int) *charts.Bar {
	if topN > len(deals) {
		topN = len(deals)
	}
	top := deals[:topN]

	titles := make([]string, 0, len(top))
	values := make([]opts.BarData, 0, len(top))
	for i := range top {
		titles = append(titles, truncate(top[i].Title, 40))
		values = append(values, opts.BarData{Value: round2(top[i].PricePerTB)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Top %d deals in range", len(top)),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price per TB ($)"}),
	)
	bar.SetXAxis(titles).AddSeries("price per TB", values)
	return bar
}

func priceCapacityScatter(deals []domain.Deal) *charts.Scatter {
	points := make([]opts.ScatterData, 0, len(deals))
	for i := range deals {
		points = append(points, opts.ScatterData{
			Name:  deals[i].Title,
			Value: []any{deals[i].CapacityTB, round2(deals[i].Price)},
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Price vs. capacity"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Capacity (TB)"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Price (USD)"}),
	)
	scatter.SetXAxis(nil).AddSeries("deals", points)
	return scatter
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
