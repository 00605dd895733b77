package dashboard

import (
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/gofiber/fiber/v2"

	"github.com/akshaytechonsy/postdeck/internal/domain"
)

func (s *Server) handleDashboard(c *fiber.Ctx) error {
	snap := s.feed.Snapshot()

	// 1. Source Dominance
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Posts per Source"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)

	srcCounts := make(map[string]int)
	for _, p := range snap.Posts {
		if src, ok := renderable(p.Source); ok {
			srcCounts[src]++
		}
	}

	var pieItems []opts.PieData
	for k, v := range srcCounts {
		pieItems = append(pieItems, opts.PieData{Name: k, Value: v})
	}
	pie.AddSeries("Posts", pieItems)

	// 2. Hashtag Frequency
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Hashtag Frequency"}))

	tagCounts := make(map[string]int)
	for _, p := range snap.Posts {
		for _, tag := range hashtags(p) {
			tagCounts[tag]++
		}
	}

	var barX []string
	var barY []opts.BarData
	for k, v := range tagCounts {
		barX = append(barX, k)
		barY = append(barY, opts.BarData{Value: v})
	}
	bar.SetXAxis(barX).AddSeries("Mentions", barY)

	c.Type("html")
	w := c.Response().BodyWriter()
	pie.Render(w)
	bar.Render(w)
	return nil
}

// renderable applies the consumer-side sentinel contract: empty and the
// literal "N/A" both mean "omit this field from display".
func renderable(field string) (string, bool) {
	field = strings.TrimSpace(field)
	if field == "" || field == "N/A" {
		return "", false
	}
	return field, true
}

func hashtags(p domain.PostRecord) []string {
	raw, ok := renderable(p.Hashtags)
	if !ok {
		return nil
	}
	return strings.Fields(raw)
}
