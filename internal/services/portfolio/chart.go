package portfolio

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/silvamenu/momoney/internal/models"
)

// RenderAllocationChart renders the valuation as a PNG donut chart of
// current value per holding. Holdings with no current value are skipped;
// an empty portfolio renders a single "Sem investimentos" slice so the
// dashboard always gets a valid image.
func (s *Service) RenderAllocationChart(valuation *models.PortfolioValuation) ([]byte, error) {
	values := allocationValues(valuation)

	donut := chart.DonutChart{
		Width:  512,
		Height: 512,
		Values: values,
	}

	var buf bytes.Buffer
	if err := donut.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render allocation chart: %w", err)
	}

	return buf.Bytes(), nil
}

// allocationValues converts holdings with positive current value into labeled
// chart slices. Percentages are relative to the sum of the charted slices,
// not the portfolio total, which can be zero or negative when short positions
// offset long ones.
func allocationValues(valuation *models.PortfolioValuation) []chart.Value {
	var charted []models.EnrichedHolding
	var total float64
	for _, h := range valuation.Holdings {
		if h.CurrentValue <= 0 {
			continue
		}
		charted = append(charted, h)
		total += h.CurrentValue
	}

	if len(charted) == 0 {
		return []chart.Value{{Value: 1, Label: "Sem investimentos"}}
	}

	values := make([]chart.Value, 0, len(charted))
	for _, h := range charted {
		label := h.Name
		if label == "" {
			label = h.Ticker
		}
		values = append(values, chart.Value{
			Value: h.CurrentValue,
			Label: fmt.Sprintf("%s (%.0f%%)", label, h.CurrentValue/total*100),
		})
	}
	return values
}
