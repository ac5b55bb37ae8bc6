package chart

import "math"

// innerRadiusFactor sizes the doughnut hole relative to the outer radius.
const innerRadiusFactor = 0.6

// DoughnutEntry is one labeled, colored value on a doughnut chart.
type DoughnutEntry struct {
	Label string
	Value float64
	Color string
}

// RenderDoughnut draws annular slices with the value total centered in the hole.
// POST: Same slice-angle rule as the pie chart; a zero total draws no slices
// and omits the center total
// INVARIANT: inner radius is 60% of the outer radius
func RenderDoughnut(s Surface, entries []DoughnutEntry) []Command {
	total := 0.0
	for _, e := range entries {
		if e.Value > 0 {
			total += e.Value
		}
	}
	if total <= 0 {
		return nil
	}

	cx := s.Width / 2
	cy := s.Height / 2
	outer := math.Min(s.Width, s.Height) * 0.38
	inner := outer * innerRadiusFactor

	var cmds []Command
	angle := pieStartAngle
	for _, e := range entries {
		if e.Value <= 0 {
			continue
		}
		sweep := (e.Value / total) * 2 * math.Pi
		cmds = append(cmds, Slice{
			Center:      Point{X: cx, Y: cy},
			InnerRadius: inner,
			OuterRadius: outer,
			StartAngle:  angle,
			EndAngle:    angle + sweep,
			Color:       e.Color,
		})
		angle += sweep
	}

	cmds = append(cmds, Text{
		At:     Point{X: cx, Y: cy + labelSize/3},
		Value:  formatValue(total),
		Color:  labelColor,
		Size:   labelSize * 1.6,
		Anchor: AnchorMiddle,
	})

	return cmds
}
