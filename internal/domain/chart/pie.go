package chart

import "math"

// pieStartAngle puts the first slice boundary at 12 o'clock; slices then
// proceed clockwise in input order.
const pieStartAngle = -math.Pi / 2

// labelOffsetFactor pushes slice labels radially beyond the pie edge.
const labelOffsetFactor = 1.18

// RenderPie draws proportional slices with outward radial labels.
// PRE: len(values) == len(labels)
// POST: Slice angles sum to 2*pi for a non-zero total; a zero total draws no
// slices at all (no NaN angles)
// INVARIANT: slices start at -pi/2 and proceed clockwise in input order
func RenderPie(s Surface, labels []string, values []float64, colors []string) []Command {
	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return nil
	}

	cx := s.Width / 2
	cy := s.Height / 2
	radius := math.Min(s.Width, s.Height) * 0.38

	var cmds []Command
	angle := pieStartAngle
	for i, v := range values {
		if v <= 0 {
			continue
		}
		sweep := (v / total) * 2 * math.Pi
		cmds = append(cmds, Slice{
			Center:      Point{X: cx, Y: cy},
			OuterRadius: radius,
			StartAngle:  angle,
			EndAngle:    angle + sweep,
			Color:       colorAt(colors, i),
		})

		mid := angle + sweep/2
		labelRadius := radius * labelOffsetFactor
		anchor := AnchorStart
		if math.Cos(mid) < 0 {
			anchor = AnchorEnd
		}
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		cmds = append(cmds, Text{
			At:     Point{X: cx + math.Cos(mid)*labelRadius, Y: cy + math.Sin(mid)*labelRadius},
			Value:  label,
			Color:  labelColor,
			Size:   labelSize,
			Anchor: anchor,
		})

		angle += sweep
	}

	return cmds
}
