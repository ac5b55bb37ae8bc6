package chart

// RenderBar draws one bar per label with a numeric value label above it.
// PRE: len(values) == len(labels)
// POST: Bar widths are 80% of each label's column; colors cycle through the
// palette by index when there are more bars than colors
// INVARIANT: an all-zero input yields zero-height bars, never a division by zero
func RenderBar(s Surface, labels []string, values []float64, colors []string) []Command {
	chartWidth, chartHeight := plotArea(s)
	var cmds []Command

	maxValue := maxOf(values)
	baseline := marginTop + chartHeight

	// Baseline axis.
	cmds = append(cmds, Line{
		From:        Point{X: marginLeft, Y: baseline},
		To:          Point{X: marginLeft + chartWidth, Y: baseline},
		Color:       axisColor,
		StrokeWidth: 1,
	})

	if len(values) == 0 {
		return cmds
	}

	columnWidth := chartWidth / float64(len(values))
	barWidth := columnWidth * 0.8

	for i, v := range values {
		columnStart := marginLeft + columnWidth*float64(i)
		barX := columnStart + (columnWidth-barWidth)/2
		barHeight := 0.0
		if maxValue > 0 {
			barHeight = (v / maxValue) * chartHeight
		}
		barY := baseline - barHeight

		cmds = append(cmds, Rect{
			X:      barX,
			Y:      barY,
			Width:  barWidth,
			Height: barHeight,
			Color:  colorAt(colors, i),
		})

		center := columnStart + columnWidth/2
		cmds = append(cmds, Text{
			At:     Point{X: center, Y: barY - 4},
			Value:  formatValue(v),
			Color:  labelColor,
			Size:   labelSize,
			Anchor: AnchorMiddle,
		})

		if i < len(labels) {
			cmds = append(cmds, Text{
				At:     Point{X: center, Y: baseline + 16},
				Value:  labels[i],
				Color:  labelColor,
				Size:   labelSize,
				Anchor: AnchorMiddle,
			})
		}
	}

	return cmds
}
