package chart

// Dataset is one labeled line on a line chart.
type Dataset struct {
	Label string
	Data  []float64
	Color string
}

// RenderLine plots one or more datasets against a shared label axis.
// PRE: every dataset has at most len(labels) points
// POST: Deterministic command list; an all-zero input yields a flat line at
// the baseline rather than dividing by zero
// INVARIANT: the value scale uses the maximum across all datasets, not per-dataset
func RenderLine(s Surface, labels []string, datasets []Dataset) []Command {
	chartWidth, chartHeight := plotArea(s)
	var cmds []Command

	maxValue := 0.0
	for _, ds := range datasets {
		if m := maxOf(ds.Data); m > maxValue {
			maxValue = m
		}
	}

	// Horizontal gridlines with axis values, top to bottom.
	for i := 0; i <= gridDivisions; i++ {
		y := marginTop + chartHeight*float64(i)/gridDivisions
		cmds = append(cmds, Line{
			From:        Point{X: marginLeft, Y: y},
			To:          Point{X: marginLeft + chartWidth, Y: y},
			Color:       gridColor,
			StrokeWidth: 1,
		})
		gridValue := maxValue * float64(gridDivisions-i) / gridDivisions
		cmds = append(cmds, Text{
			At:     Point{X: marginLeft - 6, Y: y + 4},
			Value:  formatValue(gridValue),
			Color:  axisColor,
			Size:   labelSize,
			Anchor: AnchorEnd,
		})
	}

	step := 0.0
	if len(labels) > 1 {
		step = chartWidth / float64(len(labels)-1)
	}

	// Column labels centered under each x position.
	for i, label := range labels {
		cmds = append(cmds, Text{
			At:     Point{X: marginLeft + step*float64(i), Y: marginTop + chartHeight + 16},
			Value:  label,
			Color:  labelColor,
			Size:   labelSize,
			Anchor: AnchorMiddle,
		})
	}

	baseline := marginTop + chartHeight
	for _, ds := range datasets {
		points := make([]Point, 0, len(ds.Data))
		for i, v := range ds.Data {
			y := baseline
			if maxValue > 0 {
				y = marginTop + chartHeight - (v/maxValue)*chartHeight
			}
			points = append(points, Point{X: marginLeft + step*float64(i), Y: y})
		}
		if len(points) > 1 {
			cmds = append(cmds, Polyline{Points: points, Color: ds.Color, StrokeWidth: 2})
		}
		for _, p := range points {
			cmds = append(cmds, Dot{Center: p, Radius: 3, Color: ds.Color})
		}
	}

	return cmds
}
