// Package render turns domain output into delivery formats: SVG markup for
// chart command lists and HTML documents for reports and payslips.
package render

import (
	"fmt"
	"html"
	"math"
	"strings"

	"southpaw/internal/domain/chart"
)

// EncodeSVG serializes a chart command list into a standalone SVG image.
// PRE: commands came from a chart renderer for the same surface
// POST: Output depends only on the inputs; identical calls yield identical bytes
func EncodeSVG(s chart.Surface, commands []chart.Command) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		num(s.Width), num(s.Height), num(s.Width), num(s.Height))
	b.WriteByte('\n')

	for _, cmd := range commands {
		switch c := cmd.(type) {
		case chart.Line:
			fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`,
				num(c.From.X), num(c.From.Y), num(c.To.X), num(c.To.Y), html.EscapeString(c.Color), num(c.StrokeWidth))
		case chart.Polyline:
			points := make([]string, len(c.Points))
			for i, p := range c.Points {
				points[i] = num(p.X) + "," + num(p.Y)
			}
			fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="%s"/>`,
				strings.Join(points, " "), html.EscapeString(c.Color), num(c.StrokeWidth))
		case chart.Rect:
			fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
				num(c.X), num(c.Y), num(c.Width), num(c.Height), html.EscapeString(c.Color))
		case chart.Dot:
			fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
				num(c.Center.X), num(c.Center.Y), num(c.Radius), html.EscapeString(c.Color))
		case chart.Slice:
			fmt.Fprintf(&b, `<path d="%s" fill="%s"/>`, slicePath(c), html.EscapeString(c.Color))
		case chart.Text:
			anchor := c.Anchor
			if anchor == "" {
				anchor = chart.AnchorStart
			}
			fmt.Fprintf(&b, `<text x="%s" y="%s" fill="%s" font-size="%s" text-anchor="%s">%s</text>`,
				num(c.At.X), num(c.At.Y), html.EscapeString(c.Color), num(c.Size), anchor, html.EscapeString(c.Value))
		}
		b.WriteByte('\n')
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// slicePath builds the path data for a filled annular sector. A sweep at or
// near a full circle is split in two because a single SVG arc cannot span
// 360 degrees.
func slicePath(c chart.Slice) string {
	sweep := c.EndAngle - c.StartAngle
	if sweep >= 2*math.Pi-1e-9 {
		mid := c.StartAngle + sweep/2
		first := c
		first.EndAngle = mid
		second := c
		second.StartAngle = mid
		return slicePath(first) + " " + slicePath(second)
	}

	largeArc := 0
	if sweep > math.Pi {
		largeArc = 1
	}

	ox1, oy1 := arcPoint(c.Center, c.OuterRadius, c.StartAngle)
	ox2, oy2 := arcPoint(c.Center, c.OuterRadius, c.EndAngle)

	if c.InnerRadius <= 0 {
		return fmt.Sprintf("M %s %s L %s %s A %s %s 0 %d 1 %s %s Z",
			num(c.Center.X), num(c.Center.Y), num(ox1), num(oy1),
			num(c.OuterRadius), num(c.OuterRadius), largeArc, num(ox2), num(oy2))
	}

	ix1, iy1 := arcPoint(c.Center, c.InnerRadius, c.StartAngle)
	ix2, iy2 := arcPoint(c.Center, c.InnerRadius, c.EndAngle)
	return fmt.Sprintf("M %s %s A %s %s 0 %d 1 %s %s L %s %s A %s %s 0 %d 0 %s %s Z",
		num(ox1), num(oy1),
		num(c.OuterRadius), num(c.OuterRadius), largeArc, num(ox2), num(oy2),
		num(ix2), num(iy2),
		num(c.InnerRadius), num(c.InnerRadius), largeArc, num(ix1), num(iy1))
}

func arcPoint(center chart.Point, radius, angle float64) (float64, float64) {
	return center.X + radius*math.Cos(angle), center.Y + radius*math.Sin(angle)
}

// num formats a coordinate with enough precision for crisp rendering and no
// trailing zero noise.
func num(v float64) string {
	out := fmt.Sprintf("%.2f", v)
	out = strings.TrimRight(out, "0")
	return strings.TrimRight(out, ".")
}
