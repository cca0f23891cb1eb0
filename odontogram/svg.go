package odontogram

import (
	"fmt"
	"html"
	"strings"
)

// RenderOptions controls the chart layout.
type RenderOptions struct {
	ToothSize float64
	Gap       float64
	Margin    float64
	Title     string
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.ToothSize <= 0 {
		o.ToothSize = 40
	}
	if o.Gap <= 0 {
		o.Gap = 6
	}
	if o.Margin <= 0 {
		o.Margin = 20
	}
	return o
}

// RenderSVG draws both arches with every region filled by its effective
// condition. Missing teeth are crossed out.
func RenderSVG(chart Chart, opts RenderOptions) string {
	opts = opts.withDefaults()
	step := opts.ToothSize + opts.Gap
	width := opts.Margin*2 + step*float64(len(UpperRow)) - opts.Gap
	labelH := 14.0
	rowH := opts.ToothSize + labelH
	height := opts.Margin*2 + rowH*2 + opts.Gap*3

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`, width, height, width, height)
	if opts.Title != "" {
		fmt.Fprintf(&b, `<title>%s</title>`, html.EscapeString(opts.Title))
	}

	rows := [][]int{UpperRow, LowerRow}
	for ri, row := range rows {
		y := opts.Margin + float64(ri)*(rowH+opts.Gap*3)
		toothY := y + labelH
		if ri == 1 {
			// lower arch labels sit under the teeth
			toothY = y
		}
		for i, tooth := range row {
			x := opts.Margin + float64(i)*step
			writeTooth(&b, chart[tooth], tooth, x, toothY, opts.ToothSize)
			labelY := y + labelH - 3
			if ri == 1 {
				labelY = toothY + opts.ToothSize + labelH - 3
			}
			fmt.Fprintf(&b, `<text x="%g" y="%g" font-size="10" text-anchor="middle">%d</text>`, x+opts.ToothSize/2, labelY, tooth)
		}
	}
	b.WriteString(`</svg>`)
	return b.String()
}

func writeTooth(b *strings.Builder, st *ToothState, tooth int, x, y, size float64) {
	fmt.Fprintf(b, `<g data-tooth="%d">`, tooth)
	for _, p := range ToothPolygons(tooth, x, y, size) {
		fill := ConditionHealthy.Color()
		cond := ConditionHealthy
		if m, ok := st.RegionMark(p.Region); ok {
			fill = m.Condition.Color()
			cond = m.Condition
		}
		fmt.Fprintf(b, `<polygon points="%s" fill="%s" stroke="#374151" stroke-width="1" data-surface="%s" data-condition="%s"/>`,
			p.SVGPoints(), fill, p.Surface, cond)
	}
	if st != nil && st.Whole != nil && st.Whole.Condition == ConditionMissing {
		fmt.Fprintf(b, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="#111827" stroke-width="2"/>`, x, y, x+size, y+size)
		fmt.Fprintf(b, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="#111827" stroke-width="2"/>`, x+size, y, x, y+size)
	}
	b.WriteString(`</g>`)
}
