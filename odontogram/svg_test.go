package odontogram

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSVG_EmptyChart(t *testing.T) {
	out := RenderSVG(Chart{}, RenderOptions{})

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.True(t, strings.HasSuffix(out, `</svg>`))
	assert.Equal(t, 32, strings.Count(out, `<g data-tooth=`))
	assert.Equal(t, 32*len(Regions), strings.Count(out, `<polygon `))
	assert.Equal(t, 32*len(Regions), strings.Count(out, `data-condition="healthy"`))
	assert.NotContains(t, out, `<title>`)
	assert.NotContains(t, out, `<line `)
}

func TestRenderSVG_FillsMarkedRegions(t *testing.T) {
	chart := BuildChart([]Mark{
		{Tooth: 16, Surface: SurfaceOcclusal, Condition: ConditionCaries},
		{Tooth: 46, Surface: SurfaceWhole, Condition: ConditionMissing},
	})
	out := RenderSVG(chart, RenderOptions{Title: "Initial <exam>"})

	assert.Contains(t, out, `<title>Initial &lt;exam&gt;</title>`)
	assert.Equal(t, 1, strings.Count(out, `data-condition="caries"`))
	assert.Contains(t, out, fmt.Sprintf(`fill="%s" stroke="#374151" stroke-width="1" data-surface="occlusal" data-condition="caries"`, ConditionCaries.Color()))
	// every region of the missing tooth is filled and the box is crossed out
	assert.Equal(t, len(Regions), strings.Count(out, `data-condition="missing"`))
	assert.Equal(t, 2, strings.Count(out, `<line `))
}

func TestRenderSVG_Size(t *testing.T) {
	out := RenderSVG(Chart{}, RenderOptions{ToothSize: 10, Gap: 2, Margin: 5})
	// 16 teeth of 10 with 15 gaps of 2, plus two margins of 5
	assert.Contains(t, out, `width="200"`)
}
