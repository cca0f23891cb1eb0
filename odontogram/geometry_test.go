package odontogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSurfaceAt_ArchSwapsTopAndBottom(t *testing.T) {
	assert.Equal(t, SurfaceVestibular, SurfaceAt(16, RegionTop))
	assert.Equal(t, SurfaceLingual, SurfaceAt(16, RegionBottom))
	assert.Equal(t, SurfaceLingual, SurfaceAt(46, RegionTop))
	assert.Equal(t, SurfaceVestibular, SurfaceAt(46, RegionBottom))
}

func TestSurfaceAt_MesialFacesMidline(t *testing.T) {
	// quadrants 1 and 4 are drawn left of the midline
	assert.Equal(t, SurfaceMesial, SurfaceAt(11, RegionRight))
	assert.Equal(t, SurfaceDistal, SurfaceAt(11, RegionLeft))
	assert.Equal(t, SurfaceMesial, SurfaceAt(44, RegionRight))

	assert.Equal(t, SurfaceMesial, SurfaceAt(21, RegionLeft))
	assert.Equal(t, SurfaceDistal, SurfaceAt(21, RegionRight))
	assert.Equal(t, SurfaceMesial, SurfaceAt(36, RegionLeft))
}

func TestCenterSurface(t *testing.T) {
	for _, tooth := range []int{11, 12, 13, 21, 33, 43} {
		assert.Equal(t, SurfaceIncisal, CenterSurface(tooth), "tooth %d", tooth)
	}
	for _, tooth := range []int{14, 15, 16, 18, 24, 36, 48} {
		assert.Equal(t, SurfaceOcclusal, CenterSurface(tooth), "tooth %d", tooth)
	}
}

func TestRegionOf_RoundTrip(t *testing.T) {
	for _, tooth := range AllTeeth() {
		for _, r := range Regions {
			got, ok := RegionOf(tooth, SurfaceAt(tooth, r))
			assert.True(t, ok)
			assert.Equal(t, r, got, "tooth %d region %s", tooth, r)
		}
	}
}

func TestRegionOf_Aliases(t *testing.T) {
	r, ok := RegionOf(16, SurfacePalatal)
	assert.True(t, ok)
	assert.Equal(t, RegionBottom, r)

	r, ok = RegionOf(36, SurfaceCervical)
	assert.True(t, ok)
	assert.Equal(t, RegionBottom, r)

	r, ok = RegionOf(11, SurfaceOcclusal)
	assert.True(t, ok)
	assert.Equal(t, RegionCenter, r)

	_, ok = RegionOf(11, SurfaceWhole)
	assert.False(t, ok)
}

func TestToothPolygons_Shapes(t *testing.T) {
	polys := ToothPolygons(36, 0, 0, 40)
	assert.Len(t, polys, 5)

	byRegion := map[Region]Polygon{}
	for _, p := range polys {
		assert.Len(t, p.Points, 4)
		byRegion[p.Region] = p
	}
	assert.Equal(t, "10,10 30,10 30,30 10,30", byRegion[RegionCenter].SVGPoints())
	assert.Equal(t, "0,0 40,0 30,10 10,10", byRegion[RegionTop].SVGPoints())
	assert.Equal(t, SurfaceOcclusal, byRegion[RegionCenter].Surface)
	assert.Equal(t, SurfaceLingual, byRegion[RegionTop].Surface)
}
