package odontogram

import (
	"fmt"
	"strings"
)

// Region is one of the five drawable areas of a tooth box.
type Region string

const (
	RegionTop    Region = "top"
	RegionRight  Region = "right"
	RegionBottom Region = "bottom"
	RegionLeft   Region = "left"
	RegionCenter Region = "center"
)

// Regions lists the drawing order: the four trapezoids, then the centre.
var Regions = []Region{RegionTop, RegionRight, RegionBottom, RegionLeft, RegionCenter}

// Point is an SVG user-space coordinate.
type Point struct {
	X, Y float64
}

// Polygon is a closed shape for one region.
type Polygon struct {
	Region  Region  `json:"region"`
	Surface Surface `json:"surface"`
	Points  []Point `json:"points"`
}

// SVGPoints renders the polygon as an SVG points attribute.
func (p Polygon) SVGPoints() string {
	parts := make([]string, len(p.Points))
	for i, pt := range p.Points {
		parts[i] = fmt.Sprintf("%g,%g", pt.X, pt.Y)
	}
	return strings.Join(parts, " ")
}

// CenterSurface is incisal for incisors and canines, occlusal otherwise.
func CenterSurface(tooth int) Surface {
	if IsAnterior(tooth) {
		return SurfaceIncisal
	}
	return SurfaceOcclusal
}

// SurfaceAt returns the surface drawn in region r of the tooth. Top and
// bottom swap between arches; left and right mirror across the midline so
// that mesial always faces the centre of the chart.
func SurfaceAt(tooth int, r Region) Surface {
	switch r {
	case RegionTop:
		if ArchOf(tooth) == ArchUpper {
			return SurfaceVestibular
		}
		return SurfaceLingual
	case RegionBottom:
		if ArchOf(tooth) == ArchUpper {
			return SurfaceLingual
		}
		return SurfaceVestibular
	case RegionLeft:
		if OnViewerLeft(tooth) {
			return SurfaceDistal
		}
		return SurfaceMesial
	case RegionRight:
		if OnViewerLeft(tooth) {
			return SurfaceMesial
		}
		return SurfaceDistal
	default:
		return CenterSurface(tooth)
	}
}

// RegionOf is the inverse of SurfaceAt. Palatal shares the lingual region,
// cervical is drawn on the vestibular region, and occlusal/incisal both land
// in the centre. Whole has no single region and reports false.
func RegionOf(tooth int, s Surface) (Region, bool) {
	switch s {
	case SurfaceWhole:
		return "", false
	case SurfaceOcclusal, SurfaceIncisal:
		return RegionCenter, true
	case SurfacePalatal:
		s = SurfaceLingual
	case SurfaceCervical:
		s = SurfaceVestibular
	}
	for _, r := range Regions {
		if SurfaceAt(tooth, r) == s {
			return r, true
		}
	}
	return "", false
}

// ToothPolygons splits the square at (x, y) with side size into four
// trapezoids and a centre square inset by a quarter of the side.
func ToothPolygons(tooth int, x, y, size float64) []Polygon {
	in := size / 4
	x2, y2 := x+size, y+size
	shapes := map[Region][]Point{
		RegionTop:    {{x, y}, {x2, y}, {x2 - in, y + in}, {x + in, y + in}},
		RegionRight:  {{x2, y}, {x2, y2}, {x2 - in, y2 - in}, {x2 - in, y + in}},
		RegionBottom: {{x2, y2}, {x, y2}, {x + in, y2 - in}, {x2 - in, y2 - in}},
		RegionLeft:   {{x, y2}, {x, y}, {x + in, y + in}, {x + in, y2 - in}},
		RegionCenter: {{x + in, y + in}, {x2 - in, y + in}, {x2 - in, y2 - in}, {x + in, y2 - in}},
	}
	out := make([]Polygon, 0, len(Regions))
	for _, r := range Regions {
		out = append(out, Polygon{Region: r, Surface: SurfaceAt(tooth, r), Points: shapes[r]})
	}
	return out
}
