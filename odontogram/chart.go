package odontogram

// ToothState is the effective picture of one tooth after merging its marks.
type ToothState struct {
	Tooth    int              `json:"tooth_number"`
	Whole    *Mark            `json:"whole,omitempty"`
	Surfaces map[Surface]Mark `json:"surfaces,omitempty"`
}

// RegionMark returns the mark to draw in region r. A whole-tooth mark takes
// precedence over anything recorded on individual surfaces.
func (s *ToothState) RegionMark(r Region) (Mark, bool) {
	if s == nil {
		return Mark{}, false
	}
	if s.Whole != nil {
		return *s.Whole, true
	}
	for _, surface := range Surfaces {
		m, ok := s.Surfaces[surface]
		if !ok {
			continue
		}
		if reg, ok := RegionOf(s.Tooth, surface); ok && reg == r {
			return m, true
		}
	}
	return Mark{}, false
}

// Chart maps tooth numbers to their effective state.
type Chart map[int]*ToothState

// BuildChart folds marks into per-tooth state. Spanning marks are applied to
// every tooth of their range. Healthy marks are skipped since they are never
// stored.
func BuildChart(marks []Mark) Chart {
	chart := Chart{}
	for _, m := range marks {
		if m.Condition == ConditionHealthy {
			continue
		}
		teeth := []int{m.Tooth}
		if m.RangeEnd != 0 {
			if span, err := SpanTeeth(m.Tooth, m.RangeEnd); err == nil {
				teeth = span
			}
		}
		for _, t := range teeth {
			st := chart[t]
			if st == nil {
				st = &ToothState{Tooth: t, Surfaces: map[Surface]Mark{}}
				chart[t] = st
			}
			placed := m
			placed.Tooth = t
			if m.Surface == SurfaceWhole {
				st.Whole = &placed
				continue
			}
			st.Surfaces[m.Surface] = placed
		}
	}
	return chart
}
