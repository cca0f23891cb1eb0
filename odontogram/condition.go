package odontogram

import "fmt"

// Surface is a facial region of a tooth.
type Surface string

const (
	SurfaceOcclusal   Surface = "occlusal"
	SurfaceIncisal    Surface = "incisal"
	SurfaceMesial     Surface = "mesial"
	SurfaceDistal     Surface = "distal"
	SurfaceVestibular Surface = "vestibular"
	SurfaceLingual    Surface = "lingual"
	SurfacePalatal    Surface = "palatal"
	SurfaceCervical   Surface = "cervical"
	SurfaceWhole      Surface = "whole"
)

// Surfaces lists every accepted surface.
var Surfaces = []Surface{
	SurfaceOcclusal, SurfaceIncisal, SurfaceMesial, SurfaceDistal,
	SurfaceVestibular, SurfaceLingual, SurfacePalatal, SurfaceCervical, SurfaceWhole,
}

// Valid reports whether s is a known surface.
func (s Surface) Valid() bool {
	for _, v := range Surfaces {
		if v == s {
			return true
		}
	}
	return false
}

// ConditionType is what was found or done on a surface.
type ConditionType string

const (
	ConditionCaries            ConditionType = "caries"
	ConditionRestoration       ConditionType = "restoration"
	ConditionCrown             ConditionType = "crown"
	ConditionEndodontics       ConditionType = "endodontics"
	ConditionMissing           ConditionType = "missing"
	ConditionExtractionPlanned ConditionType = "extraction_planned"
	ConditionImplant           ConditionType = "implant"
	ConditionFracture          ConditionType = "fracture"
	ConditionSealant           ConditionType = "sealant"
	ConditionProsthesis        ConditionType = "prosthesis"
	ConditionOrthodontics      ConditionType = "orthodontics"
	ConditionBridge            ConditionType = "bridge"
	ConditionHealthy           ConditionType = "healthy"
)

// ConditionTypes lists every condition in the order they appear in the picker.
var ConditionTypes = []ConditionType{
	ConditionCaries, ConditionRestoration, ConditionCrown, ConditionEndodontics,
	ConditionMissing, ConditionExtractionPlanned, ConditionImplant, ConditionFracture,
	ConditionSealant, ConditionProsthesis, ConditionOrthodontics, ConditionBridge,
	ConditionHealthy,
}

// Valid reports whether c is a known condition type.
func (c ConditionType) Valid() bool {
	for _, v := range ConditionTypes {
		if v == c {
			return true
		}
	}
	return false
}

// Spanning reports whether the condition may cover a range of teeth.
func (c ConditionType) Spanning() bool {
	return c == ConditionBridge || c == ConditionOrthodontics || c == ConditionProsthesis
}

var conditionColors = map[ConditionType]string{
	ConditionCaries:            "#dc2626",
	ConditionRestoration:       "#2563eb",
	ConditionCrown:             "#ca8a04",
	ConditionEndodontics:       "#7c3aed",
	ConditionMissing:           "#6b7280",
	ConditionExtractionPlanned: "#ea580c",
	ConditionImplant:           "#0d9488",
	ConditionFracture:          "#be123c",
	ConditionSealant:           "#16a34a",
	ConditionProsthesis:        "#a16207",
	ConditionOrthodontics:      "#0891b2",
	ConditionBridge:            "#9333ea",
	ConditionHealthy:           "#ffffff",
}

// Color returns the fill used when drawing the condition.
func (c ConditionType) Color() string {
	if col, ok := conditionColors[c]; ok {
		return col
	}
	return "#ffffff"
}

// ConditionStatus is the clinical status of a tooth condition.
type ConditionStatus string

const (
	StatusPlanned    ConditionStatus = "planned"
	StatusInProgress ConditionStatus = "in_progress"
	StatusCompleted  ConditionStatus = "completed"
	StatusExisting   ConditionStatus = "existing"
)

// Valid reports whether s is a known condition status.
func (s ConditionStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusExisting:
		return true
	}
	return false
}

// Mark is one condition placed on a tooth surface, optionally spanning up
// to RangeEnd.
type Mark struct {
	Tooth     int             `json:"tooth_number"`
	RangeEnd  int             `json:"range_end_tooth,omitempty"`
	Surface   Surface         `json:"surface"`
	Condition ConditionType   `json:"condition_type"`
	Status    ConditionStatus `json:"status"`
	Notes     string          `json:"notes,omitempty"`
}

// Validate checks a mark before it is stored.
func (m Mark) Validate() error {
	if !IsValidTooth(m.Tooth) {
		return fmt.Errorf("invalid tooth number %d", m.Tooth)
	}
	if !m.Surface.Valid() {
		return fmt.Errorf("invalid surface %q", m.Surface)
	}
	if !m.Condition.Valid() {
		return fmt.Errorf("invalid condition type %q", m.Condition)
	}
	if m.Status != "" && !m.Status.Valid() {
		return fmt.Errorf("invalid condition status %q", m.Status)
	}
	if m.RangeEnd != 0 {
		if !m.Condition.Spanning() {
			return fmt.Errorf("condition %q cannot span teeth", m.Condition)
		}
		if _, err := SpanTeeth(m.Tooth, m.RangeEnd); err != nil {
			return err
		}
	}
	return nil
}
