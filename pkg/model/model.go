// Package model carries the canonical project/assembly/product data
// model that every source dataset is normalized into. The field
// contracts follow the LCAx project exchange format; ownership is
// strictly tree shaped (Project owns Assemblies, Assembly owns
// Products, Product wraps one technical flow) and entities hold no
// back-references.
package model

// FormatVersion is the canonical schema version stamped on every
// serialized entity.
const FormatVersion = "3.0.1"

// Impacts is the result matrix: impact category -> life cycle stage ->
// accumulated numeric value.
type Impacts map[ImpactCategory]map[LifeCycleStage]float64

// Add folds a contribution into the matrix. The first contribution for
// a (category, stage) cell establishes it; later ones add to it.
func (im Impacts) Add(category ImpactCategory, stage LifeCycleStage, value float64) {
	cells, ok := im[category]
	if !ok {
		cells = make(map[LifeCycleStage]float64)
		im[category] = cells
	}
	cells[stage] += value
}

// Set overwrites a (category, stage) cell. Used for source columns that
// are already pre-aggregated totals and must not be summed across rows.
func (im Impacts) Set(category ImpactCategory, stage LifeCycleStage, value float64) {
	cells, ok := im[category]
	if !ok {
		cells = make(map[LifeCycleStage]float64)
		im[category] = cells
	}
	cells[stage] = value
}

// Merge adds every cell of other into im.
func (im Impacts) Merge(other Impacts) {
	for category, cells := range other {
		for stage, value := range cells {
			im.Add(category, stage, value)
		}
	}
}

// Empty reports whether no cell holds a value.
func (im Impacts) Empty() bool {
	for _, cells := range im {
		if len(cells) > 0 {
			return false
		}
	}
	return true
}

// Location is where a project's building stands.
type Location struct {
	Country Country `json:"country"`
	City    *string `json:"city"`
	Address *string `json:"address"`
}

// AreaType is an area value with its unit and measurement definition
// (e.g. "GIA", "GIFA").
type AreaType struct {
	Value      float64 `json:"value"`
	Unit       Unit    `json:"unit"`
	Definition string  `json:"definition"`
}

// ValueUnit is a bare quantity with its unit.
type ValueUnit struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Classification places an assembly in a classification system such as
// SfB or Uniclass.
type Classification struct {
	System string `json:"system"`
	Code   string `json:"code"`
	Name   string `json:"name"`
}

// SoftwareInfo records which LCA tool produced the source assessment.
type SoftwareInfo struct {
	LCASoftware            string  `json:"lcaSoftware"`
	GoalAndScopeDefinition *string `json:"goalAndScopeDefinition"`
	CalculationType        *string `json:"calculationType"`
}

// ProjectInfo is the building descriptor nested in a project.
type ProjectInfo struct {
	Type                   string             `json:"type"`
	BuildingCompletionYear *int               `json:"buildingCompletionYear,omitempty"`
	BuildingFootprint      *ValueUnit         `json:"buildingFootprint,omitempty"`
	BuildingHeight         *ValueUnit         `json:"buildingHeight,omitempty"`
	BuildingType           BuildingType       `json:"buildingType"`
	BuildingTypology       []BuildingTypology `json:"buildingTypology"`
	BuildingUsers          *int               `json:"buildingUsers,omitempty"`
	FloorsAboveGround      int                `json:"floorsAboveGround"`
	FloorsBelowGround      *int               `json:"floorsBelowGround,omitempty"`
	FrameType              *string            `json:"frameType,omitempty"`
	GeneralEnergyClass     GeneralEnergyClass `json:"generalEnergyClass"`
	GrossFloorArea         AreaType           `json:"grossFloorArea"`
	RoofType               RoofType           `json:"roofType"`
}

// NewProjectInfo returns a ProjectInfo with the fixed descriptor type
// set. Callers fill the remaining fields.
func NewProjectInfo() *ProjectInfo {
	return &ProjectInfo{Type: "buildingInfo"}
}

// TechFlow is the impact data record for one material/product flow,
// independent of quantity.
type TechFlow struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	DeclaredUnit  Unit           `json:"declaredUnit"`
	FormatVersion string         `json:"formatVersion"`
	Source        *string        `json:"source"`
	Comment       *string        `json:"comment"`
	Location      Country        `json:"location"`
	Impacts       Impacts        `json:"impacts"`
	MetaData      map[string]any `json:"metaData,omitempty"`
	Type          string         `json:"type"`
}

// Product is a leaf entity inside an assembly wrapping one technical
// flow. On repeat rows only the technical flow's impact matrix mutates;
// identity and naming fields are fixed at first sight.
type Product struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Description          string         `json:"description"`
	ReferenceServiceLife int            `json:"referenceServiceLife"`
	ImpactData           *TechFlow      `json:"impactData"`
	Quantity             float64        `json:"quantity"`
	Unit                 Unit           `json:"unit"`
	Results              Impacts        `json:"results,omitempty"`
	MetaData             map[string]any `json:"metaData,omitempty"`
	Type                 string         `json:"type"`
}

// Assembly is a building element or material category owned by a
// project.
type Assembly struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Classification []Classification `json:"classification,omitempty"`
	Quantity       float64          `json:"quantity"`
	Unit           Unit             `json:"unit"`
	Products       *ProductMap      `json:"products"`
	Results        Impacts          `json:"results,omitempty"`
	MetaData       map[string]any   `json:"metaData,omitempty"`
	Type           string           `json:"type"`
}

// Project is the canonical top-level entity.
type Project struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Description          *string          `json:"description"`
	Location             Location         `json:"location"`
	FormatVersion        string           `json:"formatVersion"`
	ClassificationSystem *string          `json:"classificationSystem"`
	ReferenceStudyPeriod *int             `json:"referenceStudyPeriod"`
	LifeCycleStages      []LifeCycleStage `json:"lifeCycleStages"`
	ImpactCategories     []ImpactCategory `json:"impactCategories"`
	Assemblies           *AssemblyMap     `json:"assemblies"`
	Results              Impacts          `json:"results"`
	ProjectInfo          *ProjectInfo     `json:"projectInfo"`
	ProjectPhase         ProjectPhase     `json:"projectPhase"`
	SoftwareInfo         SoftwareInfo     `json:"softwareInfo"`
	MetaData             map[string]any   `json:"metaData,omitempty"`
}
