package model

import "strings"

// LifeCycleStage is an EN 15978 life cycle module against which impacts
// are reported.
type LifeCycleStage string

const (
	StageA0   LifeCycleStage = "a0"
	StageA1A3 LifeCycleStage = "a1a3"
	StageA4   LifeCycleStage = "a4"
	StageA5   LifeCycleStage = "a5"
	StageB1   LifeCycleStage = "b1"
	StageB2   LifeCycleStage = "b2"
	StageB3   LifeCycleStage = "b3"
	StageB4   LifeCycleStage = "b4"
	StageB5   LifeCycleStage = "b5"
	StageB6   LifeCycleStage = "b6"
	StageB7   LifeCycleStage = "b7"
	StageB8   LifeCycleStage = "b8"
	StageC1   LifeCycleStage = "c1"
	StageC2   LifeCycleStage = "c2"
	StageC3   LifeCycleStage = "c3"
	StageC4   LifeCycleStage = "c4"
	StageD    LifeCycleStage = "d"
)

// stageLabels maps source spellings of EN 15978 module labels to stages.
// Lookup is case-insensitive; dataset exports write "A1-3" or "A1-A3" for
// the aggregated product stage.
var stageLabels = map[string]LifeCycleStage{
	"a0":    StageA0,
	"a1-3":  StageA1A3,
	"a1-a3": StageA1A3,
	"a1a3":  StageA1A3,
	"a4":    StageA4,
	"a5":    StageA5,
	"b1":    StageB1,
	"b2":    StageB2,
	"b3":    StageB3,
	"b4":    StageB4,
	"b5":    StageB5,
	"b6":    StageB6,
	"b7":    StageB7,
	"b8":    StageB8,
	"c1":    StageC1,
	"c2":    StageC2,
	"c3":    StageC3,
	"c4":    StageC4,
	"d":     StageD,
}

// ParseLifeCycleStage resolves a source module label to a LifeCycleStage.
// The second return value is false when the label is not recognized.
func ParseLifeCycleStage(label string) (LifeCycleStage, bool) {
	stage, ok := stageLabels[strings.ToLower(strings.TrimSpace(label))]
	return stage, ok
}

// ImpactCategory is a class of environmental effect tracked per life
// cycle stage, named after the EN 15804+A2 indicator set.
type ImpactCategory string

const (
	GWP    ImpactCategory = "gwp"
	GWPFos ImpactCategory = "gwp_fos"
	GWPBio ImpactCategory = "gwp_bio"
	GWPLul ImpactCategory = "gwp_lul"
	ODP    ImpactCategory = "odp"
	AP     ImpactCategory = "ap"
	EPFw   ImpactCategory = "ep_fw"
	EPMar  ImpactCategory = "ep_mar"
	EPTer  ImpactCategory = "ep_ter"
	POCP   ImpactCategory = "pocp"
	ADPE   ImpactCategory = "adpe"
	ADPF   ImpactCategory = "adpf"
	WDP    ImpactCategory = "wdp"
	PM     ImpactCategory = "pm"
	IRP    ImpactCategory = "irp"
	ETPFw  ImpactCategory = "etp_fw"
	HTPc   ImpactCategory = "htp_c"
	HTPnc  ImpactCategory = "htp_nc"
	SQP    ImpactCategory = "sqp"
)

// BuildingType describes the kind of construction works a project covers.
type BuildingType string

const (
	BuildingTypeNewConstruction          BuildingType = "new_construction_works"
	BuildingTypeDemolition               BuildingType = "demolition"
	BuildingTypeDeconstructionAndNew     BuildingType = "deconstruction_and_new_construction_works"
	BuildingTypeRenovation               BuildingType = "renovation_works"
	BuildingTypeExtension                BuildingType = "extension_works"
	BuildingTypeRetrofit                 BuildingType = "retrofit_works"
	BuildingTypeRetrofitAndExtension     BuildingType = "retrofit_and_extension_works"
	BuildingTypeFitOut                   BuildingType = "fit_out_works"
	BuildingTypeOperations               BuildingType = "operations"
	BuildingTypeUnknown                  BuildingType = "unknown"
	BuildingTypeOther                    BuildingType = "other"
)

// BuildingTypology describes what a building is used for. A project may
// carry several typologies (mixed use).
type BuildingTypology string

const (
	TypologyResidential    BuildingTypology = "residential"
	TypologyOffice         BuildingTypology = "office"
	TypologyPublic         BuildingTypology = "public"
	TypologyCommercial     BuildingTypology = "commercial"
	TypologyIndustrial     BuildingTypology = "industrial"
	TypologyInfrastructure BuildingTypology = "infrastructure"
	TypologyAgricultural   BuildingTypology = "agricultural"
	TypologyMixedUse       BuildingTypology = "mixed_use"
	TypologyUnknown        BuildingTypology = "unknown"
	TypologyOther          BuildingTypology = "other"
)

// RoofType describes the geometry of a building's roof.
type RoofType string

const (
	RoofFlat    RoofType = "flat"
	RoofPitched RoofType = "pitched"
	RoofSaddle  RoofType = "saddle"
	RoofPyramid RoofType = "pyramid"
	RoofUnknown RoofType = "unknown"
	RoofOther   RoofType = "other"
)

// GeneralEnergyClass is a coarse energy performance classification.
type GeneralEnergyClass string

const (
	EnergyClassExisting GeneralEnergyClass = "existing"
	EnergyClassStandard GeneralEnergyClass = "standard"
	EnergyClassAdvanced GeneralEnergyClass = "advanced"
	EnergyClassUnknown  GeneralEnergyClass = "unknown"
)

// ProjectPhase is the delivery phase a project was assessed in.
type ProjectPhase string

const (
	PhaseDesign  ProjectPhase = "design"
	PhaseOngoing ProjectPhase = "ongoing"
	PhaseBuilt   ProjectPhase = "built"
	PhaseOther   ProjectPhase = "other"
)

// Unit is a physical unit of measure for quantities and areas.
type Unit string

const (
	UnitM       Unit = "m"
	UnitM2      Unit = "m2"
	UnitM3      Unit = "m3"
	UnitKg      Unit = "kg"
	UnitTonnes  Unit = "tones"
	UnitPcs     Unit = "pcs"
	UnitL       Unit = "l"
	UnitKm      Unit = "km"
	UnitUnknown Unit = "unknown"
)

// Country is a lowercase ISO 3166-1 alpha-3 code, or "unknown" when the
// source value could not be resolved. Country is the only open
// vocabulary in the model; every other enum here is closed.
type Country string

// CountryUnknown marks an unresolvable source country.
const CountryUnknown Country = "unknown"
