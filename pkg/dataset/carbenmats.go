package dataset

import (
	"lcaingest/pkg/classify"
	"lcaingest/pkg/identity"
	"lcaingest/pkg/mapping"
	"lcaingest/pkg/merge"
	"lcaingest/pkg/model"
)

// carbEnMatsStudyPeriod scales the survey's per-m2-per-year GWP columns
// back to whole-lifetime totals.
const carbEnMatsStudyPeriod = 50

// CarbEnMats builds the profile for the CarbEnMats whole-building
// survey. The export is flat: one row is one complete project with no
// element or material breakdown, and rows carry no identifier, so
// project identity is derived from the full row content.
func CarbEnMats() (*merge.Profile, error) {
	table, err := loadTable("carbenmats", "carbenmats.json")
	if err != nil {
		return nil, err
	}
	res := mapping.NewResolver(table)
	cls := classify.New(table)

	return &merge.Profile{
		Dataset: "carbenmats",
		ProjectID: func(record map[string]string) (string, error) {
			return identity.Derive(serializeRecord(record)), nil
		},
		NewProject: func(record map[string]string) (*model.Project, error) {
			return carbEnMatsProject(res, cls, record)
		},
	}, nil
}

func carbEnMatsProject(res *mapping.Resolver, cls *classify.Classifier, record map[string]string) (*model.Project, error) {
	results, err := merge.TotalsFromRow(res, record, "results.", carbEnMatsStudyPeriod)
	if err != nil {
		return nil, err
	}

	name, err := res.StringOr(record, "name", "Undefined")
	if err != nil {
		return nil, err
	}
	country, err := res.StringOr(record, "location.country", "")
	if err != nil {
		return nil, err
	}
	city, err := res.String(record, "location.city")
	if err != nil {
		return nil, err
	}
	studyPeriod, err := res.IntLenient(record, "reference_study_period")
	if err != nil {
		return nil, err
	}

	info, err := carbEnMatsProjectInfo(res, cls, record)
	if err != nil {
		return nil, err
	}

	assessmentYear, err := res.IntLenient(record, "meta_data.assessment.year")
	if err != nil {
		return nil, err
	}

	lcaSoftware, err := res.StringOr(record, "software_info.lca_software", "")
	if err != nil {
		return nil, err
	}
	goalAndScope, err := res.String(record, "software_info.goal_and_scope_definition")
	if err != nil {
		return nil, err
	}

	var categories []model.ImpactCategory
	if !results.Empty() {
		categories = []model.ImpactCategory{model.GWP}
	}

	return &model.Project{
		ID:                   identity.Derive(serializeRecord(record)),
		Name:                 name,
		FormatVersion:        model.FormatVersion,
		ReferenceStudyPeriod: studyPeriod,
		ImpactCategories:     categories,
		LifeCycleStages:      results.Stages(),
		Location: model.Location{
			Country: classify.Country(country),
			City:    city,
		},
		Assemblies:   model.NewAssemblyMap(),
		Results:      results,
		ProjectInfo:  info,
		ProjectPhase: model.PhaseOther,
		SoftwareInfo: model.SoftwareInfo{
			LCASoftware:            lcaSoftware,
			GoalAndScopeDefinition: goalAndScope,
		},
		MetaData: map[string]any{
			"assessment": map[string]any{"year": assessmentYear},
			"source":     map[string]any{"name": "CarbEnMats", "url": nil},
		},
	}, nil
}

func carbEnMatsProjectInfo(res *mapping.Resolver, cls *classify.Classifier, record map[string]string) (*model.ProjectInfo, error) {
	info := model.NewProjectInfo()

	year, err := res.IntLenient(record, "project_info.building_completion_year")
	if err != nil {
		return nil, err
	}
	info.BuildingCompletionYear = year

	users, err := res.IntTruncated(record, "project_info.building_users")
	if err != nil {
		return nil, err
	}
	info.BuildingUsers = users

	gfa, err := res.Float(record, "project_info.gross_floor_area.value")
	if err != nil {
		return nil, err
	}
	definition, err := res.StringOr(record, "project_info.gross_floor_area.definition", "")
	if err != nil {
		return nil, err
	}
	info.GrossFloorArea = model.AreaType{
		Value:      floatOrZero(gfa),
		Unit:       model.UnitM2,
		Definition: definition,
	}

	if footprint, err := res.Float(record, "project_info.building_footprint.value"); err != nil {
		return nil, err
	} else if footprint != nil {
		info.BuildingFootprint = &model.ValueUnit{Value: *footprint, Unit: model.UnitM2}
	}

	rawType, err := res.Raw(record, "project_info.building_type")
	if err != nil {
		return nil, err
	}
	buildingType, err := cls.Single("building_type", rawType)
	if err != nil {
		return nil, err
	}
	info.BuildingType = model.BuildingType(buildingType)

	rawTypology, err := res.Raw(record, "project_info.building_typology")
	if err != nil {
		return nil, err
	}
	typologies, err := cls.Multi("building_typology", rawTypology)
	if err != nil {
		return nil, err
	}
	for _, t := range typologies {
		info.BuildingTypology = append(info.BuildingTypology, model.BuildingTypology(t))
	}

	rawEnergy, err := res.Raw(record, "project_info.general_energy_class")
	if err != nil {
		return nil, err
	}
	energy, err := cls.Single("general_energy_class", rawEnergy)
	if err != nil {
		return nil, err
	}
	info.GeneralEnergyClass = model.GeneralEnergyClass(energy)

	rawRoof, err := res.Raw(record, "project_info.roof_type")
	if err != nil {
		return nil, err
	}
	roof, err := cls.Single("roof_type", rawRoof)
	if err != nil {
		return nil, err
	}
	info.RoofType = model.RoofType(roof)

	floorsAbove, err := res.IntLenient(record, "project_info.floors_above_ground")
	if err != nil {
		return nil, err
	}
	info.FloorsAboveGround = intOrZero(floorsAbove)
	floorsBelow, err := res.IntLenient(record, "project_info.floors_below_ground")
	if err != nil {
		return nil, err
	}
	info.FloorsBelowGround = floorsBelow

	frameType, err := res.String(record, "project_info.frame_type")
	if err != nil {
		return nil, err
	}
	info.FrameType = frameType

	return info, nil
}
