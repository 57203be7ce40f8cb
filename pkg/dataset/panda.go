package dataset

import (
	"lcaingest/pkg/classify"
	"lcaingest/pkg/identity"
	"lcaingest/pkg/mapping"
	"lcaingest/pkg/merge"
	"lcaingest/pkg/model"
)

// StructuralPanda builds the profile for the IStructE Structural Panda
// survey of structural frame assessments. The export is flat and
// anonymous: one row is one project, identified by its content, with
// GWP totals per module and no element breakdown.
func StructuralPanda() (*merge.Profile, error) {
	table, err := loadTable("structural-panda", "structural_panda.json")
	if err != nil {
		return nil, err
	}
	res := mapping.NewResolver(table)
	cls := classify.New(table)

	return &merge.Profile{
		Dataset: "structural-panda",
		ProjectID: func(record map[string]string) (string, error) {
			return identity.Derive(serializeRecord(record)), nil
		},
		NewProject: func(record map[string]string) (*model.Project, error) {
			return pandaProject(res, cls, record)
		},
	}, nil
}

func pandaProject(res *mapping.Resolver, cls *classify.Classifier, record map[string]string) (*model.Project, error) {
	results, err := merge.TotalsFromRow(res, record, "results.", 1)
	if err != nil {
		return nil, err
	}

	info, err := pandaProjectInfo(res, cls, record)
	if err != nil {
		return nil, err
	}

	assessmentYear, err := res.IntLenient(record, "meta_data.assessment.year")
	if err != nil {
		return nil, err
	}

	usedPanda, err := res.StringOr(record, "software_info.used_panda", "")
	if err != nil {
		return nil, err
	}
	var lcaSoftware string
	if usedPanda == "Yes" {
		lcaSoftware = "Structural Panda"
	}

	return &model.Project{
		ID:               identity.Derive(serializeRecord(record)),
		Name:             "Undefined",
		FormatVersion:    model.FormatVersion,
		ImpactCategories: results.Categories(),
		LifeCycleStages:  results.Stages(),
		Location:         model.Location{Country: "gbr"},
		Assemblies:       model.NewAssemblyMap(),
		Results:          results,
		ProjectInfo:      info,
		ProjectPhase:     model.PhaseOther,
		SoftwareInfo:     model.SoftwareInfo{LCASoftware: lcaSoftware},
		MetaData: map[string]any{
			"assessment": map[string]any{"year": assessmentYear},
			"source":     map[string]any{"name": "Structural Panda", "url": nil},
		},
	}, nil
}

func pandaProjectInfo(res *mapping.Resolver, cls *classify.Classifier, record map[string]string) (*model.ProjectInfo, error) {
	info := model.NewProjectInfo()

	gfa, err := res.Float(record, "project_info.gross_floor_area.value")
	if err != nil {
		return nil, err
	}
	info.GrossFloorArea = model.AreaType{
		Value:      floatOrZero(gfa),
		Unit:       model.UnitM2,
		Definition: "GIFA",
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

	floorsAbove, err := res.IntLenient(record, "project_info.floors_above_ground")
	if err != nil {
		return nil, err
	}
	info.FloorsAboveGround = intOrZero(floorsAbove)

	frameType, err := res.String(record, "project_info.frame_type")
	if err != nil {
		return nil, err
	}
	info.FrameType = frameType

	info.GeneralEnergyClass = model.EnergyClassUnknown
	info.RoofType = model.RoofOther

	return info, nil
}
