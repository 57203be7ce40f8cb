package dataset

import (
	"errors"
	"strings"

	"lcaingest/pkg/classify"
	"lcaingest/pkg/identity"
	"lcaingest/pkg/mapping"
	"lcaingest/pkg/merge"
	"lcaingest/pkg/model"
)

// sliceStages is the module coverage of the SLiCE archetype model. The
// export carries one row per (element, flow, stage) triple, so the
// stage list is fixed by the model rather than observed per project.
var sliceStages = []model.LifeCycleStage{
	model.StageA1A3,
	model.StageA4,
	model.StageA5,
	model.StageB2,
	model.StageB4,
	model.StageB5,
	model.StageB6,
	model.StageC1,
	model.StageC2,
	model.StageC3,
	model.StageC4,
}

// SLiCE builds the profile for the SLiCE building stock archetypes.
// Impacts arrive one life cycle stage per row and are summed into the
// product's technical flow across rows; project and assembly totals are
// rolled up from products after the pass.
func SLiCE() (*merge.Profile, error) {
	table, err := loadTable("slice", "slice.json")
	if err != nil {
		return nil, err
	}
	res := mapping.NewResolver(table)
	cls := classify.New(table)

	categoryKeys := table.Prefixed("impact_category_key.")
	categories := make([]model.ImpactCategory, 0, len(categoryKeys))
	for _, key := range categoryKeys {
		categories = append(categories, model.ImpactCategory(strings.TrimPrefix(key, "impact_category_key.")))
	}

	addRow := func(product *model.Product, record map[string]string) error {
		rawStage, err := res.Raw(record, "life_cycle_stage")
		if err != nil {
			return err
		}
		stage, ok := model.ParseLifeCycleStage(rawStage)
		if !ok {
			return &classify.UnknownCategoryError{Dataset: table.Dataset, Family: "life_cycle_stage", Raw: rawStage}
		}
		for _, key := range categoryKeys {
			value, err := res.Float(record, key)
			if err != nil {
				return err
			}
			category := model.ImpactCategory(strings.TrimPrefix(key, "impact_category_key."))
			merge.Accumulate(product.ImpactData.Impacts, category, stage, value)
		}
		return nil
	}

	return &merge.Profile{
		Dataset: "slice",
		ProjectID: func(record map[string]string) (string, error) {
			content, err := res.Raw(record, "id")
			if err != nil {
				return "", err
			}
			return identity.Derive(content), nil
		},
		NewProject: func(record map[string]string) (*model.Project, error) {
			return sliceProject(res, cls, categories, record)
		},
		AssemblyID: func(record map[string]string) (string, error) {
			content, err := res.Raw(record, "assemblies.id")
			if err != nil {
				return "", err
			}
			return identity.Derive(content), nil
		},
		NewAssembly: func(record map[string]string) (*model.Assembly, error) {
			return sliceAssembly(res, record)
		},
		ProductID: func(record map[string]string) (string, error) {
			content, err := res.Concat(record, "assemblies.products.id", "")
			if err != nil {
				return "", err
			}
			return identity.Derive(content), nil
		},
		NewProduct: func(record map[string]string) (*model.Product, error) {
			product, err := sliceProduct(res, record)
			if err != nil {
				return nil, err
			}
			if err := addRow(product, record); err != nil {
				return nil, err
			}
			return product, nil
		},
		MergeProduct: addRow,
		Finalize: func(project *model.Project) error {
			model.CalculateResults(project)
			return nil
		},
	}, nil
}

func sliceProject(res *mapping.Resolver, cls *classify.Classifier, categories []model.ImpactCategory, record map[string]string) (*model.Project, error) {
	content, err := res.Raw(record, "id")
	if err != nil {
		return nil, err
	}

	rawRegion, err := res.Raw(record, "location.country")
	if err != nil {
		return nil, err
	}
	country, err := cls.Single("country", rawRegion)
	if err != nil {
		// Regions outside the configured climate zones fall back to the
		// model's reference country instead of aborting the run.
		var unknown *classify.UnknownCategoryError
		if !errors.As(err, &unknown) {
			return nil, err
		}
		country = "deu"
	}

	info, err := sliceProjectInfo(res, cls, record)
	if err != nil {
		return nil, err
	}

	stages := make([]model.LifeCycleStage, len(sliceStages))
	copy(stages, sliceStages)

	return &model.Project{
		ID:                   identity.Derive(content),
		Name:                 "Undefined",
		FormatVersion:        model.FormatVersion,
		ClassificationSystem: strPtr("SfB"),
		ImpactCategories:     categories,
		LifeCycleStages:      stages,
		Location:             model.Location{Country: model.Country(country)},
		Assemblies:           model.NewAssemblyMap(),
		ProjectInfo:          info,
		ProjectPhase:         model.PhaseOther,
		SoftwareInfo:         model.SoftwareInfo{LCASoftware: "SLiCE"},
		MetaData: map[string]any{
			"source": map[string]any{"name": "SLiCE", "url": nil},
		},
	}, nil
}

func sliceProjectInfo(res *mapping.Resolver, cls *classify.Classifier, record map[string]string) (*model.ProjectInfo, error) {
	info := model.NewProjectInfo()

	// Archetypes are normalized to one square metre of floor area.
	info.GrossFloorArea = model.AreaType{Value: 1, Unit: model.UnitM2}
	info.FloorsAboveGround = 1
	info.RoofType = model.RoofUnknown

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

	return info, nil
}

func sliceAssembly(res *mapping.Resolver, record map[string]string) (*model.Assembly, error) {
	content, err := res.Raw(record, "assemblies.id")
	if err != nil {
		return nil, err
	}
	name, err := res.StringOr(record, "assemblies.name", "")
	if err != nil {
		return nil, err
	}
	code, err := res.StringOr(record, "assemblies.classification.code", "")
	if err != nil {
		return nil, err
	}
	className, err := res.StringOr(record, "assemblies.classification.name", "")
	if err != nil {
		return nil, err
	}

	return &model.Assembly{
		ID:   identity.Derive(content),
		Name: name,
		Classification: []model.Classification{
			{System: "SfB", Code: code, Name: className},
		},
		Quantity: 1,
		Unit:     model.UnitKg,
		Products: model.NewProductMap(),
		Type:     "actual",
	}, nil
}

func sliceProduct(res *mapping.Resolver, record map[string]string) (*model.Product, error) {
	content, err := res.Concat(record, "assemblies.products.id", "")
	if err != nil {
		return nil, err
	}
	name, err := res.Concat(record, "assemblies.products.name", " ")
	if err != nil {
		return nil, err
	}
	flowContent, err := res.Raw(record, "assemblies.products.impact_data.id")
	if err != nil {
		return nil, err
	}
	flowName, err := res.StringOr(record, "assemblies.products.impact_data.name", "")
	if err != nil {
		return nil, err
	}

	return &model.Product{
		ID:                   identity.Derive(content),
		Name:                 name,
		ReferenceServiceLife: 50,
		Quantity:             1,
		Unit:                 model.UnitKg,
		Type:                 "actual",
		ImpactData: &model.TechFlow{
			ID:            identity.Derive(flowContent),
			Name:          flowName,
			DeclaredUnit:  model.UnitKg,
			FormatVersion: model.FormatVersion,
			Location:      model.CountryUnknown,
			Impacts:       model.Impacts{},
			Type:          "actual",
		},
	}, nil
}
