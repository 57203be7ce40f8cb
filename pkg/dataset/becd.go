package dataset

import (
	"strings"

	"lcaingest/pkg/classify"
	"lcaingest/pkg/identity"
	"lcaingest/pkg/mapping"
	"lcaingest/pkg/merge"
	"lcaingest/pkg/model"
)

// becdDateLayout matches the export's "25/03/2023 14:02:11" timestamps.
const becdDateLayout = "02/01/2006 15:04:05"

// BECD builds the profile for the Built Environment Carbon Database
// export. Projects span multiple rows keyed by a pass-through project
// reference; every included row contributes one building element
// (assembly) wrapping one material (product). Impact results arrive
// pre-aggregated at both project and element level, so they are set
// from total columns, never summed across rows.
func BECD() (*merge.Profile, error) {
	table, err := loadTable("becd", "becd.json")
	if err != nil {
		return nil, err
	}
	res := mapping.NewResolver(table)
	cls := classify.New(table)

	return &merge.Profile{
		Dataset: "becd",
		ProjectID: func(record map[string]string) (string, error) {
			return res.Raw(record, "id")
		},
		Excluded: func(record map[string]string) (bool, error) {
			raw, err := res.Raw(record, "emissions_included")
			if err != nil {
				return false, err
			}
			return strings.EqualFold(strings.TrimSpace(raw), "no"), nil
		},
		NewProject: func(record map[string]string) (*model.Project, error) {
			return becdProject(res, cls, record)
		},
		AssemblyID: func(record map[string]string) (string, error) {
			content, err := res.Raw(record, "assemblies.id")
			if err != nil {
				return "", err
			}
			return identity.Derive(content), nil
		},
		NewAssembly: func(record map[string]string) (*model.Assembly, error) {
			return becdAssembly(res, record)
		},
		ProductID: func(record map[string]string) (string, error) {
			content, err := res.Raw(record, "assemblies.products.id")
			if err != nil {
				return "", err
			}
			return identity.Derive(content), nil
		},
		NewProduct: func(record map[string]string) (*model.Product, error) {
			return becdProduct(res, record)
		},
		MergeProduct: func(product *model.Product, record map[string]string) error {
			// Repeat materials inside one element do not occur in BECD
			// exports, but the additive product-level contract still
			// applies if one shows up.
			results, err := merge.TotalsFromRow(res, record, "assemblies.results.", 1)
			if err != nil {
				return err
			}
			if results != nil {
				product.ImpactData.Impacts.Merge(results)
			}
			return nil
		},
	}, nil
}

func becdProject(res *mapping.Resolver, cls *classify.Classifier, record map[string]string) (*model.Project, error) {
	results, err := merge.TotalsFromRow(res, record, "results.", 1)
	if err != nil {
		return nil, err
	}

	rawID, err := res.Raw(record, "id")
	if err != nil {
		return nil, err
	}
	name, err := res.StringOr(record, "name", "")
	if err != nil {
		return nil, err
	}
	description, err := res.String(record, "description")
	if err != nil {
		return nil, err
	}
	studyPeriod, err := res.Int(record, "reference_study_period")
	if err != nil {
		return nil, err
	}

	city, err := res.String(record, "location.city")
	if err != nil {
		return nil, err
	}
	rawCountry, err := res.StringOr(record, "location.country", "")
	if err != nil {
		return nil, err
	}

	info, err := becdProjectInfo(res, cls, record)
	if err != nil {
		return nil, err
	}
	meta, err := becdMetaData(res, record)
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

	return &model.Project{
		ID:                   strings.TrimPrefix(rawID, "BECD-"),
		Name:                 name,
		Description:          description,
		FormatVersion:        model.FormatVersion,
		ReferenceStudyPeriod: studyPeriod,
		ImpactCategories:     results.Categories(),
		LifeCycleStages:      results.Stages(),
		Location: model.Location{
			Country: classify.Country(rawCountry),
			City:    city,
		},
		Assemblies:   model.NewAssemblyMap(),
		Results:      results,
		ProjectInfo:  info,
		ProjectPhase: model.PhaseOther,
		MetaData:     meta,
		SoftwareInfo: model.SoftwareInfo{
			LCASoftware:            lcaSoftware,
			GoalAndScopeDefinition: goalAndScope,
		},
	}, nil
}

func becdProjectInfo(res *mapping.Resolver, cls *classify.Classifier, record map[string]string) (*model.ProjectInfo, error) {
	info := model.NewProjectInfo()

	year, err := res.YearFromDate(record, "project_info.building_completion_year", becdDateLayout)
	if err != nil {
		return nil, err
	}
	info.BuildingCompletionYear = year

	if height, err := res.Float(record, "project_info.building_height.value"); err != nil {
		return nil, err
	} else if height != nil {
		info.BuildingHeight = &model.ValueUnit{Value: *height, Unit: model.UnitM}
	}
	if footprint, err := res.Float(record, "project_info.building_footprint.value"); err != nil {
		return nil, err
	} else if footprint != nil {
		info.BuildingFootprint = &model.ValueUnit{Value: *footprint, Unit: model.UnitM}
	}

	gfa, err := res.Float(record, "project_info.gross_floor_area.value")
	if err != nil {
		return nil, err
	}
	info.GrossFloorArea = model.AreaType{
		Value:      floatOrZero(gfa),
		Unit:       model.UnitM2,
		Definition: "GIA",
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
	info.BuildingTypology = []model.BuildingTypology{model.TypologyUnknown}

	floorsAbove, err := res.Int(record, "project_info.floors_above_ground")
	if err != nil {
		return nil, err
	}
	info.FloorsAboveGround = intOrZero(floorsAbove)
	floorsBelow, err := res.Int(record, "project_info.floors_below_ground")
	if err != nil {
		return nil, err
	}
	info.FloorsBelowGround = floorsBelow

	info.GeneralEnergyClass = model.EnergyClassUnknown
	info.RoofType = model.RoofUnknown
	return info, nil
}

func becdMetaData(res *mapping.Resolver, record map[string]string) (map[string]any, error) {
	constructionStart, err := res.String(record, "meta_data.construction_start")
	if err != nil {
		return nil, err
	}
	existingYear, err := res.YearFromDate(record, "meta_data.construction_year_existing_building", becdDateLayout)
	if err != nil {
		return nil, err
	}

	assessment, err := becdAssessment(res, record)
	if err != nil {
		return nil, err
	}

	meta := map[string]any{
		"source":                              map[string]any{"name": "BECD", "url": nil},
		"construction_start":                  constructionStart,
		"construction_year_existing_building": existingYear,
		"assessment":                          assessment,
	}

	if cost, err := res.Float(record, "meta_data.cost.total_cost"); err != nil {
		return nil, err
	} else if cost != nil {
		meta["cost"] = map[string]any{"total_cost": *cost, "currency": "gbp"}
	} else {
		meta["cost"] = nil
	}

	for _, key := range []string{
		"meta_data.demolished_area.value",
		"meta_data.newly_built_area.value",
		"meta_data.retrofitted_area.value",
		"meta_data.project_site_area.value",
	} {
		field := strings.TrimSuffix(strings.TrimPrefix(key, "meta_data."), ".value")
		if area, err := res.Float(record, key); err != nil {
			return nil, err
		} else if area != nil {
			meta[field] = map[string]any{"value": *area, "unit": model.UnitM2}
		} else {
			meta[field] = nil
		}
	}

	// The envelope area arrives split over wall/roof/floor columns and
	// is additive by definition.
	envelope, err := res.SumFloat(record, "meta_data.thermal_envelope_area.value")
	if err != nil {
		return nil, err
	}
	meta["thermal_envelope_area"] = map[string]any{"value": envelope, "unit": model.UnitM2}

	structural, err := becdStructural(res, record)
	if err != nil {
		return nil, err
	}
	meta["structural"] = structural

	return meta, nil
}

func becdAssessment(res *mapping.Resolver, record map[string]string) (map[string]any, error) {
	year, err := res.YearFromDate(record, "meta_data.assessment.year", becdDateLayout)
	if err != nil {
		return nil, err
	}
	date, err := res.String(record, "meta_data.assessment.date")
	if err != nil {
		return nil, err
	}

	en15978, err := res.StringOr(record, "meta_data.assessment.en15978_compliance", "")
	if err != nil {
		return nil, err
	}
	rics, err := res.StringOr(record, "meta_data.assessment.rics_2017_compliance", "")
	if err != nil {
		return nil, err
	}
	verified, err := res.StringOr(record, "meta_data.assessment.verified", "")
	if err != nil {
		return nil, err
	}
	verifiedInfo, err := res.String(record, "meta_data.assessment.verified_info")
	if err != nil {
		return nil, err
	}
	quantitySource, err := res.String(record, "meta_data.assessment.quantity_source")
	if err != nil {
		return nil, err
	}

	assessor := map[string]any{}
	for _, part := range []string{"name", "email", "organization"} {
		value, err := res.String(record, "meta_data.assessment.assessor."+part)
		if err != nil {
			return nil, err
		}
		assessor[part] = value
	}

	return map[string]any{
		"year":                 year,
		"date":                 date,
		"en15978_compliance":   en15978 == "Fully compliant",
		"rics_2017_compliance": rics == "Fully compliant with 2017 version",
		"verified":             verified == "Yes",
		"verified_info":        verifiedInfo,
		"assessor":             assessor,
		"quantity_source":      quantitySource,
	}, nil
}

func becdStructural(res *mapping.Resolver, record map[string]string) (map[string]any, error) {
	structural := map[string]any{}
	if grid, err := res.Float(record, "meta_data.structural.column_grid_long.value"); err != nil {
		return nil, err
	} else if grid != nil {
		structural["column_grid_long"] = map[string]any{"value": *grid, "unit": model.UnitM}
	} else {
		structural["column_grid_long"] = nil
	}
	for _, part := range []string{
		"foundation_type",
		"vertical_gravity_system",
		"secondary_vertical_gravity_system",
		"horizontal_gravity_system",
		"secondary_horizontal_gravity_system",
	} {
		value, err := res.String(record, "meta_data.structural."+part)
		if err != nil {
			return nil, err
		}
		structural[part] = value
	}
	return structural, nil
}

func becdAssembly(res *mapping.Resolver, record map[string]string) (*model.Assembly, error) {
	content, err := res.Raw(record, "assemblies.id")
	if err != nil {
		return nil, err
	}
	name, err := res.StringOr(record, "assemblies.name", "")
	if err != nil {
		return nil, err
	}
	results, err := merge.TotalsFromRow(res, record, "assemblies.results.", 1)
	if err != nil {
		return nil, err
	}

	return &model.Assembly{
		ID:       identity.Derive(content),
		Name:     name,
		Quantity: 1,
		Unit:     model.UnitKg,
		Products: model.NewProductMap(),
		Results:  results,
		Type:     "actual",
	}, nil
}

func becdProduct(res *mapping.Resolver, record map[string]string) (*model.Product, error) {
	content, err := res.Raw(record, "assemblies.products.id")
	if err != nil {
		return nil, err
	}
	name, err := res.StringOr(record, "assemblies.products.name", "")
	if err != nil {
		return nil, err
	}
	flowContent, err := res.Raw(record, "assemblies.products.impact_data.id")
	if err != nil {
		return nil, err
	}
	serviceLife, err := res.IntLenient(record, "assemblies.products.reference_service_life")
	if err != nil {
		return nil, err
	}
	results, err := merge.TotalsFromRow(res, record, "assemblies.results.", 1)
	if err != nil {
		return nil, err
	}
	impacts := results
	if impacts == nil {
		impacts = model.Impacts{}
	}

	return &model.Product{
		ID:                   identity.Derive(content),
		Name:                 name,
		Description:          "",
		ReferenceServiceLife: intOrZero(serviceLife),
		Quantity:             1,
		Unit:                 model.UnitKg,
		Results:              results,
		Type:                 "actual",
		ImpactData: &model.TechFlow{
			ID:            identity.Derive(flowContent),
			Name:          flowContent,
			DeclaredUnit:  model.UnitKg,
			FormatVersion: model.FormatVersion,
			Location:      model.CountryUnknown,
			Impacts:       impacts,
			Type:          "actual",
		},
	}, nil
}
