package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcaingest/pkg/merge"
	"lcaingest/pkg/model"
)

var carbEnMatsColumns = []string{
	"bldg_project_name", "lca_rsp", "site_country", "site_city",
	"lca_software", "lca_goal_scope", "bldg_year_complete", "bldg_users_total",
	"bldg_area_gfa", "bldg_area_definition", "bldg_footprint_area",
	"bldg_project_type", "bldg_use_subtype", "bldg_floors_ag", "bldg_floors_bg",
	"bldg_struct_type", "bldg_energy_class", "bldg_roof_type", "lca_year",
	"ghg_sum_em_a1a3_m2a", "ghg_sum_em_a4_m2a", "ghg_sum_em_a5_m2a",
	"ghg_sum_em_b4_m2a", "ghg_sum_em_b6_m2a", "ghg_sum_em_c1_m2a",
	"ghg_sum_em_c2_m2a", "ghg_sum_em_c3_m2a", "ghg_sum_em_c4_m2a",
	"ghg_sum_em_d_m2a",
}

func carbEnMatsRecord(overrides map[string]string) map[string]string {
	record := make(map[string]string, len(carbEnMatsColumns))
	for _, column := range carbEnMatsColumns {
		record[column] = "no data"
	}
	record["bldg_project_type"] = "new construction"
	record["bldg_use_subtype"] = "office"
	record["bldg_energy_class"] = "standard"
	record["bldg_roof_type"] = "flat"
	for column, value := range overrides {
		record[column] = value
	}
	return record
}

func runCarbEnMats(t *testing.T, records []map[string]string) []*model.Project {
	t.Helper()
	profile, err := CarbEnMats()
	require.NoError(t, err)
	projects, err := merge.Run(profile, records, nil)
	require.NoError(t, err)
	return projects
}

func TestCarbEnMatsScalesPerYearValuesOverStudyPeriod(t *testing.T) {
	projects := runCarbEnMats(t, []map[string]string{
		carbEnMatsRecord(map[string]string{"ghg_sum_em_a1a3_m2a": "2", "ghg_sum_em_b6_m2a": "0.5"}),
	})
	require.Len(t, projects, 1)

	p := projects[0]
	assert.Equal(t, 100.0, p.Results[model.GWP][model.StageA1A3])
	assert.Equal(t, 25.0, p.Results[model.GWP][model.StageB6])
	assert.Equal(t, []model.ImpactCategory{model.GWP}, p.ImpactCategories)
	assert.Equal(t, []model.LifeCycleStage{model.StageA1A3, model.StageB6}, p.LifeCycleStages)
}

func TestCarbEnMatsDerivesIdentityFromRowContent(t *testing.T) {
	a := carbEnMatsRecord(map[string]string{"bldg_project_name": "A"})
	b := carbEnMatsRecord(map[string]string{"bldg_project_name": "B"})

	projects := runCarbEnMats(t, []map[string]string{a, b, a})
	assert.Len(t, projects, 2, "identical rows collapse, distinct rows do not")
}

func TestCarbEnMatsClassifiesAndDefaults(t *testing.T) {
	projects := runCarbEnMats(t, []map[string]string{
		carbEnMatsRecord(map[string]string{
			"site_country":   "Denmark",
			"bldg_floors_ag": "8",
			"bldg_users_total": "120.0",
			"bldg_roof_type":   "sloped",
		}),
	})
	p := projects[0]

	assert.Equal(t, "Undefined", p.Name, "a row without a name gets the placeholder name")
	assert.Equal(t, model.Country("dnk"), p.Location.Country)

	info := p.ProjectInfo
	assert.Equal(t, model.BuildingTypeNewConstruction, info.BuildingType)
	assert.Equal(t, []model.BuildingTypology{model.TypologyOffice}, info.BuildingTypology)
	assert.Equal(t, model.EnergyClassStandard, info.GeneralEnergyClass)
	assert.Equal(t, model.RoofPitched, info.RoofType)
	assert.Equal(t, 8, info.FloorsAboveGround)
	require.NotNil(t, info.BuildingUsers)
	assert.Equal(t, 120, *info.BuildingUsers)
}

func TestCarbEnMatsToleratesFreeTextNumbers(t *testing.T) {
	projects := runCarbEnMats(t, []map[string]string{
		carbEnMatsRecord(map[string]string{"bldg_year_complete": "approx. 2015", "lca_rsp": "fifty"}),
	})
	p := projects[0]

	assert.Nil(t, p.ProjectInfo.BuildingCompletionYear)
	assert.Nil(t, p.ReferenceStudyPeriod)
}

func TestCarbEnMatsRejectsUnknownCategories(t *testing.T) {
	profile, err := CarbEnMats()
	require.NoError(t, err)

	_, err = merge.Run(profile, []map[string]string{
		carbEnMatsRecord(map[string]string{"bldg_project_type": "spaceship assembly"}),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown building_type")
}
