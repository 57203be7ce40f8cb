package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcaingest/pkg/merge"
	"lcaingest/pkg/model"
)

var sliceIndicatorColumns = []string{
	"ind_GWP_Tot", "ind_GWP_Fos", "ind_GWP_Bio", "ind_GWP_LuLuc", "ind_ODP",
	"ind_AP", "ind_EP_Fw", "ind_EP_Mar", "ind_EP_Ter", "ind_PCOP",
	"ind_ADP_MiMe", "ind_ADP_Fos", "ind_WDP", "ind_PM", "ind_IRP",
	"ind_ETP_Fw", "ind_HTP_c", "ind_HTP_nc", "ind_SQP",
}

func sliceRecord(overrides map[string]string) map[string]string {
	record := map[string]string{
		"building_archetype_code":          "P1",
		"stock_region_name":                "continental",
		"LCS_EN15978":                      "A1-3",
		"stock_activity_type_name":         "new",
		"building_use_subtype_name":        "office",
		"building_energy_performance_name": "standard",
		"element_class_sfb":                "21",
		"element_class_generic_name":       "External Walls",
		"worksection_class_sfb":            "2",
		"techflow_name_mmg":                "flow-1",
		"material_name_mmg":                "steel",
	}
	for _, column := range sliceIndicatorColumns {
		record[column] = ""
	}
	for column, value := range overrides {
		record[column] = value
	}
	return record
}

func runSLiCE(t *testing.T, records []map[string]string) []*model.Project {
	t.Helper()
	profile, err := SLiCE()
	require.NoError(t, err)
	projects, err := merge.Run(profile, records, nil)
	require.NoError(t, err)
	return projects
}

func TestSLiCEAccumulatesRepeatedStageRows(t *testing.T) {
	projects := runSLiCE(t, []map[string]string{
		sliceRecord(map[string]string{"ind_GWP_Tot": "10"}),
		sliceRecord(map[string]string{"ind_GWP_Tot": "5"}),
		sliceRecord(map[string]string{"LCS_EN15978": "A4", "ind_GWP_Tot": "2"}),
	})
	require.Len(t, projects, 1)

	p := projects[0]
	require.Equal(t, 1, p.Assemblies.Len())
	assembly := p.Assemblies.Values()[0]
	require.Equal(t, 1, assembly.Products.Len())

	flow := assembly.Products.Values()[0].ImpactData
	assert.Equal(t, "flow-1", flow.Name)
	assert.Equal(t, 15.0, flow.Impacts[model.GWP][model.StageA1A3])
	assert.Equal(t, 2.0, flow.Impacts[model.GWP][model.StageA4])

	// Finalize rolls the flows up to assembly and project level.
	assert.Equal(t, 15.0, assembly.Results[model.GWP][model.StageA1A3])
	assert.Equal(t, 15.0, p.Results[model.GWP][model.StageA1A3])
	assert.Equal(t, 2.0, p.Results[model.GWP][model.StageA4])
}

func TestSLiCEKeepsDistinctFlowsApart(t *testing.T) {
	projects := runSLiCE(t, []map[string]string{
		sliceRecord(map[string]string{"ind_GWP_Tot": "10"}),
		sliceRecord(map[string]string{"techflow_name_mmg": "flow-2", "ind_GWP_Tot": "4"}),
		sliceRecord(map[string]string{"worksection_class_sfb": "3", "ind_GWP_Tot": "1"}),
	})
	p := projects[0]

	assembly := p.Assemblies.Values()[0]
	assert.Equal(t, 3, assembly.Products.Len())
	assert.Equal(t, 15.0, p.Results[model.GWP][model.StageA1A3])
}

func TestSLiCETracksEveryConfiguredIndicator(t *testing.T) {
	projects := runSLiCE(t, []map[string]string{
		sliceRecord(map[string]string{"ind_GWP_Tot": "10", "ind_ODP": "0.5", "ind_SQP": "3"}),
	})
	flow := projects[0].Assemblies.Values()[0].Products.Values()[0].ImpactData

	assert.Equal(t, 0.5, flow.Impacts[model.ODP][model.StageA1A3])
	assert.Equal(t, 3.0, flow.Impacts[model.SQP][model.StageA1A3])
	_, ok := flow.Impacts[model.AP]
	assert.False(t, ok, "absent indicators leave no cell")
}

func TestSLiCEResolvesRegionsToReferenceCountries(t *testing.T) {
	nordic := runSLiCE(t, []map[string]string{
		sliceRecord(map[string]string{"stock_region_name": "nordic"}),
	})
	assert.Equal(t, model.Country("swe"), nordic[0].Location.Country)

	other := runSLiCE(t, []map[string]string{
		sliceRecord(map[string]string{"building_archetype_code": "P2", "stock_region_name": "tropical"}),
	})
	assert.Equal(t, model.Country("deu"), other[0].Location.Country, "unmapped regions fall back to the reference country")
}

func TestSLiCERejectsUnknownLifeCycleStages(t *testing.T) {
	profile, err := SLiCE()
	require.NoError(t, err)

	_, err = merge.Run(profile, []map[string]string{
		sliceRecord(map[string]string{"LCS_EN15978": "A9"}),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "life_cycle_stage")
}

func TestSLiCEProjectShape(t *testing.T) {
	projects := runSLiCE(t, []map[string]string{sliceRecord(nil)})
	p := projects[0]

	assert.Equal(t, "Undefined", p.Name)
	require.NotNil(t, p.ClassificationSystem)
	assert.Equal(t, "SfB", *p.ClassificationSystem)
	assert.Equal(t, "SLiCE", p.SoftwareInfo.LCASoftware)
	assert.Len(t, p.ImpactCategories, 19)
	assert.Contains(t, p.LifeCycleStages, model.StageB6)

	assembly := p.Assemblies.Values()[0]
	require.Len(t, assembly.Classification, 1)
	assert.Equal(t, "21", assembly.Classification[0].Code)
	assert.Equal(t, "External Walls", assembly.Classification[0].Name)

	product := assembly.Products.Values()[0]
	assert.Equal(t, "steel flow-1", product.Name)
	assert.Equal(t, 50, product.ReferenceServiceLife)
}
