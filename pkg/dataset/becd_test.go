package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcaingest/pkg/merge"
	"lcaingest/pkg/model"
)

var becdColumns = []string{
	"ProjectID", "ProjectName", "ProjectDescription", "ReferenceStudyPeriod",
	"EmissionsIncluded", "City", "Country", "LCASoftware", "GoalAndScope",
	"PracticalCompletionDate", "BuildingHeight", "BuildingFootprint",
	"GrossInternalArea", "ProjectType", "StoreysAboveGround", "StoreysBelowGround",
	"TotalA1A3", "TotalA4", "TotalA5", "TotalB1", "TotalB2", "TotalB3",
	"TotalB4", "TotalB5", "TotalC1", "TotalC2", "TotalC3", "TotalC4",
	"TotalModuleD", "BuildingElement", "MaterialType", "ServiceLife",
	"ElementA1A3", "ElementA4", "ElementA5", "ConstructionStartDate",
	"ExistingBuildingConstructionDate", "AssessmentDate", "EN15978Compliance",
	"RICS2017Compliance", "Verified", "VerifiedBy", "AssessorName",
	"AssessorEmail", "AssessorOrganisation", "QuantitySource", "TotalCost",
	"DemolishedArea", "NewBuildArea", "RetrofittedArea", "SiteArea",
	"ExternalWallArea", "RoofArea", "GroundFloorArea", "ColumnGridLong",
	"FoundationType", "VerticalGravitySystem", "SecondaryVerticalGravitySystem",
	"HorizontalGravitySystem", "SecondaryHorizontalGravitySystem",
}

func becdRecord(overrides map[string]string) map[string]string {
	record := make(map[string]string, len(becdColumns))
	for _, column := range becdColumns {
		record[column] = "no data"
	}
	record["ProjectID"] = "BECD-0001"
	record["EmissionsIncluded"] = "Yes"
	record["BuildingElement"] = "External Walls"
	record["MaterialType"] = "Steel"
	for column, value := range overrides {
		record[column] = value
	}
	return record
}

func runBECD(t *testing.T, records []map[string]string) []*model.Project {
	t.Helper()
	profile, err := BECD()
	require.NoError(t, err)
	projects, err := merge.Run(profile, records, nil)
	require.NoError(t, err)
	return projects
}

func TestBECDGroupsRowsByProjectReference(t *testing.T) {
	projects := runBECD(t, []map[string]string{
		becdRecord(map[string]string{"ProjectName": "Tower", "TotalA1A3": "100", "TotalA4": "20"}),
		becdRecord(map[string]string{"BuildingElement": "Roof", "MaterialType": "Timber"}),
	})
	require.Len(t, projects, 1)

	p := projects[0]
	assert.Equal(t, "0001", p.ID, "the dataset prefix is stripped from the identifier")
	assert.Equal(t, "Tower", p.Name)
	assert.Equal(t, 2, p.Assemblies.Len())

	// Project totals come from the first row's total columns, not from
	// summing element rows.
	assert.Equal(t, 100.0, p.Results[model.GWP][model.StageA1A3])
	assert.Equal(t, 20.0, p.Results[model.GWP][model.StageA4])
	assert.Equal(t, []model.ImpactCategory{model.GWP}, p.ImpactCategories)
}

func TestBECDExcludedRowKeepsProjectShellOnly(t *testing.T) {
	projects := runBECD(t, []map[string]string{
		becdRecord(map[string]string{"EmissionsIncluded": "No", "ProjectName": "Shell"}),
	})
	require.Len(t, projects, 1)
	assert.Equal(t, "Shell", projects[0].Name)
	assert.Equal(t, 0, projects[0].Assemblies.Len())
}

func TestBECDElementTotalsReachAssemblyAndProduct(t *testing.T) {
	projects := runBECD(t, []map[string]string{
		becdRecord(map[string]string{"ElementA1A3": "40", "ElementA4": "2", "ServiceLife": "60"}),
	})
	p := projects[0]

	assembly, ok := p.Assemblies.Get(assemblyKey(t, "External Walls"))
	require.True(t, ok)
	assert.Equal(t, "External Walls", assembly.Name)
	assert.Equal(t, 40.0, assembly.Results[model.GWP][model.StageA1A3])

	require.Equal(t, 1, assembly.Products.Len())
	product := assembly.Products.Values()[0]
	assert.Equal(t, "Steel", product.Name)
	assert.Equal(t, 60, product.ReferenceServiceLife)
	assert.Equal(t, "Steel", product.ImpactData.Name)
	assert.Equal(t, 40.0, product.ImpactData.Impacts[model.GWP][model.StageA1A3])
	assert.Equal(t, 2.0, product.ImpactData.Impacts[model.GWP][model.StageA4])
}

func TestBECDRepeatedMaterialAccumulatesIntoFlow(t *testing.T) {
	projects := runBECD(t, []map[string]string{
		becdRecord(map[string]string{"ElementA1A3": "10"}),
		becdRecord(map[string]string{"ElementA1A3": "5"}),
	})
	p := projects[0]

	assembly, _ := p.Assemblies.Get(assemblyKey(t, "External Walls"))
	require.Equal(t, 1, assembly.Products.Len())
	product := assembly.Products.Values()[0]
	assert.Equal(t, 15.0, product.ImpactData.Impacts[model.GWP][model.StageA1A3])
}

func TestBECDParsesAssessmentMetadata(t *testing.T) {
	projects := runBECD(t, []map[string]string{
		becdRecord(map[string]string{
			"AssessmentDate":    "25/03/2023 14:02:11",
			"EN15978Compliance": "Fully compliant",
			"Verified":          "Yes",
			"TotalCost":         "1200000",
		}),
	})
	meta := projects[0].MetaData

	assessment, ok := meta["assessment"].(map[string]any)
	require.True(t, ok)
	year, ok := assessment["year"].(*int)
	require.True(t, ok)
	require.NotNil(t, year)
	assert.Equal(t, 2023, *year)
	assert.Equal(t, true, assessment["en15978_compliance"])
	assert.Equal(t, false, assessment["rics_2017_compliance"])
	assert.Equal(t, true, assessment["verified"])

	cost, ok := meta["cost"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1200000.0, cost["total_cost"])
	assert.Equal(t, "gbp", cost["currency"])
}

// assemblyKey mirrors the profile's content-derived assembly identity.
func assemblyKey(t *testing.T, element string) string {
	t.Helper()
	profile, err := BECD()
	require.NoError(t, err)
	id, err := profile.AssemblyID(becdRecord(map[string]string{"BuildingElement": element}))
	require.NoError(t, err)
	return id
}
