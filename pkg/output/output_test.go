package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcaingest/pkg/model"
)

func TestPrepareFillsStructuralDefaults(t *testing.T) {
	p := &model.Project{}
	Prepare(p)

	assert.Equal(t, model.FormatVersion, p.FormatVersion)
	assert.NotNil(t, p.Assemblies)
	assert.NotNil(t, p.LifeCycleStages)
	assert.NotNil(t, p.ImpactCategories)
	assert.Equal(t, model.PhaseOther, p.ProjectPhase)
	assert.Equal(t, model.CountryUnknown, p.Location.Country)

	require.NotNil(t, p.ProjectInfo)
	assert.Equal(t, model.BuildingTypeUnknown, p.ProjectInfo.BuildingType)
	assert.Equal(t, []model.BuildingTypology{model.TypologyUnknown}, p.ProjectInfo.BuildingTypology)
	assert.Equal(t, model.EnergyClassUnknown, p.ProjectInfo.GeneralEnergyClass)
	assert.Equal(t, model.RoofUnknown, p.ProjectInfo.RoofType)
	assert.Equal(t, model.UnitM2, p.ProjectInfo.GrossFloorArea.Unit)
}

func TestPrepareKeepsExistingValues(t *testing.T) {
	p := &model.Project{
		Location:     model.Location{Country: "dnk"},
		ProjectPhase: model.PhaseBuilt,
		ProjectInfo:  &model.ProjectInfo{BuildingType: model.BuildingTypeRenovation},
	}
	Prepare(p)

	assert.Equal(t, model.Country("dnk"), p.Location.Country)
	assert.Equal(t, model.PhaseBuilt, p.ProjectPhase)
	assert.Equal(t, model.BuildingTypeRenovation, p.ProjectInfo.BuildingType)
}

func TestPrepareCompletesNestedEntities(t *testing.T) {
	assembly := &model.Assembly{Products: model.NewProductMap()}
	assembly.Products.Put("p", &model.Product{ImpactData: &model.TechFlow{}})

	p := &model.Project{Assemblies: model.NewAssemblyMap()}
	p.Assemblies.Put("a", assembly)
	Prepare(p)

	assert.Equal(t, "actual", assembly.Type)
	product, _ := assembly.Products.Get("p")
	assert.Equal(t, "actual", product.Type)
	assert.Equal(t, model.FormatVersion, product.ImpactData.FormatVersion)
}

func TestMarshalProducesStableDocuments(t *testing.T) {
	build := func() *model.Project {
		p := &model.Project{ID: "p1", Assemblies: model.NewAssemblyMap()}
		p.Assemblies.Put("b", &model.Assembly{ID: "b"})
		p.Assemblies.Put("a", &model.Assembly{ID: "a"})
		return p
	}

	first, err := Marshal([]*model.Project{build()})
	require.NoError(t, err)
	second, err := Marshal([]*model.Project{build()})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var decoded []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(first, &decoded))
	require.Len(t, decoded, 1)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteFile(path, []*model.Project{{ID: "p1"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "p1"`)
}
