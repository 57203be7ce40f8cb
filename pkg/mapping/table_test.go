package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tableDoc = `{
  "name": "ProjectName",
  "results.gwp.a1a3": "TotalA1A3",
  "results.gwp.a5": ["A5w", "A5a"],
  "building_type.new_construction_works": ["new build", "new built"],
  "building_type.renovation_works": ["renovation"],
  "building_type.demolition": null
}`

func parseTable(t *testing.T) *Table {
	t.Helper()
	table, err := Parse("test", []byte(tableDoc))
	require.NoError(t, err)
	return table
}

func TestColumnResolvesSingleEntries(t *testing.T) {
	table := parseTable(t)

	column, err := table.Column("name")
	require.NoError(t, err)
	assert.Equal(t, "ProjectName", column)
}

func TestColumnRejectsMissingNullAndListEntries(t *testing.T) {
	table := parseTable(t)

	var cfgErr *ConfigurationError
	_, err := table.Column("nope")
	require.ErrorAs(t, err, &cfgErr)

	_, err = table.Column("building_type.demolition")
	require.ErrorAs(t, err, &cfgErr)

	_, err = table.Column("results.gwp.a5")
	require.ErrorAs(t, err, &cfgErr)
}

func TestColumnsAcceptsSingleAndList(t *testing.T) {
	table := parseTable(t)

	columns, err := table.Columns("results.gwp.a5")
	require.NoError(t, err)
	assert.Equal(t, []string{"A5w", "A5a"}, columns)

	columns, err = table.Columns("name")
	require.NoError(t, err)
	assert.Equal(t, []string{"ProjectName"}, columns)
}

func TestPrefixedFollowsDocumentOrderAndSkipsNull(t *testing.T) {
	table := parseTable(t)

	assert.Equal(t, []string{"results.gwp.a1a3", "results.gwp.a5"}, table.Prefixed("results."))
	assert.Equal(t,
		[]string{"building_type.new_construction_works", "building_type.renovation_works"},
		table.Prefixed("building_type."))
}

func TestFamilyReturnsVariantsInDocumentOrder(t *testing.T) {
	table := parseTable(t)

	variants := table.Family("building_type")
	require.Len(t, variants, 2)
	assert.Equal(t, "new_construction_works", variants[0].Name)
	assert.Equal(t, []string{"new build", "new built"}, variants[0].Synonyms)
	assert.Equal(t, "renovation_works", variants[1].Name)
}

func TestParseRejectsDuplicateKeys(t *testing.T) {
	_, err := Parse("test", []byte(`{"name": "A", "name": "B"}`))
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestParseRejectsNonObjectDocuments(t *testing.T) {
	_, err := Parse("test", []byte(`["name"]`))
	require.Error(t, err)
}

func TestHas(t *testing.T) {
	table := parseTable(t)
	assert.True(t, table.Has("name"))
	assert.False(t, table.Has("building_type.demolition"), "null entries count as undefined")
	assert.False(t, table.Has("missing"))
}
