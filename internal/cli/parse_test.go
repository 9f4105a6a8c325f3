package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesklite/ticketgrid/internal/rule"
)

func TestParseSortSpecs(t *testing.T) {
	sorters, err := parseSortSpecs([]string{"dateCreated:desc", "subject"})
	require.NoError(t, err)
	assert.Equal(t, []rule.Sort{
		{Column: "dateCreated", Direction: rule.Descending},
		{Column: "subject", Direction: rule.Ascending},
	}, sorters)
}

func TestParseSortSpecs_Invalid(t *testing.T) {
	_, err := parseSortSpecs([]string{":desc"})
	assert.Error(t, err)

	_, err = parseSortSpecs([]string{"subject:sideways"})
	assert.Error(t, err)
}

func TestParseFilterSpecs(t *testing.T) {
	filters, err := parseFilterSpecs([]string{"subject:contains:bug", "email:equals:a:b@example.com"})
	require.NoError(t, err)
	assert.Equal(t, []rule.Filter{
		{Column: "subject", Relation: rule.Contains, Value: "bug"},
		{Column: "email", Relation: rule.Equals, Value: "a:b@example.com"},
	}, filters)
}

func TestParseFilterSpecs_Invalid(t *testing.T) {
	_, err := parseFilterSpecs([]string{"subject:contains"})
	assert.Error(t, err)

	_, err = parseFilterSpecs([]string{"subject:matches:x"})
	assert.Error(t, err)

	_, err = parseFilterSpecs([]string{":equals:x"})
	assert.Error(t, err)
}

func TestParseSpecs_EmptyInput(t *testing.T) {
	sorters, err := parseSortSpecs(nil)
	require.NoError(t, err)
	assert.Empty(t, sorters)

	filters, err := parseFilterSpecs(nil)
	require.NoError(t, err)
	assert.Empty(t, filters)
}
