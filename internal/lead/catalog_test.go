package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()

	assert.Len(t, cat.Positions, 6)
	assert.Equal(t, "medical", cat.DefaultPractice())
	assert.Len(t, cat.Software("medical"), 11)
	assert.Len(t, cat.Software("dental"), 11)
	assert.Nil(t, cat.Software("veterinary"))
	assert.True(t, cat.HasSoftware("dental", "Open Dental"))
	assert.False(t, cat.HasSoftware("medical", "Open Dental"))

	label, ok := cat.ExperienceLabel("5+")
	require.True(t, ok)
	assert.Equal(t, "5+ years", label)
	_, ok = cat.ExperienceLabel("")
	assert.False(t, ok)

	assert.Equal(t, []Option{
		{Value: "medical", Label: "Medical Practice"},
		{Value: "dental", Label: "Dental Practice"},
	}, cat.PracticeOptions())
}

func TestParseCatalogRejectsIncompleteDocuments(t *testing.T) {
	cases := map[string]string{
		"not yaml":                     "positions: [",
		"no positions":                 "others: O\nexperience: [{value: a, label: A}]\npractices: [{value: m, software: [O]}]",
		"no tiers":                     "others: O\npositions: [P]\npractices: [{value: m, software: [O]}]",
		"no practices":                 "others: O\npositions: [P]\nexperience: [{value: a, label: A}]",
		"no others":                    "positions: [P]\nexperience: [{value: a, label: A}]\npractices: [{value: m, software: [X]}]",
		"others missing from practice": "others: O\npositions: [P]\nexperience: [{value: a, label: A}]\npractices: [{value: m, software: [X]}]",
		"duplicate practice":           "others: O\npositions: [P]\nexperience: [{value: a, label: A}]\npractices: [{value: m, software: [O]}, {value: m, software: [O]}]",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParseCatalogMinimal(t *testing.T) {
	cat, err := ParseCatalog([]byte("others: O\npositions: [P]\nexperience: [{value: a, label: A}]\npractices: [{value: m, label: M, software: [X, O]}]"))
	require.NoError(t, err)
	assert.Equal(t, "m", cat.DefaultPractice())
	assert.True(t, cat.HasPosition("P"))
}
