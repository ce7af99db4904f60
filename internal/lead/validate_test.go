package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := NewValidator(DefaultCatalog())
	valid := Form{
		CompanyName:       "Acme",
		Positions:         []string{"Claim Management"},
		MinimumExperience: "1-2",
		PracticeType:      "medical",
		SoftwareSystems:   []string{"Epic", "Others (specify name)"},
		CustomSoftware:    "In-house EHR",
	}
	assert.NoError(t, v.Validate(valid))

	cases := map[string]func(f *Form){
		"missing company":            func(f *Form) { f.CompanyName = "" },
		"no positions":               func(f *Form) { f.Positions = nil },
		"unknown position":           func(f *Form) { f.Positions = []string{"Astronaut"} },
		"missing experience":         func(f *Form) { f.MinimumExperience = "" },
		"unknown experience":         func(f *Form) { f.MinimumExperience = "40" },
		"unknown practice":           func(f *Form) { f.PracticeType = "veterinary" },
		"software of other practice": func(f *Form) { f.SoftwareSystems = []string{"Dentrix"} },
		"custom without others":      func(f *Form) { f.SoftwareSystems = []string{"Epic"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := valid
			f.Positions = append([]string(nil), valid.Positions...)
			f.SoftwareSystems = append([]string(nil), valid.SoftwareSystems...)
			mutate(&f)
			assert.ErrorIs(t, v.Validate(f), ErrNotReady)
		})
	}
}
