package lead

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var submittedAt = time.Date(2026, time.March, 4, 21, 5, 9, 0, time.UTC)

func TestBuildDentalWithCustomSoftware(t *testing.T) {
	cat := DefaultCatalog()
	builder := NewPayloadBuilder(cat, []string{"intake@example.com", " ", "ops@example.com"}, time.UTC)
	form := Form{
		CompanyName:       "Bright Smiles",
		Positions:         []string{"Front Desk Support", "Billing & Collections"},
		MinimumExperience: "3-5",
		PracticeType:      "dental",
		SoftwareSystems:   []string{"Dentrix", "Others (specify name)"},
		CustomSoftware:    "Denticon",
	}

	got := builder.Build(form, submittedAt)

	want := Payload{
		"to_email_1":         "intake@example.com",
		"to_email_2":         "ops@example.com",
		"company_name":       "Bright Smiles",
		"positions_needed":   "Front Desk Support, Billing & Collections",
		"minimum_experience": "3-5 years",
		"practice_type":      "Dental",
		"software_systems":   "Dentrix, Others (specify name)",
		"custom_software":    "Denticon",
		"submission_date":    "3/4/2026",
		"submission_time":    "9:05:09 PM",
		"message": "New staffing request from Bright Smiles:\n\n" +
			"Company: Bright Smiles\n" +
			"Practice Type: Dental\n" +
			"Positions Needed: Front Desk Support, Billing & Collections\n" +
			"Minimum Experience: 3-5 years\n" +
			"Software Systems: Dentrix, Others (specify name)\n" +
			"Custom Software: Denticon\n" +
			"\nSubmitted on: 3/4/2026 at 9:05:09 PM",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDefaultsAbsentFields(t *testing.T) {
	builder := NewPayloadBuilder(DefaultCatalog(), nil, nil)
	form := Form{CompanyName: "Acme", PracticeType: "medical"}

	got := builder.Build(form, submittedAt)

	assert.Equal(t, NoneSelected, got[KeyPositionsNeeded])
	assert.Equal(t, NoneSelected, got[KeySoftwareSystems])
	assert.Equal(t, NotAvailable, got[KeyCustomSoftware])
	assert.Equal(t, "Medical", got[KeyPracticeType])
	assert.NotContains(t, got, "to_email_1")
	assert.Equal(t, "New staffing request from Acme:\n\n"+
		"Company: Acme\n"+
		"Practice Type: Medical\n"+
		"Positions Needed: None selected\n"+
		"Minimum Experience: \n"+
		"Software Systems: None selected\n"+
		"\n"+
		"\nSubmitted on: 3/4/2026 at 9:05:09 PM", got[KeyMessage])
}

func TestBuildUsesConfiguredZone(t *testing.T) {
	zone := time.FixedZone("EST", -5*60*60)
	builder := NewPayloadBuilder(DefaultCatalog(), nil, zone)

	got := builder.Build(Form{CompanyName: "Acme", PracticeType: "medical"}, submittedAt)

	assert.Equal(t, "3/4/2026", got[KeySubmissionDate])
	assert.Equal(t, "4:05:09 PM", got[KeySubmissionTime])
}
