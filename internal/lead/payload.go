package lead

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Placeholders used when an optional field is empty.
const (
	NoneSelected = "None selected"
	NotAvailable = "N/A"
)

// Template parameter keys understood by the email template.
const (
	KeyCompanyName       = "company_name"
	KeyPositionsNeeded   = "positions_needed"
	KeyMinimumExperience = "minimum_experience"
	KeyPracticeType      = "practice_type"
	KeySoftwareSystems   = "software_systems"
	KeyCustomSoftware    = "custom_software"
	KeySubmissionDate    = "submission_date"
	KeySubmissionTime    = "submission_time"
	KeyMessage           = "message"

	recipientKeyPrefix = "to_email_"
	listSeparator      = ", "
	dateLayout         = "1/2/2006"
	timeLayout         = "3:04:05 PM"
)

// Payload is the flat template parameter map sent to the delivery service.
type Payload map[string]string

// PayloadBuilder turns a Form into a Payload.
type PayloadBuilder struct {
	catalog    *Catalog
	recipients []string
	location   *time.Location
}

// NewPayloadBuilder returns a builder. Recipients become to_email_1..n;
// timestamps are rendered in loc (UTC when nil).
func NewPayloadBuilder(c *Catalog, recipients []string, loc *time.Location) *PayloadBuilder {
	if loc == nil {
		loc = time.UTC
	}
	clean := make([]string, 0, len(recipients))
	for _, r := range recipients {
		if r = strings.TrimSpace(r); r != "" {
			clean = append(clean, r)
		}
	}
	return &PayloadBuilder{
		catalog:    c,
		recipients: clean,
		location:   loc,
	}
}

// Build renders f as submitted at the given instant.
func (b *PayloadBuilder) Build(f Form, at time.Time) Payload {
	at = at.In(b.location)
	company := f.CompanyName
	positions := joinOr(f.Positions, NoneSelected)
	experience, ok := b.catalog.ExperienceLabel(f.MinimumExperience)
	if !ok {
		experience = f.MinimumExperience
	}
	// Casers keep state, so one is built per call.
	practice := cases.Title(language.English).String(f.PracticeType)
	software := joinOr(f.SoftwareSystems, NoneSelected)
	custom := f.CustomSoftware
	date := at.Format(dateLayout)
	clock := at.Format(timeLayout)

	p := make(Payload, 10+len(b.recipients))
	for i, r := range b.recipients {
		p[recipientKeyPrefix+strconv.Itoa(i+1)] = r
	}
	p[KeyCompanyName] = company
	p[KeyPositionsNeeded] = positions
	p[KeyMinimumExperience] = experience
	p[KeyPracticeType] = practice
	p[KeySoftwareSystems] = software
	p[KeyCustomSoftware] = custom
	if custom == "" {
		p[KeyCustomSoftware] = NotAvailable
	}
	p[KeySubmissionDate] = date
	p[KeySubmissionTime] = clock

	var msg strings.Builder
	msg.WriteString("New staffing request from " + company + ":\n\n")
	msg.WriteString("Company: " + company + "\n")
	msg.WriteString("Practice Type: " + practice + "\n")
	msg.WriteString("Positions Needed: " + positions + "\n")
	msg.WriteString("Minimum Experience: " + experience + "\n")
	msg.WriteString("Software Systems: " + software + "\n")
	// The custom software line stays in place, empty, when unset.
	if custom != "" {
		msg.WriteString("Custom Software: " + custom)
	}
	msg.WriteString("\n\nSubmitted on: " + date + " at " + clock)
	p[KeyMessage] = msg.String()
	return p
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, listSeparator)
}
