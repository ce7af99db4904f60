package lead

import (
	"fmt"
	"slices"
	"strings"
)

// Multi-select field names accepted by Toggle.
const (
	FieldPositions = "positions"
	FieldSoftware  = "software"
)

// Status is the outcome banner shown next to the form.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Form is the transient lead record collected from a visitor.
type Form struct {
	CompanyName       string   `json:"companyName" validate:"required,max=200"`
	Positions         []string `json:"positions" validate:"min=1,dive,position"`
	MinimumExperience string   `json:"minimumExperience" validate:"required,experience"`
	PracticeType      string   `json:"practiceType" validate:"required,practice"`
	SoftwareSystems   []string `json:"softwareSystems"`
	CustomSoftware    string   `json:"customSoftware" validate:"max=200"`
}

// State is what the session keeps per visitor: the form and last outcome.
type State struct {
	Form   Form   `json:"form"`
	Status Status `json:"status"`
}

// NewState returns a blank form with an idle status.
func NewState(c *Catalog) State {
	return State{Form: NewForm(c), Status: StatusIdle}
}

// NewForm returns a form holding the default values.
func NewForm(c *Catalog) Form {
	return Form{
		Positions:       []string{},
		PracticeType:    c.DefaultPractice(),
		SoftwareSystems: []string{},
	}
}

// Ready reports whether every required field is present.
func (f Form) Ready() bool {
	return strings.TrimSpace(f.CompanyName) != "" &&
		len(f.Positions) > 0 &&
		f.MinimumExperience != ""
}

// CanSubmit reports whether the submit action is enabled.
func (f Form) CanSubmit(pending bool) bool {
	return !pending && f.Ready()
}

// OthersSelected reports whether the free-text software option is checked.
func (f Form) OthersSelected(c *Catalog) bool {
	return slices.Contains(f.SoftwareSystems, c.Others)
}

// Controller applies visitor interactions to a Form while keeping it
// consistent with the catalog.
type Controller struct {
	catalog *Catalog
	form    *Form
}

// NewController binds a controller to form.
func NewController(c *Catalog, form *Form) *Controller {
	return &Controller{catalog: c, form: form}
}

// Toggle flips label in the named multi-select field.
func (c *Controller) Toggle(field, label string) error {
	switch field {
	case FieldPositions:
		return c.TogglePosition(label)
	case FieldSoftware:
		return c.ToggleSoftware(label)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// TogglePosition adds or removes a staffing position.
func (c *Controller) TogglePosition(label string) error {
	if !c.catalog.HasPosition(label) {
		return fmt.Errorf("%w: position %q", ErrUnknownOption, label)
	}
	c.form.Positions = toggle(c.form.Positions, label)
	return nil
}

// ToggleSoftware adds or removes a software system offered for the current
// practice type. Deselecting the others option clears its free text.
func (c *Controller) ToggleSoftware(label string) error {
	if !c.catalog.HasSoftware(c.form.PracticeType, label) {
		return fmt.Errorf("%w: software %q for %s", ErrUnknownOption, label, c.form.PracticeType)
	}
	c.form.SoftwareSystems = toggle(c.form.SoftwareSystems, label)
	if !c.form.OthersSelected(c.catalog) {
		c.form.CustomSoftware = ""
	}
	return nil
}

// SetCompanyName stores the sanitized company name.
func (c *Controller) SetCompanyName(name string) {
	c.form.CompanyName = sanitizeText(name)
}

// SetMinimumExperience selects an experience tier. An empty value unsets it.
func (c *Controller) SetMinimumExperience(value string) error {
	if value == "" {
		c.form.MinimumExperience = ""
		return nil
	}
	if _, ok := c.catalog.ExperienceLabel(value); !ok {
		return fmt.Errorf("%w: experience %q", ErrUnknownOption, value)
	}
	c.form.MinimumExperience = value
	return nil
}

// SetPracticeType switches the practice type and drops software selections
// the new practice does not offer.
func (c *Controller) SetPracticeType(value string) error {
	if !c.catalog.HasPractice(value) {
		return fmt.Errorf("%w: practice %q", ErrUnknownOption, value)
	}
	if value == c.form.PracticeType {
		return nil
	}
	c.form.PracticeType = value
	kept := make([]string, 0, len(c.form.SoftwareSystems))
	for _, s := range c.form.SoftwareSystems {
		if c.catalog.HasSoftware(value, s) {
			kept = append(kept, s)
		}
	}
	c.form.SoftwareSystems = kept
	if !c.form.OthersSelected(c.catalog) {
		c.form.CustomSoftware = ""
	}
	return nil
}

// SetCustomSoftware stores the free-text software name. It is ignored
// unless the others option is selected.
func (c *Controller) SetCustomSoftware(name string) {
	if !c.form.OthersSelected(c.catalog) {
		c.form.CustomSoftware = ""
		return
	}
	c.form.CustomSoftware = sanitizeText(name)
}

// SelectPositions makes the position set equal to labels, via toggles.
// Labels outside the catalog are ignored.
func (c *Controller) SelectPositions(labels []string) {
	c.selectAll(c.catalog.Positions, c.form.Positions, labels, c.TogglePosition)
}

// SelectSoftware makes the software set equal to labels for the current
// practice type, via toggles. Labels the practice does not offer are ignored.
func (c *Controller) SelectSoftware(labels []string) {
	c.selectAll(c.catalog.Software(c.form.PracticeType), c.form.SoftwareSystems, labels, c.ToggleSoftware)
}

func (c *Controller) selectAll(offered, current, wanted []string, flip func(string) error) {
	for _, label := range offered {
		if slices.Contains(current, label) != slices.Contains(wanted, label) {
			_ = flip(label)
		}
	}
}

// Normalize drops anything in the form the catalog no longer offers.
// It is applied to records read back from the session.
func (c *Controller) Normalize() {
	f := c.form
	f.CompanyName = clipText(f.CompanyName, maxTextLength)
	f.CustomSoftware = clipText(f.CustomSoftware, maxTextLength)
	if !c.catalog.HasPractice(f.PracticeType) {
		f.PracticeType = c.catalog.DefaultPractice()
	}
	f.Positions = slices.DeleteFunc(dedupe(f.Positions), func(s string) bool { return !c.catalog.HasPosition(s) })
	f.SoftwareSystems = slices.DeleteFunc(dedupe(f.SoftwareSystems), func(s string) bool { return !c.catalog.HasSoftware(f.PracticeType, s) })
	if _, ok := c.catalog.ExperienceLabel(f.MinimumExperience); !ok {
		f.MinimumExperience = ""
	}
	if !f.OthersSelected(c.catalog) {
		f.CustomSoftware = ""
	}
}

// Reset restores every field to its default.
func (c *Controller) Reset() {
	*c.form = NewForm(c.catalog)
}

func toggle(set []string, label string) []string {
	if i := slices.Index(set, label); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), label)
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
