package lead

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks a Form against struct rules and the catalog.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator whose catalog-aware tags (position,
// experience, practice) resolve against c.
func NewValidator(c *Catalog) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("position", func(fl validator.FieldLevel) bool {
		return c.HasPosition(fl.Field().String())
	})
	_ = v.RegisterValidation("experience", func(fl validator.FieldLevel) bool {
		_, ok := c.ExperienceLabel(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("practice", func(fl validator.FieldLevel) bool {
		return c.HasPractice(fl.Field().String())
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		f := sl.Current().Interface().(Form)
		for _, s := range f.SoftwareSystems {
			if !c.HasSoftware(f.PracticeType, s) {
				sl.ReportError(f.SoftwareSystems, "SoftwareSystems", "SoftwareSystems", "software", s)
			}
		}
		if f.CustomSoftware != "" && !f.OthersSelected(c) {
			sl.ReportError(f.CustomSoftware, "CustomSoftware", "CustomSoftware", "others", "")
		}
	}, Form{})
	return &Validator{validate: v}
}

// Validate returns nil or an error wrapping ErrNotReady that lists the
// failing fields.
func (v *Validator) Validate(f Form) error {
	err := v.validate.Struct(f)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	names := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		names = append(names, fe.Field())
	}
	return fmt.Errorf("%w: %s", ErrNotReady, strings.Join(names, ", "))
}
