// Package organizer implements the folder → list → item browser.
package organizer

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docit/internal/config"
	"docit/internal/domain"
	"docit/internal/domain/services"
)

var (
	nameRules = []validation.Rule{
		validation.Required.Error("name is required"),
		validation.RuneLength(1, config.MaxNameLength),
	}
	descriptionRules = []validation.Rule{
		validation.RuneLength(0, config.MaxDescriptionLength),
	}
)

// normalizeDescription trims the description; blank means none
func normalizeDescription(desc *string) *string {
	if desc == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*desc)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// validationError wraps an ozzo error as domain.ErrValidation
func validationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

// changeSet is the diff between an edit dialog and the stored values
type changeSet struct {
	name             *string
	description      *string
	clearDescription bool
}

func (c changeSet) empty() bool {
	return c.name == nil && c.description == nil && !c.clearDescription
}

// diffDescribed validates the edited name and description and returns only
// the fields that differ from the stored ones.
func diffDescribed(curName string, curDesc *string, name *string, desc services.OptionalDescription) (changeSet, error) {
	var cs changeSet

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if err := validation.Validate(trimmed, nameRules...); err != nil {
			return cs, validationError(fmt.Errorf("name: %w", err))
		}
		if trimmed != curName {
			cs.name = &trimmed
		}
	}

	if desc.Present {
		next := normalizeDescription(desc.Value)
		switch {
		case next == nil:
			cs.clearDescription = curDesc != nil
		case curDesc == nil || *curDesc != *next:
			if err := validation.Validate(*next, descriptionRules...); err != nil {
				return cs, validationError(fmt.Errorf("description: %w", err))
			}
			cs.description = next
		}
	}

	return cs, nil
}

// applyDescription returns the description after the change set is written
func (c changeSet) applyDescription(cur *string) *string {
	if c.clearDescription {
		return nil
	}
	if c.description != nil {
		return c.description
	}
	return cur
}
