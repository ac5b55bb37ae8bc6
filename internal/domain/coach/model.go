package coach

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Belt rank constants.
const (
	BeltWhite  = "white"
	BeltBlue   = "blue"
	BeltPurple = "purple"
	BeltBrown  = "brown"
	BeltBlack  = "black"
)

// Coach holds state for the concept. Coaches are owned by the roster and
// are read-only to the metrics pipeline.
type Coach struct {
	ID          string
	Name        string
	Email       string
	Specialties []string
	Belt        string
}

// Validate checks if the Coach has valid data.
// PRE: Coach struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name must not be empty, Email must contain '@'
func (c *Coach) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("coach name cannot be empty")
	}
	if len(c.Name) > MaxNameLength {
		return errors.New("coach name cannot exceed 100 characters")
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return errors.New("coach email must be valid")
	}
	return nil
}

// HasSpecialty reports whether the coach teaches the named discipline.
func (c *Coach) HasSpecialty(name string) bool {
	for _, s := range c.Specialties {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}
