package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is matched by every ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError reports required columns that are absent after renaming.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing columns after rename: [%s]", strings.Join(e.Missing, ", "))
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// MissingColumns returns the required display names not found in columns,
// in the order of Required.
func (c Config) MissingColumns(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[col] = true
	}

	var missing []string
	for _, name := range c.RequiredNames() {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// CheckColumns returns a *ValidationError when any required column is missing.
func (c Config) CheckColumns(columns []string) error {
	if missing := c.MissingColumns(columns); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
