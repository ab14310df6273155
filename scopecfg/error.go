package scopecfg

import (
	"fmt"
	"strings"
)

// Describes a single violation found in a scope declaration. Field
// names the offending declaration field.
type ValidationError struct {
	Field   string
	Message string
}

// Returns the error string.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Joins the messages of all violations into a single details string
// suitable for a scope outcome.
func JoinErrors(violations []ValidationError) string {
	messages := make([]string, len(violations))
	for i, violation := range violations {
		messages[i] = violation.Error()
	}
	return strings.Join(messages, "; ")
}
