package validation

import (
	"errors"
	"sort"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// fieldIssues flattens ozzo-validation field errors into issues keyed by
// JSON field name.
func fieldIssues(err error) []ValidationIssue {
	var fieldErrs ozzo.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fieldErrs))
	for key := range fieldErrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	issues := make([]ValidationIssue, 0, len(keys))
	for _, key := range keys {
		fieldErr := fieldErrs[key]
		if fieldErr == nil {
			continue
		}
		issues = append(issues, ValidationIssue{
			Location: "/" + key,
			Message:  fieldErr.Error(),
		})
	}
	return issues
}
