package services

import (
	"fmt"
	"unicode/utf8"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

// QueryArgument extracts the query from raw tool arguments.
func QueryArgument(arguments map[string]any) (string, error) {
	raw, ok := arguments[domain.ArgQuery]
	if !ok || raw == nil {
		return "", domain.NewSearchError(domain.ErrorKindValidation, domain.ReasonMissingQuery)
	}
	query, ok := raw.(string)
	if !ok {
		return "", domain.NewSearchError(domain.ErrorKindValidation, domain.ReasonQueryNotString)
	}
	return query, nil
}

// ValidateQuery checks the query length in characters (not bytes).
func ValidateQuery(query string) error {
	if query == "" {
		return domain.NewSearchError(domain.ErrorKindValidation, domain.ReasonMissingQuery)
	}

	n := utf8.RuneCountInString(query)
	if n < domain.MinQueryLength {
		return domain.NewSearchError(domain.ErrorKindValidation,
			fmt.Sprintf(domain.ReasonQueryTooShort, domain.MinQueryLength))
	}
	if n > domain.MaxQueryLength {
		return domain.NewSearchError(domain.ErrorKindValidation,
			fmt.Sprintf(domain.ReasonQueryTooLong, domain.MaxQueryLength))
	}
	return nil
}
