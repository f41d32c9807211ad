package validator

import (
	"regexp"
	"strings"

	"backend/customerrors"
	"backend/model"

	"github.com/Oudwins/zog"
)

var SearchShape = zog.Shape{
	"Query": zog.String().Trim().Min(2).Max(100).Required(),
}

var (
	tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}(\.[A-Z]{1,2})?$`)
	cikPattern    = regexp.MustCompile(`^\d{1,10}$`)
)

// ValidTicker reports whether t is an already-uppercased ticker symbol.
func ValidTicker(t string) bool {
	return tickerPattern.MatchString(t)
}

// ValidateSearchRequest rejects malformed search input before any scoring or
// provider contact happens.
func ValidateSearchRequest(req *model.SearchRequest) error {
	schema := zog.Struct(SearchShape)
	if issues := schema.Validate(req); issues != nil {
		return firstIssue(issues)
	}
	return nil
}

// ValidateTicker normalizes and validates a ticker path parameter.
func ValidateTicker(raw string) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	if ticker == "" {
		return "", customerrors.NewValidationError("ticker", "ticker symbol is required")
	}
	if !ValidTicker(ticker) {
		return "", customerrors.NewValidationError("ticker",
			"must be 1-5 uppercase letters, optionally followed by a dot and 1-2 letters")
	}
	return ticker, nil
}

// ValidateCIK checks a raw CIK path parameter without zero-padding it.
func ValidateCIK(raw string) (string, error) {
	cik := strings.TrimSpace(raw)
	if cik == "" {
		return "", customerrors.NewValidationError("cik", "CIK is required")
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cik)
	if !cikPattern.MatchString(digits) {
		return "", customerrors.NewValidationError("cik", "must be 1-10 digits")
	}
	return digits, nil
}

func firstIssue(issues zog.ZogIssueMap) error {
	for field, list := range issues {
		if strings.HasPrefix(field, "$") || len(list) == 0 {
			continue
		}
		return customerrors.NewValidationError(strings.ToLower(field), list[0].Message)
	}
	return customerrors.NewValidationError("", "invalid request")
}
