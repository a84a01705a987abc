package extractor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCustomerID is returned for an account id that is empty or not numeric.
var ErrInvalidCustomerID = errors.New("invalid customer id")

// CustomerID is a Google Ads account id with the hyphens removed.
// Values are produced by ParseCustomerID only.
type CustomerID string

// ParseCustomerID strips the hyphens of the display form ("123-456-7890")
// and checks that what remains is a non-empty run of digits.
func ParseCustomerID(s string) (CustomerID, error) {
	id := strings.ReplaceAll(strings.TrimSpace(s), "-", "")
	if id == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidCustomerID)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidCustomerID, s)
		}
	}
	return CustomerID(id), nil
}

// String returns the digits-only form sent to the API.
func (c CustomerID) String() string {
	return string(c)
}

// Display returns the hyphenated form used by the Google Ads UI for 10 digit ids.
func (c CustomerID) Display() string {
	s := string(c)
	if len(s) != 10 {
		return s
	}
	return s[:3] + "-" + s[3:6] + "-" + s[6:]
}
