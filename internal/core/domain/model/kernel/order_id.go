package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"scantrack/internal/pkg/errs"
)

var (
	// ErrEmptyOrderID is returned when nothing usable is left of the scanned text.
	ErrEmptyOrderID = errs.NewValueIsRequiredError("order id")

	// ErrInvalidOrderID is returned when the cleaned text still fails the identifier pattern.
	ErrInvalidOrderID = errs.NewValueIsInvalidError("order id")
)

var (
	orderIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	orderIDNoise   = regexp.MustCompile(`[^A-Za-z0-9-]`)
)

// OrderID is the identifier printed on an order ticket, e.g. "A-1042".
// It is used verbatim as the storage key. The zero value is invalid.
type OrderID struct {
	value string
}

// ParseOrderID normalizes raw scanned text into an OrderID.
//
// Surrounding whitespace is trimmed and every character outside
// [A-Za-z0-9-] is removed. Parsing is idempotent:
// ParseOrderID(id.String()) returns id unchanged.
func ParseOrderID(raw string) (OrderID, error) {
	cleaned := orderIDNoise.ReplaceAllString(strings.TrimSpace(raw), "")
	if cleaned == "" {
		return OrderID{}, ErrEmptyOrderID
	}
	if !orderIDPattern.MatchString(cleaned) {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause(
			ErrInvalidOrderID.ParamName,
			fmt.Errorf("%q does not match %s", cleaned, orderIDPattern),
		)
	}
	return OrderID{value: cleaned}, nil
}

// OrderIDFromString accepts only an already clean identifier, as found in
// URLs and storage. Unlike ParseOrderID nothing is trimmed or removed.
func OrderIDFromString(s string) (OrderID, error) {
	if s == "" {
		return OrderID{}, ErrEmptyOrderID
	}
	if !orderIDPattern.MatchString(s) {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause(
			ErrInvalidOrderID.ParamName,
			fmt.Errorf("%q does not match %s", s, orderIDPattern),
		)
	}
	return OrderID{value: s}, nil
}

// MustParseOrderID is ParseOrderID for literals known to be valid.
func MustParseOrderID(raw string) OrderID {
	id, err := ParseOrderID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

func (id OrderID) String() string {
	return id.value
}

func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

func (id OrderID) Validate() error {
	if id.value == "" {
		return ErrEmptyOrderID
	}
	return nil
}
