// resolver/normalize.go
package resolver

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/quickflightcal/backend/models"
)

// 2-3 letter carrier code followed by a 1-4 digit flight number.
var flightNumberPattern = regexp.MustCompile(`^([A-Z]{2,3})(\d{1,4})$`)

// Normalize parses free-text flight-number input into a FlightIdentifier.
// All whitespace is stripped and the remainder uppercased, so "lh 458" and
// "LH458" name the same flight. On mismatch it returns an InvalidFormat
// error with no feedback link - bad input is a user problem, not a data gap.
// Pure and synchronous; performs no I/O.
func Normalize(raw string) (models.FlightIdentifier, error) {
	cleaned := strings.ToUpper(strings.Join(strings.Fields(raw), ""))

	m := flightNumberPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return models.FlightIdentifier{}, &models.ResolutionError{
			Kind:    models.ErrInvalidFormat,
			Message: "Invalid flight number",
		}
	}

	n, _ := strconv.Atoi(m[2]) // pattern guarantees 1-4 digits
	return models.FlightIdentifier{
		CarrierCode: m[1],
		NumberText:  m[2],
		Number:      n,
	}, nil
}
