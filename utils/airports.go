// utils/airports.go
package utils

import (
	"log"
	"strings"
)

// NormalizeAirportCode coerces an airport string to a bare 3-letter code,
// uppercased. Retrieval services sometimes answer with verbose forms like
// "FRA (Frankfurt)"; anything longer than 3 characters is capped to its first
// 3 - never rejected. The cap is logged so drift stays observable.
func NormalizeAirportCode(code string, fieldName string) string {
	trimmed := strings.TrimSpace(code)
	if len(trimmed) > 3 {
		capped := strings.ToUpper(trimmed[:3])
		log.Printf("WARN Utils: airport code capped: %s was %q -> %q", fieldName, code, capped)
		return capped
	}
	return strings.ToUpper(trimmed)
}
