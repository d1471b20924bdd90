package utils

import "strings"

// NormalizePlate strips spaces and dashes from a license plate and upper-cases
// it, so lookups and uniqueness checks use one canonical form.
func NormalizePlate(raw string) string {
	normalized := strings.TrimSpace(raw)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ToUpper(normalized)
	return normalized
}

// NormalizeVin canonicalizes a VIN the same way plates are canonicalized.
func NormalizeVin(raw string) string {
	return NormalizePlate(raw)
}
