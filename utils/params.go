package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBoolLiteral reports whether s is the literal "true", case-insensitive.
// Any other value ("1", "yes", garbage) counts as false. Product filtering
// depends on this exact behavior: `featured=1` matches non-featured products.
func ParseBoolLiteral(s string) bool {
	return strings.ToLower(s) == "true"
}

// ParsePrice parses a numeric price bound from a query parameter.
func ParsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	return v, nil
}

// ParsePositiveInt parses a strictly positive integer from a query parameter.
func ParsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid positive integer %q", s)
	}
	return n, nil
}
