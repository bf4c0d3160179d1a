package domain

import (
	"fmt"
	"strings"
)

// Category selects the rebate threshold that applies to a taxpayer.
type Category string

const (
	CategorySalaried Category = "Salaried"
	CategoryOthers   Category = "Others"
)

// Categories returns the closed set of categories in display order.
func Categories() []Category {
	return []Category{CategorySalaried, CategoryOthers}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == CategorySalaried || c == CategoryOthers
}

func (c Category) String() string { return string(c) }

// ParseCategory matches a category name case-insensitively.
func ParseCategory(name string) (Category, error) {
	n := strings.TrimSpace(name)
	for _, c := range Categories() {
		if strings.EqualFold(n, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected %s or %s)", ErrInvalidCategory, name, CategorySalaried, CategoryOthers)
}
