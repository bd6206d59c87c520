package domain

import "time"

// Category is a household-defined expense category.
type Category struct {
	ID          string
	HouseholdID string
	Name        string
	CreatedAt   time.Time
}

// DefaultCategories is always offered in entry forms; a household's own
// categories extend the list.
var DefaultCategories = []string{
	"Groceries",
	"Housing",
	"Travel",
	"Household",
	"Entertainment",
	"Beauty",
	"Clothing",
	"Gifts",
	"Health",
	"Sport",
	CategoryOther,
}
