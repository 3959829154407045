package domain

// Categories is the fixed spending category vocabulary. Budgets reference
// these by name, and every transaction carries exactly one of them.
var Categories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Health & Medical",
	"Travel",
	"Education",
	"Investments",
	"Gifts & Donations",
	"Personal Care",
	"Home & Garden",
	"Other",
}

var categorySet = func() map[string]bool {
	set := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		set[c] = true
	}
	return set
}()

// IsValidCategory reports whether name belongs to the category vocabulary.
func IsValidCategory(name string) bool {
	return categorySet[name]
}
