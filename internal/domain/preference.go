package domain

// DietaryPreference identifies the dietary rule set a scan is checked against
type DietaryPreference string

const (
	PreferenceHalal      DietaryPreference = "halal"
	PreferenceKosher     DietaryPreference = "kosher"
	PreferenceVegan      DietaryPreference = "vegan"
	PreferenceVegetarian DietaryPreference = "vegetarian"
	PreferenceGlutenFree DietaryPreference = "gluten-free"
	PreferenceDairyFree  DietaryPreference = "dairy-free"
	PreferenceOther      DietaryPreference = "other"
)

// KnownPreferences lists every accepted preference value in display order
var KnownPreferences = []DietaryPreference{
	PreferenceHalal,
	PreferenceKosher,
	PreferenceVegan,
	PreferenceVegetarian,
	PreferenceGlutenFree,
	PreferenceDairyFree,
	PreferenceOther,
}

// IsKnown reports whether p is one of the accepted preference values
func (p DietaryPreference) IsKnown() bool {
	for _, known := range KnownPreferences {
		if p == known {
			return true
		}
	}
	return false
}

// RestrictionRuleSet maps each built-in preference to its ordered set of
// lowercase restricted substrings. It is built once at process start and
// shared read-only across requests, so lookups need no locking.
type RestrictionRuleSet struct {
	terms map[DietaryPreference][]string
}

// NewRestrictionRuleSet builds the default preference -> restricted terms
// mapping. The slices keep a fixed order so verdicts are deterministic.
func NewRestrictionRuleSet() *RestrictionRuleSet {
	return &RestrictionRuleSet{
		terms: map[DietaryPreference][]string{
			PreferenceHalal:      {"pork", "alcohol", "wine", "beer", "gelatin", "lard"},
			PreferenceKosher:     {"pork", "shellfish", "milk with meat", "gelatin"},
			PreferenceVegan:      {"milk", "eggs", "honey", "gelatin", "whey", "butter"},
			PreferenceVegetarian: {"meat", "fish", "chicken", "beef", "pork"},
			PreferenceGlutenFree: {"wheat", "barley", "rye", "gluten"},
			PreferenceDairyFree:  {"milk", "butter", "cheese", "whey", "lactose"},
		},
	}
}

// Terms returns the restricted terms for a preference. An unknown preference
// (including "other", whose terms come from the caller's custom restriction)
// yields an empty set.
func (rs *RestrictionRuleSet) Terms(p DietaryPreference) []string {
	return rs.terms[p]
}
