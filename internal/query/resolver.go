// Package query turns the optional player filters of a request into exactly
// one lookup plan for the player store.
package query

type Strategy string

const (
	// StrategyFullScan returns every player of the club, ordered by name.
	StrategyFullScan Strategy = "full_scan"
	// StrategyNamePrefix matches player names by prefix on the primary layout.
	StrategyNamePrefix Strategy = "name_prefix"
	// StrategyCategoryPrefix matches positions by prefix on the position index.
	StrategyCategoryPrefix Strategy = "category_prefix"
)

// Filters holds the optional filters. A nil pointer means the filter was not
// supplied; an empty string is a supplied filter with an empty prefix.
type Filters struct {
	Category   *string
	NamePrefix *string
}

// Plan is the resolved lookup. Prefix is empty for StrategyFullScan.
type Plan struct {
	Strategy Strategy
	OwnerID  int64
	Prefix   string
}

// Resolve picks the lookup strategy. Category wins over name prefix when both
// are set; the owner id must already have been checked by the caller.
func Resolve(ownerID int64, f Filters) Plan {
	switch {
	case f.Category != nil:
		return Plan{Strategy: StrategyCategoryPrefix, OwnerID: ownerID, Prefix: *f.Category}
	case f.NamePrefix != nil:
		return Plan{Strategy: StrategyNamePrefix, OwnerID: ownerID, Prefix: *f.NamePrefix}
	default:
		return Plan{Strategy: StrategyFullScan, OwnerID: ownerID}
	}
}

// FiltersFromParams reads the position and playerName parameters.
func FiltersFromParams(params map[string]string) Filters {
	var f Filters
	if v, ok := params["position"]; ok {
		f.Category = &v
	}
	if v, ok := params["playerName"]; ok {
		f.NamePrefix = &v
	}
	return f
}
