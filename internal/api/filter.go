package api

// Filter is a Notion database filter: either a property predicate (Property
// plus exactly one typed condition) or a compound And/Or of filters.
type Filter struct {
	Property string     `json:"property,omitempty"`
	Status   *Condition `json:"status,omitempty"`
	People   *Condition `json:"people,omitempty"`

	And []Filter `json:"and,omitempty"`
	Or  []Filter `json:"or,omitempty"`
}

// Condition is the typed half of a property predicate.
type Condition struct {
	Equals       string `json:"equals,omitempty"`
	DoesNotEqual string `json:"does_not_equal,omitempty"`
	IsEmpty      bool   `json:"is_empty,omitempty"`
	IsNotEmpty   bool   `json:"is_not_empty,omitempty"`
}

// StatusEquals matches pages whose status property equals value.
func StatusEquals(property, value string) Filter {
	return Filter{Property: property, Status: &Condition{Equals: value}}
}

// PeopleIsNotEmpty matches pages with at least one person in property.
func PeopleIsNotEmpty(property string) Filter {
	return Filter{Property: property, People: &Condition{IsNotEmpty: true}}
}

// And combines filters so that all must match. A single filter is returned
// unwrapped.
func And(filters ...Filter) Filter {
	if len(filters) == 1 {
		return filters[0]
	}
	return Filter{And: filters}
}

// Or combines filters so that any may match. A single filter is returned
// unwrapped.
func Or(filters ...Filter) Filter {
	if len(filters) == 1 {
		return filters[0]
	}
	return Filter{Or: filters}
}
