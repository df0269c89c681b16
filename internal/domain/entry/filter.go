package entry

// RoleAdmin is the only role with shop-wide visibility; every other role sees
// its own entries only.
const RoleAdmin = "admin"

// Actor identifies the caller for visibility purposes.
type Actor struct {
	Role string
	Name string
}

// Criteria holds the optional list filters. Empty fields impose no
// constraint; present fields AND together. From and To are inclusive bounds
// on the canonical date, which compares correctly as a string.
type Criteria struct {
	From        string
	To          string
	Bus         string
	Mechanic    string
	ServiceType string
}

// Filter narrows entries by role visibility first, then by the conjunctive
// criteria. A non-admin actor never sees another mechanic's entries, even
// with no criteria set. Input order is preserved.
func Filter(entries []*Entry, actor Actor, criteria Criteria) []*Entry {
	filtered := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if actor.Role != RoleAdmin && e.Mechanic != actor.Name {
			continue
		}
		if criteria.From != "" && e.Date < criteria.From {
			continue
		}
		if criteria.To != "" && e.Date > criteria.To {
			continue
		}
		if criteria.Bus != "" && e.Bus != criteria.Bus {
			continue
		}
		if criteria.Mechanic != "" && e.Mechanic != criteria.Mechanic {
			continue
		}
		if criteria.ServiceType != "" && e.ServiceType != criteria.ServiceType {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}
