package tasks

import "strings"

// Filter selects which tasks the UI shows. It never changes the lists.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterCompleted  Filter = "completed"
	FilterIncomplete Filter = "incomplete"
	FilterDeleted    Filter = "deleted"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterCompleted, FilterIncomplete, FilterDeleted}

// ParseFilter maps user input to a filter, defaulting to FilterAll.
func ParseFilter(s string) Filter {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Filters {
		if f == known {
			return f
		}
	}
	return FilterAll
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	for i, known := range Filters {
		if f == known {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

func (f Filter) keep(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterIncomplete:
		return !t.Completed
	default:
		return true
	}
}
