// Package filter defines the catalog's faceted browsing state and its statically enumerated option sets.
//
// The option tables mirror the slugs the upstream index understands. They are
// configuration, not state: built once at process start and never mutated.
package filter

// Sentinel selections meaning "no constraint" for their facet.
const (
	All          = "all"
	DefaultOrder = "default"
)

// State holds one selection per facet. Every field is always either a key
// from the corresponding option table or the facet's sentinel.
type State struct {
	Genre  string `json:"genre"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Order  string `json:"order"`
}

// NewState returns the unconstrained browsing state.
func NewState() State {
	return State{
		Genre:  All,
		Type:   All,
		Status: All,
		Order:  DefaultOrder,
	}
}

// IsDefault reports whether no facet constrains the result set.
func (s State) IsDefault() bool {
	return s == NewState()
}

// Option pairs an upstream slug with its human-readable display label.
type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// statusCodes translates status slugs into the numeric codes the browse
// endpoint expects. Slugs outside this table are never sent upstream.
var statusCodes = map[string]int{
	"emision":      1,
	"finalizado":   2,
	"proximamente": 3,
}

// StatusCode resolves the numeric upstream code for a status slug.
// The second return value is false for the sentinel and for unknown slugs.
func StatusCode(status string) (int, bool) {
	code, ok := statusCodes[status]
	return code, ok
}
