// Package catalog holds the browsing session state.
package catalog

import "fmt"

// UnknownFacetError reports a facet name outside genre/type/status/order.
type UnknownFacetError struct {
	Facet string
}

func (e *UnknownFacetError) Error() string {
	return fmt.Sprintf("unknown filter facet %q", e.Facet)
}

// InvalidSelectionError reports a selection outside a facet's enumerated
// option table. Such values must never reach the upstream API.
type InvalidSelectionError struct {
	Facet string
	Value string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid %s selection %q", e.Facet, e.Value)
}
