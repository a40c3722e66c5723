// Package naming holds the identifier predicates shared by the naming rules.
package naming

import "strings"

// Marker is the convention character whose position in an identifier
// the naming rules enforce.
const Marker = "_"

// HasLeadingMarker reports whether text begins with Marker.
// Empty text never carries a marker.
func HasLeadingMarker(text string) bool {
	return text != "" && strings.HasPrefix(text, Marker)
}

// HasTrailingMarker reports whether text ends with Marker.
func HasTrailingMarker(text string) bool {
	return text != "" && strings.HasSuffix(text, Marker)
}
