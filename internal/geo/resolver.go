// Package geo resolves free-text place names to coordinates using a fixed
// gazetteer. There is no geocoding fallback: unknown names fail closed.
package geo

import (
	"fmt"
	"strings"

	"github.com/Abhisg5/trafficDetector/internal/domain"
)

type place struct {
	name     string
	lat, lng float64
}

// Atlanta metro area. Matching is substring containment, so table order
// decides between overlapping names; callers must not assume uniqueness
// beyond that bias.
var gazetteer = []place{
	{"atlanta", 33.7490, -84.3880},
	{"sandy springs", 33.9304, -84.3733},
	{"roswell", 34.0232, -84.3616},
	{"alpharetta", 34.0754, -84.2941},
	{"marietta", 33.9525, -84.5499},
	{"decatur", 33.7748, -84.2963},
	{"johns creek", 34.0289, -84.1986},
	{"duluth", 34.0029, -84.1446},
	{"smyrna", 33.8834, -84.5144},
	{"norcross", 33.9412, -84.2135},
	{"peachtree corners", 33.9701, -84.2216},
	{"brookhaven", 33.8595, -84.3369},
	{"dunwoody", 33.9462, -84.3346},
	{"kennesaw", 34.0234, -84.6155},
	{"woodstock", 34.1015, -84.5194},
	{"lawrenceville", 33.9562, -83.9880},
	{"stone mountain", 33.7940, -84.1702},
	{"college park", 33.6534, -84.4494},
	{"east point", 33.6795, -84.4394},
	{"tucker", 33.8545, -84.2171},
}

// Resolve maps a place name to coordinates. The match is case-insensitive
// containment: "Downtown Atlanta" resolves via the "atlanta" entry. Unknown
// names return ErrLocationNotFound wrapped with the name.
func Resolve(name string) (lat, lng float64, err error) {
	lower := strings.ToLower(name)
	for _, p := range gazetteer {
		if strings.Contains(lower, p.name) {
			return p.lat, p.lng, nil
		}
	}
	return 0, 0, fmt.Errorf("geo: %q: %w", name, domain.ErrLocationNotFound)
}

// Known returns the gazetteer place names in table order.
func Known() []string {
	names := make([]string, len(gazetteer))
	for i, p := range gazetteer {
		names[i] = p.name
	}
	return names
}
