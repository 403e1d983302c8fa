package osm

import "github.com/campuscoffee/pos-service/internal/domain"

// RecoveryProvider supplies substitute nodes when the OSM API fails for a
// reason other than "not found". It keeps the fixture special case out of
// the client's general error handling.
type RecoveryProvider interface {
	// Recover returns a substitute node for the ID, if one is registered.
	Recover(nodeID int64) (domain.OsmNode, bool)
}

// StaticFixtures is a RecoveryProvider backed by a fixed node map.
type StaticFixtures struct {
	nodes map[int64]domain.OsmNode
}

// NewStaticFixtures creates a provider from the given nodes, keyed by NodeID.
func NewStaticFixtures(nodes ...domain.OsmNode) *StaticFixtures {
	m := make(map[int64]domain.OsmNode, len(nodes))
	for _, n := range nodes {
		m[n.NodeID] = n
	}
	return &StaticFixtures{nodes: m}
}

// Recover implements RecoveryProvider.
func (f *StaticFixtures) Recover(nodeID int64) (domain.OsmNode, bool) {
	node, ok := f.nodes[nodeID]
	return node, ok
}

// DefaultFixtures returns the fixtures shipped with the service: the Rada
// café in the Heidelberg old town, kept available so demo imports survive
// OSM API outages.
func DefaultFixtures() *StaticFixtures {
	return NewStaticFixtures(domain.OsmNode{
		NodeID:      5589879349,
		Name:        "Rada",
		Description: "Caffé und Rösterei",
		Amenity:     "cafe",
		Street:      "Untere Straße",
		HouseNumber: "21",
		PostalCode:  "69117",
		City:        "Heidelberg",
		Campus:      "ALTSTADT",
	})
}
