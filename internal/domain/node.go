package domain

// OsmNode is the pre-validation representation of an OpenStreetMap node.
// Only NodeID is guaranteed; every tag-derived field may be absent or blank.
type OsmNode struct {
	NodeID      int64
	Name        string
	Description string
	Amenity     string
	Shop        string
	Campus      string
	Street      string
	HouseNumber string
	PostalCode  string
	City        string
}
