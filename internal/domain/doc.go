// Package domain models campus Points of Sale (POS) and the OpenStreetMap
// node data they are imported from.
//
// # Data Source
//
// POS records are imported from individual OpenStreetMap nodes fetched via
// the OSM API v0.6 (https://api.openstreetmap.org/api/0.6/node/{id}.json).
// A node carries a free-form tag map; the tags relevant here are:
//
//	name, description (fallback: note), amenity, shop, campus,
//	addr:street (fallback: addr:road), addr:housenumber, addr:postcode, addr:city
//
// All tags are optional on the OSM side. Normalization enforces which of
// them a POS actually requires.
//
// # Required Fields
//
// A node can only become a POS if name, street, house number, postal code,
// and city are present and non-blank after trimming, and the postal code
// parses as an integer. Any violation fails with [MissingFieldsError]
// carrying the node ID.
//
// # Classification
//
// The POS type is derived from the amenity tag first, then the shop tag,
// using fixed lookup tables (case-insensitive, whitespace-trimmed):
//
//	amenity: cafe → CAFE | coffee_shop → CAFE | cafeteria → CAFETERIA
//	         restaurant → CAFETERIA | fast_food → CAFETERIA
//	         vending_machine → VENDING_MACHINE
//	shop:    bakery → BAKERY | coffee → CAFE
//
// Unmatched or absent tags never fail classification; the default is CAFE.
//
// # Campus Resolution
//
// The campus tag wins when it matches a [CampusType] name case-insensitively.
// Otherwise a street containing "im neuenheimer feld" resolves to INF
// (the Im Neuenheimer Feld science campus). Everything else defaults to
// ALTSTADT. Campus resolution never fails.
package domain
