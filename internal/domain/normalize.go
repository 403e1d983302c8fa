package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// amenityPosTypes maps normalized OSM amenity tags to POS types.
// Lookup order is amenity first, shop second; see resolvePosType.
var amenityPosTypes = map[string]PosType{
	"cafe":            PosTypeCafe,
	"coffee_shop":     PosTypeCafe,
	"cafeteria":       PosTypeCafeteria,
	"restaurant":      PosTypeCafeteria,
	"fast_food":       PosTypeCafeteria,
	"vending_machine": PosTypeVendingMachine,
}

// shopPosTypes maps normalized OSM shop tags to POS types.
var shopPosTypes = map[string]PosType{
	"bakery": PosTypeBakery,
	"coffee": PosTypeCafe,
}

// ConvertOsmNode deterministically maps an OSM node into a POS candidate.
// The returned Pos has no ID; the store assigns one on upsert.
// It fails with [MissingFieldsError] when any of name, street, house number,
// postal code, or city is absent or blank after trimming, or when the postal
// code does not parse as an integer.
func ConvertOsmNode(node OsmNode) (Pos, error) {
	name, ok := requireText(node.Name)
	if !ok {
		return Pos{}, &MissingFieldsError{NodeID: node.NodeID}
	}
	street, ok := requireText(node.Street)
	if !ok {
		return Pos{}, &MissingFieldsError{NodeID: node.NodeID}
	}
	houseNumber, ok := requireText(node.HouseNumber)
	if !ok {
		return Pos{}, &MissingFieldsError{NodeID: node.NodeID}
	}
	postalCodeText, ok := requireText(node.PostalCode)
	if !ok {
		return Pos{}, &MissingFieldsError{NodeID: node.NodeID}
	}
	city, ok := requireText(node.City)
	if !ok {
		return Pos{}, &MissingFieldsError{NodeID: node.NodeID}
	}

	postalCode, err := strconv.Atoi(postalCodeText)
	if err != nil {
		return Pos{}, &MissingFieldsError{NodeID: node.NodeID}
	}

	return Pos{
		Name:        name,
		Description: resolveDescription(node),
		Type:        resolvePosType(node),
		Campus:      resolveCampus(node),
		Street:      street,
		HouseNumber: houseNumber,
		PostalCode:  postalCode,
		City:        city,
	}, nil
}

// requireText trims the value and reports whether anything is left.
func requireText(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	return trimmed, trimmed != ""
}

// resolveDescription uses the node's own description when present, otherwise
// synthesizes a provenance note from the node ID.
func resolveDescription(node OsmNode) string {
	if description, ok := requireText(node.Description); ok {
		return description
	}
	return fmt.Sprintf("Imported from OpenStreetMap node %d", node.NodeID)
}

// resolvePosType classifies the node via the amenity table, then the shop
// table. Unmatched or absent tags fall through to CAFE; classification
// never fails.
func resolvePosType(node OsmNode) PosType {
	if amenity := normalizeTag(node.Amenity); amenity != "" {
		if mapped, ok := amenityPosTypes[amenity]; ok {
			return mapped
		}
	}
	if shop := normalizeTag(node.Shop); shop != "" {
		if mapped, ok := shopPosTypes[shop]; ok {
			return mapped
		}
	}
	return PosTypeCafe
}

// resolveCampus picks the campus from the campus tag when it names one of
// the known campuses, falls back to street matching for the INF campus,
// and defaults to ALTSTADT. It never fails.
func resolveCampus(node OsmNode) CampusType {
	if tag := normalizeTag(node.Campus); tag != "" {
		for _, campus := range Campuses {
			if strings.EqualFold(string(campus), tag) {
				return campus
			}
		}
	}

	if street := normalizeTag(node.Street); strings.Contains(street, "im neuenheimer feld") {
		return CampusINF
	}

	return CampusAltstadt
}

func normalizeTag(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
