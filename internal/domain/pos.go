package domain

import "time"

// PosType classifies what kind of point of sale a location is.
// The set is closed; normalization never produces a value outside it.
type PosType string

const (
	PosTypeCafe           PosType = "CAFE"
	PosTypeCafeteria      PosType = "CAFETERIA"
	PosTypeBakery         PosType = "BAKERY"
	PosTypeVendingMachine PosType = "VENDING_MACHINE"
)

// Valid reports whether t is one of the closed set of POS types.
func (t PosType) Valid() bool {
	switch t {
	case PosTypeCafe, PosTypeCafeteria, PosTypeBakery, PosTypeVendingMachine:
		return true
	}
	return false
}

// CampusType identifies which Heidelberg University campus a POS belongs to.
type CampusType string

const (
	CampusAltstadt  CampusType = "ALTSTADT"
	CampusBergheim  CampusType = "BERGHEIM"
	CampusNeuenheim CampusType = "NEUENHEIM"
	CampusINF       CampusType = "INF"
)

// Campuses lists all campus values, used for case-insensitive tag matching.
var Campuses = []CampusType{CampusAltstadt, CampusBergheim, CampusNeuenheim, CampusINF}

// Valid reports whether c is one of the closed set of campuses.
func (c CampusType) Valid() bool {
	for _, campus := range Campuses {
		if c == campus {
			return true
		}
	}
	return false
}

// Pos is a persisted point of sale. ID is 0 until the store assigns one;
// a persisted Pos always has ID > 0 and a globally unique Name.
// CreatedAt/UpdatedAt are managed by the store.
type Pos struct {
	ID          int64      `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string     `json:"name" bson:"name"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Type        PosType    `json:"type" bson:"type"`
	Campus      CampusType `json:"campus" bson:"campus"`
	Street      string     `json:"street" bson:"street"`
	HouseNumber string     `json:"house_number" bson:"house_number"`
	PostalCode  int        `json:"postal_code" bson:"postal_code"`
	City        string     `json:"city" bson:"city"`
	CreatedAt   time.Time  `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
