package domain

import "fmt"

// NodeNotFoundError indicates the external geodata source has no node with
// the given ID (4xx response or an empty element list).
type NodeNotFoundError struct {
	NodeID int64
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("osm node %d not found", e.NodeID)
}

// MissingFieldsError indicates a node could not be normalized into a POS
// because a mandatory field was missing, blank, or unparseable.
// It deliberately reports only the node ID, matching the upstream contract.
type MissingFieldsError struct {
	NodeID int64
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("osm node %d is missing required fields (name, street, house number, postal code, city)", e.NodeID)
}

// PosNotFoundError indicates a lookup or update targeted a POS ID that is
// not present in the store.
type PosNotFoundError struct {
	ID int64
}

func (e *PosNotFoundError) Error() string {
	return fmt.Sprintf("pos %d not found", e.ID)
}

// DuplicateNameError indicates an upsert would violate the global name
// uniqueness constraint.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("pos with name %q already exists", e.Name)
}

// FetchUnavailableError indicates the external geodata source failed for a
// reason other than "not found" and no recovery fixture was registered for
// the node. The underlying cause is available via Unwrap.
type FetchUnavailableError struct {
	NodeID int64
	Err    error
}

func (e *FetchUnavailableError) Error() string {
	return fmt.Sprintf("fetching osm node %d failed: %v", e.NodeID, e.Err)
}

func (e *FetchUnavailableError) Unwrap() error { return e.Err }
