package domain

import "context"

// NodeFetcher retrieves raw OpenStreetMap nodes from the external geodata
// source. Fetch fails with [NodeNotFoundError] when the source has no such
// node and [FetchUnavailableError] for unrecoverable transport failures.
type NodeFetcher interface {
	FetchNode(ctx context.Context, nodeID int64) (OsmNode, error)
}

// PosStore is durable keyed storage for POS records. Upsert assigns an ID
// when the input has none and enforces global name uniqueness, failing with
// [DuplicateNameError]. GetByID fails with [PosNotFoundError].
type PosStore interface {
	GetAll(ctx context.Context) ([]Pos, error)
	GetByID(ctx context.Context, id int64) (Pos, error)
	Upsert(ctx context.Context, pos Pos) (Pos, error)
	Clear(ctx context.Context) error
}
