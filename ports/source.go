package ports

import (
	"context"

	"puckval/domain/player"
)

// TableSource is the fetch collaborator: produce a canonical table or
// fail. Retrieval mechanics (HTTP, files, OAuth, caching) all live
// behind this one contract, so the scoring core never sees them.
type TableSource interface {
	FetchTable(ctx context.Context) (*player.StatTable, error)
}
