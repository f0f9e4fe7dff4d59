package port

import (
	"context"

	"wallet_client/internal/domain/entity"
)

// HistoryStore is the append-only log of confirmed transfers. The serving
// implementation lives in a separate process; the client side talks to it
// over REST.
type HistoryStore interface {
	// Append stores the record and returns it with the assigned id.
	Append(ctx context.Context, record entity.TransferRecord) (entity.TransferRecord, error)

	// List returns all records in original append order.
	List(ctx context.Context) ([]entity.TransferRecord, error)
}
