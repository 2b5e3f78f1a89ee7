// Package store persists split-window computation runs to a local SQLite
// database so scene estimates can be reviewed and compared later.
package store

import (
	"context"
	"time"
)

// RunRecord is one persisted LST computation: the scene inputs, the
// resolved coefficient subrange, and the result.
type RunRecord struct {
	ID            string    `json:"id"`
	Label         string    `json:"label"`
	EmissivityB10 float64   `json:"emissivity_b10"`
	EmissivityB11 float64   `json:"emissivity_b11"`
	CWV           float64   `json:"cwv"`
	Subrange      string    `json:"subrange"`
	T10           float64   `json:"t10"`
	T11           float64   `json:"t11"`
	LST           float64   `json:"lst"`
	RMSE          float64   `json:"rmse"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store is the persistence interface for computation runs.
type Store interface {
	Migrate(ctx context.Context) error
	SaveRun(ctx context.Context, rec RunRecord) (*RunRecord, error)
	GetRun(ctx context.Context, id string) (*RunRecord, error)
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	Close() error
}
