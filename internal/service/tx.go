package service

import (
	"context"
	"database/sql"

	"github.com/phrazzld/dailyplan-api/internal/store"
)

// PlanTxRunner runs fn with a PlanStore bound to a single transaction. The
// transaction commits when fn returns nil.
type PlanTxRunner func(ctx context.Context, fn func(ctx context.Context, plans store.PlanStore) error) error

// NewSQLPlanTxRunner runs transactions on db through store.RunInTransaction.
func NewSQLPlanTxRunner(db *sql.DB, plans store.PlanStore) PlanTxRunner {
	return func(ctx context.Context, fn func(ctx context.Context, plans store.PlanStore) error) error {
		return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return fn(ctx, plans.WithTx(tx))
		})
	}
}
