package store

import "context"

// RunInProject wraps ctx with the project id and calls fn inside the provided TxRunner
func RunInProject(ctx context.Context, tx TxRunner, projectID string, fn func(ctx context.Context, q RowQuerier) error) error {
	ctx = WithProject(ctx, projectID)
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}
