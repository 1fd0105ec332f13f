package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartArchiveCleaner prunes archived submissions older than retention,
// checking once per interval.
func StartArchiveCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention)
				res, err := db.ExecContext(ctx, `
                    DELETE FROM submissions
                     WHERE received_at < $1
                `, cutoff)
				if err != nil {
					log.Error("failed to prune archived submissions", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("pruned archived submissions", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
