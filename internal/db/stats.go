package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Tables lists the star schema tables in creation order.
var Tables = []string{"artists", "users", "songs", "time", "songplays"}

// Stats returns the row count of every star schema table.
func (db *DB) Stats(ctx context.Context) ([]TableCount, error) {
	counts := make([]TableCount, 0, len(Tables))
	for _, table := range Tables {
		query := "SELECT COUNT(*) FROM " + pgx.Identifier{table}.Sanitize()
		var n int64
		if err := db.pool.QueryRow(ctx, query).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		counts = append(counts, TableCount{Table: table, Rows: n})
	}
	return counts, nil
}
