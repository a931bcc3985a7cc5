// Package datasource provides paged-fetcher implementations over the
// backends the service knows how to read from. Each constructor returns a
// chunkflow.Fetcher so any backend can feed the streaming exports.
package datasource

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/locvowork/report_engine_sample/reportsvc/pkg/chunkflow"
)

// OpenPostgres opens a pooled connection with the pq driver.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// PostgresFetcher pages through a query with OFFSET/LIMIT and scans every
// row into a map keyed by column name. The query must not already contain
// its own LIMIT clause.
func PostgresFetcher(db *sql.DB, query string) chunkflow.Fetcher {
	return func(ctx context.Context, offset, limit int) ([]interface{}, error) {
		paged := fmt.Sprintf("%s OFFSET %d LIMIT %d", query, offset, limit)
		rows, err := db.QueryContext(ctx, paged)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		names, err := rows.Columns()
		if err != nil {
			return nil, err
		}

		var out []interface{}
		for rows.Next() {
			values := make([]interface{}, len(names))
			ptrs := make([]interface{}, len(names))
			for i := range values {
				ptrs[i] = &values[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return nil, err
			}
			record := make(map[string]interface{}, len(names))
			for i, name := range names {
				if b, ok := values[i].([]byte); ok {
					record[name] = string(b)
				} else {
					record[name] = values[i]
				}
			}
			out = append(out, record)
		}
		return out, rows.Err()
	}
}
