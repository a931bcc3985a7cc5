package datasource

import (
	"context"

	"cloud.google.com/go/datastore"

	"github.com/locvowork/report_engine_sample/reportsvc/pkg/chunkflow"
)

// NewDatastoreClient creates a Datastore client for the given project.
func NewDatastoreClient(ctx context.Context, projectID string) (*datastore.Client, error) {
	return datastore.NewClient(ctx, projectID)
}

// DatastoreFetcher pages through a kind with Offset/Limit and flattens each
// entity's property list into a map.
func DatastoreFetcher(client *datastore.Client, kind string) chunkflow.Fetcher {
	return func(ctx context.Context, offset, limit int) ([]interface{}, error) {
		q := datastore.NewQuery(kind).Offset(offset).Limit(limit)

		var entities []datastore.PropertyList
		if _, err := client.GetAll(ctx, q, &entities); err != nil {
			return nil, err
		}

		out := make([]interface{}, 0, len(entities))
		for _, props := range entities {
			record := make(map[string]interface{}, len(props))
			for _, p := range props {
				record[p.Name] = p.Value
			}
			out = append(out, record)
		}
		return out, nil
	}
}
