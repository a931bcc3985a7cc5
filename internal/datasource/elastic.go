package datasource

import (
	"context"
	"encoding/json"

	"github.com/olivere/elastic/v7"

	"github.com/locvowork/report_engine_sample/reportsvc/pkg/chunkflow"
)

// NewElasticClient connects to a single Elasticsearch node without sniffing.
func NewElasticClient(url string) (*elastic.Client, error) {
	return elastic.NewClient(elastic.SetURL(url), elastic.SetSniff(false))
}

// ElasticFetcher pages through an index with From/Size. A nil query matches
// everything. From/Size paging is capped by the index max_result_window;
// for deeper exports use a filtered query per page.
func ElasticFetcher(client *elastic.Client, index string, query elastic.Query) chunkflow.Fetcher {
	if query == nil {
		query = elastic.NewMatchAllQuery()
	}
	return func(ctx context.Context, offset, limit int) ([]interface{}, error) {
		res, err := client.Search().
			Index(index).
			Query(query).
			From(offset).
			Size(limit).
			Do(ctx)
		if err != nil {
			return nil, err
		}

		out := make([]interface{}, 0, len(res.Hits.Hits))
		for _, hit := range res.Hits.Hits {
			record := map[string]interface{}{}
			if err := json.Unmarshal(hit.Source, &record); err != nil {
				return nil, err
			}
			out = append(out, record)
		}
		return out, nil
	}
}
