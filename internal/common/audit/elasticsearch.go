package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
)

// ElasticsearchSink indexes one document per record, keyed by record id.
type ElasticsearchSink struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchSink(client *elasticsearch.Client, index string) *ElasticsearchSink {
	return &ElasticsearchSink{client: client, index: index}
}

func (s *ElasticsearchSink) Name() string { return "elasticsearch" }

func (s *ElasticsearchSink) Write(ctx context.Context, rec Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal audit record: %w", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(body),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(rec.ID),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch audit write failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("elasticsearch audit write error: %s: %s", res.Status(), string(msg))
	}
	return nil
}
