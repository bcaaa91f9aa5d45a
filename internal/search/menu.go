package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/canteen/internal/models"
)

// MenuIndex keeps menu items searchable in Elasticsearch.
type MenuIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewMenuIndex(es *elasticsearch.Client, index string) *MenuIndex {
	return &MenuIndex{ES: es, Index: index}
}

func (m *MenuIndex) IndexMenuItem(ctx context.Context, item models.MenuItem) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(item); err != nil {
		return fmt.Errorf("encode menu item: %w", err)
	}

	res, err := m.ES.Index(
		m.Index,
		&buf,
		m.ES.Index.WithContext(ctx),
		m.ES.Index.WithDocumentID(docID(item.ID)),
	)
	if err != nil {
		return fmt.Errorf("index menu item %d: %w", item.ID, err)
	}
	defer res.Body.Close()

	return responseError(res, "index menu item")
}

func (m *MenuIndex) DeleteMenuItem(ctx context.Context, id uint) error {
	res, err := m.ES.Delete(m.Index, docID(id), m.ES.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete menu item %d: %w", id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	return responseError(res, "delete menu item")
}

func (m *MenuIndex) Search(ctx context.Context, query string, from, size int) (int64, []models.MenuItem, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode search query: %w", err)
	}

	res, err := m.ES.Search(
		m.ES.Search.WithContext(ctx),
		m.ES.Search.WithIndex(m.Index),
		m.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search menu: %w", err)
	}
	defer res.Body.Close()

	if err := responseError(res, "search menu"); err != nil {
		return 0, nil, err
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.MenuItem `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}

	items := make([]models.MenuItem, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		items[i] = hit.Source
	}
	return r.Hits.Total.Value, items, nil
}

func docID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func responseError(res *esapi.Response, op string) error {
	if !res.IsError() {
		return nil
	}
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("%s: %s: %s", op, res.Status(), bytes.TrimSpace(body))
}
