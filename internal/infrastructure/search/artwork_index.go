// Package search indexes artworks in Elasticsearch for GET /artworks/search.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/samber/oops"

	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

type ArtworkIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewArtworkIndex(es *elasticsearch.Client, index string) *ArtworkIndex {
	return &ArtworkIndex{es: es, index: index}
}

type artworkDoc struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ArtistID    int64   `json:"artist_id"`
}

func (x *ArtworkIndex) Index(ctx context.Context, a entity.Artwork) error {
	b, err := json.Marshal(artworkDoc(a))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: strconv.FormatInt(a.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return oops.Code("ES_INDEX_FAILED").With("artwork_id", a.ID).Wrap(err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return oops.Code("ES_INDEX_FAILED").With("artwork_id", a.ID).With("status", res.Status()).Errorf("index response error")
	}
	return nil
}

// Remove deletes the document. A document that was never indexed is not an error.
func (x *ArtworkIndex) Remove(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return oops.Code("ES_DELETE_FAILED").With("artwork_id", id).Wrap(err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return oops.Code("ES_DELETE_FAILED").With("artwork_id", id).With("status", res.Status()).Errorf("delete response error")
	}
	return nil
}

// Search runs a multi_match over title and description and returns the ids of the hits.
func (x *ArtworkIndex) Search(ctx context.Context, q string, size int) ([]int64, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size":    size,
		"_source": false,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, oops.Code("ES_SEARCH_FAILED").Wrap(err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, oops.Code("ES_SEARCH_FAILED").With("status", res.Status()).Errorf("search response error")
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, oops.Code("ES_SEARCH_FAILED").Wrap(err)
	}

	ids := make([]int64, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
