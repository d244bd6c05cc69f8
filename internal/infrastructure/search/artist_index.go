package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
)

// NewClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// ArtistIndex keeps a searchable copy of artist profiles.
type ArtistIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewArtistIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *ArtistIndex {
	return &ArtistIndex{ES: es, Index: index, Logger: logger}
}

// Enabled is false when no client or index is configured; callers fall back to Postgres.
func (a *ArtistIndex) Enabled() bool {
	return a != nil && a.ES != nil && a.Index != ""
}

type artistDoc struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Field      string  `json:"field"`
	Interest   string  `json:"interest"`
	Profile    string  `json:"profile"`
	Rating     float64 `json:"rating"`
	IsVerified bool    `json:"isVerified"`
	IsBlocked  bool    `json:"isBlocked"`
	CreatedAt  string  `json:"createdAt"`
}

// IndexArtist upserts one artist document.
func (a *ArtistIndex) IndexArtist(ctx context.Context, ar *entity.Artist) error {
	if !a.Enabled() {
		return nil
	}
	b, err := json.Marshal(artistDoc{
		ID:         ar.ID,
		Name:       ar.Name,
		Field:      ar.Field,
		Interest:   ar.Interest,
		Profile:    ar.Profile,
		Rating:     ar.Rating,
		IsVerified: ar.IsVerified,
		IsBlocked:  ar.IsBlocked,
		CreatedAt:  ar.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: a.Index, DocumentID: ar.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, a.ES)
	if err != nil {
		if a.Logger != nil {
			a.Logger.WithError(err).WithField("artist_id", ar.ID).Warn("es index failed")
		}
		return fmt.Errorf("index artist: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index artist: %s", res.Status())
	}
	return nil
}

// SearchIDs runs a multi_match over name, field and interest restricted to
// verified, unblocked artists and returns matching ids by relevance.
func (a *ArtistIndex) SearchIDs(ctx context.Context, q string, size int) ([]string, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     q,
						"fields":    []string{"name^2", "field", "interest"},
						"fuzziness": "AUTO",
					},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"isVerified": true}},
					map[string]any{"term": map[string]any{"isBlocked": false}},
				},
			},
		},
		"size":    size,
		"_source": false,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := a.ES.Search(a.ES.Search.WithContext(c), a.ES.Search.WithIndex(a.Index), a.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search artists: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
