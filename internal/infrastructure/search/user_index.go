// Package search mirrors users into an Elasticsearch index and queries it.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"

	"github.com/oksasatya/go-hexagonal-users/internal/application"
)

const (
	requestTimeout = 3 * time.Second
	DefaultSize    = 10
	MaxSize        = 50
)

// UserIndex holds the public view of users (never password hashes).
type UserIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewUserIndex(es *elasticsearch.Client, index string) *UserIndex {
	return &UserIndex{ES: es, Index: index}
}

// Enabled reports whether a client and index name are configured.
func (x *UserIndex) Enabled() bool {
	return x != nil && x.ES != nil && x.Index != ""
}

type userDoc struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// IndexUser upserts u under its id.
func (x *UserIndex) IndexUser(ctx context.Context, u application.UserResponse) error {
	if !x.Enabled() {
		return nil
	}
	b, err := json.Marshal(userDoc{
		ID:        u.ID.String(),
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req := esapi.IndexRequest{Index: x.Index, DocumentID: u.ID.String(), Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", x.Index, res.Status())
	}
	return nil
}

// SearchUsers runs a multi_match on email. size is clamped to [1, MaxSize].
func (x *UserIndex) SearchUsers(ctx context.Context, q string, size int) ([]application.UserResponse, error) {
	if !x.Enabled() {
		return []application.UserResponse{}, nil
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  strings.TrimSpace(q),
				"fields": []string{"email"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search %s: %s", x.Index, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source userDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]application.UserResponse, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		id, err := uuid.Parse(h.Source.ID)
		if err != nil {
			continue
		}
		created, _ := time.Parse(time.RFC3339Nano, h.Source.CreatedAt)
		out = append(out, application.UserResponse{
			ID:        id,
			Email:     h.Source.Email,
			IsActive:  h.Source.IsActive,
			CreatedAt: created,
		})
	}
	return out, nil
}

// UserCreated indexes a freshly registered user.
func (x *UserIndex) UserCreated(ctx context.Context, u application.UserResponse) error {
	return x.IndexUser(ctx, u)
}
