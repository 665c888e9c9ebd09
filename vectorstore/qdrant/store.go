package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/indexit/core"
	"github.com/poiesic/indexit/vectorstore"
)

const (
	defaultTimeout = 30 * time.Second

	// Payload keys reserved by the store itself.
	payloadChunkID = "chunk_id"
	payloadContent = "content"
)

// Config holds connection settings for a Qdrant server.
type Config struct {
	// URL is the base URL of the Qdrant REST API, e.g. "http://localhost:6333".
	URL string

	// APIKey is sent in the api-key header when non-empty.
	APIKey string

	// Timeout bounds every request. Default 30s.
	Timeout time.Duration
}

// Store is a vectorstore.Store backed by a remote Qdrant server.
type Store struct {
	url    string
	apiKey string
	client *http.Client
	logger *slog.Logger

	// ready caches which collections have been created this process.
	// Written only on first use per collection; see EnsureCollection.
	mu    sync.Mutex
	ready map[string]bool
}

var _ vectorstore.Store = (*Store)(nil)

// NewStore creates a Qdrant-backed store. It does not contact the server;
// use Probe to check liveness before binding to this backend.
func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Store{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: timeout},
		logger: slog.Default().With("component", "qdrant-store"),
		ready:  make(map[string]bool),
	}
}

// Probe checks whether the Qdrant server is reachable and ready.
// The timeout bounds the whole probe so backend selection never stalls.
func Probe(ctx context.Context, cfg Config, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL+"/readyz", nil)
	if err != nil {
		return err
	}
	if cfg.APIKey != "" {
		req.Header.Set("api-key", cfg.APIKey)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant readiness probe failed: %s", resp.Status)
	}
	return nil
}

// EnsureCollection creates the collection with cosine distance if missing.
// Readiness is cached per collection, so only the first call per process
// issues a request.
func (s *Store) EnsureCollection(ctx context.Context, collection string, dimension int) error {
	if collection == "" {
		return vectorstore.ErrCollectionRequired
	}

	s.mu.Lock()
	if s.ready[collection] {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	err := s.do(ctx, http.MethodPut, s.collectionURL(collection), body, nil)
	// A conflict means the collection already exists, which is fine.
	if err != nil && !isStatus(err, http.StatusConflict) {
		return err
	}

	s.mu.Lock()
	s.ready[collection] = true
	s.mu.Unlock()
	return nil
}

// Upsert writes items as points, overwriting points with the same id.
func (s *Store) Upsert(ctx context.Context, collection string, items []vectorstore.Item) error {
	if collection == "" {
		return vectorstore.ErrCollectionRequired
	}
	if len(items) == 0 {
		return nil
	}

	points := make([]map[string]any, len(items))
	for i, item := range items {
		if len(item.Vector) == 0 {
			return fmt.Errorf("item %q: %w", item.ID, vectorstore.ErrEmptyVector)
		}
		payload := item.Metadata.Interface()
		payload[payloadChunkID] = item.ID
		payload[payloadContent] = item.Content
		points[i] = map[string]any{
			"id":      pointID(item.ID),
			"vector":  item.Vector,
			"payload": payload,
		}
	}

	body := map[string]any{"points": points}
	return s.do(ctx, http.MethodPut, s.collectionURL(collection)+"/points?wait=true", body, nil)
}

// Query returns up to topK matches ordered by descending similarity.
// Scores are clamped into [0,1].
func (s *Store) Query(ctx context.Context, collection string, vector []float32, topK int, filter core.Filter) ([]vectorstore.Match, error) {
	if collection == "" {
		return nil, vectorstore.ErrCollectionRequired
	}
	if len(vector) == 0 {
		return nil, vectorstore.ErrEmptyVector
	}
	if topK <= 0 {
		topK = 10
	}

	body := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	if qf := translateFilter(filter); qf != nil {
		body["filter"] = qf
	}

	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.do(ctx, http.MethodPost, s.collectionURL(collection)+"/points/search", body, &resp); err != nil {
		return nil, err
	}

	matches := make([]vectorstore.Match, 0, len(resp.Result))
	for _, r := range resp.Result {
		match, err := matchFromPayload(r.Payload, clampScore(r.Score))
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// Scroll pages through all points of the collection.
func (s *Store) Scroll(ctx context.Context, collection string, cursor string, limit int) ([]vectorstore.Item, string, error) {
	if collection == "" {
		return nil, "", vectorstore.ErrCollectionRequired
	}
	if limit <= 0 {
		limit = 100
	}

	body := map[string]any{
		"limit":        limit,
		"with_payload": true,
		"with_vector":  true,
	}
	if cursor != "" {
		body["offset"] = cursor
	}

	var resp struct {
		Result struct {
			Points []struct {
				Vector  []float32      `json:"vector"`
				Payload map[string]any `json:"payload"`
			} `json:"points"`
			NextPageOffset any `json:"next_page_offset"`
		} `json:"result"`
	}
	if err := s.do(ctx, http.MethodPost, s.collectionURL(collection)+"/points/scroll", body, &resp); err != nil {
		return nil, "", err
	}

	items := make([]vectorstore.Item, 0, len(resp.Result.Points))
	for _, p := range resp.Result.Points {
		match, err := matchFromPayload(p.Payload, 0)
		if err != nil {
			return nil, "", err
		}
		items = append(items, vectorstore.Item{
			ID:       match.ID,
			Vector:   p.Vector,
			Content:  match.Content,
			Metadata: match.Metadata,
		})
	}

	next := ""
	if s, ok := resp.Result.NextPageOffset.(string); ok {
		next = s
	}
	return items, next, nil
}

// Delete removes all points matching the filter.
func (s *Store) Delete(ctx context.Context, collection string, filter core.Filter) error {
	if collection == "" {
		return vectorstore.ErrCollectionRequired
	}

	qf := translateFilter(filter)
	if qf == nil {
		// An empty filter matches everything.
		qf = map[string]any{}
	}
	body := map[string]any{"filter": qf}
	err := s.do(ctx, http.MethodPost, s.collectionURL(collection)+"/points/delete?wait=true", body, nil)
	if isStatus(err, http.StatusNotFound) {
		s.logger.Debug("delete on missing collection treated as success", "collection", collection)
		return nil
	}
	return err
}

// DropCollection removes the collection. Dropping a collection that does not
// exist is a no-op success, so repeated clears are safe.
func (s *Store) DropCollection(ctx context.Context, collection string) error {
	if collection == "" {
		return vectorstore.ErrCollectionRequired
	}

	err := s.do(ctx, http.MethodDelete, s.collectionURL(collection), nil, nil)
	if err != nil && !isStatus(err, http.StatusNotFound) {
		return err
	}

	s.mu.Lock()
	delete(s.ready, collection)
	s.mu.Unlock()
	return nil
}

// Count returns the exact number of points in the collection.
// A missing collection counts as empty.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	if collection == "" {
		return 0, vectorstore.ErrCollectionRequired
	}

	body := map[string]any{"exact": true}
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	err := s.do(ctx, http.MethodPost, s.collectionURL(collection)+"/points/count", body, &resp)
	if isStatus(err, http.StatusNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return resp.Result.Count, nil
}

// Close is a no-op; the HTTP client holds no persistent resources.
func (s *Store) Close() error {
	return nil
}

func (s *Store) collectionURL(collection string) string {
	return fmt.Sprintf("%s/collections/%s", s.url, collection)
}

func (s *Store) do(ctx context.Context, method, url string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &statusError{method: method, url: url, status: resp.StatusCode, text: resp.Status}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// statusError carries the HTTP status so callers can special-case not-found.
type statusError struct {
	method string
	url    string
	status int
	text   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("qdrant %s %s failed: %s", e.method, e.url, e.text)
}

func isStatus(err error, status int) bool {
	var se *statusError
	return errors.As(err, &se) && se.status == status
}

// pointID derives a deterministic UUIDv5 from the chunk id; Qdrant only
// accepts UUIDs or unsigned integers as point ids.
func pointID(chunkID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(chunkID)).String()
}

// translateFilter converts a metadata filter into Qdrant filter JSON.
// Single-value lists become equality matches, longer lists become any-of
// matches; keys combine under "must" (AND). Returns nil for empty filters.
func translateFilter(filter core.Filter) map[string]any {
	if len(filter) == 0 {
		return nil
	}
	must := make([]map[string]any, 0, len(filter))
	for key, values := range filter {
		switch len(values) {
		case 0:
			continue
		case 1:
			must = append(must, map[string]any{
				"key":   key,
				"match": map[string]any{"value": values[0].Interface()},
			})
		default:
			accepted := make([]any, len(values))
			for i, v := range values {
				accepted[i] = v.Interface()
			}
			must = append(must, map[string]any{
				"key":   key,
				"match": map[string]any{"any": accepted},
			})
		}
	}
	if len(must) == 0 {
		return nil
	}
	return map[string]any{"must": must}
}

func matchFromPayload(payload map[string]any, score float32) (vectorstore.Match, error) {
	match := vectorstore.Match{Score: score}
	raw := make(map[string]any, len(payload))
	for k, v := range payload {
		switch k {
		case payloadChunkID:
			if s, ok := v.(string); ok {
				match.ID = s
			}
		case payloadContent:
			if s, ok := v.(string); ok {
				match.Content = s
			}
		default:
			raw[k] = v
		}
	}
	md, err := core.MetadataOf(raw)
	if err != nil {
		return vectorstore.Match{}, fmt.Errorf("decoding point payload: %w", err)
	}
	match.Metadata = md
	return match, nil
}

func clampScore(score float64) float32 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return float32(score)
}
