// Package tableregistry fetches mortality tables from the external table API.
package tableregistry

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"mortality-engine/internal/model"
)

// Registry caches fetched tables for the life of the process. Tables are
// immutable upstream, so there is no invalidation.
type Registry struct {
	baseURL string
	client  *http.Client
	cache   sync.Map
	logger  *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// Request identifies one stored table, optionally bounded by age.
type Request struct {
	TableID string
	MinAge  *int
	MaxAge  *int
}

// Result is the outcome of one fetch; Points and Err are mutually exclusive.
type Result struct {
	Points []model.MortalityPoint
	Err    error
}

// Fetch returns the raw points of one table, using the cache when possible.
func (r *Registry) Fetch(req Request) ([]model.MortalityPoint, error) {
	key := cacheKey(req)
	if cached, ok := r.cache.Load(key); ok {
		return cached.([]model.MortalityPoint), nil
	}

	points, err := r.fetch(req)
	if err != nil {
		return nil, err
	}
	r.cache.Store(key, points)
	return points, nil
}

// FetchAll resolves several tables, fanning out concurrently when more than
// one is requested. The result slice is index-aligned with reqs.
func (r *Registry) FetchAll(reqs []Request) []Result {
	results := make([]Result, len(reqs))
	if len(reqs) == 1 {
		results[0].Points, results[0].Err = r.Fetch(reqs[0])
		return results
	}

	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			results[i].Points, results[i].Err = r.Fetch(req)
		}(i, req)
	}
	wg.Wait()

	return results
}

func (r *Registry) fetch(req Request) ([]model.MortalityPoint, error) {
	url := r.baseURL + "/tables/" + req.TableID + "/rates"
	sep := "?"
	if req.MinAge != nil {
		url += sep + "min_age=" + strconv.Itoa(*req.MinAge)
		sep = "&"
	}
	if req.MaxAge != nil {
		url += sep + "max_age=" + strconv.Itoa(*req.MaxAge)
	}

	resp, err := r.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch table %s: %w", req.TableID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch table %s: upstream status %d", req.TableID, resp.StatusCode)
	}

	var points []model.MortalityPoint
	if err := json.NewDecoder(resp.Body).Decode(&points); err != nil {
		return nil, fmt.Errorf("decode table %s: %w", req.TableID, err)
	}

	r.logger.Debug("fetched table",
		zap.String("op", "tableregistry.fetch"),
		zap.String("table_id", req.TableID),
		zap.Int("points", len(points)),
	)
	return points, nil
}

func cacheKey(req Request) string {
	key := req.TableID
	if req.MinAge != nil {
		key += "|min=" + strconv.Itoa(*req.MinAge)
	}
	if req.MaxAge != nil {
		key += "|max=" + strconv.Itoa(*req.MaxAge)
	}
	return key
}
