// file: internal/server/search_service.go
// version: 1.2.0
// guid: 7c8d9e0f-1a2b-3c4d-5e6f-7a8b9c0d1e2f

package server

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jdfalk/booksearch/internal/cache"
	"github.com/jdfalk/booksearch/internal/dataset"
	"github.com/jdfalk/booksearch/internal/metrics"
	"github.com/jdfalk/booksearch/internal/ranker"
	"github.com/jdfalk/booksearch/internal/scheduler"
)

// SearchService wires the ranking pipeline, the query scheduler, the
// dataset snapshot, and the result cache behind the HTTP handlers.
type SearchService struct {
	rnk      *ranker.Ranker
	sched    *scheduler.Scheduler
	hub      *EventHub
	results  *cache.Cache[ranker.Result]
	snapshot atomic.Pointer[dataset.Snapshot]
	topK     int
}

// NewSearchService creates the service. Scheduler outcomes are
// delivered to the SSE hub; superseded ones never reach it.
func NewSearchService(rnk *ranker.Ranker, topK int, cacheTTL time.Duration) *SearchService {
	if rnk == nil {
		rnk = ranker.New()
	}
	if topK <= 0 {
		topK = ranker.DefaultK
	}
	svc := &SearchService{
		rnk:     rnk,
		hub:     NewEventHub(),
		results: cache.New[ranker.Result](cacheTTL),
		topK:    topK,
	}
	svc.sched = scheduler.New(rnk, topK, "sse", svc.deliverOutcome)
	return svc
}

// Hub exposes the SSE hub for route wiring.
func (s *SearchService) Hub() *EventHub {
	return s.hub
}

// Scheduler exposes the query scheduler (used by shutdown and tests).
func (s *SearchService) Scheduler() *scheduler.Scheduler {
	return s.sched
}

// SetSnapshot swaps in a new dataset snapshot, invalidates memoized
// results, and notifies SSE clients.
func (s *SearchService) SetSnapshot(snap *dataset.Snapshot) {
	s.snapshot.Store(snap)
	s.results.InvalidateAll()
	metrics.SetDatasetTitles(snap.Len())
	s.hub.Broadcast(&Event{
		Type:      EventDatasetState,
		Timestamp: time.Now(),
		Data: map[string]any{
			"titles":    snap.Len(),
			"ready":     snap.Ready(),
			"loaded_at": snap.LoadedAt(),
		},
	})
}

// Snapshot returns the current dataset snapshot (may be nil before the
// first load).
func (s *SearchService) Snapshot() *dataset.Snapshot {
	return s.snapshot.Load()
}

// deliverOutcome is the scheduler sink: it pushes delivered outcomes to
// the SSE stream.
func (s *SearchService) deliverOutcome(o scheduler.Outcome) {
	event := &Event{
		Type:      EventQueryResult,
		Timestamp: time.Now(),
		Data: map[string]any{
			"id":         o.ID,
			"query":      o.Query,
			"candidates": o.Result.Candidates,
			"elapsed_ms": float64(o.Result.Elapsed.Microseconds()) / 1000.0,
		},
	}
	if o.Failed() {
		event.Type = EventQueryFailed
		event.Data = map[string]any{
			"id":    o.ID,
			"query": o.Query,
			"error": o.Err.Error(),
		}
	}
	s.hub.Broadcast(event)
}

// handleSearch answers GET /api/search?q=...&k=... synchronously.
func (s *SearchService) handleSearch(c *gin.Context) {
	query := c.Query("q")
	k := s.topK
	if raw := c.Query("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "k must be a positive integer"})
			return
		}
		k = parsed
	}

	key := cache.QueryKey(query, k)
	if res, ok := s.results.Get(key); ok {
		c.JSON(http.StatusOK, searchResponse(query, res, true))
		return
	}

	metrics.IncQueryStarted("api")
	res, err := s.rnk.Rank(query, s.Snapshot().Titles(), k)
	if err != nil {
		metrics.IncQueryFailed("api")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	metrics.IncQueryCompleted("api")
	metrics.ObserveQueryDuration("api", res.Elapsed)

	s.results.Set(key, res)
	c.JSON(http.StatusOK, searchResponse(query, res, false))
}

func searchResponse(query string, res ranker.Result, cached bool) gin.H {
	return gin.H{
		"query":      query,
		"candidates": res.Candidates,
		"elapsed_ms": float64(res.Elapsed.Microseconds()) / 1000.0,
		"cached":     cached,
	}
}

// submitRequest is the POST /api/search/submit body.
type submitRequest struct {
	Query string `json:"query"`
}

// handleSubmit starts an asynchronous query. The outcome arrives on the
// SSE stream unless a newer submission supersedes it first.
func (s *SearchService) handleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sub := s.sched.Submit(req.Query, s.Snapshot())
	c.JSON(http.StatusAccepted, gin.H{
		"id":    sub.ID,
		"seq":   sub.Seq,
		"query": sub.Query,
	})
}

// handleStatus reports dataset readiness and service state.
func (s *SearchService) handleStatus(c *gin.Context) {
	snap := s.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"ready":          snap.Ready(),
		"titles":         snap.Len(),
		"source":         snap.Source(),
		"loaded_at":      snap.LoadedAt(),
		"sse_clients":    s.hub.ClientCount(),
		"cached_results": s.results.Len(),
	})
}
