// Package agent orchestrates a question through resolution, execution,
// enrichment, and caching.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jaredmarko/worldly-demo/internal/agent/chart"
	"github.com/jaredmarko/worldly-demo/internal/agent/external"
	"github.com/jaredmarko/worldly-demo/internal/agent/insight"
	"github.com/jaredmarko/worldly-demo/internal/agent/resolver"
	"github.com/jaredmarko/worldly-demo/internal/cache"
	stderrors "github.com/jaredmarko/worldly-demo/internal/common/errors"
	"github.com/jaredmarko/worldly-demo/internal/common/logger"
	"github.com/jaredmarko/worldly-demo/internal/common/metrics"
	"github.com/jaredmarko/worldly-demo/internal/models"
)

// QueryStore executes resolved queries against the sustainability dataset.
type QueryStore interface {
	Query(ctx context.Context, sql string, args ...interface{}) ([]models.Row, error)
	Validate(ctx context.Context, sql string, args ...interface{}) error
}

// SnapshotSource fetches the per-question enrichment snapshot.
type SnapshotSource interface {
	Fetch(ctx context.Context) *external.Snapshot
}

type Agent struct {
	resolver *resolver.Resolver
	store    QueryStore
	composer *insight.Composer
	charts   *chart.Renderer
	external SnapshotSource
	cache    *cache.ResponseCache
	logger   logger.Logger
}

func New(res *resolver.Resolver, store QueryStore, composer *insight.Composer, charts *chart.Renderer, ext SnapshotSource, responseCache *cache.ResponseCache, log logger.Logger) *Agent {
	return &Agent{
		resolver: res,
		store:    store,
		composer: composer,
		charts:   charts,
		external: ext,
		cache:    responseCache,
		logger:   log.WithFields(map[string]interface{}{"component": "agent"}),
	}
}

// Run answers one question. It always returns a response; failures are
// reported in the response's Error field and are never cached.
func (a *Agent) Run(ctx context.Context, question string) (response *models.Response) {
	start := time.Now()
	var resolvedSQL string

	defer func() {
		metrics.RunDuration.Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			stdErr := stderrors.NewInternalError(fmt.Errorf("%v", r))
			a.logger.WithError(stdErr).Error("run panicked", map[string]interface{}{
				"question": question,
			})
			response = &models.Response{
				Error: fmt.Sprintf("%v", r),
				Query: resolvedSQL,
			}
		}
	}()

	trimmed := strings.TrimSpace(question)
	if trimmed == "" || strings.EqualFold(trimmed, "exit") {
		return &models.Response{Error: stderrors.NewInvalidQuestionError(question).Message}
	}

	if cached, ok := a.cache.Get(ctx, question); ok {
		metrics.CacheHits.Inc()
		a.logger.Debug("cache hit", map[string]interface{}{"question": question})
		return cached
	}

	query, _ := a.resolver.Resolve(question)
	resolvedSQL = query.SQL
	metrics.QuestionsResolved.WithLabelValues(string(query.Category)).Inc()
	a.logger.Info("question resolved", map[string]interface{}{
		"question": question,
		"category": string(query.Category),
	})

	if err := a.store.Validate(ctx, query.SQL, query.Args...); err != nil {
		stdErr := stderrors.NewInvalidGeneratedQueryError(query.SQL, err)
		a.logger.WithError(stdErr).Error("generated query rejected", map[string]interface{}{
			"query":   query.SQL,
			"details": stdErr.Details,
		})
		return &models.Response{Error: stdErr.Message, Query: query.SQL}
	}

	rows, err := a.store.Query(ctx, query.SQL, query.Args...)
	if err != nil {
		metrics.QueryFailures.Inc()
		stdErr := stderrors.NewQueryExecutionFailedError(err)
		a.logger.WithError(stdErr).Error("query execution failed", map[string]interface{}{
			"query":     query.SQL,
			"retryable": stdErr.Retryable,
		})
		return &models.Response{Error: err.Error(), Query: query.SQL}
	}

	// Enrichment is fetched even for empty results so the summary always
	// reflects current conditions.
	snap := a.external.Fetch(ctx)

	if len(rows) == 0 {
		response = &models.Response{
			Message:             "No data found.",
			Query:               query.SQL,
			Results:             []models.Row{},
			Insight:             a.composer.Compose(ctx, question, rows, snap),
			ExternalDataSummary: snap.Summary(),
		}
		a.cache.Set(ctx, question, response)
		return response
	}

	viz := a.charts.Render(rows)
	if viz == "" {
		viz = "No visualization generated."
	}

	response = &models.Response{
		Query:               query.SQL,
		Results:             rows,
		Insight:             a.composer.Compose(ctx, question, rows, snap),
		Visualization:       viz,
		ExternalDataSummary: snap.Summary(),
	}
	a.cache.Set(ctx, question, response)
	return response
}
