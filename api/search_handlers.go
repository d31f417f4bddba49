package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/sumry-app/SUMRY-sub001/internal/errors"
	"github.com/sumry-app/SUMRY-sub001/internal/filter"
	"github.com/sumry-app/SUMRY-sub001/internal/scoring"
	"github.com/sumry-app/SUMRY-sub001/internal/search"
	"github.com/sumry-app/SUMRY-sub001/model"
)

// SearchRequest is the JSON body of a search call. Pointer fields fall back
// to the engine defaults when absent.
type SearchRequest struct {
	Query        string           `json:"query"`
	Filters      filter.Map       `json:"filters,omitempty"`
	FilterLogic  filter.Logic     `json:"filter_logic,omitempty"`
	MinScore     *float64         `json:"min_score,omitempty"`
	Limit        *int             `json:"limit,omitempty"`
	Offset       *int             `json:"offset,omitempty"`
	SortBy       string           `json:"sort_by,omitempty"`
	SortOrder    string           `json:"sort_order,omitempty"`
	UseOperators *bool            `json:"use_operators,omitempty"`
	NoCache      bool             `json:"no_cache,omitempty"`
	Boosts       *scoring.Weights `json:"boosts,omitempty"`
}

// options merges the request with the default search options; absent fields
// fall back to the engine's configured defaults.
func (req *SearchRequest) options(defaultLimit int) search.Options {
	opts := search.DefaultOptions()
	if defaultLimit > 0 {
		opts.Limit = defaultLimit
	}
	if req.Filters != nil {
		opts.Filters = req.Filters
	}
	if req.FilterLogic != "" {
		opts.FilterLogic = req.FilterLogic
	}
	if req.MinScore != nil {
		opts.MinScore = *req.MinScore
	}
	if req.Limit != nil {
		opts.Limit = *req.Limit
	}
	if req.Offset != nil {
		opts.Offset = *req.Offset
	}
	if req.SortBy != "" {
		opts.SortBy = req.SortBy
	}
	if req.SortOrder != "" {
		opts.SortOrder = req.SortOrder
	}
	if req.UseOperators != nil {
		opts.UseOperators = *req.UseOperators
	}
	opts.Boosts = req.Boosts
	return opts
}

// search runs a ranked query against a collection, through the result cache
// unless the request opts out.
func (api *API) search(c *gin.Context) {
	name := c.Param("name")
	startTime := time.Now()

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Invalid request body: "+err.Error())
		return
	}

	opts := req.options(api.engine.Settings().DefaultLimit)

	var (
		result   search.Result
		cacheHit bool
		err      error
	)
	if req.NoCache {
		result, err = api.engine.Search(name, req.Query, opts)
	} else {
		result, cacheHit, err = api.engine.CachedSearch(name, req.Query, opts)
	}
	if err != nil {
		api.metrics.SearchQueriesTotal.WithLabelValues("error").Inc()
		if errors.Is(err, apperrors.ErrCollectionNotFound) {
			SendCollectionNotFoundError(c, name)
			return
		}
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, validationErr.Error())
			return
		}
		api.logger.Error("search failed",
			zap.String("collection", name),
			zap.String("query", req.Query),
			zap.Error(err))
		SendError(c, http.StatusInternalServerError, ErrorCodeSearchFailed,
			"Search failed: "+err.Error())
		return
	}

	took := time.Since(startTime)
	api.metrics.SearchLatency.Observe(took.Seconds())
	api.metrics.SearchResultsCount.Observe(float64(result.Total))
	switch {
	case cacheHit:
		api.metrics.SearchQueriesTotal.WithLabelValues("hit").Inc()
		api.metrics.CacheHitsTotal.Inc()
	case result.Total == 0:
		api.metrics.SearchQueriesTotal.WithLabelValues("zero_result").Inc()
		api.metrics.CacheMissesTotal.Inc()
	default:
		api.metrics.SearchQueriesTotal.WithLabelValues("miss").Inc()
		api.metrics.CacheMissesTotal.Inc()
	}

	api.analytics.TrackSearch(model.SearchEvent{
		Collection: name,
		Query:      req.Query,
		Hits:       result.Total,
		CacheHit:   cacheHit,
		Duration:   took,
	})

	c.JSON(http.StatusOK, gin.H{
		"collection": name,
		"query":      req.Query,
		"cache_hit":  cacheHit,
		"result":     result,
	})
}

// suggest returns autocomplete suggestions for a partial query.
func (api *API) suggest(c *gin.Context) {
	name := c.Param("name")

	partial := c.Query("q")
	if partial == "" {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery,
			"Query parameter 'q' is required")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed,
				"Invalid limit parameter: must be an integer")
			return
		}
		limit = parsed
	}

	suggestions, err := api.engine.Suggest(name, partial, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrCollectionNotFound) {
			SendCollectionNotFoundError(c, name)
			return
		}
		SendInternalError(c, "compute suggestions", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collection":  name,
		"partial":     partial,
		"suggestions": suggestions,
	})
}
