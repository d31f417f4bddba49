package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/sumry-app/SUMRY-sub001/internal/errors"
	"github.com/sumry-app/SUMRY-sub001/model"
)

// SetCollectionRequest carries the records and searchable fields for a
// collection replace.
type SetCollectionRequest struct {
	Records []model.Record `json:"records"`
	Fields  []string       `json:"fields"`
}

// listCollections returns stats for every registered collection.
func (api *API) listCollections(c *gin.Context) {
	stats := api.engine.ListCollections()
	c.JSON(http.StatusOK, gin.H{
		"collections": stats,
		"total":       len(stats),
	})
}

// setCollection registers or replaces a collection, rebuilding its index.
func (api *API) setCollection(c *gin.Context) {
	name := c.Param("name")

	var req SetCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Invalid request body: "+err.Error())
		return
	}
	if len(req.Fields) == 0 {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed,
			"At least one searchable field is required")
		return
	}

	count, err := api.engine.SetCollection(name, req.Records, req.Fields)
	if err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, validationErr.Error())
			return
		}
		api.logger.Error("collection replace failed",
			zap.String("collection", name), zap.Error(err))
		SendInternalError(c, "index collection", err)
		return
	}

	api.metrics.RecordsIndexed.WithLabelValues(name).Set(float64(count))
	api.metrics.ActiveCollections.Set(float64(len(api.engine.ListCollections())))

	c.JSON(http.StatusOK, gin.H{
		"collection":      name,
		"indexed_records": count,
	})
}

// getCollection returns stats for one collection.
func (api *API) getCollection(c *gin.Context) {
	name := c.Param("name")

	stats, err := api.engine.GetCollection(name)
	if err != nil {
		if errors.Is(err, apperrors.ErrCollectionNotFound) {
			SendCollectionNotFoundError(c, name)
			return
		}
		SendInternalError(c, "get collection", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// deleteCollection removes a collection and its cached results.
func (api *API) deleteCollection(c *gin.Context) {
	name := c.Param("name")

	if err := api.engine.DeleteCollection(name); err != nil {
		if errors.Is(err, apperrors.ErrCollectionNotFound) {
			SendCollectionNotFoundError(c, name)
			return
		}
		SendInternalError(c, "delete collection", err)
		return
	}

	api.metrics.RecordsIndexed.DeleteLabelValues(name)
	api.metrics.ActiveCollections.Set(float64(len(api.engine.ListCollections())))

	c.JSON(http.StatusOK, gin.H{
		"collection": name,
		"deleted":    true,
	})
}
