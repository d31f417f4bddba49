package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumry-app/SUMRY-sub001/config"
	"github.com/sumry-app/SUMRY-sub001/internal/cache"
	apperrors "github.com/sumry-app/SUMRY-sub001/internal/errors"
	"github.com/sumry-app/SUMRY-sub001/internal/search"
	"github.com/sumry-app/SUMRY-sub001/model"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := NewEngine(config.EngineSettings{CacheTTL: time.Minute}, nil)
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	return eng
}

func seedStudents(t *testing.T, eng *Engine) {
	t.Helper()
	records := []model.Record{
		{"id": model.String("1"), "name": model.String("John Doe"), "area": model.String("math")},
		{"id": model.String("2"), "name": model.String("Jane Roe"), "area": model.String("reading")},
	}
	count, err := eng.SetCollection("students", records, []string{"name", "area"})
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestSetCollectionValidation(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.SetCollection("", nil, []string{"name"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestCollectionLifecycle(t *testing.T) {
	eng := newTestEngine(t)
	seedStudents(t, eng)

	stats, err := eng.GetCollection("students")
	require.NoError(t, err)
	assert.Equal(t, "students", stats.Name)
	assert.Equal(t, 2, stats.RecordCount)
	assert.Equal(t, []string{"name", "area"}, stats.Fields)

	all := eng.ListCollections()
	require.Len(t, all, 1)
	assert.Equal(t, "students", all[0].Name)

	require.NoError(t, eng.DeleteCollection("students"))
	assert.ErrorIs(t, eng.DeleteCollection("students"), apperrors.ErrCollectionNotFound)

	_, err = eng.GetCollection("students")
	assert.ErrorIs(t, err, apperrors.ErrCollectionNotFound)
}

func TestSearchUnknownCollection(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Search("missing", "math", search.DefaultOptions())
	assert.ErrorIs(t, err, apperrors.ErrCollectionNotFound)

	_, _, err = eng.CachedSearch("missing", "math", search.DefaultOptions())
	assert.ErrorIs(t, err, apperrors.ErrCollectionNotFound)

	_, err = eng.Suggest("missing", "ma", 5)
	assert.ErrorIs(t, err, apperrors.ErrCollectionNotFound)
}

func TestSearchFindsRecords(t *testing.T) {
	eng := newTestEngine(t)
	seedStudents(t, eng)

	result, err := eng.Search("students", "math", search.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Results, 1)

	id, _ := result.Results[0].Record.ID()
	assert.Equal(t, "1", id)
}

func TestCachedSearchHitOnRepeat(t *testing.T) {
	eng := newTestEngine(t)
	seedStudents(t, eng)

	first, hit, err := eng.CachedSearch("students", "math", search.DefaultOptions())
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := eng.CachedSearch("students", "math", search.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first.QueryID, second.QueryID, "cached result must be the stored computation")

	hits, misses := eng.CacheStats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestSetCollectionInvalidatesCache(t *testing.T) {
	eng := newTestEngine(t)
	seedStudents(t, eng)

	_, _, err := eng.CachedSearch("students", "math", search.DefaultOptions())
	require.NoError(t, err)

	// Replacing the collection must drop its cached results.
	seedStudents(t, eng)

	_, hit, err := eng.CachedSearch("students", "math", search.DefaultOptions())
	require.NoError(t, err)
	assert.False(t, hit, "stale result served after a collection replace")
}

func TestCachedSearchIgnoresStaleInFlightResults(t *testing.T) {
	eng := newTestEngine(t)
	seedStudents(t, eng)

	// Snapshot the index the way CachedSearch does, then replace the
	// collection before the compute finishes.
	indexed, gen, err := eng.indexedRecords("students")
	require.NoError(t, err)

	seedStudents(t, eng)

	// The late store lands under the old generation's key.
	staleKey := cache.Key("students", gen, "math", search.DefaultOptions())
	_, _, err = eng.cache.GetOrCompute(staleKey, func() (search.Result, error) {
		return eng.searcher.Search(indexed, "math", search.DefaultOptions())
	})
	require.NoError(t, err)

	// A fresh search must not be served the stale entry.
	_, hit, err := eng.CachedSearch("students", "math", search.DefaultOptions())
	require.NoError(t, err)
	assert.False(t, hit, "result computed from a replaced index was served")
}

func TestSuggest(t *testing.T) {
	eng := newTestEngine(t)
	seedStudents(t, eng)

	suggestions, err := eng.Suggest("students", "ma", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, suggestions)
	assert.LessOrEqual(t, len(suggestions), eng.Settings().SuggestionLimit)
}

func TestInvalidateCache(t *testing.T) {
	eng := newTestEngine(t)
	seedStudents(t, eng)

	_, _, err := eng.CachedSearch("students", "math", search.DefaultOptions())
	require.NoError(t, err)

	removed := eng.InvalidateCache("students")
	assert.Equal(t, 1, removed)

	_, hit, err := eng.CachedSearch("students", "math", search.DefaultOptions())
	require.NoError(t, err)
	assert.False(t, hit)
}
