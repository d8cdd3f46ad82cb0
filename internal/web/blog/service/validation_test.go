package service

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/dto"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

func TestDedupStrings(t *testing.T) {
	t.Parallel()

	require.Nil(t, dedupStrings(nil))
	require.Equal(t, []string{}, dedupStrings([]string{}))
	require.Equal(t, []string{"a", "b"}, dedupStrings([]string{"a", "b", "a", "b"}))
	require.Equal(t, []string{"b", "a"}, dedupStrings([]string{"b", "a", "b"}),
		"first-seen order is kept")
}

func TestSanitizeFilterKey(t *testing.T) {
	t.Parallel()

	require.NoError(t, sanitizeFilterKey("category"))
	require.NoError(t, sanitizeFilterKey("unknownField"))

	for _, key := range []string{"", "$where", "$gt", "a.b", "meta.inner"} {
		require.ErrorIs(t, sanitizeFilterKey(key), model.ErrUnsafeFilterKey, key)
	}
}

func TestMakeFilter(t *testing.T) {
	t.Parallel()

	fixed := bson.D{{Key: "isdeleted", Value: false}}

	t.Run("keys sorted and fixed appended", func(t *testing.T) {
		q := dto.BlogQuery{Params: url.Values{
			"tags":     {"go"},
			"category": {"tech"},
		}}
		filter, err := makeFilter(q, fixed)
		require.NoError(t, err)
		require.Equal(t, bson.D{
			{Key: "category", Value: "tech"},
			{Key: "tags", Value: "go"},
			{Key: "isdeleted", Value: false},
		}, filter)
	})

	t.Run("fixed predicates win", func(t *testing.T) {
		q := dto.BlogQuery{Params: url.Values{"isdeleted": {"true"}}}
		filter, err := makeFilter(q, fixed)
		require.NoError(t, err)
		require.Equal(t, bson.D{{Key: "isdeleted", Value: false}}, filter)
	})

	t.Run("boolean keys parsed", func(t *testing.T) {
		q := dto.BlogQuery{Params: url.Values{"isPublished": {"true"}}}
		filter, err := makeFilter(q, fixed)
		require.NoError(t, err)
		require.Equal(t, bson.D{
			{Key: "isPublished", Value: true},
			{Key: "isdeleted", Value: false},
		}, filter)
	})

	t.Run("malformed boolean rejected", func(t *testing.T) {
		q := dto.BlogQuery{Params: url.Values{"isPublished": {"yes please"}}}
		_, err := makeFilter(q, fixed)
		require.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("unsafe key rejected", func(t *testing.T) {
		q := dto.BlogQuery{Params: url.Values{"$gt": {"1"}}}
		_, err := makeFilter(q, fixed)
		require.ErrorIs(t, err, model.ErrUnsafeFilterKey)
	})
}
