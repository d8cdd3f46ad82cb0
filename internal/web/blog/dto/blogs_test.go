package dto

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateBlogRequestValidate(t *testing.T) {
	t.Parallel()

	valid := CreateBlogRequest{
		AuthorID: "A1",
		Title:    "t",
		Body:     "b",
	}
	require.NoError(t, valid.Validate())

	t.Run("required fields", func(t *testing.T) {
		for _, mutate := range []func(*CreateBlogRequest){
			func(r *CreateBlogRequest) { r.AuthorID = "" },
			func(r *CreateBlogRequest) { r.Title = "" },
			func(r *CreateBlogRequest) { r.Body = "" },
		} {
			r := valid
			mutate(&r)
			require.Error(t, r.Validate())
		}
	})

	t.Run("length caps", func(t *testing.T) {
		r := valid
		r.Title = strings.Repeat("x", maxTitleLength+1)
		require.Error(t, r.Validate())

		r = valid
		r.Body = strings.Repeat("x", maxBodyLength+1)
		require.Error(t, r.Validate())
	})
}

func TestUpdateBlogRequestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, UpdateBlogRequest{}.Validate())

	title := strings.Repeat("x", maxTitleLength+1)
	require.Error(t, UpdateBlogRequest{Title: &title}.Validate())

	ok := "fine"
	require.NoError(t, UpdateBlogRequest{Title: &ok}.Validate())
}

func TestUpdateBlogRequestIsEmpty(t *testing.T) {
	t.Parallel()

	require.True(t, UpdateBlogRequest{}.IsEmpty())

	title := "t"
	require.False(t, UpdateBlogRequest{Title: &title}.IsEmpty())

	published := false
	require.False(t, UpdateBlogRequest{IsPublished: &published}.IsEmpty(),
		"explicit false is still an override")
}

func TestBlogQuery(t *testing.T) {
	t.Parallel()

	require.True(t, BlogQuery{}.IsEmpty())
	require.True(t, BlogQuery{Params: url.Values{}}.IsEmpty())

	q := BlogQuery{Params: url.Values{"category": {"tech"}}}
	require.False(t, q.IsEmpty())
	require.Equal(t, "tech", q.Get("category"))
	require.Empty(t, q.Get("tags"))
}
