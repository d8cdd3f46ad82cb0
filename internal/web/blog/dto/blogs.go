// Package dto holds the request/response shapes of the blog REST API.
package dto

import (
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// maxTitleLength caps the length of blog titles.
	maxTitleLength = 200
	// maxBodyLength caps the length of blog bodies.
	maxBodyLength = 100000
	// maxAuthorIDLength caps the length of author identifiers.
	maxAuthorIDLength = 128
)

// CreateBlogRequest is the candidate field set for a new blog.
//
// Category is a pointer so that an absent field and an empty array remain
// distinguishable; the service rejects the two cases with different errors.
type CreateBlogRequest struct {
	AuthorID    string    `json:"authorId"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Category    *[]string `json:"category"`
	Subcategory []string  `json:"subcategory"`
	Tags        []string  `json:"tags"`
	IsPublished bool      `json:"isPublished"`
}

// Validate checks required fields and length caps.
func (r CreateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AuthorID, validation.Required, validation.Length(1, maxAuthorIDLength)),
		validation.Field(&r.Title, validation.Required, validation.Length(1, maxTitleLength)),
		validation.Field(&r.Body, validation.Required, validation.Length(1, maxBodyLength)),
	)
}

// UpdateBlogRequest carries partial field overrides; nil means "leave as is".
type UpdateBlogRequest struct {
	Title       *string   `json:"title"`
	Body        *string   `json:"body"`
	Category    *[]string `json:"category"`
	Subcategory *[]string `json:"subcategory"`
	Tags        *[]string `json:"tags"`
	IsPublished *bool     `json:"isPublished"`
}

// Validate checks length caps on the supplied overrides.
func (r UpdateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, maxTitleLength)),
		validation.Field(&r.Body, validation.Length(1, maxBodyLength)),
	)
}

// IsEmpty reports whether the request overrides nothing.
func (r UpdateBlogRequest) IsEmpty() bool {
	return r.Title == nil && r.Body == nil && r.Category == nil &&
		r.Subcategory == nil && r.Tags == nil && r.IsPublished == nil
}

// BlogQuery is the raw field/value filter of a list or bulk-delete request.
type BlogQuery struct {
	Params url.Values
}

// IsEmpty reports whether no filter parameter was supplied.
func (q BlogQuery) IsEmpty() bool {
	return len(q.Params) == 0
}

// Get returns the first value of the named parameter.
func (q BlogQuery) Get(key string) string {
	return q.Params.Get(key)
}

// BulkDeleteAck is the store acknowledgment of a bulk soft-delete.
type BulkDeleteAck struct {
	// Matched is the number of live records the filter selected.
	Matched int64 `json:"matched"`
	// Deleted is the number of records actually flagged.
	Deleted int64 `json:"deleted"`
}
