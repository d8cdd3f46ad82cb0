// Package model contains all the models used in the application.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogColName is the collection holding blog records.
const BlogColName = "blogs"

// Blog is one blog record. The bson names are the original wire names of the
// collection; isdeleted is deliberately all-lowercase.
type Blog struct {
	// ID unique identifier for the blog, assigned by the store on insert
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// AuthorID identifier of the owning author, required for mutations
	AuthorID string `bson:"authorId" json:"authorId"`
	// Title title of the blog
	Title string `bson:"title" json:"title"`
	// Body markdown content of the blog
	Body string `bson:"body" json:"body"`
	// Category ordered set of category names, non-empty
	Category []string `bson:"category" json:"category"`
	// Subcategory optional ordered set of subcategory names
	Subcategory []string `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	// Tags optional ordered set of tags
	Tags []string `bson:"tags,omitempty" json:"tags,omitempty"`
	// IsPublished whether the blog is published or a draft
	IsPublished bool `bson:"isPublished" json:"isPublished"`
	// PublishedAt set exactly once when the blog is published at creation
	PublishedAt *time.Time `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	// IsDeleted soft-delete flag, terminal once set
	IsDeleted bool `bson:"isdeleted" json:"isdeleted"`
	// DeletedAt set when the blog is soft-deleted
	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}
