// Package service is the service layer of the blog API.
package service

import (
	"context"

	glog "github.com/Laisky/go-utils/v6/log"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

// Store is the document-store boundary the service drives. *dao.Blog is the
// production implementation; tests plug in an in-memory fake.
type Store interface {
	// FindOne loads the first blog matching filter, nil when none matches.
	FindOne(ctx context.Context, filter bson.D) (*model.Blog, error)
	// Find loads every blog matching filter.
	Find(ctx context.Context, filter bson.D) ([]*model.Blog, error)
	// Exists reports whether at least one blog matches filter.
	Exists(ctx context.Context, filter bson.D) (bool, error)
	// Create inserts the blog and fills in the store-assigned id.
	Create(ctx context.Context, b *model.Blog) (*model.Blog, error)
	// FindOneAndUpdate applies update to the first match and returns the
	// post-update record, nil when none matches.
	FindOneAndUpdate(ctx context.Context, filter bson.D, update bson.M) (*model.Blog, error)
	// UpdateMany applies update to every match and returns matched/modified counts.
	UpdateMany(ctx context.Context, filter bson.D, update bson.M) (matched, modified int64, err error)
}

// Blog blog service
type Blog struct {
	logger glog.Logger
	store  Store
}

// New new blog service
func New(logger glog.Logger, store Store) *Blog {
	return &Blog{
		logger: logger,
		store:  store,
	}
}
