// Package dao contains the data access objects of the blog application.
package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
	"github.com/Laisky/laisky-blog-api/library/db/mongo"
)

// Blog dao type
type Blog struct {
	logger glog.Logger
	db     mongo.DB
}

// New create new dao
func New(logger glog.Logger, db mongo.DB) *Blog {
	return &Blog{
		logger: logger,
		db:     db,
	}
}

// GetBlogsCol get blogs collection
func (d *Blog) GetBlogsCol() *mongoLib.Collection {
	return d.db.GetCol(model.BlogColName)
}

// FindOne loads the first blog matching filter, nil when none matches.
func (d *Blog) FindOne(ctx context.Context, filter bson.D) (*model.Blog, error) {
	b := new(model.Blog)
	if err := d.GetBlogsCol().FindOne(ctx, filter).Decode(b); err != nil {
		if mongo.NotFound(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "find blog")
	}

	return b, nil
}

// Find loads every blog matching filter.
func (d *Blog) Find(ctx context.Context, filter bson.D) ([]*model.Blog, error) {
	cur, err := d.GetBlogsCol().Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "find blogs")
	}
	defer cur.Close(ctx) //nolint:errcheck

	blogs := []*model.Blog{}
	if err = cur.All(ctx, &blogs); err != nil {
		return nil, errors.Wrap(err, "load blogs")
	}

	return blogs, nil
}

// Exists reports whether at least one blog matches filter.
func (d *Blog) Exists(ctx context.Context, filter bson.D) (bool, error) {
	n, err := d.GetBlogsCol().CountDocuments(ctx, filter,
		options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrap(err, "count blogs")
	}

	return n != 0, nil
}

// Create inserts the blog and fills in the store-assigned id.
func (d *Blog) Create(ctx context.Context, b *model.Blog) (*model.Blog, error) {
	result, err := d.GetBlogsCol().InsertOne(ctx, b)
	if err != nil {
		return nil, errors.Wrap(err, "insert blog")
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}

	return b, nil
}

// FindOneAndUpdate applies update to the first blog matching filter and
// returns the post-update record, nil when none matches.
func (d *Blog) FindOneAndUpdate(ctx context.Context,
	filter bson.D, update bson.M) (*model.Blog, error) {
	b := new(model.Blog)
	if err := d.GetBlogsCol().
		FindOneAndUpdate(ctx, filter, update,
			options.FindOneAndUpdate().SetReturnDocument(options.After)).
		Decode(b); err != nil {
		if mongo.NotFound(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "find and update blog")
	}

	return b, nil
}

// UpdateMany applies update to every blog matching filter and returns the
// matched and modified counts.
func (d *Blog) UpdateMany(ctx context.Context,
	filter bson.D, update bson.M) (matched, modified int64, err error) {
	result, err := d.GetBlogsCol().UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, 0, errors.Wrap(err, "update blogs")
	}

	return result.MatchedCount, result.ModifiedCount, nil
}
