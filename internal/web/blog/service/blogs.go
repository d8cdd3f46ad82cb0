package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/dto"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

// listFixedPredicates are ANDed into every list filter; soft-deleted and
// draft records are never listed.
var listFixedPredicates = bson.D{
	{Key: "isdeleted", Value: false},
	{Key: "isPublished", Value: true},
}

// bulkFixedPredicates restrict bulk soft-delete to live records.
var bulkFixedPredicates = bson.D{
	{Key: "isdeleted", Value: false},
}

// CreateBlog validates and normalizes the candidate fields, rejects an exact
// duplicate, inserts the record, and stamps publishedAt when the new blog is
// published right away.
func (s *Blog) CreateBlog(ctx context.Context,
	req *dto.CreateBlogRequest) (blog *model.Blog, err error) {
	if err = req.Validate(); err != nil {
		return nil, errors.Wrap(model.ErrInvalidInput, err.Error())
	}

	if req.Category == nil {
		return nil, errors.WithStack(model.ErrCategoryRequired)
	}

	category := dedupStrings(*req.Category)
	if len(category) == 0 {
		return nil, errors.WithStack(model.ErrCategoryEmpty)
	}

	blog = &model.Blog{
		AuthorID:    req.AuthorID,
		Title:       req.Title,
		Body:        req.Body,
		Category:    category,
		Subcategory: dedupStrings(req.Subcategory),
		Tags:        dedupStrings(req.Tags),
		IsPublished: req.IsPublished,
	}

	if gconfig.Shared.GetBool("dry") {
		s.logger.Info("insert blog",
			zap.String("title", blog.Title),
			zap.String("author", blog.AuthorID),
		)
		return blog, nil
	}

	// exact-match duplicate probe over the full normalized field set
	dup, err := s.store.FindOne(ctx, exactMatchFilter(blog))
	if err != nil {
		return nil, errors.Wrap(err, "check blog exists")
	}
	if dup != nil {
		return nil, errors.WithStack(model.ErrAlreadyExists)
	}

	if blog, err = s.store.Create(ctx, blog); err != nil {
		return nil, errors.Wrap(err, "insert blog")
	}

	if blog.IsPublished {
		published, err := s.store.FindOneAndUpdate(ctx,
			bson.D{{Key: "_id", Value: blog.ID}},
			bson.M{"$set": bson.M{"publishedAt": gutils.Clock.GetUTCNow()}})
		if err != nil {
			return nil, errors.Wrap(err, "stamp publishedAt")
		}
		if published != nil {
			blog = published
		}
	}

	s.logger.Info("created blog",
		zap.String("blog", blog.ID.Hex()),
		zap.String("author", blog.AuthorID),
		zap.Bool("published", blog.IsPublished))
	return blog, nil
}

// exactMatchFilter builds the duplicate probe for create: equality across
// every normalized candidate field, not a subset uniqueness constraint.
func exactMatchFilter(b *model.Blog) bson.D {
	filter := bson.D{
		{Key: "authorId", Value: b.AuthorID},
		{Key: "title", Value: b.Title},
		{Key: "body", Value: b.Body},
		{Key: "category", Value: b.Category},
		{Key: "isPublished", Value: b.IsPublished},
	}
	if b.Subcategory != nil {
		filter = append(filter, bson.E{Key: "subcategory", Value: b.Subcategory})
	}
	if b.Tags != nil {
		filter = append(filter, bson.E{Key: "tags", Value: b.Tags})
	}
	return filter
}

// ListBlogs returns every live published blog matching the supplied equality
// parameters. Zero matches is a not-found failure, never an empty success.
func (s *Blog) ListBlogs(ctx context.Context,
	q dto.BlogQuery) (blogs []*model.Blog, err error) {
	if err = s.verifyFilterTargets(ctx, q); err != nil {
		return nil, err
	}

	filter, err := makeFilter(q, listFixedPredicates)
	if err != nil {
		return nil, err
	}

	if blogs, err = s.store.Find(ctx, filter); err != nil {
		return nil, errors.Wrap(err, "find blogs")
	}
	if len(blogs) == 0 {
		return nil, errors.Wrap(model.ErrBlogNotFound, "no blogs can be found")
	}

	s.logger.Debug("list blogs done", zap.Int("n", len(blogs)))
	return blogs, nil
}

// verifyFilterTargets checks that each supplied category/tags/subcategory
// value refers to at least one record. The lookups are independent of the
// final filter composition.
func (s *Blog) verifyFilterTargets(ctx context.Context, q dto.BlogQuery) error {
	if category := q.Get("category"); category != "" {
		found, err := s.store.FindOne(ctx, bson.D{{Key: "category", Value: category}})
		if err != nil {
			return errors.Wrap(err, "verify category")
		}
		if found == nil {
			return errors.Wrap(model.ErrBlogNotFound, "no blogs in this category exist")
		}
	}

	if tags := q.Get("tags"); tags != "" {
		ok, err := s.store.Exists(ctx, bson.D{{Key: "tags", Value: tags}})
		if err != nil {
			return errors.Wrap(err, "verify tags")
		}
		if !ok {
			return errors.Wrap(model.ErrBlogNotFound, "no blog with this tags exist")
		}
	}

	if subcategory := q.Get("subcategory"); subcategory != "" {
		ok, err := s.store.Exists(ctx, bson.D{{Key: "subcategory", Value: subcategory}})
		if err != nil {
			return errors.Wrap(err, "verify subcategory")
		}
		if !ok {
			return errors.Wrap(model.ErrBlogNotFound, "no blog with this subcategory exist")
		}
	}

	return nil
}

// UpdateBlog overwrites the supplied fields of the identified blog after the
// ownership check. Supplied array fields are written verbatim; unlike create,
// update does not re-deduplicate.
func (s *Blog) UpdateBlog(ctx context.Context,
	id, authorID string, req *dto.UpdateBlogRequest) (blog *model.Blog, err error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.Wrapf(model.ErrInvalidBlogID, "%q", id)
	}

	if err = req.Validate(); err != nil {
		return nil, errors.Wrap(model.ErrInvalidInput, err.Error())
	}

	found, err := s.loadOwnedBlog(ctx, oid, authorID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Body != nil {
		set["body"] = *req.Body
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Subcategory != nil {
		set["subcategory"] = *req.Subcategory
	}
	if req.Tags != nil {
		set["tags"] = *req.Tags
	}
	if req.IsPublished != nil {
		set["isPublished"] = *req.IsPublished
	}
	if len(set) == 0 {
		return found, nil
	}

	blog, err = s.store.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "authorId", Value: authorID}},
		bson.M{"$set": set})
	if err != nil {
		return nil, errors.Wrap(err, "update blog")
	}
	if blog == nil {
		// the record vanished between the ownership check and the write
		return nil, errors.Wrap(model.ErrBlogNotFound, "blog disappeared during update")
	}

	s.logger.Info("updated blog",
		zap.String("blog", blog.ID.Hex()),
		zap.String("author", authorID))
	return blog, nil
}

// DeleteBlog soft-deletes the identified blog after the ownership check.
// Deleting an already deleted blog is a conflict, not a no-op.
func (s *Blog) DeleteBlog(ctx context.Context,
	id, authorID string) (blog *model.Blog, err error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.Wrapf(model.ErrInvalidBlogID, "%q", id)
	}

	found, err := s.loadOwnedBlog(ctx, oid, authorID)
	if err != nil {
		return nil, err
	}
	if found.IsDeleted {
		return nil, errors.WithStack(model.ErrAlreadyDeleted)
	}

	blog, err = s.store.FindOneAndUpdate(ctx,
		bson.D{
			{Key: "_id", Value: oid},
			{Key: "authorId", Value: authorID},
			{Key: "isdeleted", Value: false},
		},
		bson.M{"$set": bson.M{
			"isdeleted": true,
			"deletedAt": gutils.Clock.GetUTCNow(),
		}})
	if err != nil {
		return nil, errors.Wrap(err, "delete blog")
	}
	if blog == nil {
		// a concurrent delete won the race
		return nil, errors.WithStack(model.ErrAlreadyDeleted)
	}

	s.logger.Info("deleted blog",
		zap.String("blog", blog.ID.Hex()),
		zap.String("author", authorID))
	return blog, nil
}

// loadOwnedBlog loads the blog by id and verifies the requester owns it.
func (s *Blog) loadOwnedBlog(ctx context.Context,
	oid primitive.ObjectID, authorID string) (*model.Blog, error) {
	found, err := s.store.FindOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return nil, errors.Wrap(err, "load blog")
	}
	if found == nil {
		return nil, errors.Wrapf(model.ErrBlogNotFound, "id %q", oid.Hex())
	}
	if found.AuthorID != authorID {
		return nil, errors.WithStack(model.ErrUnauthorized)
	}

	return found, nil
}

// DeleteBlogsByQuery soft-deletes every live blog matching the supplied
// parameters in one bulk write. The same refined filter drives both the
// selection and the mutation; a zero matched count reports not-found.
func (s *Blog) DeleteBlogsByQuery(ctx context.Context,
	q dto.BlogQuery) (*dto.BulkDeleteAck, error) {
	if q.IsEmpty() {
		return nil, errors.WithStack(model.ErrNoInput)
	}

	if err := s.verifyBulkTargets(ctx, q); err != nil {
		return nil, err
	}

	filter, err := makeFilter(q, bulkFixedPredicates)
	if err != nil {
		return nil, err
	}

	matched, modified, err := s.store.UpdateMany(ctx, filter,
		bson.M{"$set": bson.M{
			"isdeleted": true,
			"deletedAt": gutils.Clock.GetUTCNow(),
		}})
	if err != nil {
		return nil, errors.Wrap(err, "bulk delete blogs")
	}
	if matched == 0 {
		return nil, errors.Wrap(model.ErrBlogNotFound, "no blogs are present with this query")
	}

	s.logger.Info("bulk deleted blogs",
		zap.Int64("matched", matched),
		zap.Int64("deleted", modified))
	return &dto.BulkDeleteAck{Matched: matched, Deleted: modified}, nil
}

// verifyBulkTargets mirrors verifyFilterTargets but probes every field with
// a full lookup, the way the delete-by-query path has always done.
func (s *Blog) verifyBulkTargets(ctx context.Context, q dto.BlogQuery) error {
	for field, msg := range map[string]string{
		"category":    "no blogs in this category exist",
		"tags":        "no blog with this tags exist",
		"subcategory": "no blog with this subcategory exist",
	} {
		value := q.Get(field)
		if value == "" {
			continue
		}

		found, err := s.store.FindOne(ctx, bson.D{{Key: field, Value: value}})
		if err != nil {
			return errors.Wrapf(err, "verify %s", field)
		}
		if found == nil {
			return errors.Wrap(model.ErrBlogNotFound, msg)
		}
	}

	return nil
}
