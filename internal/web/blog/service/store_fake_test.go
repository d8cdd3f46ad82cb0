package service

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

// fakeStore is an in-memory Store with mongo-like equality matching:
// a scalar value against an array field matches membership, an array value
// matches the whole array.
type fakeStore struct {
	mu    sync.Mutex
	blogs []*model.Blog
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func cloneBlog(b *model.Blog) *model.Blog {
	c := *b
	c.Category = append([]string(nil), b.Category...)
	if b.Subcategory != nil {
		c.Subcategory = append([]string(nil), b.Subcategory...)
	}
	if b.Tags != nil {
		c.Tags = append([]string(nil), b.Tags...)
	}
	if b.PublishedAt != nil {
		t := *b.PublishedAt
		c.PublishedAt = &t
	}
	if b.DeletedAt != nil {
		t := *b.DeletedAt
		c.DeletedAt = &t
	}
	return &c
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func matchStrings(field []string, value any) bool {
	switch v := value.(type) {
	case string:
		for _, s := range field {
			if s == v {
				return true
			}
		}
		return false
	case []string:
		return slicesEqual(field, v)
	default:
		return false
	}
}

func (f *fakeStore) matches(b *model.Blog, filter bson.D) bool {
	for _, e := range filter {
		switch e.Key {
		case "_id":
			oid, ok := e.Value.(primitive.ObjectID)
			if !ok || b.ID != oid {
				return false
			}
		case "authorId":
			if b.AuthorID != e.Value {
				return false
			}
		case "title":
			if b.Title != e.Value {
				return false
			}
		case "body":
			if b.Body != e.Value {
				return false
			}
		case "isPublished":
			if b.IsPublished != e.Value {
				return false
			}
		case "isdeleted":
			if b.IsDeleted != e.Value {
				return false
			}
		case "category":
			if !matchStrings(b.Category, e.Value) {
				return false
			}
		case "subcategory":
			if !matchStrings(b.Subcategory, e.Value) {
				return false
			}
		case "tags":
			if !matchStrings(b.Tags, e.Value) {
				return false
			}
		default:
			// unknown field: no stored document carries it
			return false
		}
	}
	return true
}

func (f *fakeStore) applySet(b *model.Blog, update bson.M) {
	set, ok := update["$set"].(bson.M)
	if !ok {
		return
	}
	for k, v := range set {
		switch k {
		case "title":
			b.Title = v.(string)
		case "body":
			b.Body = v.(string)
		case "category":
			b.Category = v.([]string)
		case "subcategory":
			b.Subcategory = v.([]string)
		case "tags":
			b.Tags = v.([]string)
		case "isPublished":
			b.IsPublished = v.(bool)
		case "isdeleted":
			b.IsDeleted = v.(bool)
		case "publishedAt":
			t := v.(time.Time)
			b.PublishedAt = &t
		case "deletedAt":
			t := v.(time.Time)
			b.DeletedAt = &t
		}
	}
}

func (f *fakeStore) FindOne(ctx context.Context, filter bson.D) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.blogs {
		if f.matches(b, filter) {
			return cloneBlog(b), nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Find(ctx context.Context, filter bson.D) ([]*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	results := []*model.Blog{}
	for _, b := range f.blogs {
		if f.matches(b, filter) {
			results = append(results, cloneBlog(b))
		}
	}
	return results, nil
}

func (f *fakeStore) Exists(ctx context.Context, filter bson.D) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.blogs {
		if f.matches(b, filter) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Create(ctx context.Context, b *model.Blog) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := cloneBlog(b)
	stored.ID = primitive.NewObjectID()
	f.blogs = append(f.blogs, stored)
	return cloneBlog(stored), nil
}

func (f *fakeStore) FindOneAndUpdate(ctx context.Context,
	filter bson.D, update bson.M) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.blogs {
		if f.matches(b, filter) {
			f.applySet(b, update)
			return cloneBlog(b), nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpdateMany(ctx context.Context,
	filter bson.D, update bson.M) (matched, modified int64, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.blogs {
		if f.matches(b, filter) {
			matched++
			f.applySet(b, update)
			modified++
		}
	}
	return matched, modified, nil
}

// get returns the stored record by id without filter semantics.
func (f *fakeStore) get(id primitive.ObjectID) *model.Blog {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.blogs {
		if b.ID == id {
			return cloneBlog(b)
		}
	}
	return nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.blogs)
}
