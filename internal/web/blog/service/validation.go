package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/dto"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

// dedupStrings removes duplicate values while keeping first-seen order.
// A nil input stays nil so that absent optional fields stay absent.
func dedupStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return lo.Uniq(values)
}

// sanitizeFilterKey rejects keys that could smuggle store operators into a
// filter. Unknown-but-clean keys are allowed; they simply match nothing.
func sanitizeFilterKey(key string) error {
	if key == "" {
		return errors.Wrap(model.ErrUnsafeFilterKey, "empty key")
	}
	if strings.HasPrefix(key, "$") || strings.Contains(key, ".") {
		return errors.Wrapf(model.ErrUnsafeFilterKey, "key %q", key)
	}
	return nil
}

// booleanFilterKeys are filter keys whose values must parse as booleans.
var booleanFilterKeys = map[string]struct{}{
	"isPublished": {},
	"isdeleted":   {},
}

// makeFilter composes the supplied field/value parameters into an equality
// filter, ANDed with the fixed predicates. Fixed predicates win over
// user-supplied values for the same key. Keys are visited in sorted order so
// the composed filter is deterministic.
func makeFilter(q dto.BlogQuery, fixed bson.D) (bson.D, error) {
	keys := make([]string, 0, len(q.Params))
	for k := range q.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	query := bson.D{}
	for _, k := range keys {
		if err := sanitizeFilterKey(k); err != nil {
			return nil, err
		}
		if hasKey(fixed, k) {
			continue
		}

		v := q.Params.Get(k)
		if _, ok := booleanFilterKeys[k]; ok {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return nil, errors.Wrapf(model.ErrInvalidInput, "%s must be a boolean", k)
			}
			query = append(query, bson.E{Key: k, Value: parsed})
			continue
		}

		query = append(query, bson.E{Key: k, Value: v})
	}

	return append(query, fixed...), nil
}

func hasKey(filter bson.D, key string) bool {
	for _, e := range filter {
		if e.Key == key {
			return true
		}
	}
	return false
}
