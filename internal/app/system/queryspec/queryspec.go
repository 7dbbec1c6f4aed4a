// internal/app/system/queryspec/queryspec.go

// Package queryspec turns loosely-typed client filter input into validated,
// bounded Mongo query descriptors.
//
// A Normalizer is constructed once at startup with the paging Config and the
// per-entity allow-lists; Normalize is a pure transformation with no I/O. It
// either returns a complete Spec or an apperr.ValidationError, never both.
package queryspec

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dalemusser/cityfix/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/bson"
)

// Reserved query keys consumed by the normalizer itself. Everything else is
// treated as a field filter and checked against the entity allow-lists.
const (
	keyLimit  = "limit"
	keySkip   = "skip"
	keySort   = "sort"
	keySearch = "search"
)

// Config bounds every produced Spec. It is injected at construction so page
// sizes are configuration, not package constants.
type Config struct {
	DefaultLimit int64
	MaxLimit     int64
}

// Entity declares what a given entity type allows in client queries.
type Entity struct {
	Name          string
	DefaultSort   string   // field name, leading "-" for descending
	SortFields    []string // sortable fields (allow-list)
	ExactFields   []string // equality filters
	PatternFields []string // case-insensitive substring filters
	SearchFields  []string // fields the free-text "search" key fans out over
}

// Spec is a normalized, bounded description of a filtered, paginated, sorted
// query. Filter is an implicit conjunction; Or, when present, is a
// disjunction group conjoined with Filter.
type Spec struct {
	Filter    bson.M
	Or        []bson.M
	Limit     int64
	Skip      int64
	SortField string
	SortAsc   bool
}

// Query combines the conjunction and the optional disjunction group into a
// single Mongo filter document.
func (s Spec) Query() bson.M {
	switch {
	case len(s.Or) > 0 && len(s.Filter) > 0:
		return bson.M{"$and": []bson.M{s.Filter, {"$or": s.Or}}}
	case len(s.Or) > 0:
		return bson.M{"$or": s.Or}
	case len(s.Filter) > 0:
		return s.Filter
	}
	return bson.M{}
}

// Sort returns the compound sort document. The _id tie-break guarantees a
// deterministic order across repeated calls against the same data.
func (s Spec) Sort() bson.D {
	dir := 1
	if !s.SortAsc {
		dir = -1
	}
	return bson.D{{Key: s.SortField, Value: dir}, {Key: "_id", Value: dir}}
}

// Normalizer validates raw client filter input against per-entity rules.
type Normalizer struct {
	cfg      Config
	entities map[string]Entity
}

// New builds a Normalizer for the given entities.
func New(cfg Config, entities ...Entity) *Normalizer {
	m := make(map[string]Entity, len(entities))
	for _, e := range entities {
		m[e.Name] = e
	}
	return &Normalizer{cfg: cfg, entities: m}
}

// Normalize converts raw key/value input into a Spec for the named entity.
//
//   - limit defaults to Config.DefaultLimit and is silently clamped into
//     [1, Config.MaxLimit]; non-numeric values are rejected.
//   - skip defaults to 0; negative values are rejected.
//   - sort defaults to the entity's default field; a leading "-" selects
//     descending order; fields outside the allow-list are rejected.
//   - "search" compiles into a disjunction of case-insensitive substring
//     matches over the entity's search fields.
//   - any other key must be in the entity's exact or pattern allow-list,
//     otherwise a ValidationError naming the key is returned.
func (n *Normalizer) Normalize(raw map[string]string, entity string) (Spec, error) {
	ent, ok := n.entities[entity]
	if !ok {
		return Spec{}, apperr.Validation("unknown entity type %q", entity)
	}

	spec := Spec{
		Filter: bson.M{},
		Limit:  n.cfg.DefaultLimit,
	}
	spec.SortField, spec.SortAsc = splitSort(ent.DefaultSort)

	for k, v := range raw {
		switch k {
		case keyLimit:
			lim, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return Spec{}, apperr.Validation("limit %q is not a number", v)
			}
			spec.Limit = clamp(lim, 1, n.cfg.MaxLimit)

		case keySkip:
			skip, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return Spec{}, apperr.Validation("skip %q is not a number", v)
			}
			if skip < 0 {
				return Spec{}, apperr.Validation("skip must not be negative")
			}
			spec.Skip = skip

		case keySort:
			field, asc := splitSort(strings.TrimSpace(v))
			if !contains(ent.SortFields, field) {
				return Spec{}, apperr.Validation("cannot sort %s by %q", ent.Name, field)
			}
			spec.SortField, spec.SortAsc = field, asc

		case keySearch:
			text := strings.TrimSpace(v)
			if text == "" {
				continue
			}
			if len(ent.SearchFields) == 0 {
				return Spec{}, apperr.Validation("%s does not support free-text search", ent.Name)
			}
			spec.Or = SearchGroup(ent.SearchFields, text)

		default:
			switch {
			case contains(ent.ExactFields, k):
				spec.Filter[k] = v
			case contains(ent.PatternFields, k):
				spec.Filter[k] = ContainsCI(v)
			default:
				return Spec{}, apperr.Validation("unsupported query field %q for %s", k, ent.Name)
			}
		}
	}

	return spec, nil
}

// ContainsCI builds a case-insensitive substring match. The value is quoted
// so client input can never smuggle regex metacharacters.
func ContainsCI(value string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(value), "$options": "i"}
}

// SearchGroup compiles free text into a disjunction of case-insensitive
// substring matches over the given fields.
func SearchGroup(fields []string, text string) []bson.M {
	group := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		group = append(group, bson.M{f: ContainsCI(text)})
	}
	return group
}

func splitSort(s string) (field string, asc bool) {
	if strings.HasPrefix(s, "-") {
		return strings.TrimPrefix(s, "-"), false
	}
	return s, true
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
