package translation

import (
	"context"

	"github.com/goliatone/go-translatable/internal/locale"
	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// State is the cache state of a Resolver.
type State uint8

const (
	// Unresolved means no lookup has completed since creation or Reset.
	Unresolved State = iota
	// ResolvedPresent holds the record found for the last seen locale.
	ResolvedPresent
	// ResolvedAbsent records that the last seen locale had no translation.
	ResolvedAbsent
)

func (s State) String() string {
	switch s {
	case ResolvedPresent:
		return "resolved_present"
	case ResolvedAbsent:
		return "resolved_absent"
	default:
		return "unresolved"
	}
}

// Finder looks up the translation of one entity for a locale. A nil record
// with a nil error means there is none.
type Finder interface {
	FindByLocale(ctx context.Context, locale string) (*Record, error)
}

// Resolver caches the translation matching the active locale for a single
// entity. The store is queried again only when the active locale differs
// from the one seen on the previous read, or after Reset.
//
// A Resolver is not safe for concurrent use.
type Resolver struct {
	finder  Finder
	current func() string
	logger  interfaces.Logger

	lastSeen string
	state    State
	cached   *Record
}

// NewResolver creates an Unresolved resolver. current reports the active
// locale on every read.
func NewResolver(finder Finder, current func() string, logger interfaces.Logger) *Resolver {
	if current == nil {
		current = func() string { return "" }
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Resolver{
		finder:  finder,
		current: current,
		logger:  logger,
	}
}

// CurrentLocale returns the normalized active locale.
func (r *Resolver) CurrentLocale() string {
	return locale.Normalize(r.current())
}

// State reports the cache state.
func (r *Resolver) State() State {
	return r.state
}

// Resolve returns the record for the active locale, or nil when the entity
// has no translation for it. Store errors are returned unchanged and leave
// the resolver Unresolved.
func (r *Resolver) Resolve(ctx context.Context) (*Record, error) {
	code := r.CurrentLocale()
	logger := logging.FromContext(ctx, r.logger)
	if r.state != Unresolved && code == r.lastSeen {
		logger.Trace("translation.resolve.cache_hit", "locale", code, "state", r.state.String())
		return r.cached, nil
	}

	logger.Debug("translation.resolve.query", "locale", code, "previous", r.lastSeen)
	record, err := r.finder.FindByLocale(ctx, code)
	if err != nil {
		r.Reset()
		logger.Warn("translation.resolve.error", "locale", code, "error", err)
		return nil, err
	}

	r.lastSeen = code
	r.cached = record
	if record == nil {
		r.state = ResolvedAbsent
	} else {
		r.state = ResolvedPresent
	}
	return record, nil
}

// Attribute reads one payload field of the active translation. The boolean
// is false when there is no translation or the field is missing from it.
func (r *Resolver) Attribute(ctx context.Context, name string) (any, bool, error) {
	record, err := r.Resolve(ctx)
	if err != nil {
		return nil, false, err
	}
	if record == nil {
		return nil, false, nil
	}
	value, ok := record.Field(name)
	return value, ok, nil
}

// Reset drops the cached lookup so the next read queries the store.
func (r *Resolver) Reset() {
	r.lastSeen = ""
	r.state = Unresolved
	r.cached = nil
}
