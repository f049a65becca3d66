// Package content caches portfolio resources for the presentation layer.
// Each resource is fetched at most once per stale window, retried a fixed
// number of times, and shared between concurrent callers.
package content

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/rajshekhar/folio/internal/domain/chat"
	"github.com/rajshekhar/folio/internal/domain/portfolio"
	"github.com/rajshekhar/folio/internal/ports"
)

// Resource keys.
const (
	KeyAbout      = "about"
	KeySkills     = "skills"
	KeyProjects   = "projects"
	KeyExperience = "experience"
)

// Source is the subset of the API client the loader reads from.
type Source interface {
	GetAbout(ctx context.Context) (portfolio.Resource[portfolio.About], error)
	GetSkills(ctx context.Context) ([]portfolio.Skill, error)
	GetProjects(ctx context.Context) ([]portfolio.Project, error)
	GetExperience(ctx context.Context) ([]portfolio.Experience, error)
}

// Options tunes a Loader.
type Options struct {
	StaleAfter time.Duration
	Retries    int
	RetryDelay time.Duration
	Logger     ports.Logger
	Now        func() time.Time
}

type entry struct {
	value   interface{}
	fetched time.Time
}

// Loader is safe for concurrent use.
type Loader struct {
	source  Source
	opts    Options
	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]entry
}

// NewLoader wraps source with caching.
func NewLoader(source Source, opts Options) *Loader {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Logger != nil {
		opts.Logger = opts.Logger.With("component", "content", "layer", "application")
	}
	return &Loader{source: source, opts: opts, entries: make(map[string]entry)}
}

// About returns the normalized about records; Items is never nil on success.
func (l *Loader) About(ctx context.Context) (portfolio.Resource[portfolio.About], error) {
	v, err := l.load(ctx, KeyAbout, func(ctx context.Context) (interface{}, error) {
		return l.source.GetAbout(ctx)
	})
	if err != nil {
		return portfolio.Resource[portfolio.About]{}, err
	}
	return v.(portfolio.Resource[portfolio.About]), nil
}

// Skills returns every skill.
func (l *Loader) Skills(ctx context.Context) ([]portfolio.Skill, error) {
	v, err := l.load(ctx, KeySkills, func(ctx context.Context) (interface{}, error) {
		return l.source.GetSkills(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]portfolio.Skill), nil
}

// Projects returns every project.
func (l *Loader) Projects(ctx context.Context) ([]portfolio.Project, error) {
	v, err := l.load(ctx, KeyProjects, func(ctx context.Context) (interface{}, error) {
		return l.source.GetProjects(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]portfolio.Project), nil
}

// Experience returns the career timeline.
func (l *Loader) Experience(ctx context.Context) ([]portfolio.Experience, error) {
	v, err := l.load(ctx, KeyExperience, func(ctx context.Context) (interface{}, error) {
		return l.source.GetExperience(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]portfolio.Experience), nil
}

// Invalidate drops cached values for keys, or for every key when none are
// given.
func (l *Loader) Invalidate(keys ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(keys) == 0 {
		l.entries = make(map[string]entry)
		return
	}
	for _, key := range keys {
		delete(l.entries, key)
	}
}

func (l *Loader) load(ctx context.Context, key string, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	if v, ok := l.fresh(key); ok {
		return v, nil
	}

	v, err, shared := l.group.Do(key, func() (interface{}, error) {
		if v, ok := l.fresh(key); ok {
			return v, nil
		}
		v, err := l.fetchWithRetry(ctx, key, fetch)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.entries[key] = entry{value: v, fetched: l.opts.Now()}
		l.mu.Unlock()
		return v, nil
	})
	if shared {
		l.debug(ctx, "shared in-flight fetch", "resource", key)
	}
	return v, err
}

func (l *Loader) fresh(key string) (interface{}, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[key]
	if !ok {
		return nil, false
	}
	if l.opts.StaleAfter > 0 && l.opts.Now().Sub(e.fetched) >= l.opts.StaleAfter {
		return nil, false
	}
	return e.value, true
}

func (l *Loader) fetchWithRetry(ctx context.Context, key string, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	var lastErr error
	for attempt := 0; attempt <= l.opts.Retries; attempt++ {
		if attempt > 0 {
			l.debug(ctx, "retrying fetch", "resource", key, "attempt", attempt, "error", lastErr)
			if l.opts.RetryDelay > 0 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(l.opts.RetryDelay):
				}
			}
		}
		v, err := fetch(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	if l.opts.Logger != nil {
		l.opts.Logger.Warn(ctx, "fetch failed", "resource", key, "error", lastErr)
	}
	return nil, fmt.Errorf("load %s: %w", key, lastErr)
}

func (l *Loader) debug(ctx context.Context, msg string, fields ...interface{}) {
	if l.opts.Logger != nil {
		l.opts.Logger.Debug(ctx, msg, fields...)
	}
}

// Snapshot is the result of LoadAll. A resource that failed to load is left
// nil and its error is recorded in Errs.
type Snapshot struct {
	About      *portfolio.About
	Abouts     []portfolio.About
	Skills     []portfolio.Skill
	Projects   []portfolio.Project
	Experience []portfolio.Experience
	Errs       map[string]error
}

// Err joins every per-resource failure, or returns nil.
func (s Snapshot) Err() error {
	if len(s.Errs) == 0 {
		return nil
	}
	errs := make([]error, 0, len(s.Errs))
	for _, key := range []string{KeyAbout, KeySkills, KeyProjects, KeyExperience} {
		if err, ok := s.Errs[key]; ok {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Grounding converts the snapshot into chat grounding for owner.
func (s Snapshot) Grounding(owner portfolio.Owner) chat.Grounding {
	return chat.Grounding{
		Owner:      owner,
		About:      s.About,
		Projects:   s.Projects,
		Experience: s.Experience,
	}
}

// LoadAll fetches every resource concurrently. It never fails as a whole;
// inspect Snapshot.Err for partial failures.
func (l *Loader) LoadAll(ctx context.Context) Snapshot {
	var (
		snap Snapshot
		mu   sync.Mutex
	)
	snap.Errs = make(map[string]error)
	record := func(key string, err error) {
		mu.Lock()
		snap.Errs[key] = err
		mu.Unlock()
	}

	// Every task returns nil so one failure does not cancel its siblings.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := l.About(gctx)
		if err != nil {
			record(KeyAbout, err)
			return nil
		}
		mu.Lock()
		snap.Abouts = res.Items
		if first, ok := res.First(); ok {
			snap.About = &first
		}
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		skills, err := l.Skills(gctx)
		if err != nil {
			record(KeySkills, err)
			return nil
		}
		mu.Lock()
		snap.Skills = nonNil(skills)
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		projects, err := l.Projects(gctx)
		if err != nil {
			record(KeyProjects, err)
			return nil
		}
		mu.Lock()
		snap.Projects = nonNil(projects)
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		experience, err := l.Experience(gctx)
		if err != nil {
			record(KeyExperience, err)
			return nil
		}
		mu.Lock()
		snap.Experience = nonNil(experience)
		mu.Unlock()
		return nil
	})
	_ = g.Wait()
	return snap
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
