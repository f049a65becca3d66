package content

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rajshekhar/folio/internal/domain/portfolio"
)

type fakeSource struct {
	aboutCalls   atomic.Int32
	skillsCalls  atomic.Int32
	projectCalls atomic.Int32

	about      portfolio.Resource[portfolio.About]
	skills     []portfolio.Skill
	projects   []portfolio.Project
	experience []portfolio.Experience

	skillsErr  error
	failFirst  atomic.Int32
	gate       chan struct{}
	experErr   error
	projectErr error
}

func (f *fakeSource) GetAbout(ctx context.Context) (portfolio.Resource[portfolio.About], error) {
	f.aboutCalls.Add(1)
	return f.about, nil
}

func (f *fakeSource) GetSkills(ctx context.Context) ([]portfolio.Skill, error) {
	f.skillsCalls.Add(1)
	if f.failFirst.Load() > 0 {
		f.failFirst.Add(-1)
		return nil, errors.New("flaky")
	}
	return f.skills, f.skillsErr
}

func (f *fakeSource) GetProjects(ctx context.Context) ([]portfolio.Project, error) {
	f.projectCalls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	return f.projects, f.projectErr
}

func (f *fakeSource) GetExperience(ctx context.Context) ([]portfolio.Experience, error) {
	return f.experience, f.experErr
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestLoaderCachesUntilStale(t *testing.T) {
	t.Parallel()

	src := &fakeSource{skills: []portfolio.Skill{{Name: "Go"}}}
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLoader(src, Options{StaleAfter: 5 * time.Minute, Now: clock.Now})
	ctx := context.Background()

	_, err := l.Skills(ctx)
	require.NoError(t, err)
	_, err = l.Skills(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, src.skillsCalls.Load())

	clock.Advance(5 * time.Minute)
	skills, err := l.Skills(ctx)
	require.NoError(t, err)
	require.Equal(t, "Go", skills[0].Name)
	require.EqualValues(t, 2, src.skillsCalls.Load())
}

func TestLoaderInvalidate(t *testing.T) {
	t.Parallel()

	src := &fakeSource{}
	l := NewLoader(src, Options{StaleAfter: time.Hour})
	ctx := context.Background()

	_, _ = l.Skills(ctx)
	l.Invalidate(KeySkills)
	_, _ = l.Skills(ctx)
	require.EqualValues(t, 2, src.skillsCalls.Load())

	_, _ = l.About(ctx)
	l.Invalidate()
	_, _ = l.About(ctx)
	require.EqualValues(t, 2, src.aboutCalls.Load())
}

func TestLoaderRetriesOnce(t *testing.T) {
	t.Parallel()

	src := &fakeSource{skills: []portfolio.Skill{{Name: "Go"}}}
	src.failFirst.Store(1)
	l := NewLoader(src, Options{Retries: 1})

	skills, err := l.Skills(context.Background())
	require.NoError(t, err)
	require.Len(t, skills, 1)
	require.EqualValues(t, 2, src.skillsCalls.Load())
}

func TestLoaderGivesUpAfterRetries(t *testing.T) {
	t.Parallel()

	boom := errors.New("down")
	src := &fakeSource{skillsErr: boom}
	l := NewLoader(src, Options{Retries: 1})

	_, err := l.Skills(context.Background())
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "load skills")
	require.EqualValues(t, 2, src.skillsCalls.Load())

	_, err = l.Skills(context.Background())
	require.Error(t, err, "failures are not cached")
	require.EqualValues(t, 4, src.skillsCalls.Load())
}

func TestLoaderSharesInFlightFetch(t *testing.T) {
	t.Parallel()

	src := &fakeSource{gate: make(chan struct{}), projects: []portfolio.Project{{Title: "A"}}}
	l := NewLoader(src, Options{StaleAfter: time.Minute})

	var wg sync.WaitGroup
	results := make([][]portfolio.Project, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = l.Projects(context.Background())
		}(i)
	}

	require.Eventually(t, func() bool { return src.projectCalls.Load() == 1 }, time.Second, time.Millisecond)
	// Give the other callers time to join the in-flight fetch.
	time.Sleep(20 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	require.EqualValues(t, 1, src.projectCalls.Load())
	for _, r := range results {
		require.Equal(t, "A", r[0].Title)
	}
}

func TestLoadAllKeepsPartialResults(t *testing.T) {
	t.Parallel()

	src := &fakeSource{
		about:      portfolio.Single(portfolio.About{Name: "Raj", Bio: "Builds things."}),
		skills:     []portfolio.Skill{{Name: "Go"}},
		projectErr: errors.New("projects down"),
	}
	l := NewLoader(src, Options{})

	snap := l.LoadAll(context.Background())
	require.NotNil(t, snap.About)
	require.Equal(t, "Raj", snap.About.Name)
	require.Len(t, snap.Skills, 1)
	require.Nil(t, snap.Projects)
	require.NotNil(t, snap.Experience, "empty results are non-nil")
	require.Empty(t, snap.Experience)

	require.Len(t, snap.Errs, 1)
	require.ErrorContains(t, snap.Err(), "projects down")
}

func TestLoadAllEmptyAboutCollection(t *testing.T) {
	t.Parallel()

	src := &fakeSource{about: portfolio.Collection[portfolio.About](nil)}
	snap := NewLoader(src, Options{}).LoadAll(context.Background())

	require.NoError(t, snap.Err())
	require.Nil(t, snap.About)
	require.Empty(t, snap.Abouts)
}

func TestSnapshotGrounding(t *testing.T) {
	t.Parallel()

	about := portfolio.About{Name: "Raj"}
	snap := Snapshot{
		About:      &about,
		Projects:   []portfolio.Project{{Title: "Folio"}},
		Experience: []portfolio.Experience{{Company: "Acme"}},
	}
	owner := portfolio.Owner{Name: "Raj"}

	g := snap.Grounding(owner)
	require.Equal(t, owner.Name, g.Owner.Name)
	require.Same(t, &about, g.About)
	require.Len(t, g.Projects, 1)
	require.Len(t, g.Experience, 1)
}
