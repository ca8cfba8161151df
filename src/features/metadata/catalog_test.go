package metadata

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/contre95/discogsmeta/src/features/config"
)

var errUpstream = errors.New("upstream failure")

// fakeCatalog is an in-memory Catalog that counts calls. Missing entries and ids listed in fail
// return errUpstream, like a transport failure would.
type fakeCatalog struct {
	mu       sync.Mutex
	releases map[int]*Release
	masters  map[int]*Master
	artists  map[int]*Artist
	listings map[int]*ArtistReleases // keyed by page
	search   *SearchResults
	fail     map[int]bool
	calls    map[string]int
	queries  []SearchQuery
	pages    []int
	// onCall runs before every call, after it was counted.
	onCall func(method string)
	// err is returned by every call when set.
	err error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		releases: map[int]*Release{},
		masters:  map[int]*Master{},
		artists:  map[int]*Artist{},
		listings: map[int]*ArtistReleases{},
		fail:     map[int]bool{},
		calls:    map[string]int{},
	}
}

func (f *fakeCatalog) record(ctx context.Context, method string) error {
	f.mu.Lock()
	f.calls[method]++
	onCall := f.onCall
	f.mu.Unlock()
	if onCall != nil {
		onCall(method)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.err
}

func (f *fakeCatalog) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeCatalog) GetRelease(ctx context.Context, id int) (*Release, error) {
	if err := f.record(ctx, "GetRelease"); err != nil {
		return nil, err
	}
	release, ok := f.releases[id]
	if !ok || f.fail[id] {
		return nil, errUpstream
	}
	return release, nil
}

func (f *fakeCatalog) GetMaster(ctx context.Context, id int) (*Master, error) {
	if err := f.record(ctx, "GetMaster"); err != nil {
		return nil, err
	}
	master, ok := f.masters[id]
	if !ok || f.fail[id] {
		return nil, errUpstream
	}
	return master, nil
}

func (f *fakeCatalog) GetArtist(ctx context.Context, id int) (*Artist, error) {
	if err := f.record(ctx, "GetArtist"); err != nil {
		return nil, err
	}
	artist, ok := f.artists[id]
	if !ok || f.fail[id] {
		return nil, errUpstream
	}
	return artist, nil
}

func (f *fakeCatalog) GetArtistReleases(ctx context.Context, artistID int, page *Pagination, sort *SortOrder) (*ArtistReleases, error) {
	if err := f.record(ctx, "GetArtistReleases"); err != nil {
		return nil, err
	}
	number := 1
	if page != nil {
		number = page.Page
	}
	f.pages = append(f.pages, number)
	if f.fail[artistID] {
		return nil, errUpstream
	}
	listing, ok := f.listings[number]
	if !ok {
		return nil, errUpstream
	}
	return listing, nil
}

func (f *fakeCatalog) Search(ctx context.Context, query SearchQuery, page *Pagination) (*SearchResults, error) {
	if err := f.record(ctx, "Search"); err != nil {
		return nil, err
	}
	f.queries = append(f.queries, query)
	if f.search == nil {
		return nil, errUpstream
	}
	return f.search, nil
}

type observation struct {
	resolver, operation, outcome string
}

type fakeRecorder struct {
	observations []observation
}

func (r *fakeRecorder) ObserveResolution(resolver, operation, outcome string, _ time.Duration) {
	r.observations = append(r.observations, observation{resolver, operation, outcome})
}

func testConfig(replaceArtistName bool) *config.Manager {
	return config.NewManager(&config.Config{
		LibraryPath: "/music",
		Discogs: config.Discogs{
			Token:             "test-token",
			ReplaceArtistName: replaceArtistName,
			SiteURL:           "https://www.discogs.com",
			UserAgent:         "discogsmeta-test",
		},
	})
}
