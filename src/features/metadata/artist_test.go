package metadata

import (
	"context"
	"testing"

	"github.com/contre95/discogsmeta/src/music"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArtistResolver(t *testing.T, catalog Catalog, replaceArtistName bool) *ArtistResolver {
	t.Helper()
	resolver, err := NewArtistResolver(catalog, testConfig(replaceArtistName), nil)
	require.NoError(t, err)
	return resolver
}

func TestNewArtistResolver_MissingToken(t *testing.T) {
	_, err := NewArtistResolver(newFakeCatalog(), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestArtistIdentify_ReplaceArtistName(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.artists[1289] = &Artist{
		ID:      1289,
		Name:    "Daft Punk",
		Profile: "French electronic duo.",
		URI:     "https://www.discogs.com/artist/1289",
	}
	info := &music.ArtistInfo{Name: "daft punk", ProviderIDs: music.ProviderIDs{music.ProviderArtist: "1289"}}

	tests := []struct {
		name     string
		replace  bool
		expected string
	}{
		{name: "flag disabled keeps caller name", replace: false, expected: ""},
		{name: "flag enabled uses catalog name", replace: true, expected: "Daft Punk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := newArtistResolver(t, catalog, tt.replace)

			result, err := resolver.Identify(context.Background(), info)
			require.NoError(t, err)
			assert.True(t, result.HasMetadata)
			assert.Equal(t, tt.expected, result.Name)
			assert.Equal(t, "French electronic duo.", result.Overview)
			assert.Equal(t, "https://www.discogs.com/artist/1289", result.ExternalURL)
			assert.Equal(t, "1289", result.ProviderIDs.Get(music.ProviderArtist))
		})
	}
}

func TestArtistIdentify_ReadsFlagOnEveryCall(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.artists[1] = &Artist{ID: 1, Name: "Air"}
	cfg := testConfig(false)
	resolver, err := NewArtistResolver(catalog, cfg, nil)
	require.NoError(t, err)
	info := &music.ArtistInfo{ProviderIDs: music.ProviderIDs{music.ProviderArtist: "1"}}

	result, err := resolver.Identify(context.Background(), info)
	require.NoError(t, err)
	assert.Empty(t, result.Name)

	updated := *cfg.Get()
	updated.Discogs.ReplaceArtistName = true
	cfg.Update(&updated)

	result, err = resolver.Identify(context.Background(), info)
	require.NoError(t, err)
	assert.Equal(t, "Air", result.Name)
}

func TestArtistIdentify_SearchTakesFirstResultOnly(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.search = &SearchResults{Results: []SearchResult{{ID: 7, Title: "Boards of Canada"}, {ID: 8, Title: "Boards"}}}
	catalog.artists[7] = &Artist{ID: 7, Name: "Boards of Canada"}
	catalog.artists[8] = &Artist{ID: 8, Name: "Boards"}
	resolver := newArtistResolver(t, catalog, true)

	result, err := resolver.Identify(context.Background(), &music.ArtistInfo{Name: "Boards of Canada"})
	require.NoError(t, err)
	assert.True(t, result.HasMetadata)
	assert.Equal(t, "7", result.ProviderIDs.Get(music.ProviderArtist))
	assert.Equal(t, 1, catalog.calls["GetArtist"])

	require.Len(t, catalog.queries, 1)
	assert.Equal(t, SearchQuery{Type: EntityTypeArtist, Query: "Boards of Canada"}, catalog.queries[0])
}

func TestArtistIdentify_IDFromTracks(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.artists[5] = &Artist{ID: 5, Name: "Portishead"}
	resolver := newArtistResolver(t, catalog, true)

	result, err := resolver.Identify(context.Background(), &music.ArtistInfo{
		Name: "Portishead",
		SongInfos: []music.SongInfo{
			{ProviderIDs: music.ProviderIDs{music.ProviderArtist: "99"}},
			{ProviderIDs: music.ProviderIDs{music.ProviderAlbumArtist: "5"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Portishead", result.Name)
	assert.Zero(t, catalog.calls["Search"])
}

func TestArtistIdentify_SoftFailures(t *testing.T) {
	t.Run("empty search", func(t *testing.T) {
		catalog := newFakeCatalog()
		catalog.search = &SearchResults{}
		resolver := newArtistResolver(t, catalog, false)

		result, err := resolver.Identify(context.Background(), &music.ArtistInfo{Name: "Nobody"})
		require.NoError(t, err)
		assert.False(t, result.HasMetadata)
		assert.Zero(t, catalog.calls["GetArtist"])
	})

	t.Run("failed search", func(t *testing.T) {
		catalog := newFakeCatalog()
		resolver := newArtistResolver(t, catalog, false)

		result, err := resolver.Identify(context.Background(), &music.ArtistInfo{Name: "Nobody"})
		require.NoError(t, err)
		assert.False(t, result.HasMetadata)
	})

	t.Run("failed fetch", func(t *testing.T) {
		catalog := newFakeCatalog()
		resolver := newArtistResolver(t, catalog, false)

		result, err := resolver.Identify(context.Background(), &music.ArtistInfo{
			ProviderIDs: music.ProviderIDs{music.ProviderArtist: "404"},
		})
		require.NoError(t, err)
		assert.False(t, result.HasMetadata)
		assert.Empty(t, result.ProviderIDs)
	})
}

func TestArtistIdentify_CancellationPropagates(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.search = &SearchResults{Results: []SearchResult{{ID: 7}}}
	catalog.artists[7] = &Artist{ID: 7}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	catalog.onCall = func(string) { cancel() }
	resolver := newArtistResolver(t, catalog, false)

	result, err := resolver.Identify(ctx, &music.ArtistInfo{Name: "Anyone"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
	assert.Zero(t, catalog.calls["GetArtist"])
}

func TestArtistSearch_ByQueryMakesNoArtistFetch(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.search = &SearchResults{Results: []SearchResult{
		{ID: 1, Title: "Massive Attack", Thumb: "ma.jpg"},
		{ID: 2, Title: "Massive Attack vs Mad Professor"},
	}}
	resolver := newArtistResolver(t, catalog, false)

	candidates, err := resolver.Search(context.Background(), &music.ArtistInfo{Name: "Massive Attack"})
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Zero(t, catalog.calls["GetArtist"])

	assert.Equal(t, "Massive Attack", candidates[0].Name)
	assert.Equal(t, "ma.jpg", candidates[0].ImageURL)
	assert.Equal(t, "1", candidates[0].ProviderIDs.Get(music.ProviderArtist))
	assert.Equal(t, "2", candidates[1].ProviderIDs.Get(music.ProviderArtist))
	assert.Empty(t, candidates[1].ImageURL)
}

func TestArtistSearch_ByID(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.artists[3] = &Artist{ID: 3, Name: "Bjork", Images: []Image{{URI: "first.jpg"}, {URI: "second.jpg"}}}
	resolver := newArtistResolver(t, catalog, false)

	candidates, err := resolver.Search(context.Background(), &music.ArtistInfo{
		ProviderIDs: music.ProviderIDs{music.ProviderArtist: "3"},
	})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Bjork", candidates[0].Name)
	assert.Equal(t, "first.jpg", candidates[0].ImageURL)
	assert.Equal(t, "3", candidates[0].ProviderIDs.Get(music.ProviderArtist))
	assert.Zero(t, catalog.calls["Search"])
}

func TestArtistSearch_ByIDFailureHasNoFallback(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.search = &SearchResults{Results: []SearchResult{{ID: 1, Title: "Fallback"}}}
	resolver := newArtistResolver(t, catalog, false)

	candidates, err := resolver.Search(context.Background(), &music.ArtistInfo{
		Name:        "Fallback",
		ProviderIDs: music.ProviderIDs{music.ProviderArtist: "3"},
	})
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Equal(t, 1, catalog.totalCalls())
}

func TestArtistImages(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.artists[1] = &Artist{ID: 1, Images: []Image{{URI: "a.jpg"}, {URI: "b.jpg"}}}
	catalog.artists[2] = &Artist{ID: 2}
	resolver := newArtistResolver(t, catalog, false)

	images, err := resolver.Images(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, music.ImageTypePrimary, images[0].Type)
	assert.Equal(t, music.ImageTypeBackdrop, images[1].Type)

	images, err = resolver.Images(context.Background(), "2")
	require.NoError(t, err)
	assert.NotNil(t, images)
	assert.Empty(t, images)
}

func TestArtistGenres(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.listings[1] = &ArtistReleases{
		Pagination: PageInfo{Page: 1, Pages: 2},
		Releases: []ArtistRelease{
			{ID: 10, Role: "Main", Type: "master", MainRelease: 100},
			{ID: 11, Role: "Appearance"},
			{ID: 12, Role: "main", Type: "release"},
		},
	}
	catalog.listings[2] = &ArtistReleases{
		Pagination: PageInfo{Page: 2, Pages: 2},
		Releases: []ArtistRelease{
			{ID: 100, Role: "Main", Type: "release"},
			{ID: 13, Role: "Main", Type: "release"},
			{ID: 14, Role: "Main", Type: "release"},
		},
	}
	catalog.releases[100] = &Release{ID: 100, Genres: []string{"Electronic"}}
	catalog.releases[11] = &Release{ID: 11, Genres: []string{"Jazz"}}
	catalog.releases[12] = &Release{ID: 12, Genres: []string{"Rock", "", "Electronic"}}
	catalog.releases[14] = &Release{ID: 14, Genres: []string{"Pop"}}
	resolver := newArtistResolver(t, catalog, false)

	genres, err := resolver.Genres(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, []string{"Electronic", "Rock", "Pop"}, genres)
	assert.Equal(t, []int{1, 2}, catalog.pages)
	// 100 (deduplicated), 12, 13 (fails), 14
	assert.Equal(t, 4, catalog.calls["GetRelease"])
}

func TestArtistGenres_NotCalledByIdentify(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.artists[1] = &Artist{ID: 1}
	resolver := newArtistResolver(t, catalog, false)

	result, err := resolver.Identify(context.Background(), &music.ArtistInfo{ProviderIDs: music.ProviderIDs{music.ProviderArtist: "1"}})
	require.NoError(t, err)
	assert.Empty(t, result.Genres)
	assert.Zero(t, catalog.calls["GetArtistReleases"])
}

func TestArtistGenres_CancellationPropagates(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.listings[1] = &ArtistReleases{Releases: []ArtistRelease{{ID: 1, Role: "Main"}, {ID: 2, Role: "Main"}}}
	catalog.releases[1] = &Release{ID: 1}
	catalog.releases[2] = &Release{ID: 2}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	catalog.onCall = func(method string) {
		if method == "GetRelease" {
			cancel()
		}
	}
	resolver := newArtistResolver(t, catalog, false)

	genres, err := resolver.Genres(ctx, "42")
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, genres)
	assert.Equal(t, 1, catalog.calls["GetRelease"])
}
