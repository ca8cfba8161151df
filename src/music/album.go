package music

// AlbumInfo is the caller-supplied description of an album to resolve.
type AlbumInfo struct {
	Name string `json:"name" validate:"max=500"`
	Year *int   `json:"year,omitempty" validate:"omitempty,gte=0,lte=9999"`
	// ProviderIDs known about the album itself
	ProviderIDs ProviderIDs `json:"provider_ids,omitempty"`
	// ArtistProviderIDs known about the album's artist
	ArtistProviderIDs ProviderIDs `json:"artist_provider_ids,omitempty"`
	AlbumArtists      []string    `json:"album_artists,omitempty"`
	SongInfos         []SongInfo  `json:"songs,omitempty" validate:"dive"`
}

// AlbumMetadata is the canonical album record produced by an identify call.
type AlbumMetadata struct {
	HasMetadata    bool          `json:"has_metadata"`
	Name           string        `json:"name,omitempty"`
	ProductionYear *int          `json:"production_year,omitempty"`
	ExternalURL    string        `json:"external_url,omitempty"`
	Genres         []string      `json:"genres,omitempty"`
	Images         []RemoteImage `json:"images,omitempty"`
	ProviderIDs    ProviderIDs   `json:"provider_ids,omitempty"`
}

// AddGenre appends a genre, skipping empty names and duplicates.
func (a *AlbumMetadata) AddGenre(genre string) {
	a.Genres = AppendGenre(a.Genres, genre)
}

// AppendGenre appends genre to genres, skipping empty names and duplicates.
func AppendGenre(genres []string, genre string) []string {
	if genre == "" {
		return genres
	}
	for _, g := range genres {
		if g == genre {
			return genres
		}
	}
	return append(genres, genre)
}
