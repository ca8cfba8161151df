package music

// ArtistInfo is the caller-supplied description of an artist to resolve.
type ArtistInfo struct {
	Name        string      `json:"name" validate:"max=500"`
	Year        *int        `json:"year,omitempty" validate:"omitempty,gte=0,lte=9999"`
	ProviderIDs ProviderIDs `json:"provider_ids,omitempty"`
	// SongInfos are the tracks associated with the artist in the local library
	SongInfos []SongInfo `json:"songs,omitempty" validate:"dive"`
}

// ArtistMetadata is the canonical artist record produced by an identify call.
// Name is left empty when the caller's own name must be kept.
type ArtistMetadata struct {
	HasMetadata bool          `json:"has_metadata"`
	Name        string        `json:"name,omitempty"`
	Overview    string        `json:"overview,omitempty"`
	ExternalURL string        `json:"external_url,omitempty"`
	Genres      []string      `json:"genres,omitempty"`
	Images      []RemoteImage `json:"images,omitempty"`
	ProviderIDs ProviderIDs   `json:"provider_ids,omitempty"`
}

// AddGenre appends a genre, skipping empty names and duplicates.
func (a *ArtistMetadata) AddGenre(genre string) {
	a.Genres = AppendGenre(a.Genres, genre)
}
