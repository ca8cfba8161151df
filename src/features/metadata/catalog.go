package metadata

import "context"

// Catalog is the remote music catalog the resolvers query.
// Every method returns a nil result or a non-nil error when the catalog has nothing to offer.
// The resolvers do not tell "not found" apart from a transport failure.
type Catalog interface {
	GetRelease(ctx context.Context, id int) (*Release, error)
	GetMaster(ctx context.Context, id int) (*Master, error)
	GetArtist(ctx context.Context, id int) (*Artist, error)
	GetArtistReleases(ctx context.Context, artistID int, page *Pagination, sort *SortOrder) (*ArtistReleases, error)
	Search(ctx context.Context, query SearchQuery, page *Pagination) (*SearchResults, error)
}

// EntityType restricts a catalog search to one kind of entity.
type EntityType string

const (
	EntityTypeRelease EntityType = "release"
	EntityTypeMaster  EntityType = "master"
	EntityTypeArtist  EntityType = "artist"
	EntityTypeLabel   EntityType = "label"
)

// ArtistRef is an artist credited on a release.
type ArtistRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Image is a catalog image.
type Image struct {
	URI    string `json:"uri"`
	URI150 string `json:"uri150"`
	Type   string `json:"type"`
}

// Release is a specific pressing or edition of an album. MasterID is 0 when the release has no master.
type Release struct {
	ID       int         `json:"id"`
	MasterID int         `json:"master_id"`
	Title    string      `json:"title"`
	Year     int         `json:"year"`
	Artists  []ArtistRef `json:"artists"`
	Genres   []string    `json:"genres"`
	Styles   []string    `json:"styles"`
	Images   []Image     `json:"images"`
	Thumb    string      `json:"thumb"`
	URI      string      `json:"uri"`
}

// Master groups the releases of the same album and points at its main release.
type Master struct {
	ID          int    `json:"id"`
	MainRelease int    `json:"main_release"`
	Title       string `json:"title"`
	Year        int    `json:"year"`
}

// Artist is a catalog artist.
type Artist struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Profile string  `json:"profile"`
	Images  []Image `json:"images"`
	URI     string  `json:"uri"`
}

// ArtistRelease is an entry of an artist's release listing. For master entries
// MainRelease points at the master's main release.
type ArtistRelease struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	MainRelease int    `json:"main_release"`
	Role        string `json:"role"`
	Year        int    `json:"year"`
	Thumb       string `json:"thumb"`
}

// PageInfo describes the position of a page within a paginated listing.
type PageInfo struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Items   int `json:"items"`
}

// ArtistReleases is one page of an artist's release listing.
type ArtistReleases struct {
	Pagination PageInfo        `json:"pagination"`
	Releases   []ArtistRelease `json:"releases"`
}

// SearchResult is a single hit of a catalog search.
type SearchResult struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Thumb      string     `json:"thumb"`
	CoverImage string     `json:"cover_image"`
	URI        string     `json:"uri"`
	Type       EntityType `json:"type"`
}

// SearchResults is one page of catalog search hits, in catalog order.
type SearchResults struct {
	Pagination PageInfo       `json:"pagination"`
	Results    []SearchResult `json:"results"`
}

// SearchQuery is a structured catalog search. Zero fields are not sent.
type SearchQuery struct {
	Type         EntityType
	Query        string
	ReleaseTitle string
	Artist       string
	Year         *int
}

// Pagination selects a page of a listing.
type Pagination struct {
	Page    int
	PerPage int
}

// SortOrder orders a listing.
type SortOrder struct {
	Sort  string
	Order string
}
