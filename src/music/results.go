package music

// ImageType tags a remote image as the primary image or a secondary backdrop.
type ImageType string

const (
	ImageTypePrimary  ImageType = "primary"
	ImageTypeBackdrop ImageType = "backdrop"
)

// RemoteImage is an image hosted by the catalog.
type RemoteImage struct {
	URL          string    `json:"url"`
	Type         ImageType `json:"type"`
	ProviderName string    `json:"provider_name"`
}

// RemoteImages tags the first url as primary and every following one as backdrop, keeping order.
func RemoteImages(urls []string) []RemoteImage {
	images := make([]RemoteImage, 0, len(urls))
	for i, u := range urls {
		imageType := ImageTypeBackdrop
		if i == 0 {
			imageType = ImageTypePrimary
		}
		images = append(images, RemoteImage{URL: u, Type: imageType, ProviderName: ProviderName})
	}
	return images
}

// Candidate is a match proposal returned by a search, meant for human selection.
type Candidate struct {
	Name               string      `json:"name"`
	ProductionYear     *int        `json:"production_year,omitempty"`
	ImageURL           string      `json:"image_url,omitempty"`
	SearchProviderName string      `json:"search_provider_name"`
	AlbumArtist        *Candidate  `json:"album_artist,omitempty"`
	ProviderIDs        ProviderIDs `json:"provider_ids"`
}
