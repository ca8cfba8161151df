package metadata

import (
	"log/slog"

	"github.com/google/uuid"
)

// albumScope is the diagnostic context attached to every log line of one album resolution.
type albumScope struct {
	ID              string
	Method          string
	AlbumName       string
	AlbumYear       *int
	ReleaseID       string
	ReleaseMasterID string
	ArtistID        string
}

func newAlbumScope(method, name string, year *int) *albumScope {
	return &albumScope{ID: uuid.NewString(), Method: method, AlbumName: name, AlbumYear: year}
}

func (s *albumScope) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("id", s.ID),
		slog.String("method", s.Method),
		slog.String("name", s.AlbumName),
	}
	if s.AlbumYear != nil {
		attrs = append(attrs, slog.Int("year", *s.AlbumYear))
	}
	attrs = append(attrs,
		slog.String("release_id", s.ReleaseID),
		slog.String("master_id", s.ReleaseMasterID),
		slog.String("artist_id", s.ArtistID),
	)
	return slog.GroupValue(attrs...)
}

// artistScope is the diagnostic context attached to every log line of one artist resolution.
type artistScope struct {
	ID         string
	Method     string
	ArtistName string
	ArtistID   string
}

func newArtistScope(method, name string) *artistScope {
	return &artistScope{ID: uuid.NewString(), Method: method, ArtistName: name}
}

func (s *artistScope) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", s.ID),
		slog.String("method", s.Method),
		slog.String("name", s.ArtistName),
		slog.String("artist_id", s.ArtistID),
	)
}
