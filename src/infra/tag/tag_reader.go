package tag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/contre95/discogsmeta/src/features/metadata"
	"github.com/contre95/discogsmeta/src/music"
	"github.com/dhowden/tag"
)

// Ensure TagReader implements metadata.TagReader
var _ metadata.TagReader = (*TagReader)(nil)

// ErrNoAudioFiles is returned when a directory holds no readable audio file.
var ErrNoAudioFiles = errors.New("no readable audio files")

// supportedExtensions are the audio files an album directory is scanned for.
var supportedExtensions = map[string]bool{".mp3": true, ".flac": true, ".m4a": true, ".ogg": true}

// providerTags maps raw tag names, compared case-insensitively, to provider-ID keys.
var providerTags = map[string]string{
	"DISCOGS_RELEASE_ID":     music.ProviderAlbum,
	"DISCOGS_MASTER_ID":      music.ProviderAlbumMaster,
	"DISCOGS_ARTIST_ID":      music.ProviderArtist,
	"DISCOGS_ALBUMARTIST_ID": music.ProviderAlbumArtist,
}

// TagReader builds input records from audio file tags using the dhowden/tag library.
type TagReader struct {
	readMetadata func(path string) (tag.Metadata, error)
}

// NewTagReader creates a new TagReader
func NewTagReader() *TagReader {
	return &TagReader{readMetadata: readFile}
}

func readFile(path string) (tag.Metadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	tags, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}
	return tags, nil
}

// fileTags is what a single audio file contributes to an album record.
type fileTags struct {
	song  music.SongInfo
	album string
	year  int
}

// ReadSongInfo reads a single audio file into a track record.
func (r *TagReader) ReadSongInfo(ctx context.Context, path string) (*music.SongInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := r.read(path)
	if err != nil {
		return nil, err
	}
	return &file.song, nil
}

// ReadAlbumDir reads every supported audio file of dir, in file name order, into one album record.
// Album name, year and album artists come from the first file that has them.
func (r *TagReader) ReadAlbumDir(ctx context.Context, dir string) (*music.AlbumInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	info := &music.AlbumInfo{ProviderIDs: music.ProviderIDs{}}
	for _, entry := range entries {
		if entry.IsDir() || !supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(dir, entry.Name())
		file, err := r.read(path)
		if err != nil {
			slog.Warn("Skipping unreadable audio file", "path", path, "error", err)
			continue
		}

		if info.Name == "" {
			info.Name = file.album
		}
		if info.Year == nil && file.year > 0 {
			year := file.year
			info.Year = &year
		}
		if len(info.AlbumArtists) == 0 {
			info.AlbumArtists = file.song.AlbumArtists
		}
		// master ids are only read from the album itself
		if info.ProviderIDs.Get(music.ProviderAlbumMaster) == "" {
			info.ProviderIDs.Set(music.ProviderAlbumMaster, file.song.ProviderIDs.Get(music.ProviderAlbumMaster))
		}
		info.SongInfos = append(info.SongInfos, file.song)
	}

	if len(info.SongInfos) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoAudioFiles)
	}
	if info.Name == "" {
		info.Name = filepath.Base(dir)
	}

	slog.Debug("Read local album", "dir", dir, "name", info.Name, "tracks", len(info.SongInfos))
	return info, nil
}

func (r *TagReader) read(path string) (*fileTags, error) {
	tags, err := r.readMetadata(path)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(tags.Title())
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	// Get album artist, fall back to track artist if empty
	albumArtist := tags.AlbumArtist()
	if albumArtist == "" {
		albumArtist = tags.Artist()
	}

	file := &fileTags{
		song: music.SongInfo{
			Name:         title,
			Path:         path,
			Artists:      parseArtists(tags.Artist()),
			AlbumArtists: parseArtists(albumArtist),
			ProviderIDs:  providerIDs(tags.Raw()),
		},
		album: strings.TrimSpace(tags.Album()),
		year:  tags.Year(),
	}
	if file.year > 0 {
		year := file.year
		file.song.Year = &year
	}
	return file, nil
}

// parseArtists parses a string containing multiple artists separated by common delimiters
func parseArtists(artistString string) []string {
	if strings.TrimSpace(artistString) == "" {
		return nil
	}

	// Common delimiters: semicolon, slash, comma, "feat.", "ft.", "&"
	delimiters := []string{";", "/", ",", " feat. ", " ft. ", " & "}

	for _, delim := range delimiters {
		if strings.Contains(artistString, delim) {
			var names []string
			for _, name := range strings.Split(artistString, delim) {
				if name = strings.TrimSpace(name); name != "" {
					names = append(names, name)
				}
			}
			if len(names) > 0 {
				return names
			}
		}
	}

	return []string{strings.TrimSpace(artistString)}
}

// providerIDs extracts Discogs ids from raw tags. Vorbis comments and MP4 freeform atoms are keyed
// by name, ID3 user text frames (TXXX) carry the name in their description.
func providerIDs(raw map[string]interface{}) music.ProviderIDs {
	ids := music.ProviderIDs{}
	for key, value := range raw {
		name, text := key, ""
		switch v := value.(type) {
		case *tag.Comm:
			name, text = v.Description, v.Text
		case string:
			text = v
		case []byte:
			text = string(v)
		default:
			continue
		}

		// iTunes freeform atoms come as "----:com.apple.iTunes:NAME"
		if i := strings.LastIndex(name, ":"); i >= 0 {
			name = name[i+1:]
		}
		providerKey, ok := providerTags[strings.ToUpper(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if id := strings.TrimSpace(strings.TrimRight(text, "\x00")); id != "" && ids.Get(providerKey) == "" {
			ids.Set(providerKey, id)
		}
	}
	return ids
}
