package metadata

import "github.com/contre95/discogsmeta/src/music"

// Identity extraction recovers IDs the library already knows about an item. The order of the
// checks is the precedence: the item's own ID, then an ID supplied by its parent, then one
// inferred from its tracks. None of these functions touch the network.

// ReleaseID returns the album's release ID, falling back to the first track that carries one.
func ReleaseID(info *music.AlbumInfo) string {
	if id := info.ProviderIDs.Get(music.ProviderAlbum); id != "" {
		return id
	}
	return firstSongID(info.SongInfos, music.ProviderAlbum)
}

// ReleaseMasterID returns the album's master ID. Tracks are not consulted.
func ReleaseMasterID(info *music.AlbumInfo) string {
	return info.ProviderIDs.Get(music.ProviderAlbumMaster)
}

// AlbumArtistID returns the album artist ID from the album, then its artist, then its tracks.
func AlbumArtistID(info *music.AlbumInfo) string {
	if id := info.ProviderIDs.Get(music.ProviderAlbumArtist); id != "" {
		return id
	}
	if id := info.ArtistProviderIDs.Get(music.ProviderArtist); id != "" {
		return id
	}
	return firstSongID(info.SongInfos, music.ProviderAlbumArtist)
}

// AlbumArtistName returns the first album artist named by a track, or the album's own first
// album artist.
func AlbumArtistName(info *music.AlbumInfo) string {
	for _, song := range info.SongInfos {
		for _, name := range song.AlbumArtists {
			if name != "" {
				return name
			}
		}
	}
	if len(info.AlbumArtists) > 0 {
		return info.AlbumArtists[0]
	}
	return ""
}

// ArtistID returns the artist's own ID, falling back to the first track's album artist ID.
func ArtistID(info *music.ArtistInfo) string {
	if id := info.ProviderIDs.Get(music.ProviderArtist); id != "" {
		return id
	}
	return firstSongID(info.SongInfos, music.ProviderAlbumArtist)
}

func firstSongID(songs []music.SongInfo, key string) string {
	for _, song := range songs {
		if id := song.ProviderIDs.Get(key); id != "" {
			return id
		}
	}
	return ""
}
