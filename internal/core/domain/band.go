package domain

import "time"

// Band is a music group listed in the catalog.
type Band struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Picture     string `json:"picture"`
	Genre       string `json:"genre,omitempty"`
	Description string `json:"description,omitempty"`
}

// Artist is a band member.
type Artist struct {
	ID       int64  `json:"id"`
	BandID   int64  `json:"band_id"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
	Position string `json:"position,omitempty"`
}

// Channel holds the social links used by the tracking page.
type Channel struct {
	BandID       int64  `json:"band_id"`
	YoutubeURL   string `json:"youtube_url,omitempty"`
	SpotifyURL   string `json:"spotify_url,omitempty"`
	FacebookURL  string `json:"facebook_url,omitempty"`
	InstagramURL string `json:"instagram_url,omitempty"`
}

// SongSubmission is a song suggested through the public form.
type SongSubmission struct {
	ID          int64
	SongName    string
	ArtistName  string
	YoutubeURL  string
	SpotifyURL  string // empty means not provided
	ReleaseDate time.Time
	CreatedAt   time.Time
}

// Post is a webboard message attached to a band.
type Post struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	BandID     int64     `json:"band_id" bson:"band_id"`
	AuthorID   int64     `json:"author_id" bson:"author_id"`
	AuthorName string    `json:"author_name" bson:"author_name"`
	Body       string    `json:"body" bson:"body"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
