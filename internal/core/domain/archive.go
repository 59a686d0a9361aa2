package domain

import "time"

// Channel is archived channel metadata, used by the browse commands.
type Channel struct {
	ID          string
	Title       string
	Description string
	VideoCount  int
	UpdatedAt   time.Time
}

// Playlist is archived playlist metadata.
type Playlist struct {
	ID        string
	Title     string
	ChannelID string
	ItemCount int
	UpdatedAt time.Time
}

// Video is full archived video metadata.
type Video struct {
	ID            string
	Title         string
	Description   string
	ChannelID     string
	ChannelTitle  string
	Duration      time.Duration
	PublishedAt   time.Time
	HasTranscript bool
	Languages     []string
}
