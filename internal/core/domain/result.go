package domain

import (
	"fmt"
	"time"
)

// ResultItem is a single search hit. The orchestration core treats items
// as opaque beyond an identifying key and their position in the section's
// ordered item list.
type ResultItem interface {
	// Key uniquely identifies the item within its section. Accumulated
	// pages never contain duplicate keys.
	Key() string
}

// Segment is a time-coded transcript segment match.
type Segment struct {
	// VideoID identifies the video the segment belongs to.
	VideoID string

	// VideoTitle is the title of the owning video.
	VideoTitle string

	// StartMS and EndMS bound the segment within the video, in milliseconds.
	StartMS int
	EndMS   int

	// Text is the matched transcript text.
	Text string

	// ContextBefore and ContextAfter carry surrounding transcript text.
	ContextBefore string
	ContextAfter  string

	// Language is the transcript language code, e.g. "en".
	Language string
}

// Key returns the segment's identity: video plus start offset.
func (s Segment) Key() string {
	return fmt.Sprintf("%s@%d", s.VideoID, s.StartMS)
}

// Timestamp formats the segment start as h:mm:ss.
func (s Segment) Timestamp() string {
	d := time.Duration(s.StartMS) * time.Millisecond
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

// VideoMatch is a video whose title or description matched the query.
type VideoMatch struct {
	// VideoID identifies the matched video.
	VideoID string

	// Title is the video title.
	Title string

	// Snippet is the highlighted excerpt of the matched field.
	Snippet string

	// ChannelID and ChannelTitle identify the owning channel.
	ChannelID    string
	ChannelTitle string

	// PublishedAt is the video publication time.
	PublishedAt time.Time
}

// Key returns the video id.
func (v VideoMatch) Key() string {
	return v.VideoID
}
