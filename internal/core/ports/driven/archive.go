package driven

import (
	"context"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
)

// SegmentPage is one page of transcript segment matches.
type SegmentPage struct {
	// Items are the matched segments in relevance order.
	Items []domain.Segment

	// Total is the server-declared total match count.
	Total int

	// Offset and Limit echo the request window.
	Offset int
	Limit  int

	// HasMore reports whether further pages exist past this window.
	HasMore bool
}

// VideoPage is a single capped page of title or description matches.
type VideoPage struct {
	// Items are the matched videos in relevance order.
	Items []domain.VideoMatch

	// TotalCount is the server-declared total, which may exceed
	// len(Items); no further page is fetched in that case.
	TotalCount int
}

// ArchiveClient is the remote archive API. Each call is context-aware;
// cancelling the context aborts the request at the transport level.
// Failures surface as *domain.SearchError.
type ArchiveClient interface {
	// SearchSegments queries time-coded transcript segments with
	// offset/limit pagination. language may be empty for all languages.
	SearchSegments(ctx context.Context, text string, offset, limit int, language string) (*SegmentPage, error)

	// SearchTitles queries video titles. Single capped request.
	SearchTitles(ctx context.Context, text string, limit int) (*VideoPage, error)

	// SearchDescriptions queries video descriptions. Single capped request.
	SearchDescriptions(ctx context.Context, text string, limit int) (*VideoPage, error)

	// ListChannels returns a page of archived channels and the total count.
	ListChannels(ctx context.Context, offset, limit int) ([]domain.Channel, int, error)

	// ListPlaylists returns a page of archived playlists and the total count.
	ListPlaylists(ctx context.Context, offset, limit int) ([]domain.Playlist, int, error)

	// GetVideo returns full metadata for one video.
	// Returns domain.ErrNotFound if the video is not archived.
	GetVideo(ctx context.Context, id string) (*domain.Video, error)
}
