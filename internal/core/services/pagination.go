package services

// Default pagination windows.
const (
	DefaultSegmentPageSize = 20
	DefaultCappedLimit     = 50
)

// PageRequest is the offset/limit window of one source query.
type PageRequest struct {
	Offset int
	Limit  int
}

// PaginationStrategy decides how a section fetches result pages.
type PaginationStrategy interface {
	// FirstPage returns the window for a fresh trigger.
	FirstPage() PageRequest

	// NextPage returns the window extending accumulated items, or
	// ok=false when no further fetch is permitted.
	NextPage(accumulated int, hasMore bool) (page PageRequest, ok bool)

	// Incremental reports whether the section accumulates pages.
	Incremental() bool
}

// IncrementalStrategy is cursor-style offset/limit pagination used by the
// segment section. The next offset is derived from the count of items
// already accumulated for the current epoch, never from a server cursor,
// so a changed page size can only take effect through a fresh trigger.
type IncrementalStrategy struct {
	PageSize int
}

// FirstPage starts at offset zero.
func (s IncrementalStrategy) FirstPage() PageRequest {
	return PageRequest{Offset: 0, Limit: s.pageSize()}
}

// NextPage extends the accumulated list. hasMore=false is terminal: no
// further fetch is issued for the epoch.
func (s IncrementalStrategy) NextPage(accumulated int, hasMore bool) (PageRequest, bool) {
	if !hasMore {
		return PageRequest{}, false
	}
	return PageRequest{Offset: accumulated, Limit: s.pageSize()}, true
}

// Incremental returns true.
func (s IncrementalStrategy) Incremental() bool { return true }

func (s IncrementalStrategy) pageSize() int {
	if s.PageSize > 0 {
		return s.PageSize
	}
	return DefaultSegmentPageSize
}

// CappedStrategy issues exactly one request per epoch, used by the title
// and description sections. The server declares a total; when it exceeds
// the limit the UI surfaces "showing K of N" instead of paginating.
// This divergence from IncrementalStrategy is deliberate policy.
type CappedStrategy struct {
	Limit int
}

// FirstPage is the only page a capped section ever requests.
func (s CappedStrategy) FirstPage() PageRequest {
	limit := s.Limit
	if limit <= 0 {
		limit = DefaultCappedLimit
	}
	return PageRequest{Offset: 0, Limit: limit}
}

// NextPage never permits a further fetch.
func (s CappedStrategy) NextPage(int, bool) (PageRequest, bool) {
	return PageRequest{}, false
}

// Incremental returns false.
func (s CappedStrategy) Incremental() bool { return false }
