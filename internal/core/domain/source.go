package domain

// SourceType identifies one of the independent search result sources.
type SourceType string

const (
	// SourceSegments searches time-coded transcript segments.
	SourceSegments SourceType = "segments"

	// SourceTitles searches video titles.
	SourceTitles SourceType = "titles"

	// SourceDescriptions searches video descriptions.
	SourceDescriptions SourceType = "descriptions"

	// SourceChapters is declared for forward compatibility. No coordinator
	// is wired for it, so enabling it has no effect.
	SourceChapters SourceType = "chapters"
)

// ActiveSourceTypes returns the source types wired to a coordinator,
// in stable presentation order.
func ActiveSourceTypes() []SourceType {
	return []SourceType{SourceTitles, SourceDescriptions, SourceSegments}
}

// Valid reports whether t is a known source type.
func (t SourceType) Valid() bool {
	switch t {
	case SourceSegments, SourceTitles, SourceDescriptions, SourceChapters:
		return true
	default:
		return false
	}
}

// Wired reports whether t has a coordinator behind it.
func (t SourceType) Wired() bool {
	switch t {
	case SourceSegments, SourceTitles, SourceDescriptions:
		return true
	default:
		return false
	}
}

// Label returns the human-readable label used in announcements,
// e.g. "transcript" for segments.
func (t SourceType) Label() string {
	switch t {
	case SourceSegments:
		return "transcript"
	case SourceTitles:
		return "title"
	case SourceDescriptions:
		return "description"
	case SourceChapters:
		return "chapter"
	default:
		return string(t)
	}
}

// String returns the wire representation of the source type.
func (t SourceType) String() string {
	return string(t)
}

// ParseSourceType converts a string to a SourceType.
// Returns false if the string does not name a known type.
func ParseSourceType(s string) (SourceType, bool) {
	t := SourceType(s)
	if !t.Valid() {
		return "", false
	}
	return t, true
}
