package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryActive(t *testing.T) {
	assert.False(t, Query{}.Active())
	assert.True(t, Query{Text: "go"}.Active())
}

func TestQuerySearchable(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want bool
	}{
		{
			name: "inactive",
			q:    Query{},
			want: false,
		},
		{
			name: "text but no sources",
			q:    Query{Text: "go"},
			want: false,
		},
		{
			name: "text with enabled source",
			q:    Query{Text: "go", Enabled: map[SourceType]bool{SourceTitles: true}},
			want: true,
		},
		{
			name: "only inert source enabled",
			q:    Query{Text: "go", Enabled: map[SourceType]bool{SourceChapters: true}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.Searchable())
		})
	}
}

func TestQueryEnabledSourcesStableOrder(t *testing.T) {
	q := Query{
		Text: "go",
		Enabled: map[SourceType]bool{
			SourceSegments:     true,
			SourceTitles:       true,
			SourceDescriptions: true,
		},
	}

	assert.Equal(t,
		[]SourceType{SourceTitles, SourceDescriptions, SourceSegments},
		q.EnabledSources())
}

func TestQueryEqual(t *testing.T) {
	a := Query{Text: "go", Enabled: map[SourceType]bool{SourceTitles: true}}
	b := Query{Text: "go", Enabled: map[SourceType]bool{SourceTitles: true}}
	c := Query{Text: "go", Enabled: map[SourceType]bool{SourceSegments: true}}
	d := Query{Text: "rust", Enabled: map[SourceType]bool{SourceTitles: true}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))

	// A false entry is equivalent to an absent one.
	e := Query{Text: "go", Enabled: map[SourceType]bool{
		SourceTitles:   true,
		SourceSegments: false,
	}}
	assert.True(t, a.Equal(e))
}

func TestSourceTypeWired(t *testing.T) {
	assert.True(t, SourceSegments.Wired())
	assert.True(t, SourceTitles.Wired())
	assert.True(t, SourceDescriptions.Wired())
	assert.False(t, SourceChapters.Wired())
}

func TestParseSourceType(t *testing.T) {
	got, ok := ParseSourceType("segments")
	assert.True(t, ok)
	assert.Equal(t, SourceSegments, got)

	_, ok = ParseSourceType("thumbnails")
	assert.False(t, ok)
}
