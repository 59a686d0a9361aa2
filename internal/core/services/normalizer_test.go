package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
)

func TestNormalizeQueryTrimsText(t *testing.T) {
	q, err := NormalizeQuery("  kubernetes  ", map[domain.SourceType]bool{domain.SourceTitles: true})
	require.NoError(t, err)
	assert.Equal(t, "kubernetes", q.Text)
	assert.True(t, q.SourceEnabled(domain.SourceTitles))
}

func TestNormalizeQueryEmptyIsInactive(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		q, err := NormalizeQuery(text, map[domain.SourceType]bool{domain.SourceTitles: true})
		require.NoError(t, err)
		assert.False(t, q.Active())
	}
}

func TestNormalizeQueryBounds(t *testing.T) {
	_, err := NormalizeQuery("a", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrQueryTooShort))

	var se *domain.SearchError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, domain.ErrKindValidation, se.Kind)

	long := strings.Repeat("x", domain.MaxQueryLength+1)
	_, err = NormalizeQuery(long, nil)
	assert.True(t, errors.Is(err, domain.ErrQueryTooLong))

	// Exactly at the bounds is accepted.
	_, err = NormalizeQuery("ab", nil)
	assert.NoError(t, err)
	_, err = NormalizeQuery(strings.Repeat("x", domain.MaxQueryLength), nil)
	assert.NoError(t, err)
}

func TestNormalizeQueryDropsUnknownAndDisabledSources(t *testing.T) {
	q, err := NormalizeQuery("go", map[domain.SourceType]bool{
		domain.SourceTitles:    true,
		domain.SourceSegments:  false,
		domain.SourceType("x"): true,
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.SourceType{domain.SourceTitles}, q.EnabledSources())
	_, hasUnknown := q.Enabled["x"]
	assert.False(t, hasUnknown)
}

func TestNormalizeQueryIdempotent(t *testing.T) {
	first, err := NormalizeQuery("  distributed tracing ", map[domain.SourceType]bool{
		domain.SourceSegments: true,
		domain.SourceTitles:   false,
	})
	require.NoError(t, err)

	second, err := NormalizeQuery(first.Text, first.Enabled)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestNormalizeQueryNoSourcesIsDisabledNotInvalid(t *testing.T) {
	q, err := NormalizeQuery("go", nil)
	require.NoError(t, err)
	assert.True(t, q.Active())
	assert.False(t, q.Searchable())
}
