package pricing

import (
	"testing"
	"time"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brackets(pairs ...any) []entity.PriceBracket {
	var out []entity.PriceBracket
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, entity.PriceBracket{Label: pairs[i].(string), Value: pairs[i+1].(float64)})
	}
	return out
}

func TestResolveRate_RangeAndOpenMin(t *testing.T) {
	bs := brackets("0-18", 100.0, "19+", 200.0)

	for age, want := range map[int]float64{0: 100, 10: 100, 18: 100, 19: 200, 80: 200} {
		got, err := ResolveRate(age, bs)
		require.NoError(t, err)
		assert.Equal(t, want, got, "age %d", age)
	}
}

func TestResolveRate_NoMatchReturnsZero(t *testing.T) {
	got, err := ResolveRate(50, brackets("0-18", 100.0, "19-23", 150.0))
	require.NoError(t, err)
	assert.Zero(t, got)

	got, err = ResolveRate(30, nil)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestResolveRate_ExactAge(t *testing.T) {
	bs := brackets("30", 500.0)

	got, err := ResolveRate(30, bs)
	require.NoError(t, err)
	assert.Equal(t, 500.0, got)

	got, err = ResolveRate(31, bs)
	require.NoError(t, err)
	assert.NotEqual(t, 500.0, got)
	assert.Zero(t, got)
}

func TestResolveRate_FirstMatchWins(t *testing.T) {
	got, err := ResolveRate(20, brackets("19+", 300.0, "19-23", 150.0))
	require.NoError(t, err)
	assert.Equal(t, 300.0, got)
}

func TestResolveRate_InvalidLabel(t *testing.T) {
	_, err := ResolveRate(20, brackets("abc", 10.0, "19+", 300.0))
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidBracketFormat(err))
}

func TestResolveRate_MatchBeforeInvalidLabel(t *testing.T) {
	got, err := ResolveRate(5, brackets("0-18", 100.0, "??", 1.0))
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)
}

func TestResolveRate_NegativeAge(t *testing.T) {
	_, err := ResolveRate(-1, brackets("0-18", 100.0))
	assert.True(t, apperror.IsValidation(err))
}

func TestAgeAt(t *testing.T) {
	birth := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 33, AgeAt(birth, time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 34, AgeAt(birth, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 34, AgeAt(birth, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, AgeAt(birth, time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFindOverlaps(t *testing.T) {
	overlaps := FindOverlaps(brackets("0-18", 1.0, "18-23", 2.0, "24-28", 3.0, "59+", 4.0, "bad", 5.0))
	require.Len(t, overlaps, 1)
	assert.Equal(t, Overlap{First: "0-18", Second: "18-23"}, overlaps[0])

	assert.Empty(t, FindOverlaps(brackets("0-18", 1.0, "19-23", 2.0, "24+", 3.0)))
}
