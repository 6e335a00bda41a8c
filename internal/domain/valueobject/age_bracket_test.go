package valueobject

import (
	"testing"

	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAgeBracket(t *testing.T) {
	tests := []struct {
		label string
		want  AgeBracket
	}{
		{"0-18", AgeBracket{Label: "0-18", Kind: BracketRange, Min: 0, Max: 18}},
		{" 19 - 23 ", AgeBracket{Label: "19 - 23", Kind: BracketRange, Min: 19, Max: 23}},
		{"59+", AgeBracket{Label: "59+", Kind: BracketOpenMin, Min: 59}},
		{"65", AgeBracket{Label: "65", Kind: BracketExact, Min: 65, Max: 65}},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseAgeBracket(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAgeBracket_Invalid(t *testing.T) {
	for _, label := range []string{"", "abc", "19-", "-5", "x+", "30-20", "18-abc", "1.5", "+30", "+19-+23", "19-+23", "+59+", "1 8"} {
		t.Run(label, func(t *testing.T) {
			_, err := ParseAgeBracket(label)
			require.Error(t, err)
			assert.True(t, apperror.IsInvalidBracketFormat(err))
		})
	}
}

func TestAgeBracket_Contains(t *testing.T) {
	rng, _ := ParseAgeBracket("19-23")
	assert.True(t, rng.Contains(19))
	assert.True(t, rng.Contains(23))
	assert.False(t, rng.Contains(24))

	open, _ := ParseAgeBracket("59+")
	assert.True(t, open.Contains(59))
	assert.True(t, open.Contains(120))
	assert.False(t, open.Contains(58))

	exact, _ := ParseAgeBracket("30")
	assert.True(t, exact.Contains(30))
	assert.False(t, exact.Contains(31))
}

func TestAgeBracket_Overlaps(t *testing.T) {
	a, _ := ParseAgeBracket("0-18")
	b, _ := ParseAgeBracket("18-23")
	c, _ := ParseAgeBracket("24-28")
	d, _ := ParseAgeBracket("25+")
	e, _ := ParseAgeBracket("60")

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
	assert.True(t, c.Overlaps(d))
	assert.True(t, d.Overlaps(e))
	assert.False(t, a.Overlaps(e))
}

func TestNewProposalStatus(t *testing.T) {
	s, err := NewProposalStatus("assinado")
	require.NoError(t, err)
	assert.Equal(t, ProposalStatusSigned, s)

	s, err = NewProposalStatus(" Aprovada ")
	require.NoError(t, err)
	assert.Equal(t, ProposalStatusApproved, s)

	_, err = NewProposalStatus("cancelada")
	assert.True(t, apperror.IsValidation(err))
}
