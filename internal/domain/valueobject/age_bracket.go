package valueobject

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

type AgeBracketKind int

const (
	BracketRange AgeBracketKind = iota
	BracketOpenMin
	BracketExact
)

// AgeBracket — разобранная метка faixa etária: "19-23", "59+" или "65".
type AgeBracket struct {
	Label string
	Kind  AgeBracketKind
	Min   int
	// Max не используется для BracketOpenMin.
	Max int
}

// ParseAgeBracket разбирает метку. Порядок проверок важен: сначала "-",
// затем суффикс "+", иначе точный возраст.
func ParseAgeBracket(label string) (AgeBracket, error) {
	raw := strings.TrimSpace(label)
	if raw == "" {
		return AgeBracket{}, invalidBracket(label)
	}

	if strings.Contains(raw, "-") {
		parts := strings.SplitN(raw, "-", 2)
		minAge, err := parseAge(parts[0])
		if err != nil {
			return AgeBracket{}, invalidBracket(label)
		}
		maxAge, err := parseAge(parts[1])
		if err != nil {
			return AgeBracket{}, invalidBracket(label)
		}
		if minAge > maxAge {
			return AgeBracket{}, invalidBracket(label)
		}
		return AgeBracket{Label: raw, Kind: BracketRange, Min: minAge, Max: maxAge}, nil
	}

	if strings.HasSuffix(raw, "+") {
		minAge, err := parseAge(strings.TrimSuffix(raw, "+"))
		if err != nil {
			return AgeBracket{}, invalidBracket(label)
		}
		return AgeBracket{Label: raw, Kind: BracketOpenMin, Min: minAge}, nil
	}

	exact, err := parseAge(raw)
	if err != nil {
		return AgeBracket{}, invalidBracket(label)
	}
	return AgeBracket{Label: raw, Kind: BracketExact, Min: exact, Max: exact}, nil
}

func (b AgeBracket) Contains(age int) bool {
	switch b.Kind {
	case BracketOpenMin:
		return age >= b.Min
	default:
		return age >= b.Min && age <= b.Max
	}
}

// Overlaps сообщает, пересекаются ли две faixas хотя бы в одном возрасте.
func (b AgeBracket) Overlaps(other AgeBracket) bool {
	if b.Kind == BracketOpenMin && other.Kind == BracketOpenMin {
		return true
	}
	if b.Kind == BracketOpenMin {
		return other.Max >= b.Min
	}
	if other.Kind == BracketOpenMin {
		return b.Max >= other.Min
	}
	return b.Min <= other.Max && other.Min <= b.Max
}

// parseAge: только цифры, знак не допускается.
func parseAge(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("idade vazia")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("idade inválida: %q", s)
		}
	}
	return strconv.Atoi(s)
}

func invalidBracket(label string) error {
	return apperror.New(apperror.ErrCodeInvalidBracketFormat,
		fmt.Sprintf("faixa etária inválida: %q", label))
}
