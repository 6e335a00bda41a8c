// Package pricing выбирает цену по возрасту клиента из faixas etárias таблицы.
package pricing

import (
	"time"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

// ResolveRate возвращает цену первой faixa, в которую попадает age.
// Порядок brackets значим. Если ничего не подошло, возвращается 0 без ошибки.
// Битая метка прерывает поиск ошибкой InvalidBracketFormat.
func ResolveRate(age int, brackets []entity.PriceBracket) (float64, error) {
	if age < 0 {
		return 0, apperror.Validation("idade não pode ser negativa")
	}
	for _, b := range brackets {
		parsed, err := b.Parse()
		if err != nil {
			return 0, err
		}
		if parsed.Contains(age) {
			return b.Value, nil
		}
	}
	return 0, nil
}

// AgeAt — число полных лет на момент now.
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

type Overlap struct {
	First  string
	Second string
}

// FindOverlaps перечисляет пересекающиеся пары faixas. Битые метки пропускаются.
func FindOverlaps(brackets []entity.PriceBracket) []Overlap {
	parsed := make([]valueobject.AgeBracket, 0, len(brackets))
	for _, b := range brackets {
		p, err := b.Parse()
		if err != nil {
			continue
		}
		parsed = append(parsed, p)
	}

	var overlaps []Overlap
	for i := 0; i < len(parsed); i++ {
		for j := i + 1; j < len(parsed); j++ {
			if parsed[i].Overlaps(parsed[j]) {
				overlaps = append(overlaps, Overlap{First: parsed[i].Label, Second: parsed[j].Label})
			}
		}
	}
	return overlaps
}
