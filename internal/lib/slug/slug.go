// Package slug содержит вспомогательную функцию для формирования URL-слагов
// из названий фильмов и жанров.
package slug

import (
	"strings"
	"unicode"
)

// Make приводит строку к нижнему регистру и заменяет последовательности
// небуквенно-цифровых символов одним дефисом. Ведущие и завершающие
// дефисы отбрасываются.
func Make(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash && b.Len() > 0 {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
