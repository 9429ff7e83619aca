// Package sources — keywords.go подсчитывает вхождения отслеживаемых
// ключевых слов в текстах сообщений.
//
// Совпадение засчитывается ТОЛЬКО по целому слову: "clustering" не
// увеличивает счётчик "cluster", а "#cluster" — увеличивает, потому что
// «#» не является словесным символом и образует границу слова.
package sources

import (
	"strings"
	"unicode"
)

// KeywordMatchSummary — по каждому отслеживаемому слову число вхождений
// во всех просканированных текстах, плюс общий итог.
type KeywordMatchSummary struct {
	PerKeyword map[string]int
	Total      int
}

// ScanKeywords ищет каждое ключевое слово во всех текстах.
// Сравнение регистронезависимое, совпадение — только по целому слову.
func ScanKeywords(texts []string, keywords []string) KeywordMatchSummary {
	summary := KeywordMatchSummary{PerKeyword: make(map[string]int, len(keywords))}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		count := 0
		for _, text := range texts {
			count += countWholeWord(strings.ToLower(text), kw)
		}
		summary.PerKeyword[kw] = count
		summary.Total += count
	}
	return summary
}

// countWholeWord считает вхождения word в text с проверкой границ слова
// с обеих сторон. Граница — начало/конец строки или не-словесный символ.
func countWholeWord(text, word string) int {
	if word == "" {
		return 0
	}
	count := 0
	offset := 0
	for {
		idx := strings.Index(text[offset:], word)
		if idx < 0 {
			return count
		}
		start := offset + idx
		end := start + len(word)

		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			count++
		}
		// Продолжаем со следующего символа после начала совпадения,
		// чтобы не пропустить пересекающиеся кандидаты
		offset = start + 1
	}
}

// isWordChar определяет словесный символ: буква или цифра.
// Всё остальное («#», «@», пробел, пунктуация) — граница слова.
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func boundaryBefore(text string, start int) bool {
	if start == 0 {
		return true
	}
	runes := []rune(text[:start])
	return !isWordChar(runes[len(runes)-1])
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	runes := []rune(text[end:])
	return !isWordChar(runes[0])
}
