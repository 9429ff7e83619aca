package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestScanKeywordsWholeWord проверяет, что совпадение засчитывается
// только по целому слову: подстрока внутри другого слова не считается.
func TestScanKeywordsWholeWord(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  int
	}{
		{"точное слово", []string{"join the cluster today"}, 1},
		{"подстрока не считается", []string{"we are clustering data"}, 0},
		{"хэштег — граница слова", []string{"check #cluster now"}, 1},
		{"упоминание и пунктуация", []string{"cluster, cluster! and cluster."}, 3},
		{"начало и конец строки", []string{"cluster"}, 1},
		{"регистр не важен", []string{"CLUSTER Cluster cluster"}, 3},
		{"слово с цифрой после — не граница", []string{"cluster42"}, 0},
		{"пустой текст", []string{""}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := ScanKeywords(tt.texts, []string{"cluster"})
			assert.Equal(t, tt.want, summary.PerKeyword["cluster"])
			assert.Equal(t, tt.want, summary.Total)
		})
	}
}

// TestScanKeywordsSeveral проверяет подсчёт нескольких слов и общий итог.
func TestScanKeywordsSeveral(t *testing.T) {
	texts := []string{
		"airdrop soon! #airdrop",
		"defi is the future of defi",
		"no keywords here",
	}
	summary := ScanKeywords(texts, []string{"airdrop", "defi", "nft"})

	assert.Equal(t, 2, summary.PerKeyword["airdrop"])
	assert.Equal(t, 2, summary.PerKeyword["defi"])
	assert.Equal(t, 0, summary.PerKeyword["nft"])
	assert.Equal(t, 4, summary.Total)
}

// TestScanKeywordsIdempotent: повторный вызов с теми же данными
// даёт тот же результат.
func TestScanKeywordsIdempotent(t *testing.T) {
	texts := []string{"cluster #cluster clustering"}
	first := ScanKeywords(texts, []string{"cluster"})
	second := ScanKeywords(texts, []string{"cluster"})
	assert.Equal(t, first, second)
}
