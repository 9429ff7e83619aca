package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseCommand проверяет разбор команд с разными префиксами.
func TestParseCommand(t *testing.T) {
	p := NewCommandParser()

	tests := []struct {
		name      string
		text      string
		wantCmd   string
		wantArgs  []string
		isCommand bool
	}{
		{"слэш", "/score", "score", nil, true},
		{"восклицательный", "!score", "score", nil, true},
		{"точка", ".score", "score", nil, true},
		{"регистр", "/SCORE", "score", nil, true},
		{"аргументы", "/connect 0xabc def", "connect", []string{"0xabc", "def"}, true},
		{"упоминание бота", "/score@score_bot", "score", nil, true},
		{"пробелы вокруг", "  /score  ", "score", nil, true},
		{"не команда", "просто текст", "", nil, false},
		{"один префикс", "/", "", nil, false},
		{"пустая строка", "", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, ok := p.ParseCommand(tt.text)
			assert.Equal(t, tt.isCommand, ok)
			assert.Equal(t, tt.wantCmd, cmd)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
