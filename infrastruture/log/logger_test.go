package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("LEVEL-SERVICE", color.FgCyan, &buf)
	require.NoError(t, err)

	l.Info("generated level")
	l.Warning("cache miss")
	l.Error("mongo down")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	for i, level := range []string{"INFO", "WARNING", "ERROR"} {
		plain := color.ClearCode(lines[i])
		assert.True(t, strings.HasPrefix(plain, "[LEVEL-SERVICE] ["+level+"]"), plain)
	}
	assert.Contains(t, lines[2], "mongo down")

	_, err = New("APP", color.FgGreen, nil)
	assert.ErrorIs(t, err, ErrNilWriter)
}
