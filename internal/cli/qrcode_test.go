package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderQrCode(t *testing.T) {
	rendered, err := RenderQrCode([]byte(`{"id_aula":101,"id_aluno":11,"token":"abc"}`))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(rendered, "\n"), "\n")
	require.NotEmpty(t, lines)
	width := len([]rune(lines[0]))
	for _, line := range lines {
		assert.Equal(t, width, len([]rune(line)), "every line is as wide as the code")
		assert.Empty(t, strings.Trim(line, " █▀▄"))
	}
	assert.InDelta(t, width/2, len(lines), 1, "two rows of modules per line")
}

func TestWriteQrPng(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkin.png")
	require.NoError(t, WriteQrPng(path, []byte("payload"), 128))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(data[:4]))
}
