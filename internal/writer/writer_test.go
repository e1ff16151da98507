package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestWrite(t *testing.T) {
	var console bytes.Buffer
	w := New(&console)

	assert.NoError(t, w.Write("", "ignored"))
	assert.Equal(t, 0, console.Len())

	assert.NoError(t, w.Write(Console, "start\n"))
	assert.Equal(t, "start\n", console.String())

	path := filepath.Join(t.TempDir(), "soc.repl")
	assert.NoError(t, w.Write(path, "rom: Memory.MappedMemory @ { sysbus 0x0 }\n"))
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "rom: Memory.MappedMemory @ { sysbus 0x0 }\n", string(data))
}

func TestWriteError(t *testing.T) {
	w := New(&bytes.Buffer{})

	err := w.Write(filepath.Join(t.TempDir(), "missing", "soc.repl"), "start\n")
	assert.ErrorContains(t, err, "writing file")
}
