package loader

import (
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/litexrenode/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoad(t *testing.T) {
	input := writeFile(t, "csr.csv", []byte("csr_base,uart,0xe0001000,,\n"))
	firmware := []byte{0x13, 0x00, 0x00, 0x00, 0x6f, 0x00, 0x00, 0x00}
	firmwarePath := writeFile(t, "firmware.bin", firmware)

	l := New()
	opts := options.Program{Parameters: options.Parameters{Input: input, FirmwareBinary: firmwarePath}}

	reader, fw, err := l.Load(opts)
	assert.NoError(t, err)

	data, err := io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Equal(t, "csr_base,uart,0xe0001000,,\n", string(data))
	assert.Equal(t, uint64(len(firmware)), fw.Size)
	assert.Equal(t, crc32.ChecksumIEEE(firmware), fw.CRC32)
}

func TestLoadWithoutFirmware(t *testing.T) {
	input := writeFile(t, "csr.csv", []byte("constant,a,1,,\n"))

	_, fw, err := New().Load(options.Program{Parameters: options.Parameters{Input: input}})
	assert.NoError(t, err)
	assert.Equal(t, Firmware{}, fw)
}

func TestLoadErrors(t *testing.T) {
	l := New()
	dir := t.TempDir()

	_, _, err := l.Load(options.Program{Parameters: options.Parameters{Input: filepath.Join(dir, "missing.csv")}})
	assert.ErrorContains(t, err, "reading address map")

	input := writeFile(t, "csr.csv", []byte("constant,a,1,,\n"))
	_, _, err = l.Load(options.Program{Parameters: options.Parameters{
		Input:          input,
		FirmwareBinary: filepath.Join(dir, "missing.bin"),
	}})
	assert.ErrorContains(t, err, "opening firmware")
}
