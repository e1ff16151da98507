// Package loader handles loading of the input files.
package loader

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/retroenv/litexrenode/internal/options"
)

// Firmware contains the details of a firmware binary that the run script needs.
type Firmware struct {
	Size  uint64
	CRC32 uint32
}

// Loader handles loading files from disk.
type Loader struct{}

// New creates a new file loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the address map and, if set, the firmware binary of the options.
func (l *Loader) Load(opts options.Program) (io.Reader, Firmware, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, Firmware{}, fmt.Errorf("reading address map %s: %w", opts.Input, err)
	}

	var fw Firmware
	if opts.FirmwareBinary != "" {
		fw, err = l.LoadFirmware(opts.FirmwareBinary)
		if err != nil {
			return nil, Firmware{}, err
		}
	}

	return bytes.NewReader(data), fw, nil
}

// LoadFirmware returns size and IEEE CRC32 checksum of a firmware binary.
func (l *Loader) LoadFirmware(path string) (Firmware, error) {
	file, err := os.Open(path)
	if err != nil {
		return Firmware{}, fmt.Errorf("opening firmware %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	hash := crc32.NewIEEE()
	size, err := io.Copy(hash, file)
	if err != nil {
		return Firmware{}, fmt.Errorf("reading firmware %s: %w", path, err)
	}

	return Firmware{
		Size:  uint64(size),
		CRC32: hash.Sum32(),
	}, nil
}
