package addrmap

import (
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

const sampleMap = `#--------------------------------------------------------------------------------
# Auto-generated by LiteX
#--------------------------------------------------------------------------------
csr_base,uart,0xe0001800,,
csr_register,uart_rxtx,0xe0001800,1,rw
constant,uart_interrupt,2,,
constant,config_cpu_type,VEXRISCV,,

memory_region,rom,0x00000000,32768,cached
memory_region,main_ram,0x40000000,33554432,cached
`

func TestParse(t *testing.T) {
	logger := log.NewTestLogger(t)

	rows, err := Parse(logger, strings.NewReader(sampleMap))
	assert.NoError(t, err)
	assert.Len(t, rows, 6)

	assert.Equal(t, Row{Kind: CSRBase, Name: "uart", Address: 0xe0001800, Line: 4}, rows[0])
	assert.Equal(t, Row{Kind: CSRRegister, Name: "uart_rxtx", Address: 0xe0001800, Size: 1, Access: "rw", Line: 5}, rows[1])
	assert.Equal(t, Row{Kind: Constant, Name: "uart_interrupt", Value: "2", Line: 6}, rows[2])
	assert.Equal(t, "VEXRISCV", rows[3].Value)
	assert.Equal(t, Row{Kind: MemoryRegion, Name: "rom", Size: 32768, Type: "cached", Line: 9}, rows[4])
	assert.Equal(t, uint64(0x40000000), rows[5].Address)
	assert.Equal(t, uint64(0x02000000), rows[5].Size)
}

func TestParseIdempotent(t *testing.T) {
	logger := log.NewTestLogger(t)

	first, err := Parse(logger, strings.NewReader(sampleMap))
	assert.NoError(t, err)
	second, err := Parse(logger, strings.NewReader(sampleMap))
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseSkipsUnknownKinds(t *testing.T) {
	logger := log.NewTestLogger(t)
	input := "csr_base,uart,0xe0001800,,\n" +
		"future_kind,something,1,2,3\n" +
		"future_kind,a\"b,1,,\n" +
		"future_kind,\"open,1\n" +
		"constant,foo,1,,\n"

	rows, err := Parse(logger, strings.NewReader(input))
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "uart", rows[0].Name)
	assert.Equal(t, "foo", rows[1].Name)
	assert.Equal(t, 5, rows[1].Line)
}

func TestParseShortRows(t *testing.T) {
	logger := log.NewTestLogger(t)

	rows, err := Parse(logger, strings.NewReader("csr_base,ctrl,0x82000000\nmemory_region,sram,0x10000000,8192\n"))
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, uint64(0x82000000), rows[0].Address)
	assert.Equal(t, "", rows[1].Type)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantKind Kind
		contains string
	}{
		{
			name:     "too few fields",
			input:    "memory_region,rom,0x0\n",
			wantLine: 1,
			wantKind: MemoryRegion,
			contains: "expected 4 to 5 fields",
		},
		{
			name:     "too many fields",
			input:    "constant,a,1,,\ncsr_base,uart,0x1000,,,extra\n",
			wantLine: 2,
			wantKind: CSRBase,
			contains: "got 6",
		},
		{
			name:     "invalid address",
			input:    "csr_base,uart,0xzz00,,\n",
			wantLine: 1,
			wantKind: CSRBase,
			contains: "invalid address '0xzz00'",
		},
		{
			name:     "invalid size",
			input:    "csr_register,uart_rxtx,0xe0001800,one,rw\n",
			wantLine: 1,
			wantKind: CSRRegister,
			contains: "invalid size 'one'",
		},
		{
			name:     "unbalanced quote",
			input:    "constant,config_x,\"abc,,\ncsr_base,uart,0xe0001800,,\n",
			wantLine: 1,
			wantKind: Constant,
			contains: "unbalanced quote",
		},
		{
			name:     "missing name",
			input:    "csr_base,,0xe0001800,,\n",
			wantLine: 1,
			wantKind: CSRBase,
			contains: "missing name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := log.NewTestLogger(t)

			rows, err := Parse(logger, strings.NewReader(tt.input))
			assert.Error(t, err)
			assert.Equal(t, 0, len(rows))
			assert.ErrorContains(t, err, tt.contains)

			var rowErr *MalformedRowError
			assert.True(t, errors.As(err, &rowErr))
			assert.Equal(t, tt.wantLine, rowErr.Line)
			assert.Equal(t, tt.wantKind, rowErr.Kind)
		})
	}
}

func TestParseQuotedFields(t *testing.T) {
	logger := log.NewTestLogger(t)
	input := "constant,config_identifier,\"LiteX SoC, 2024\",,\n" +
		"constant,config_name,a\"b,,\n"

	rows, err := Parse(logger, strings.NewReader(input))
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "LiteX SoC, 2024", rows[0].Value)
	assert.Equal(t, `a"b`, rows[1].Value)
	assert.Equal(t, 2, rows[1].Line)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{input: "0x40000000", want: 0x40000000},
		{input: "0XFF", want: 0xff},
		{input: "32768", want: 32768},
		{input: "010", want: 10},
		{input: " 7 ", want: 7},
		{input: "0x", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNumber(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
