package vt220

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(s string) []Sequence {
	var seqs []Sequence
	p := NewParser(func(seq Sequence) {
		seqs = append(seqs, seq)
	})
	for _, r := range s {
		p.Advance(r)
	}
	return seqs
}

func TestParserPrintAndExecute(t *testing.T) {
	seqs := parseString("a\rb")
	require.Len(t, seqs, 3)
	assert.Equal(t, Print('a'), seqs[0])
	assert.Equal(t, Execute('\r'), seqs[1])
	assert.Equal(t, Print('b'), seqs[2])
}

func TestParserCSI(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected CSI
	}{
		{
			name:     "no parameters",
			input:    "\x1b[H",
			expected: CSI{Final: 'H'},
		},
		{
			name:     "two parameters",
			input:    "\x1b[5;10H",
			expected: CSI{Final: 'H', Parameters: []int{5, 10}},
		},
		{
			name:     "empty parameter defaults to zero",
			input:    "\x1b[;5H",
			expected: CSI{Final: 'H', Parameters: []int{0, 5}},
		},
		{
			name:     "private marker",
			input:    "\x1b[?1049h",
			expected: CSI{Private: '?', Final: 'h', Parameters: []int{1049}},
		},
		{
			name:     "secondary DA",
			input:    "\x1b[>c",
			expected: CSI{Private: '>', Final: 'c'},
		},
		{
			name:     "intermediate",
			input:    "\x1b[!p",
			expected: CSI{Intermediate: []rune{'!'}, Final: 'p'},
		},
		{
			name:     "parameter overflow clamps",
			input:    "\x1b[99999999d",
			expected: CSI{Final: 'd', Parameters: []int{65535}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			seqs := parseString(test.input)
			require.Len(t, seqs, 1)
			assert.Equal(t, test.expected, seqs[0])
		})
	}
}

func TestParserControlInsideCSI(t *testing.T) {
	// A C0 control mid-sequence executes immediately without losing the
	// collected parameters.
	seqs := parseString("\x1b[2\n5A")
	require.Len(t, seqs, 2)
	assert.Equal(t, Execute('\n'), seqs[0])
	assert.Equal(t, CSI{Final: 'A', Parameters: []int{25}}, seqs[1])
}

func TestParserCancelAbortsSequence(t *testing.T) {
	seqs := parseString("\x1b[12\x18A")
	require.Len(t, seqs, 1)
	assert.Equal(t, Print('A'), seqs[0])
}

func TestParserEscRestartsSequence(t *testing.T) {
	seqs := parseString("\x1b[12\x1b[3C")
	require.Len(t, seqs, 1)
	assert.Equal(t, CSI{Final: 'C', Parameters: []int{3}}, seqs[0])
}

func TestParserColonParameterIgnoresSequence(t *testing.T) {
	seqs := parseString("\x1b[4:3mx")
	require.Len(t, seqs, 1)
	assert.Equal(t, Print('x'), seqs[0])
}

func TestParserMisplacedPrivateMarkerIgnored(t *testing.T) {
	seqs := parseString("\x1b[1;?25hx")
	require.Len(t, seqs, 1)
	assert.Equal(t, Print('x'), seqs[0])
}

func TestParserESC(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ESC
	}{
		{
			name:     "index",
			input:    "\x1bD",
			expected: ESC{Final: 'D'},
		},
		{
			name:     "charset designation",
			input:    "\x1b(0",
			expected: ESC{Intermediate: []rune{'('}, Final: '0'},
		},
		{
			name:     "alignment test",
			input:    "\x1b#8",
			expected: ESC{Intermediate: []rune{'#'}, Final: '8'},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			seqs := parseString(test.input)
			require.Len(t, seqs, 1)
			assert.Equal(t, test.expected, seqs[0])
		})
	}
}

func TestParserOSC(t *testing.T) {
	t.Run("BEL terminated", func(t *testing.T) {
		seqs := parseString("\x1b]2;hello\x07")
		require.Len(t, seqs, 1)
		assert.Equal(t, OSC{Payload: []rune("2;hello")}, seqs[0])
	})
	t.Run("ST terminated", func(t *testing.T) {
		seqs := parseString("\x1b]0;world\x1b\\")
		require.Len(t, seqs, 1)
		assert.Equal(t, OSC{Payload: []rune("0;world")}, seqs[0])
	})
	t.Run("aborted by new escape", func(t *testing.T) {
		seqs := parseString("\x1b]2;half\x1b[5A")
		require.Len(t, seqs, 1)
		assert.Equal(t, CSI{Final: 'A', Parameters: []int{5}}, seqs[0])
	})
}

func TestParserDCS(t *testing.T) {
	seqs := parseString("\x1bP1;2qab\x1b\\")
	require.Len(t, seqs, 4)
	assert.Equal(t, DCS{Final: 'q', Parameters: []int{1, 2}}, seqs[0])
	assert.Equal(t, DCSData('a'), seqs[1])
	assert.Equal(t, DCSData('b'), seqs[2])
	assert.Equal(t, DCSEndOfData{}, seqs[3])
}

func TestParserEmittedSequencesAreIndependent(t *testing.T) {
	var seqs []CSI
	p := NewParser(func(seq Sequence) {
		if csi, ok := seq.(CSI); ok {
			seqs = append(seqs, csi)
		}
	})
	for _, r := range "\x1b[1;2H\x1b[3;4H" {
		p.Advance(r)
	}
	require.Len(t, seqs, 2)
	assert.Equal(t, []int{1, 2}, seqs[0].Parameters)
	assert.Equal(t, []int{3, 4}, seqs[1].Parameters)
}
