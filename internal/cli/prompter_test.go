package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"translator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_ReadString20(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      string
		expectedError error
	}{
		{name: "simple", input: "hello\n", expected: "hello"},
		{name: "trims spaces and CRLF", input: "  hello  \r\n", expected: "hello"},
		{name: "exactly 20", input: strings.Repeat("a", 20) + "\n", expected: strings.Repeat("a", 20)},
		{name: "multibyte counts characters", input: strings.Repeat("é", 20) + "\n", expected: strings.Repeat("é", 20)},
		{name: "too long", input: strings.Repeat("a", 21) + "\n", expectedError: domain.ErrInvalidInput},
		{name: "empty", input: "\n", expectedError: domain.ErrInvalidInput},
		{name: "last line without newline", input: "hello", expected: "hello"},
		{name: "no input", input: "", expectedError: io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			result, err := p.ReadString20("Word")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
			assert.Equal(t, "Word (maximum of 20 characters): ", out.String())
		})
	}
}

func TestPrompter_ReadString30(t *testing.T) {
	p := NewPrompter(strings.NewReader(strings.Repeat("b", 30)+"\n"+strings.Repeat("b", 31)+"\n"), io.Discard)

	result, err := p.ReadString30("Translation")
	require.NoError(t, err)
	assert.Len(t, result, 30)

	_, err = p.ReadString30("Translation")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPrompter_ReadChar(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      rune
		expectedError error
	}{
		{name: "single", input: "x\n", expected: 'x'},
		{name: "leading spaces", input: "   7 more\n", expected: '7'},
		{name: "blank", input: "   \n", expectedError: domain.ErrInvalidInput},
		{name: "eof", input: "", expectedError: io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrompter(strings.NewReader(tt.input), io.Discard)

			result, err := p.ReadChar("> ")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{input: "y\n", expected: true},
		{input: "Yes\n", expected: true},
		{input: "n\n", expected: false},
		{input: "anything\n", expected: false},
		{input: "\n", expected: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p := NewPrompter(strings.NewReader(tt.input), io.Discard)

			result, err := p.Confirm("Continue?")

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
