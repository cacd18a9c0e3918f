package handler

import (
	"errors"
	"fmt"
	"testing"

	"translator/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "page_2",
			expected: "page_2",
		},
		{
			name:     "string with whitespace",
			input:    "  page_2  ",
			expected: "page_2",
		},
		{
			name:     "telebot unique prefix",
			input:    "\fpage_2",
			expected: "page_2",
		},
		{
			name:     "string with tab",
			input:    "page\t_2",
			expected: "page_2",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "page\x00_2\x01",
			expected: "page_2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestHandleCallback_Pagination(t *testing.T) {
	h, _ := newTestHandler(t)
	authorize(h, 1)
	for i := 0; i < 12; i++ {
		_, err := h.vocab.AddEntry(fmt.Sprintf("word%02d", i), "t")
		require.NoError(t, err)
	}

	tests := []struct {
		name     string
		unique   string
		data     string
		expected string
	}{
		{name: "raw data", data: "\fpage_2", expected: "page 2 of 3"},
		{name: "unique", unique: "page_3", expected: "page 3 of 3"},
		{name: "out of range is clamped", data: "page_9", expected: "page 3 of 3"},
		{name: "list button", unique: "list", expected: "page 1 of 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testutil.NewFakeCallback(1, tt.unique, tt.data)

			require.NoError(t, h.handleCallback(c))

			require.Len(t, c.Edited, 1)
			assert.Contains(t, c.Edited[0], tt.expected)
			assert.Equal(t, 1, c.Responded)
		})
	}
}

func TestHandleCallback_PageContents(t *testing.T) {
	h, _ := newTestHandler(t)
	authorize(h, 1)
	for i := 0; i < 7; i++ {
		_, err := h.vocab.AddEntry(fmt.Sprintf("word%02d", i), "t")
		require.NoError(t, err)
	}

	c := testutil.NewFakeCallback(1, "", "page_2")
	require.NoError(t, h.handleCallback(c))

	assert.Contains(t, c.Edited[0], "word05")
	assert.Contains(t, c.Edited[0], "word06")
	assert.NotContains(t, c.Edited[0], "word04")

	markup := c.Markups[0]
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 2)
	require.Len(t, markup.InlineKeyboard[0], 1)
	assert.Equal(t, "⬅️", markup.InlineKeyboard[0][0].Text)
}

func TestHandleCallback_EmptyList(t *testing.T) {
	h, _ := newTestHandler(t)
	authorize(h, 1)

	c := testutil.NewFakeCallback(1, "list", "")
	require.NoError(t, h.handleCallback(c))

	require.Len(t, c.Response, 1)
	assert.True(t, c.Response[0].ShowAlert)
	assert.Contains(t, c.Response[0].Text, "No entries are present")
}

func TestHandleCallback_Unhandled(t *testing.T) {
	h, _ := newTestHandler(t)

	c := testutil.NewFakeCallback(1, "", "something")
	require.NoError(t, h.handleCallback(c))

	assert.Empty(t, c.Sent)
	assert.Empty(t, c.Edited)
	assert.Equal(t, 1, c.Responded)
}

func TestHandleCancel(t *testing.T) {
	h, _ := newTestHandler(t)
	authorize(h, 1)
	require.NoError(t, h.handleText(testutil.NewFakeContext(1, "hello")))

	c := testutil.NewFakeCallback(1, "cancel", "")
	require.NoError(t, h.handleCallback(c))

	assert.Equal(t, mainMenuText, c.Last())
	assert.Equal(t, "idle", string(h.GetState(1).State))
}

func TestHandleEditError(t *testing.T) {
	h, _ := newTestHandler(t)

	t.Run("not modified is acknowledged", func(t *testing.T) {
		c := testutil.NewFakeCallback(1, "", "")
		err := h.handleEditError(errors.New("telegram: message is not modified (400)"), c, 1)

		assert.NoError(t, err)
		assert.Equal(t, 1, c.Responded)
	})

	t.Run("other errors are returned", func(t *testing.T) {
		c := testutil.NewFakeCallback(1, "", "")
		editErr := errors.New("telegram: message to edit not found (400)")

		err := h.handleEditError(editErr, c, 1)

		assert.Equal(t, editErr, err)
	})

	t.Run("failed edit falls back to send", func(t *testing.T) {
		authorize(h, 2)
		_, err := h.vocab.AddEntry("fallback", "t")
		require.NoError(t, err)

		c := testutil.NewFakeCallback(2, "list", "")
		c.EditErr = errors.New("telegram: message to edit not found (400)")

		require.NoError(t, h.handleCallback(c))
		require.Len(t, c.Sent, 1)
		assert.Contains(t, c.Sent[0], "fallback")
	})
}
