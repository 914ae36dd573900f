// ABOUTME: Tests for console speech boundaries
// ABOUTME: Uses in-memory readers and buffers
package voice

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleListener_ReadsLines(t *testing.T) {
	var out bytes.Buffer
	l := NewConsoleListener(strings.NewReader("привет\n   \nнайди котиков\n"), &out, "> ")
	ctx := context.Background()

	text, ok, err := l.Listen(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "привет", text)

	text, ok, err = l.Listen(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "blank line is an unrecognized utterance")
	assert.Empty(t, text)

	text, ok, err = l.Listen(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "найди котиков", text)

	_, _, err = l.Listen(ctx)
	assert.ErrorIs(t, err, ErrClosed)

	assert.Equal(t, strings.Repeat("> ", 4), out.String())
}

func TestConsoleListener_ContextCancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	l := NewConsoleListener(r, nil, "")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, ok, err := l.Listen(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConsoleSpeaker(t *testing.T) {
	var out bytes.Buffer
	s := NewConsoleSpeaker(&out, "Вегра: ")

	require.NoError(t, s.Speak("", true))
	require.NoError(t, s.Speak("   ", false))
	assert.Empty(t, out.String())

	require.NoError(t, s.Speak("Сейчас 09:05.", true))
	assert.Equal(t, "Вегра: Сейчас 09:05.\n", out.String())
}
