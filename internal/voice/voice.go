// ABOUTME: Speech input and output boundaries for the conversation loop
// ABOUTME: Console implementations stand in for real recognizers and synthesizers
package voice

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrClosed is returned by a Listener whose input is exhausted
var ErrClosed = errors.New("listener closed")

// Listener captures one utterance. ok is false when nothing was recognized.
type Listener interface {
	Listen(ctx context.Context) (text string, ok bool, err error)
}

// Speaker voices a reply. Empty text is a no-op.
type Speaker interface {
	Speak(text string, blocking bool) error
}

// ConsoleListener reads one line per utterance
type ConsoleListener struct {
	prompt  string
	out     io.Writer
	lines   chan string
	errs    chan error
	started sync.Once
	in      *bufio.Scanner
}

// NewConsoleListener reads from in and prints prompt to out before each read
func NewConsoleListener(in io.Reader, out io.Writer, prompt string) *ConsoleListener {
	return &ConsoleListener{
		prompt: prompt,
		out:    out,
		lines:  make(chan string),
		errs:   make(chan error, 1),
		in:     bufio.NewScanner(in),
	}
}

// Listen blocks for the next line or until ctx is done
func (l *ConsoleListener) Listen(ctx context.Context) (string, bool, error) {
	l.started.Do(func() { go l.scan() })

	if l.prompt != "" && l.out != nil {
		fmt.Fprint(l.out, l.prompt)
	}

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, open := <-l.lines:
		if !open {
			select {
			case err := <-l.errs:
				return "", false, err
			default:
				return "", false, ErrClosed
			}
		}
		line = strings.TrimSpace(line)
		return line, line != "", nil
	}
}

// scan feeds lines until input ends. It leaks only while the reader blocks.
func (l *ConsoleListener) scan() {
	defer close(l.lines)
	for l.in.Scan() {
		l.lines <- l.in.Text()
	}
	if err := l.in.Err(); err != nil {
		l.errs <- err
	}
}

// ConsoleSpeaker prints replies with a label
type ConsoleSpeaker struct {
	mu    sync.Mutex
	out   io.Writer
	label string
}

// NewConsoleSpeaker writes to out, prefixing each reply with label
func NewConsoleSpeaker(out io.Writer, label string) *ConsoleSpeaker {
	return &ConsoleSpeaker{out: out, label: label}
}

// Speak prints text. Console output is always synchronous so blocking is ignored.
func (s *ConsoleSpeaker) Speak(text string, _ bool) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.out, "%s%s\n", s.label, text)
	return err
}
