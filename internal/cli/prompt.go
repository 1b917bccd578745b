package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrPromptCancelled is returned when the user interrupts a prompt.
var ErrPromptCancelled = errors.New("prompt cancelled")

// Prompter asks the user for input.
type Prompter interface {
	ReadLine(prompt string) (string, error)
	// ReadPassword reads without echoing the input.
	ReadPassword(prompt string) (string, error)
}

// TerminalPrompter prompts on the controlling terminal using readline.
type TerminalPrompter struct{}

func (TerminalPrompter) newInstance(prompt string) (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 prompt,
		InterruptPrompt:        "^C",
		HistoryLimit:           -1,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	return rl, nil
}

func promptError(err error) error {
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return ErrPromptCancelled
	}
	return err
}

// ReadLine reads one line of visible input.
func (p TerminalPrompter) ReadLine(prompt string) (string, error) {
	rl, err := p.newInstance(prompt)
	if err != nil {
		return "", err
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		return "", promptError(err)
	}
	return strings.TrimSpace(line), nil
}

// ReadPassword reads one line without echo.
func (p TerminalPrompter) ReadPassword(prompt string) (string, error) {
	rl, err := p.newInstance("")
	if err != nil {
		return "", err
	}
	defer rl.Close()

	secret, err := rl.ReadPassword(prompt)
	if err != nil {
		return "", promptError(err)
	}
	return string(secret), nil
}

// ReaderPrompter answers prompts from a reader, one line per prompt. It
// backs --password-stdin and non-interactive use.
type ReaderPrompter struct {
	r *bufio.Reader
}

// NewReaderPrompter creates a ReaderPrompter reading from r.
func NewReaderPrompter(r io.Reader) *ReaderPrompter {
	return &ReaderPrompter{r: bufio.NewReader(r)}
}

func (p *ReaderPrompter) next() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrPromptCancelled
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadLine returns the next line with surrounding space removed.
func (p *ReaderPrompter) ReadLine(string) (string, error) {
	line, err := p.next()
	return strings.TrimSpace(line), err
}

// ReadPassword returns the next line as is, minus the line ending.
func (p *ReaderPrompter) ReadPassword(string) (string, error) {
	return p.next()
}
