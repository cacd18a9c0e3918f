package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"translator/internal/domain"
)

// Prompter reads bounded answers to prompts, one line each
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading from in and printing prompts to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ReadLine prints prompt and returns the next line without its line ending.
// io.EOF is returned only when no more input is left.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadString20 reads a non-empty answer of at most 20 characters
func (p *Prompter) ReadString20(prompt string) (string, error) {
	return p.readBounded(prompt, domain.MaxWordLength)
}

// ReadString30 reads a non-empty answer of at most 30 characters
func (p *Prompter) ReadString30(prompt string) (string, error) {
	return p.readBounded(prompt, domain.MaxTranslationLength)
}

func (p *Prompter) readBounded(prompt string, maxLength int) (string, error) {
	line, err := p.ReadLine(fmt.Sprintf("%s (maximum of %d characters): ", prompt, maxLength))
	if err != nil {
		return "", err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("%w: input is empty", domain.ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(line); n > maxLength {
		return "", fmt.Errorf("%w: input is %d characters long, maximum is %d", domain.ErrInvalidInput, n, maxLength)
	}
	return line, nil
}

// ReadChar returns the first non-space character of the answer
func (p *Prompter) ReadChar(prompt string) (rune, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return 0, err
	}

	for _, r := range line {
		if !unicode.IsSpace(r) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: no character given", domain.ErrInvalidInput)
}

// Confirm asks a yes/no question. Only y or Y counts as yes.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	r, err := p.ReadChar(prompt + " ([y]es / [ANY] no): ")
	if errors.Is(err, domain.ErrInvalidInput) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return unicode.ToLower(r) == 'y', nil
}
