// Package quiz runs the safety quiz: a fixed bank of multiple-choice
// questions walked one at a time.
package quiz

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrEmptyBank is returned when a bank has no questions.
	ErrEmptyBank = errors.New("quiz: bank has no questions")

	// ErrInvalidQuestion is returned for questions without a prompt, with
	// fewer than two options, or without a correct option.
	ErrInvalidQuestion = errors.New("quiz: invalid question")
)

//go:embed default_bank.toml
var defaultBank string

// Option is one answer button.
type Option struct {
	Text    string `toml:"text" json:"text"`
	Correct bool   `toml:"correct" json:"-"`
}

// Question is one quiz page.
type Question struct {
	Prompt  string   `toml:"prompt" json:"prompt"`
	Options []Option `toml:"options" json:"options"`
}

// Bank is an ordered list of questions.
type Bank struct {
	Questions []Question `toml:"questions"`
}

// DefaultBank returns the three questions shipped with the page.
func DefaultBank() *Bank {
	b, err := DecodeBank(strings.NewReader(defaultBank))
	if err != nil {
		panic(fmt.Sprintf("quiz: embedded bank is broken: %v", err))
	}
	return b
}

// LoadBank reads a TOML bank from path.
func LoadBank(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("quiz: load bank: %w", err)
	}
	defer f.Close()

	b, err := DecodeBank(f)
	if err != nil {
		return nil, fmt.Errorf("quiz: load bank %s: %w", path, err)
	}
	return b, nil
}

// DecodeBank parses and validates a TOML bank.
func DecodeBank(r io.Reader) (*Bank, error) {
	var b Bank
	if _, err := toml.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("quiz: parse bank: %w", err)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Encode writes the bank as TOML.
func (b *Bank) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(b)
}

// Validate checks that the bank can be played.
func (b *Bank) Validate() error {
	if len(b.Questions) == 0 {
		return ErrEmptyBank
	}

	for i, q := range b.Questions {
		if err := q.validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

func (q Question) validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: missing prompt", ErrInvalidQuestion)
	}

	if len(q.Options) < 2 {
		return fmt.Errorf("%w: needs at least two options", ErrInvalidQuestion)
	}

	for _, o := range q.Options {
		if o.Correct {
			return nil
		}
	}
	return fmt.Errorf("%w: no correct option", ErrInvalidQuestion)
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.Questions)
}
