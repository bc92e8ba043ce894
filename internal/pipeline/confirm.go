package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Confirmer decides whether a destructive invocation may proceed.
type Confirmer interface {
	Confirm(summary string, force bool) bool
}

// PromptConfirmer asks on out and reads the answer from in.
type PromptConfirmer struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewPromptConfirmer returns a confirmer reading answers from in.
func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{in: bufio.NewReader(in), out: out}
}

func (p *PromptConfirmer) Confirm(summary string, force bool) bool {
	if force {
		return true
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.out, summary)
	fmt.Fprint(p.out, "Continue? [y/N]: ")

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// AutoConfirmer answers every prompt with Answer, used for non-interactive
// runs and tests. Prompts counts how many times it was asked.
type AutoConfirmer struct {
	Answer  bool
	Prompts int
}

func (a *AutoConfirmer) Confirm(summary string, force bool) bool {
	if force {
		return true
	}
	a.Prompts++
	return a.Answer
}
