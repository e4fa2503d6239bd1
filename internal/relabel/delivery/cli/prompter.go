package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Prompter asks the operator a single free-text question.
type Prompter interface {
	Ask(ctx context.Context, title string) (string, error)
}

type huhPrompter struct {
	in  io.Reader
	out io.Writer

	// lines is set when in is not a terminal. It is shared by every Ask so
	// that piped answers are consumed one line at a time.
	lines *bufio.Reader
}

// NewPrompter returns a Prompter backed by huh forms. When in is not a
// terminal it reads one answer per line instead.
func NewPrompter(in *os.File, out io.Writer) Prompter {
	p := &huhPrompter{in: in, out: out}
	fd := in.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		p.lines = bufio.NewReader(in)
	}
	return p
}

func (p *huhPrompter) Ask(ctx context.Context, title string) (string, error) {
	if p.lines != nil {
		return p.readLine(ctx, title)
	}

	var answer string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&answer),
		),
	).
		WithInput(p.in).
		WithOutput(p.out).
		WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("prompt %q: %w", title, err)
	}
	return strings.TrimSpace(answer), nil
}

func (p *huhPrompter) readLine(ctx context.Context, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprintf(p.out, "%s ", title)
	line, err := p.lines.ReadString('\n')
	fmt.Fprintln(p.out)
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("prompt %q: %w", title, err)
	}
	return strings.TrimSpace(line), nil
}
