package cli

import (
	"context"
	"io"

	"label-renamer/internal/relabel"
	pkgLog "label-renamer/pkg/log"
)

// Handler is the interface for the command-line delivery handler.
type Handler interface {
	Run(ctx context.Context, opts Options) error
}

// Options pre-answers prompts. Zero values are asked interactively.
type Options struct {
	ProjectID int
	Label     string // label number or exact name
	NewLabel  string
	DryRun    bool
}

// New creates a new command-line delivery handler. Status lines go to out.
func New(l pkgLog.Logger, uc relabel.UseCase, prompter Prompter, out io.Writer) Handler {
	return &handler{
		l:        l,
		uc:       uc,
		prompter: prompter,
		out:      out,
	}
}
