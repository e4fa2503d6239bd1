package relabel

import "errors"

// Domain-specific errors for the relabel package.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNoProjects      = errors.New("no projects found")
	ErrProjectNotFound = errors.New("project not found")
	ErrNoLabels        = errors.New("no labels found in project")
	ErrRemote          = errors.New("label studio request failed")
)
