package usecase

import (
	"label-renamer/internal/relabel/repository"
	pkgLog "label-renamer/pkg/log"
)

const (
	DefaultConcurrency = 8
	DefaultControlName = "label"
)

// DefaultResultFields are the annotation value fields inspected for labels.
var DefaultResultFields = []string{"rectanglelabels"}

// Config tunes the relabel use case.
type Config struct {
	Concurrency  int      // Max annotation updates in flight
	ControlName  string   // parsed_label_config key holding the label list
	ResultFields []string // value.<field> entries rewritten in annotation results
}

type implUseCase struct {
	l            pkgLog.Logger
	repo         repository.LabelStudioRepository
	concurrency  int
	controlName  string
	resultFields []string
}

// New creates a new relabel UseCase instance.
func New(l pkgLog.Logger, repo repository.LabelStudioRepository, cfg Config) *implUseCase {
	uc := &implUseCase{
		l:            l,
		repo:         repo,
		concurrency:  cfg.Concurrency,
		controlName:  cfg.ControlName,
		resultFields: cfg.ResultFields,
	}
	if uc.concurrency < 1 {
		uc.concurrency = DefaultConcurrency
	}
	if uc.controlName == "" {
		uc.controlName = DefaultControlName
	}
	if len(uc.resultFields) == 0 {
		uc.resultFields = DefaultResultFields
	}
	return uc
}
