package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"label-renamer/config"
	"label-renamer/internal/relabel/delivery/cli"
	lsRepo "label-renamer/internal/relabel/repository/labelstudio"
	"label-renamer/internal/relabel/usecase"
	"label-renamer/pkg/labelstudio"
	"label-renamer/pkg/log"
)

type rootFlags struct {
	configPath  string
	projectID   int
	label       string
	newLabel    string
	dryRun      bool
	concurrency int
	logLevel    string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "relabel",
		Short: "Rename a label across a Label Studio project and all of its annotations",
		Long: `relabel renames a label in a Label Studio project's labeling config and then
rewrites every annotation that used the old label name.

Without flags it runs interactively: it lists projects, asks for a project ID,
lists that project's labels, asks which label to rename and what the new name is.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path to config.yaml (default: search ./config, ., /etc/relabel)")
	cmd.Flags().IntVarP(&f.projectID, "project", "p", 0, "project ID (skips the project prompt)")
	cmd.Flags().StringVarP(&f.label, "label", "l", "", "label number or name to rename (skips the label prompt)")
	cmd.Flags().StringVarP(&f.newLabel, "new-label", "n", "", "new label name (skips the new label prompt)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "report what would change without patching anything")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "max concurrent annotation updates (overrides relabel.concurrency)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level (overrides logger.level)")

	return cmd
}

func run(cmd *cobra.Command, f *rootFlags) error {
	// 1. Configuration
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if f.concurrency > 0 {
		cfg.Relabel.Concurrency = f.concurrency
	}
	if f.logLevel != "" {
		cfg.Logger.Level = f.logLevel
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.WithRunID(ctx, uuid.NewString())

	logger.Debugf(ctx, "Label Studio URL: %s", cfg.LabelStudio.URL)

	// 3. Label Studio client
	client, err := labelstudio.NewClient(labelstudio.Config{
		BaseURL:           cfg.LabelStudio.URL,
		Token:             cfg.LabelStudio.Token,
		AuthScheme:        cfg.LabelStudio.AuthScheme,
		Timeout:           cfg.LabelStudio.Timeout,
		RequestsPerSecond: cfg.LabelStudio.RequestsPerSecond,
		Burst:             cfg.LabelStudio.Burst,
	})
	if err != nil {
		return err
	}

	// 4. Relabel use case
	uc := usecase.New(logger, lsRepo.New(client, logger), usecase.Config{
		Concurrency:  cfg.Relabel.Concurrency,
		ControlName:  cfg.Relabel.ControlName,
		ResultFields: cfg.Relabel.ResultFields,
	})

	// 5. Run
	out := cmd.OutOrStdout()
	handler := cli.New(logger, uc, cli.NewPrompter(os.Stdin, out), out)
	return handler.Run(ctx, cli.Options{
		ProjectID: f.projectID,
		Label:     f.label,
		NewLabel:  f.newLabel,
		DryRun:    f.dryRun,
	})
}

