package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aperture/labour-hours/internal/labour/domain"
	"github.com/aperture/labour-hours/internal/labour/filestore"
	"github.com/spf13/cobra"
)

func newParseCommand() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Summarize a clock document into a labour hours file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if input == "" {
				input = a.cfg.Labour.InputPath
			}
			if output == "" {
				output = a.cfg.Labour.OutputPath
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := a.connect(ctx); err != nil {
				return err
			}

			run, err := parseFile(ctx, a.labourService(), input, output)
			if err != nil {
				return err
			}

			a.log.Info().
				Str("run_id", run.ID).
				Str("input", input).
				Str("output", output).
				Int("employees", len(run.Employees)).
				Int("entries", run.Stats.Entries).
				Int("skipped", run.Stats.Skipped()).
				Msg("labour hours written")

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "clock document to read (default labour.input_path)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "summary file to write (default labour.output_path)")

	return cmd
}

// batchRunner summarizes a document and commits the result separately
type batchRunner interface {
	Summarize(ctx context.Context, doc *domain.Document) (*domain.Run, error)
	Commit(ctx context.Context, run *domain.Run) error
}

// parseFile writes the summaries of input to output. The run is only
// stored and announced once the output file is in place.
func parseFile(ctx context.Context, svc batchRunner, input, output string) (*domain.Run, error) {
	doc, err := filestore.ReadDocument(input)
	if err != nil {
		return nil, err
	}

	run, err := svc.Summarize(ctx, doc)
	if err != nil {
		return nil, err
	}

	if err := filestore.WriteSummaries(output, run.Employees); err != nil {
		return nil, err
	}

	if err := svc.Commit(ctx, run); err != nil {
		return nil, err
	}

	return run, nil
}
