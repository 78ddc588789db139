package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/labworks/labextract/internal/analytes"
	"github.com/labworks/labextract/internal/api"
	"github.com/labworks/labextract/internal/config"
	"github.com/labworks/labextract/internal/home"
	"github.com/labworks/labextract/internal/pipeline"
	"github.com/labworks/labextract/internal/repair"
	"github.com/labworks/labextract/internal/result"
)

var (
	extractSeqn    string
	extractWorkers int
	extractNoSave  bool
)

// ExtractItem reports one document of a batch extraction.
type ExtractItem struct {
	File     string           `json:"file" yaml:"file"`
	SampleID string           `json:"seqn" yaml:"seqn"`
	Result   *result.Document `json:"result,omitempty" yaml:"result,omitempty"`
	Saved    string           `json:"saved,omitempty" yaml:"saved,omitempty"`
	Error    string           `json:"error,omitempty" yaml:"error,omitempty"`
}

var extractCmd = &cobra.Command{
	Use:   "extract <pdf>...",
	Short: "Extract analyte records from lab report PDFs",
	Long: `Extract runs the full pipeline locally and prints the resulting record.

With a single PDF, --seqn sets the sample identifier. With several PDFs
each sample identifier is taken from the file name without extension
(1001.pdf becomes 1001), and documents are processed concurrently up to
--workers at a time. A document that fails does not stop the others.

Results are written to {home}/results/{seqn}_lab_results.json unless output.persist is
false or --no-save is given.

Examples:
  labextract extract report.pdf --seqn 1001
  labextract extract reports/*.pdf --workers 8 -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		h, mgr, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := mgr.Get()

		proc, err := newProcessor(cfg, logger)
		if err != nil {
			return err
		}

		jobs, err := extractJobs(args, extractSeqn)
		if err != nil {
			return err
		}

		var sink *result.Sink
		if cfg.Output.Persist && !extractNoSave {
			sink = resultsSink(h)
		}

		workers := extractWorkers
		if workers <= 0 {
			workers = cfg.Defaults.MaxWorkers
		}

		if len(jobs) == 1 {
			return extractOne(cmd, proc, sink, jobs[0], logger)
		}

		outcomes, err := proc.Batch(cmd.Context(), jobs, workers)
		if err != nil {
			return err
		}

		items := make([]ExtractItem, len(outcomes))
		failed := 0
		for i, o := range outcomes {
			items[i] = ExtractItem{File: o.Job.Path, SampleID: o.Job.SampleID}
			if o.Err != nil {
				failed++
				items[i].Error = o.Err.Error()
				logger.Warn("extraction failed", "file", o.Job.Path, "error", o.Err)
				continue
			}
			doc := o.Document
			items[i].Result = &doc
			if sink != nil {
				path, err := sink.Write(o.Document)
				if err != nil {
					failed++
					items[i].Error = err.Error()
					continue
				}
				items[i].Saved = path
			}
		}

		if err := api.Output(items); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d documents failed", failed, len(items))
		}
		return nil
	},
}

func extractOne(cmd *cobra.Command, proc *pipeline.Processor, sink *result.Sink, job pipeline.Job, logger *slog.Logger) error {
	outcomes, err := proc.Batch(cmd.Context(), []pipeline.Job{job}, 1)
	if err != nil {
		return err
	}
	o := outcomes[0]
	if o.Err != nil {
		return o.Err
	}
	if sink != nil {
		path, err := sink.Write(o.Document)
		if err != nil {
			return err
		}
		logger.Info("saved result", "seqn", job.SampleID, "path", path)
	}
	return api.Output(o.Document)
}

// extractJobs pairs each file with its sample identifier.
func extractJobs(paths []string, seqn string) ([]pipeline.Job, error) {
	if seqn != "" && len(paths) > 1 {
		return nil, errors.New("--seqn applies to a single PDF; with several, name files after their sample ids")
	}

	jobs := make([]pipeline.Job, 0, len(paths))
	for _, path := range paths {
		id := seqn
		if id == "" {
			id = sampleIDFromPath(path)
		}
		if err := result.ValidateSampleID(id); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		jobs = append(jobs, pipeline.Job{SampleID: id, Path: path})
	}
	return jobs, nil
}

// sampleIDFromPath returns the file name without directory or extension.
func sampleIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// newProcessor builds a processor from the effective configuration.
func newProcessor(cfg *config.Config, logger *slog.Logger) (*pipeline.Processor, error) {
	table, err := analytes.Load(cfg.AnalyteTablePath())
	if err != nil {
		return nil, err
	}
	engine, err := repair.NewEngine(cfg.RepairOptions())
	if err != nil {
		return nil, err
	}
	return pipeline.New(pipeline.Config{
		Table:     table,
		Clusterer: cfg.Clusterer(),
		Engine:    engine,
		Logger:    logger,
	})
}

// resultsSink returns the result sink under the home directory.
func resultsSink(h *home.Dir) *result.Sink {
	return result.NewSink(h.ResultsPath())
}

func init() {
	extractCmd.Flags().StringVar(&extractSeqn, "seqn", "", "Sample identifier (single PDF; default: file name)")
	extractCmd.Flags().IntVar(&extractWorkers, "workers", 0, "Concurrent documents (default: defaults.max_workers)")
	extractCmd.Flags().BoolVar(&extractNoSave, "no-save", false, "Do not write results to the home directory")

	rootCmd.AddCommand(extractCmd)
}
