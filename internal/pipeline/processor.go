// Package pipeline runs one lab report through word extraction, row
// clustering, row repair and label resolution.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/labworks/labextract/internal/analytes"
	"github.com/labworks/labextract/internal/layout"
	"github.com/labworks/labextract/internal/repair"
	"github.com/labworks/labextract/internal/result"
	"github.com/labworks/labextract/internal/words"
)

// Config holds the collaborators for a Processor.
type Config struct {
	// Table is required.
	Table *analytes.Table

	// Source defaults to a PDFSource.
	Source words.Source

	// Clusterer defaults to layout.NewClusterer().
	Clusterer *layout.Clusterer

	// Engine defaults to a repair engine with default options.
	Engine *repair.Engine

	Logger *slog.Logger
}

// Processor turns documents into results by running the registered
// stages in dependency order. All of its collaborators are read-only after
// construction, so one Processor may serve concurrent calls.
type Processor struct {
	stages []Stage
	engine *repair.Engine
	table  *analytes.Table
	logger *slog.Logger
}

// New creates a Processor, filling in defaults for unset collaborators.
func New(cfg Config) (*Processor, error) {
	if cfg.Table == nil {
		return nil, errors.New("analyte table is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	source := cfg.Source
	if source == nil {
		source = words.NewPDFSource(logger)
	}
	clusterer := cfg.Clusterer
	if clusterer == nil {
		clusterer = layout.NewClusterer()
	}
	engine := cfg.Engine
	if engine == nil {
		var err error
		engine, err = repair.NewEngine(repair.Options{})
		if err != nil {
			return nil, fmt.Errorf("failed to create repair engine: %w", err)
		}
	}

	reg := NewRegistry()
	for _, s := range []Stage{
		extractStage{source: source},
		clusterStage{clusterer: clusterer},
		repairStage{engine: engine},
		resolveStage{table: cfg.Table},
	} {
		if err := reg.Register(s); err != nil {
			return nil, err
		}
	}
	stages, err := reg.Ordered()
	if err != nil {
		return nil, fmt.Errorf("failed to order stages: %w", err)
	}

	return &Processor{
		stages: stages,
		engine: engine,
		table:  cfg.Table,
		logger: logger,
	}, nil
}

// Table returns the analyte table the processor resolves against.
func (p *Processor) Table() *analytes.Table {
	return p.table
}

// Rules returns the active repair rule names in evaluation order.
func (p *Processor) Rules() []string {
	return p.engine.Rules()
}

// StageInfo describes one stage.
type StageInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Stages returns the stages in execution order.
func (p *Processor) Stages() []StageInfo {
	infos := make([]StageInfo, len(p.stages))
	for i, s := range p.stages {
		infos[i] = StageInfo{Name: s.Name(), Description: s.Description()}
	}
	return infos
}

// run executes the stages from first through last inclusive, checking for
// cancellation before each one.
func (p *Processor) run(ctx context.Context, w *Work, first, last string) error {
	from, to := -1, -1
	for i, s := range p.stages {
		switch s.Name() {
		case first:
			from = i
		case last:
			to = i
		}
	}
	if first == last {
		to = from
	}
	if from < 0 {
		return fmt.Errorf("%w: %s", ErrStageNotFound, first)
	}
	if to < 0 {
		return fmt.Errorf("%w: %s", ErrStageNotFound, last)
	}
	if to < from {
		return fmt.Errorf("stage %q runs before %q", last, first)
	}

	for _, s := range p.stages[from : to+1] {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Run(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

// Rows extracts and clusters a document without repairing it.
func (p *Processor) Rows(ctx context.Context, doc io.ReadSeeker) ([]layout.Row, error) {
	w := &Work{Doc: doc}
	if err := p.run(ctx, w, StageExtract, StageCluster); err != nil {
		return nil, err
	}
	p.logger.Debug("clustered document", "pages", len(w.Pages), "rows", len(w.Rows))
	return w.Rows, nil
}

// Process runs the full pipeline on a document. Nothing is persisted; the
// caller decides what to do with the result.
func (p *Processor) Process(ctx context.Context, sampleID string, doc io.ReadSeeker) (result.Document, error) {
	if err := result.ValidateSampleID(sampleID); err != nil {
		return result.Document{}, err
	}

	w := &Work{SampleID: sampleID, Doc: doc}
	if err := p.run(ctx, w, StageExtract, StageResolve); err != nil {
		return result.Document{}, err
	}
	p.logResolved(w)
	return w.Result, nil
}

// Records runs only the repair stage over an intermediate row set.
func (p *Processor) Records(cells [][]string) []repair.Record {
	w := &Work{Cells: cells}
	if err := p.run(context.Background(), w, StageRepair, StageRepair); err != nil {
		p.logger.Error("repair stage failed", "error", err)
		return nil
	}
	return w.Records
}

// ResolveRows repairs an intermediate row set and resolves it against the
// analyte table.
func (p *Processor) ResolveRows(sampleID string, cells [][]string) (result.Document, error) {
	if err := result.ValidateSampleID(sampleID); err != nil {
		return result.Document{}, err
	}

	w := &Work{SampleID: sampleID, Cells: cells}
	if err := p.run(context.Background(), w, StageRepair, StageResolve); err != nil {
		return result.Document{}, err
	}
	p.logResolved(w)
	return w.Result, nil
}

func (p *Processor) logResolved(w *Work) {
	matched := 0
	for _, pair := range w.Result.Pairs {
		if pair.Value != "" {
			matched++
		}
	}
	p.logger.Debug("resolved document",
		"sample_id", w.SampleID,
		"rows", len(w.Cells),
		"records", len(w.Records),
		"matched", matched)
}
