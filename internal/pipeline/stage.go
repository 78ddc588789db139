package pipeline

import (
	"context"
	"io"

	"github.com/labworks/labextract/internal/analytes"
	"github.com/labworks/labextract/internal/layout"
	"github.com/labworks/labextract/internal/repair"
	"github.com/labworks/labextract/internal/result"
	"github.com/labworks/labextract/internal/words"
)

// Stage names, in the order a document flows through them.
const (
	StageExtract = "extract"
	StageCluster = "cluster"
	StageRepair  = "repair"
	StageResolve = "resolve"
)

// Work carries one document through the stages. Each stage reads what
// its dependencies left behind and fills in its own field.
type Work struct {
	SampleID string
	Doc      io.ReadSeeker

	Pages   []words.Page
	Rows    []layout.Row
	Cells   [][]string
	Records []repair.Record
	Result  result.Document
}

// Stage is one step of document processing.
type Stage interface {
	// Name returns the unique stage identifier.
	Name() string

	// Dependencies returns the names of stages that must run first.
	Dependencies() []string

	// Description returns a short human-readable summary.
	Description() string

	Run(ctx context.Context, w *Work) error
}

type extractStage struct {
	source words.Source
}

func (extractStage) Name() string           { return StageExtract }
func (extractStage) Dependencies() []string { return nil }
func (extractStage) Description() string    { return "Read positioned words from the document" }

func (s extractStage) Run(ctx context.Context, w *Work) error {
	pages, err := s.source.Extract(ctx, w.Doc)
	if err != nil {
		return err
	}
	w.Pages = pages
	return nil
}

type clusterStage struct {
	clusterer *layout.Clusterer
}

func (clusterStage) Name() string           { return StageCluster }
func (clusterStage) Dependencies() []string { return []string{StageExtract} }
func (clusterStage) Description() string    { return "Group words into label/value rows" }

func (s clusterStage) Run(_ context.Context, w *Work) error {
	w.Rows = s.clusterer.Cluster(w.Pages)
	w.Cells = layout.ToCells(w.Rows)
	return nil
}

type repairStage struct {
	engine *repair.Engine
}

func (repairStage) Name() string           { return StageRepair }
func (repairStage) Dependencies() []string { return []string{StageCluster} }
func (repairStage) Description() string    { return "Fold wrapped labels and stray values into records" }

func (s repairStage) Run(_ context.Context, w *Work) error {
	w.Records = s.engine.Run(w.Cells)
	return nil
}

type resolveStage struct {
	table *analytes.Table
}

func (resolveStage) Name() string           { return StageResolve }
func (resolveStage) Dependencies() []string { return []string{StageRepair} }
func (resolveStage) Description() string    { return "Map record labels to analyte codes" }

func (s resolveStage) Run(_ context.Context, w *Work) error {
	w.Result = s.table.Document(w.SampleID, w.Records)
	return nil
}
