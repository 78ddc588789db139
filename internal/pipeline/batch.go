package pipeline

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/labworks/labextract/internal/result"
)

// DefaultWorkers is used when Batch is given a non-positive worker count.
const DefaultWorkers = 4

// Job names one document file and the sample it belongs to.
type Job struct {
	SampleID string
	Path     string
}

// Outcome is the result of one Job. Err is set when the document failed.
type Outcome struct {
	Job      Job
	Document result.Document
	Err      error
}

// Batch processes independent documents concurrently. A failed document
// does not stop the others; outcomes are returned in job order. The
// returned error is non-nil only when ctx was cancelled.
func (p *Processor) Batch(ctx context.Context, jobs []Job, workers int) ([]Outcome, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	outcomes := make([]Outcome, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i] = Outcome{Job: job, Err: err}
				return err
			}
			doc, err := p.processFile(gctx, job)
			outcomes[i] = Outcome{Job: job, Document: doc, Err: err}
			if err != nil {
				p.logger.Warn("document failed", "sample_id", job.SampleID, "path", job.Path, "error", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, ctx.Err()
}

func (p *Processor) processFile(ctx context.Context, job Job) (result.Document, error) {
	f, err := os.Open(job.Path)
	if err != nil {
		return result.Document{}, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	return p.Process(ctx, job.SampleID, f)
}
