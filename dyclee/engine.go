package dyclee

import (
	"fmt"

	"github.com/piratevector/dyclee/core"
	"github.com/piratevector/dyclee/density"
	"github.com/piratevector/dyclee/distance"
	"github.com/piratevector/dyclee/gridindex"
	"github.com/piratevector/dyclee/internal/monitoring"
	"github.com/piratevector/dyclee/snapshot"
)

// Label is a final-cluster label, or Unclassed if the sample's
// absorbing microcluster never joined a final cluster (or was evicted
// before the engine's last density stage).
type Label = int

// Unclassed mirrors core.Unclassed: no final-cluster label.
const Unclassed Label = core.Unclassed

// Engine is the streaming clustering facade: it owns the Context, the
// live Population, the grid index, and the snapshot archive, and drives
// the Distance Stage on every sample and the Density Stage every
// t_global samples (spec.md §4.5) plus once more on Finalize.
type Engine struct {
	ctx     *core.Context
	pop     *core.Population
	grid    *gridindex.Index
	archive *snapshot.Archive

	tGlobal     int64
	samplesSeen int64
	lastT       int64
	haveLastT   bool
	densityRuns int64
	lastResult  density.Result
}

// New constructs an Engine over the given bounding context. t_global
// must be supplied via WithTGlobal before Ingest can be called directly
// (RunDataset can default it from the input length).
func New(phi float64, context core.BoundingBox, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ctx, err := core.NewContext(phi, context, o.ordinal)
	if err != nil {
		return nil, fmt.Errorf("dyclee: %w", err)
	}
	archive, err := snapshot.NewArchive(o.pyramidAlpha, o.pyramidL)
	if err != nil {
		return nil, fmt.Errorf("dyclee: %w", err)
	}

	return &Engine{
		ctx:     ctx,
		pop:     core.NewPopulation(),
		grid:    gridindex.New(),
		archive: archive,
		tGlobal: o.tGlobal,
	}, nil
}

// Ingest assimilates one timestamped sample, triggering a density
// stage (and snapshot capture) every t_global samples.
func (e *Engine) Ingest(sample []float64, t int64) error {
	_, err := e.ingestOne(sample, t)
	return err
}

// ingestOne runs the Distance Stage for one sample and, if this sample
// lands on a t_global boundary, the Density Stage, returning the
// microcluster that absorbed the sample.
func (e *Engine) ingestOne(sample []float64, t int64) (*core.Microcluster, error) {
	if e.tGlobal <= 0 {
		return nil, fmt.Errorf("dyclee: t_global is not set; call WithTGlobal or use RunDataset: %w", core.ErrBadConfig)
	}
	if e.haveLastT && t < e.lastT {
		return nil, fmt.Errorf("dyclee: sample timestamp %d precedes last observed %d: %w", t, e.lastT, core.ErrOutOfOrder)
	}
	e.lastT = t
	e.haveLastT = true

	mc, err := distance.Ingest(e.ctx, e.pop, e.grid, sample, t, e.tGlobal)
	if err != nil {
		return nil, fmt.Errorf("dyclee: %w", err)
	}

	e.samplesSeen++
	if e.samplesSeen%e.tGlobal == 0 {
		e.runDensityStage()
	}
	return mc, nil
}

// RunDataset is the convenience batch entry point: assign t = 0..n-1,
// ingest each row, run a final density stage, and return the final
// label of whichever microcluster absorbed each sample (Unclassed if
// that microcluster was evicted or never joined a final cluster by
// stream end).
func (e *Engine) RunDataset(samples [][]float64) ([]Label, error) {
	if e.tGlobal <= 0 {
		e.tGlobal = int64(len(samples))
	}

	absorbers := make([]int64, len(samples))
	for i, sample := range samples {
		mc, err := e.ingestOne(sample, int64(i))
		if err != nil {
			return nil, err
		}
		absorbers[i] = mc.ID
	}

	if _, err := e.Finalize(); err != nil && err != core.ErrEmptyPopulation {
		return nil, err
	}

	labels := make([]Label, len(samples))
	for i, id := range absorbers {
		if mc, ok := e.pop.Get(id); ok {
			labels[i] = mc.ClassK
		} else {
			labels[i] = Unclassed
		}
	}
	return labels, nil
}

// Finalize runs one last Density Stage pass (e.g. at stream end, even
// if the sample count did not land exactly on a t_global boundary) and
// returns the final label of every currently live microcluster (spec.md
// §6's "final label per live μC"), keyed implicitly by iteration order
// of Live() — Unclassed for any microcluster that is not part of an
// assembled final cluster, including every Low-Density outlier.
func (e *Engine) Finalize() ([]Label, error) {
	if _, err := e.runDensityStage(); err != nil {
		return nil, err
	}
	live := e.pop.Live()
	labels := make([]Label, len(live))
	for i, mc := range live {
		labels[i] = mc.ClassK
	}
	return labels, nil
}

// runDensityStage runs the Density Stage once, captures a snapshot
// tagged with the sample timestamp that triggered it (so the archive
// can be queried by the same clock the caller ingests against — spec.md
// §4.6/S4's "snapshot at t=999" framing), and logs a one-line summary.
func (e *Engine) runDensityStage() (density.Result, error) {
	result, err := density.Run(e.ctx, e.pop)
	if err != nil {
		if err == core.ErrEmptyPopulation {
			return density.Result{}, nil
		}
		return density.Result{}, fmt.Errorf("dyclee: %w", err)
	}

	e.densityRuns++
	e.lastResult = result
	e.archive.Capture(e.lastT, e.pop.Live(), result.Clusters)

	monitoring.Logf("dyclee: density stage #%d at t=%d: %d clusters, mean=%.4f max=%.4f dHi=%.4f dLo=%.4f",
		e.densityRuns, e.lastT, len(result.Clusters), result.MeanDensity, result.MaxDensity, result.DHi, result.DLo)

	return result, nil
}

// LastResult returns the Density Stage result from the most recent
// pass (zero value if none has run yet), for callers that want the
// cluster list without re-deriving it from Active().
func (e *Engine) LastResult() density.Result {
	return e.lastResult
}

// Active returns the current Active (Dense ∪ Semi-Dense) microclusters.
func (e *Engine) Active() []*core.Microcluster {
	return e.pop.Active()
}

// Outliers returns the current Low-Density microclusters.
func (e *Engine) Outliers() []*core.Microcluster {
	return e.pop.Outliers()
}

// Snapshots returns the engine's pyramidal snapshot archive.
func (e *Engine) Snapshots() *snapshot.Archive {
	return e.archive
}

// HyperboxSizes returns the per-dimension microcluster side lengths
// derived from phi and the context bounding box.
func (e *Engine) HyperboxSizes() []float64 {
	out := make([]float64, len(e.ctx.Side))
	copy(out, e.ctx.Side)
	return out
}
