package diagnostics

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/FuelLabs/sway-core-go/internal/sid"
)

// Tracer records stage-boundary timing for one Pipeline.Run invocation
// (SPEC_FULL §10.3): one logger per unit, fields {unit, stage, duration_ms},
// Debug per stage boundary and Info for whole-unit completion. A nil
// *Tracer (via NewTracer(nil, ...)) is silent, so unit tests never see log
// noise unless they opt in.
type Tracer struct {
	log  *logrus.Entry
	unit sid.UnitID
}

// NewTracer builds a Tracer for one compilation unit. logger may be nil, in
// which case every method is a no-op.
func NewTracer(logger *logrus.Logger, unit sid.UnitID) *Tracer {
	if logger == nil {
		return &Tracer{unit: unit}
	}
	return &Tracer{log: logger.WithField("unit", string(unit)), unit: unit}
}

// StageTimer starts timing one pipeline stage (e.g. "S1", "S2"). Call the
// returned func when the stage finishes to emit its Debug-level record.
func (t *Tracer) StageTimer(stage string) func() {
	if t == nil || t.log == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		t.log.WithFields(logrus.Fields{
			"stage":       stage,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("stage complete")
	}
}

// Done logs whole-unit completion at Info level.
func (t *Tracer) Done(totalDuration time.Duration, ok bool) {
	if t == nil || t.log == nil {
		return
	}
	t.log.WithFields(logrus.Fields{
		"duration_ms": totalDuration.Milliseconds(),
		"ok":          ok,
	}).Info("unit complete")
}
