package game

import "time"

// EngineOptions are the per-engine search limits and clock the command
// builder and clock policy read from.
type EngineOptions struct {
	Nodes     int64 // node limit, 0 = unset
	Depth     int   // depth limit, 0 = unset
	MoveTime  time.Duration
	Time      time.Duration // base time per control
	Increment time.Duration
	MovesToGo int // 0 = unset (no periodic reset)
}

// Clocked reports whether this engine is playing under a wall-clock budget
// (movetime, or time/increment), as opposed to depth/nodes-only.
func (eo EngineOptions) Clocked() bool {
	return eo.MoveTime > 0 || eo.Time > 0 || eo.Increment > 0
}

// DrawAdjudication configures the draw-by-score adjudication rule.
type DrawAdjudication struct {
	PlyCount int // consecutive plies with |score| <= Score, per side
	Score    int // centipawn threshold
	MoveNum  int // minimum full-move number before adjudication may fire
}

// Enabled reports whether draw adjudication is configured at all.
func (d DrawAdjudication) Enabled() bool { return d.PlyCount > 0 }

// ResignAdjudication configures the resignation adjudication rule.
type ResignAdjudication struct {
	Count   int // consecutive low scores required, per engine
	Score   int // centipawn threshold (engine resigns if score <= -Score)
	MoveNum int // minimum full-move number before resignation may fire
}

// Enabled reports whether resign adjudication is configured at all.
func (r ResignAdjudication) Enabled() bool { return r.Count > 0 }

// SampleOptions configures training-sample collection during play.
type SampleOptions struct {
	Freq    float64 // base probability a ply is sampled, before Decay
	Decay   float64 // exponential decay applied by Rule50 since reset
	Resolve bool    // sample the PV-resolved position instead of pos[ply]
}

// Options bundles the options shared by one game, outside of the two
// engines' own EngineOptions.
type Options struct {
	Draw   DrawAdjudication
	Resign ResignAdjudication
	Sample SampleOptions
}
