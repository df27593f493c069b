package vellum

import (
	"fmt"
	"time"
)

// debugStats holds per-pass render metrics.
// Only logged when the scene is in debug mode or Config.Debug is set.
type debugStats struct {
	layers      int
	shapes      int
	hooks       int
	beforeHooks int
	renderTime  time.Duration
}

// debugLog reports render pass stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debugEnabled() {
		return
	}
	Logger().Debug("render pass",
		"scene", s.id,
		"layers", stats.layers,
		"shapes", stats.shapes,
		"hooks", stats.hooks,
		"before", stats.beforeHooks,
		"elapsed", stats.renderTime,
	)
}

// debugMaxGroupDepth is the nesting depth above which debug mode warns.
const debugMaxGroupDepth = 32

// debugCheckDepth warns if shape sits deeper than debugMaxGroupDepth.
func debugCheckDepth(shape Shape) {
	depth := 0
	for p := shape; p != nil; p = p.base().parent {
		depth++
	}
	if depth > debugMaxGroupDepth {
		Logger().Warn(fmt.Sprintf("group depth %d exceeds %d", depth, debugMaxGroupDepth),
			"shape", shape.ID(), "kind", shape.Kind())
	}
}
