// Package pipeline provides the core generation pipeline for
// AutoCrate: resolve → layout → serialize.
//
// Both the CLI and the HTTP API drive the same Runner, so behavior is
// identical across entry points. A run accepts one immutable input set
// and produces one expression value set; there is no shared mutable
// state between runs, and a single Runner is safe for concurrent use.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Spec:   crateSpec,
//	    Policy: policy.Default(),
//	    Output: "crate.exp",
//	})
package pipeline

import (
	"time"

	"github.com/autocrate/autocrate/pkg/errors"
	"github.com/autocrate/autocrate/pkg/layout"
	"github.com/autocrate/autocrate/pkg/policy"
	"github.com/autocrate/autocrate/pkg/spec"
)

// DefaultCacheTTL bounds how long a rendered expression set stays in
// the cache. Generation is cheap; the TTL mostly limits disk growth.
const DefaultCacheTTL = 30 * 24 * time.Hour

// Options configures one pipeline run.
type Options struct {
	// Spec is the validated crate input. Required.
	Spec *spec.CrateSpec

	// Policy is the stock policy for the run. Defaults to
	// policy.Default() when nil.
	Policy *policy.StockPolicy

	// Output is the expressions file path. Empty skips the file write
	// and leaves the rendered bytes on the Result only.
	Output string

	// NoCache bypasses the result cache for this run.
	NoCache bool
}

// validate checks options and fills defaults.
func (o *Options) validate() error {
	if o.Spec == nil {
		return errors.New(errors.ErrCodeInvalidSpec, "no crate spec provided")
	}
	if err := o.Spec.Validate(); err != nil {
		return err
	}
	if o.Policy == nil {
		o.Policy = policy.Default()
	}
	return o.Policy.Validate()
}

// Stats records per-stage timings for one run.
type Stats struct {
	LayoutTime    time.Duration
	SerializeTime time.Duration
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Layout is the computed crate layout. Nil on a cache hit, where
	// only the rendered bytes are reconstructed.
	Layout *layout.CrateLayout

	// Data is the rendered expressions file.
	Data []byte

	// Entries is the number of value entries in the set (zero on a
	// cache hit).
	Entries int

	CacheHit bool
	Stats    Stats
}
