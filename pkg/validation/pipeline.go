package validation

import "tabular-hq/ganymede/pkg/frame"

// Pipeline is an ordered sequence of validators with one execution policy.
// It is constructed fresh per validation call by the builder, run, and
// discarded; running the same pipeline twice on an unchanged table yields
// identical records since validators hold no mutable state.
type Pipeline struct {
	validators []Validator
	lazy       bool
	maxErrors  int
}

// NewPipeline creates an empty pipeline. In lazy mode every validator runs
// and records accumulate up to maxErrors; in eager mode execution stops at
// the first validator that reports anything.
func NewPipeline(lazy bool, maxErrors int) *Pipeline {
	if maxErrors < 1 {
		maxErrors = 1
	}
	return &Pipeline{lazy: lazy, maxErrors: maxErrors}
}

// Add appends a validator. Insertion order is execution and report order.
func (p *Pipeline) Add(v Validator) {
	p.validators = append(p.validators, v)
}

// Lazy reports the execution policy.
func (p *Pipeline) Lazy() bool { return p.lazy }

// Len returns the number of validators.
func (p *Pipeline) Len() int { return len(p.validators) }

// Validators returns the ordered validator sequence.
func (p *Pipeline) Validators() []Validator { return p.validators }

// Run executes the pipeline against the table. A nil result means the table
// satisfied every constraint.
//
// Eager mode returns the first failing validator's full record set. Lazy
// mode concatenates records across all validators in insertion order,
// truncating at the cap at record granularity; validators past the cap are
// still executed but their surplus records are discarded.
func (p *Pipeline) Run(df *frame.DataFrame) []*ErrorRecord {
	var all []*ErrorRecord

	for _, v := range p.validators {
		records := v.Validate(df)
		if len(records) == 0 {
			continue
		}
		if !p.lazy {
			return records
		}
		for _, rec := range records {
			if len(all) < p.maxErrors {
				all = append(all, rec)
			}
		}
	}

	return all
}

// RunError runs the pipeline and wraps any records in a ValidationError.
func (p *Pipeline) RunError(df *frame.DataFrame) error {
	return AsError(p.Run(df))
}
