// Package pipeline holds the data model, error taxonomy and stage contract
// shared by the export and import flows.
package pipeline

import (
	"context"
)

// Stage is one step of an export or import: normalize, encode or extract.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}

// ProgressFunc receives a completion fraction in [0, 1].
type ProgressFunc func(fraction float64)
