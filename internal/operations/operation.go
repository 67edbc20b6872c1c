// Package operations holds the calculator's tool plugins. Every operation
// keeps its domain constraints in a single check function: Validate reports
// it, Execute enforces it.
package operations

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"calcmcp/internal/domain"
	"calcmcp/internal/schema"
)

var errNotFinite = errors.New("result is not a finite number")

type computeFunc func(in schema.Input) (float64, map[string]any, error)

type operation struct {
	name        string
	description string
	schema      schema.Schema
	check       func(in schema.Input) error
	compute     computeFunc
}

func (o *operation) Name() string { return o.name }

func (o *operation) Description() string { return o.description }

func (o *operation) InputSchema() schema.Schema { return o.schema }

func (o *operation) Validate(in schema.Input) bool {
	if o.check == nil {
		return true
	}
	return o.check(in) == nil
}

func (o *operation) Execute(ctx context.Context, in schema.Input) (res domain.OperationResult) {
	defer func() {
		if r := recover(); r != nil {
			res = domain.OperationFailed(o.name, fmt.Errorf("%s failed: %v", o.name, r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return domain.OperationFailed(o.name, domain.Canceled(o.name, err))
	}
	if o.check != nil {
		if err := o.check(in); err != nil {
			return domain.OperationFailed(o.name, err)
		}
	}
	value, metadata, err := o.compute(in)
	if err != nil {
		return domain.OperationFailed(o.name, err)
	}
	return succeed(o.name, value, metadata)
}

// succeed applies the shared result policy: non-finite values fail, finite
// ones go through FormatResult.
func succeed(name string, value float64, metadata map[string]any) domain.OperationResult {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return domain.OperationFailed(name, errNotFinite)
	}
	return domain.OperationSucceeded(name, FormatResult(value), metadata)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
