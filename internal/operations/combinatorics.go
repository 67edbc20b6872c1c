package operations

import (
	"errors"
	"fmt"
	"math/big"

	"calcmcp/internal/domain"
	"calcmcp/internal/schema"
)

// maxFactorialInput is the largest n whose factorial fits in a float64.
const maxFactorialInput = 170

func overflowError(n int64) error {
	return fmt.Errorf("n=%d is too large: %d! would overflow (maximum is %d)", n, n, maxFactorialInput)
}

func Factorial() domain.Operation {
	return &operation{
		name:        "factorial",
		description: fmt.Sprintf("Factorial n! for a non-negative integer n up to %d", maxFactorialInput),
		schema:      schema.New(schema.Integer("n", "Non-negative integer").Min(0)),
		check: func(in schema.Input) error {
			if n := in.Int("n"); n > maxFactorialInput {
				return overflowError(n)
			}
			return nil
		},
		compute: func(in schema.Input) (float64, map[string]any, error) {
			n := in.Int("n")
			exact := new(big.Int).MulRange(1, n)
			return bigFloat(exact), map[string]any{
				"n":              n,
				"formula":        fmt.Sprintf("%d!", n),
				"result_integer": exact.String(),
				"digit_count":    len(exact.String()),
			}, nil
		},
	}
}

func selectionSchema() schema.Schema {
	return schema.New(
		schema.Integer("n", "Total number of items").Min(0),
		schema.Integer("r", "Number of items chosen").Min(0),
	)
}

func checkSelection(in schema.Input) error {
	n, r := in.Int("n"), in.Int("r")
	if r > n {
		return errors.New("r must not be greater than n")
	}
	if n > maxFactorialInput {
		return overflowError(n)
	}
	return nil
}

func Permutation() domain.Operation {
	return &operation{
		name:        "permutation",
		description: "Permutations P(n,r) = n!/(n-r)!",
		schema:      selectionSchema(),
		check:       checkSelection,
		compute: func(in schema.Input) (float64, map[string]any, error) {
			n, r := in.Int("n"), in.Int("r")
			exact := new(big.Int).MulRange(n-r+1, n)
			return bigFloat(exact), map[string]any{
				"n":              n,
				"r":              r,
				"formula":        fmt.Sprintf("P(%d,%d) = %d!/(%d-%d)!", n, r, n, n, r),
				"result_integer": exact.String(),
			}, nil
		},
	}
}

func Combination() domain.Operation {
	return &operation{
		name:        "combination",
		description: "Combinations C(n,r) = n!/(r!(n-r)!)",
		schema:      selectionSchema(),
		check:       checkSelection,
		compute: func(in schema.Input) (float64, map[string]any, error) {
			n, r := in.Int("n"), in.Int("r")
			exact := new(big.Int).Binomial(n, r)
			return bigFloat(exact), map[string]any{
				"n":              n,
				"r":              r,
				"formula":        fmt.Sprintf("C(%d,%d) = %d!/(%d!×(%d-%d)!)", n, r, n, r, n, r),
				"symmetry":       fmt.Sprintf("C(%d,%d) = C(%d,%d)", n, r, n, n-r),
				"result_integer": exact.String(),
			}, nil
		},
	}
}

func bigFloat(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}
