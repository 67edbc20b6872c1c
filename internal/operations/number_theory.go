package operations

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"calcmcp/internal/domain"
	"calcmcp/internal/schema"
)

const (
	maxPrimeCandidate = 1e15
	maxListedFactors  = 10
	factorSearchLimit = 10000
)

func integersSchema(description string) schema.Schema {
	return schema.New(schema.IntegerList("numbers", description).MinItems(2))
}

func GCD() domain.Operation {
	return &operation{
		name:        "gcd",
		description: "Greatest common divisor of two or more integers",
		schema:      integersSchema("Integers, at least two"),
		check: func(in schema.Input) error {
			for _, v := range in.Ints("numbers") {
				if v != 0 {
					return nil
				}
			}
			return errors.New("at least one number must be non-zero")
		},
		compute: func(in schema.Input) (float64, map[string]any, error) {
			numbers := in.Ints("numbers")
			abs := absolutes(numbers)
			g := new(big.Int)
			for _, v := range abs {
				g.GCD(nil, nil, g, big.NewInt(v))
			}
			return bigFloat(g), map[string]any{
				"count":            len(numbers),
				"absolute_numbers": abs,
				"is_coprime":       g.Cmp(big.NewInt(1)) == 0,
				"notation":         notation("GCD", numbers),
			}, nil
		},
	}
}

func LCM() domain.Operation {
	return &operation{
		name:        "lcm",
		description: "Least common multiple of two or more non-zero integers",
		schema:      integersSchema("Non-zero integers, at least two"),
		check: func(in schema.Input) error {
			for _, v := range in.Ints("numbers") {
				if v == 0 {
					return errors.New("lcm is undefined when any number is zero")
				}
			}
			return nil
		},
		compute: func(in schema.Input) (float64, map[string]any, error) {
			numbers := in.Ints("numbers")
			abs := absolutes(numbers)
			l := big.NewInt(1)
			g := new(big.Int)
			for _, v := range abs {
				b := big.NewInt(v)
				g.GCD(nil, nil, l, b)
				l.Mul(l, b)
				l.Quo(l, g)
			}
			return bigFloat(l), map[string]any{
				"count":            len(numbers),
				"absolute_numbers": abs,
				"notation":         notation("LCM", numbers),
			}, nil
		},
	}
}

func PrimeCheck() domain.Operation {
	return &operation{
		name:        "prime_check",
		description: "Report whether an integer greater than 1 is prime: 1 when prime, 0 otherwise",
		schema:      schema.New(schema.Integer("number", "Integer greater than 1, at most 10^15").Above(1)),
		check: func(in schema.Input) error {
			if in.Int("number") > maxPrimeCandidate {
				return errors.New("number is too large, the maximum supported value is 10^15")
			}
			return nil
		},
		compute: func(in schema.Input) (float64, map[string]any, error) {
			n := in.Int("number")
			prime := isPrime(n)
			factors := []int64{}
			if !prime {
				factors = smallFactors(n)
			}
			result := 0.0
			if prime {
				result = 1
			}
			return result, map[string]any{
				"number":       n,
				"is_prime":     prime,
				"factors":      factors,
				"factor_count": len(factors),
			}, nil
		},
	}
}

func Modulo() domain.Operation {
	return &operation{
		name:        "modulo",
		description: "Floored modulo: the remainder of dividend / divisor takes the sign of the divisor",
		schema: schema.New(
			schema.Number("dividend", "Dividend"),
			schema.Number("divisor", "Divisor, must not be zero"),
		),
		check: func(in schema.Input) error {
			if in.Float("divisor") == 0 {
				return errZeroDivisor
			}
			return nil
		},
		compute: func(in schema.Input) (float64, map[string]any, error) {
			a, b := in.Float("dividend"), in.Float("divisor")
			quotient := math.Floor(a / b)
			remainder := math.Mod(a, b)
			if remainder != 0 && (remainder < 0) != (b < 0) {
				remainder += b
			}
			return remainder, map[string]any{
				"quotient":  FormatResult(quotient),
				"remainder": FormatResult(remainder),
				"equation":  fmt.Sprintf("%s = %s × %s + %s", num(a), num(quotient), num(b), num(FormatResult(remainder))),
			}, nil
		},
	}
}

func absolutes(values []int64) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		if v < 0 {
			v = -v
		}
		out[i] = v
	}
	return out
}

func notation(fn string, values []int64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return fmt.Sprintf("%s(%s)", fn, strings.Join(parts, ", "))
}

func isPrime(n int64) bool {
	if n <= 1 {
		return false
	}
	if n <= 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := int64(5); i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// smallFactors lists up to maxListedFactors divisors of n below
// min(sqrt(n)+1, factorSearchLimit).
func smallFactors(n int64) []int64 {
	limit := min(int64(math.Sqrt(float64(n)))+1, factorSearchLimit)
	factors := make([]int64, 0, maxListedFactors)
	for i := int64(2); i < limit && len(factors) < maxListedFactors; i++ {
		if n%i == 0 {
			factors = append(factors, i)
		}
	}
	return factors
}
