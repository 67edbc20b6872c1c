package operations

import "calcmcp/internal/domain"

// Catalog returns the operation constructors in registration order.
func Catalog() []domain.OperationFactory {
	return []domain.OperationFactory{
		Add,
		Subtract,
		Multiply,
		Divide,
		Square,
		Cube,
		SquareRoot,
		NthRoot,
		Power,
		Absolute,
		Average,
		Median,
		Variance,
		StandardDeviation,
		Factorial,
		Permutation,
		Combination,
		GCD,
		LCM,
		PrimeCheck,
		Logarithm,
		Modulo,
		Percentage,
		SimpleInterest,
		CompoundInterest,
		Discount,
		Sine,
		Cosine,
		Tangent,
	}
}
