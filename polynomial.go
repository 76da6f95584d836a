package tbls

import (
	"fmt"
)

// Polynomial represents a polynomial over a curve's scalar field, held as an
// ordered coefficient vector [a0, a1, ...] with a0 the constant term. When
// used for secret sharing the constant term is the secret and the vector is
// the dealing mask.
type Polynomial struct {
	curve        Curve
	coefficients []Scalar
}

// NewPolynomial creates a polynomial from an explicit coefficient vector.
// The slice is used as-is; callers who need to keep the mask should copy it.
func NewPolynomial(curve Curve, coefficients []Scalar) *Polynomial {
	return &Polynomial{curve: curve, coefficients: coefficients}
}

// NewRandomPolynomial creates a random polynomial of the given degree with a
// fixed constant term.
func NewRandomPolynomial(curve Curve, degree int, constantTerm Scalar) (*Polynomial, error) {
	if degree < 0 {
		return nil, fmt.Errorf("degree must be non-negative")
	}

	coefficients := make([]Scalar, degree+1)
	// The polynomial owns a copy of the constant term; zeroizing it must not
	// reach back into the caller's secret.
	coefficients[0] = constantTerm.Add(curve.ScalarZero())

	for i := 1; i <= degree; i++ {
		coeff, err := curve.ScalarRandom()
		if err != nil {
			return nil, ErrRandomnessGeneration.WithCause(err).WithDetails("coefficient %d", i)
		}
		coefficients[i] = coeff
	}

	return &Polynomial{curve: curve, coefficients: coefficients}, nil
}

// Evaluate computes the polynomial at x using Horner's method: the
// accumulator starts as the highest-degree coefficient and each step folds in
// the next lower coefficient, costing one multiplication and one addition per
// degree. An empty polynomial evaluates to zero; a constant polynomial to its
// single coefficient.
func (p *Polynomial) Evaluate(x Scalar) Scalar {
	if len(p.coefficients) == 0 {
		return p.curve.ScalarZero()
	}

	// The accumulator starts as a copy so the returned scalar never aliases
	// a coefficient; a constant polynomial would otherwise hand out its own
	// constant term, which Zeroize then destroys under the caller.
	result := p.coefficients[len(p.coefficients)-1].Add(p.curve.ScalarZero())
	for i := len(p.coefficients) - 2; i >= 0; i-- {
		result = result.Mul(x).Add(p.coefficients[i])
	}

	return result
}

// Coefficients returns the coefficient vector, constant term first. The
// returned slice aliases the polynomial's own storage.
func (p *Polynomial) Coefficients() []Scalar {
	return p.coefficients
}

// Degree returns the degree of the polynomial
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Threshold returns the number of shares needed to reconstruct the constant
// term, i.e. degree + 1.
func (p *Polynomial) Threshold() int {
	return len(p.coefficients)
}

// Commit produces Feldman commitments to every coefficient on the given
// curve, constant term first. For pairing use, committing on G2 yields the
// group public key as Commit()[0] and public key shares by evaluating the
// commitment polynomial.
func (p *Polynomial) Commit(curve Curve) []Point {
	commitments := make([]Point, len(p.coefficients))
	base := curve.BasePoint()
	for i, coeff := range p.coefficients {
		commitments[i] = base.Mul(coeff)
	}
	return commitments
}

// Zeroize securely clears the polynomial coefficients
func (p *Polynomial) Zeroize() {
	for _, coeff := range p.coefficients {
		if coeff != nil {
			coeff.Zeroize()
		}
	}
	for i := range p.coefficients {
		p.coefficients[i] = nil
	}
	p.coefficients = nil
}

// evaluateCommitments computes the commitment polynomial at x with Horner's
// method lifted to the group: scalar multiplication replaces multiplication
// and point addition replaces addition.
func evaluateCommitments(curve Curve, commitments []Point, x Scalar) Point {
	if len(commitments) == 0 {
		return curve.PointIdentity()
	}

	result := commitments[len(commitments)-1]
	for i := len(commitments) - 2; i >= 0; i-- {
		result = result.Mul(x).Add(commitments[i])
	}
	return result
}
