package tbls

import (
	"testing"
)

func TestEvaluateEmptyPolynomial(t *testing.T) {
	for name, curve := range testCurves() {
		t.Run(name, func(t *testing.T) {
			poly := NewPolynomial(curve, nil)

			x, err := curve.ScalarRandom()
			if err != nil {
				t.Fatalf("ScalarRandom failed: %v", err)
			}
			if !poly.Evaluate(x).IsZero() {
				t.Fatal("empty polynomial did not evaluate to zero")
			}
		})
	}
}

func TestEvaluateConstantPolynomial(t *testing.T) {
	curve := NewBLS12381G1Curve()

	c, err := curve.ScalarRandom()
	if err != nil {
		t.Fatalf("ScalarRandom failed: %v", err)
	}
	poly := NewPolynomial(curve, []Scalar{c})

	x, err := curve.ScalarRandom()
	if err != nil {
		t.Fatalf("ScalarRandom failed: %v", err)
	}
	if !poly.Evaluate(x).Equal(c) {
		t.Fatal("constant polynomial did not evaluate to its coefficient")
	}
	if !poly.Evaluate(curve.ScalarZero()).Equal(c) {
		t.Fatal("constant polynomial at zero did not equal its coefficient")
	}
}

// TestEvaluateMatchesDirectExpansion checks Horner's method against the
// direct power-sum expansion a0 + a1*x + a2*x^2 + ...
func TestEvaluateMatchesDirectExpansion(t *testing.T) {
	for name, curve := range testCurves() {
		t.Run(name, func(t *testing.T) {
			const degree = 5
			coefficients := make([]Scalar, degree+1)
			for i := range coefficients {
				c, err := curve.ScalarRandom()
				if err != nil {
					t.Fatalf("ScalarRandom failed: %v", err)
				}
				coefficients[i] = c
			}
			poly := NewPolynomial(curve, coefficients)

			x, err := curve.ScalarRandom()
			if err != nil {
				t.Fatalf("ScalarRandom failed: %v", err)
			}

			expected := curve.ScalarZero()
			power := curve.ScalarOne()
			for _, c := range coefficients {
				expected = expected.Add(c.Mul(power))
				power = power.Mul(x)
			}

			if !poly.Evaluate(x).Equal(expected) {
				t.Fatal("Horner evaluation disagrees with direct expansion")
			}
		})
	}
}

func TestEvaluateAtZeroReturnsConstantTerm(t *testing.T) {
	curve := NewEd25519Curve()

	secret, err := curve.ScalarRandom()
	if err != nil {
		t.Fatalf("ScalarRandom failed: %v", err)
	}
	poly, err := NewRandomPolynomial(curve, 4, secret)
	if err != nil {
		t.Fatalf("NewRandomPolynomial failed: %v", err)
	}

	if !poly.Evaluate(curve.ScalarZero()).Equal(secret) {
		t.Fatal("polynomial at zero did not return the constant term")
	}
}

func TestNewRandomPolynomial(t *testing.T) {
	curve := NewBLS12381G1Curve()

	secret, err := curve.ScalarRandom()
	if err != nil {
		t.Fatalf("ScalarRandom failed: %v", err)
	}

	poly, err := NewRandomPolynomial(curve, 3, secret)
	if err != nil {
		t.Fatalf("NewRandomPolynomial failed: %v", err)
	}
	if poly.Degree() != 3 {
		t.Fatalf("expected degree 3, got %d", poly.Degree())
	}
	if poly.Threshold() != 4 {
		t.Fatalf("expected threshold 4, got %d", poly.Threshold())
	}

	if _, err := NewRandomPolynomial(curve, -1, secret); err == nil {
		t.Fatal("expected error for negative degree")
	}
}

func TestCommitMatchesEvaluation(t *testing.T) {
	curve := NewBLS12381G2Curve()

	secret, err := curve.ScalarRandom()
	if err != nil {
		t.Fatalf("ScalarRandom failed: %v", err)
	}
	poly, err := NewRandomPolynomial(curve, 2, secret)
	if err != nil {
		t.Fatalf("NewRandomPolynomial failed: %v", err)
	}

	commitments := poly.Commit(curve)
	if len(commitments) != 3 {
		t.Fatalf("expected 3 commitments, got %d", len(commitments))
	}
	if !commitments[0].Equal(curve.BasePoint().Mul(secret)) {
		t.Fatal("constant-term commitment does not match the secret")
	}

	// The commitment polynomial at x must equal base * F(x)
	x, err := curve.ScalarRandom()
	if err != nil {
		t.Fatalf("ScalarRandom failed: %v", err)
	}
	lifted := evaluateCommitments(curve, commitments, x)
	if !lifted.Equal(curve.BasePoint().Mul(poly.Evaluate(x))) {
		t.Fatal("commitment evaluation disagrees with lifted polynomial evaluation")
	}
}
