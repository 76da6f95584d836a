package tbls

import (
	"errors"
	"testing"
)

// testCurves returns every supported curve for cross-curve tests
func testCurves() map[string]Curve {
	return map[string]Curve{
		"secp256k1":   NewSecp256k1Curve(),
		"ed25519":     NewEd25519Curve(),
		"bls12381-g1": NewBLS12381G1Curve(),
		"bls12381-g2": NewBLS12381G2Curve(),
	}
}

func TestNewCurve(t *testing.T) {
	for _, curveType := range []CurveType{Secp256k1, Ed25519, BLS12381G1, BLS12381G2} {
		curve, err := NewCurve(curveType)
		if err != nil {
			t.Fatalf("NewCurve(%s) failed: %v", curveType, err)
		}
		if curve.Name() != string(curveType) {
			t.Fatalf("NewCurve(%s) returned curve named %s", curveType, curve.Name())
		}
	}

	if _, err := NewCurve("p-256"); err == nil {
		t.Fatal("expected error for unsupported curve type")
	}
}

func TestScalarFieldArithmetic(t *testing.T) {
	for name, curve := range testCurves() {
		t.Run(name, func(t *testing.T) {
			a, err := curve.ScalarRandom()
			if err != nil {
				t.Fatalf("ScalarRandom failed: %v", err)
			}
			b, err := curve.ScalarRandom()
			if err != nil {
				t.Fatalf("ScalarRandom failed: %v", err)
			}

			// a + b - b == a
			if !a.Add(b).Sub(b).Equal(a) {
				t.Fatal("a + b - b != a")
			}

			// a - a == 0
			if !a.Sub(a).IsZero() {
				t.Fatal("a - a is not zero")
			}

			// a * 1 == a
			if !a.Mul(curve.ScalarOne()).Equal(a) {
				t.Fatal("a * 1 != a")
			}

			// a * b * b^-1 == a
			if b.IsZero() {
				t.Skip("drew the zero scalar")
			}
			bInv, err := b.Invert()
			if err != nil {
				t.Fatalf("Invert failed: %v", err)
			}
			if !a.Mul(b).Mul(bInv).Equal(a) {
				t.Fatal("a * b * b^-1 != a")
			}

			// a + (-a) == 0
			if !a.Add(a.Negate()).IsZero() {
				t.Fatal("a + (-a) is not zero")
			}
		})
	}
}

func TestScalarInvertZero(t *testing.T) {
	for name, curve := range testCurves() {
		t.Run(name, func(t *testing.T) {
			if _, err := curve.ScalarZero().Invert(); !errors.Is(err, ErrScalarZero) {
				t.Fatalf("expected ErrScalarZero, got %v", err)
			}
		})
	}
}

func TestScalarBytesRoundTrip(t *testing.T) {
	for name, curve := range testCurves() {
		t.Run(name, func(t *testing.T) {
			a, err := curve.ScalarRandom()
			if err != nil {
				t.Fatalf("ScalarRandom failed: %v", err)
			}

			data := a.Bytes()
			if len(data) != curve.ScalarSize() {
				t.Fatalf("scalar encodes to %d bytes, ScalarSize is %d", len(data), curve.ScalarSize())
			}

			back, err := curve.ScalarFromBytes(data)
			if err != nil {
				t.Fatalf("ScalarFromBytes failed: %v", err)
			}
			if !back.Equal(a) {
				t.Fatal("scalar does not round-trip through bytes")
			}

			if _, err := curve.ScalarFromBytes(data[:len(data)-1]); err == nil {
				t.Fatal("expected error for truncated scalar encoding")
			}
		})
	}
}

func TestPointGroupArithmetic(t *testing.T) {
	for name, curve := range testCurves() {
		t.Run(name, func(t *testing.T) {
			g := curve.BasePoint()
			two := curve.ScalarOne().Add(curve.ScalarOne())

			// g + g == 2g
			if !g.Add(g).Equal(g.Mul(two)) {
				t.Fatal("g + g != 2g")
			}

			// g - g == identity
			if !g.Sub(g).IsIdentity() {
				t.Fatal("g - g is not the identity")
			}

			// g + identity == g
			if !g.Add(curve.PointIdentity()).Equal(g) {
				t.Fatal("g + identity != g")
			}

			// g * 0 == identity
			if !g.Mul(curve.ScalarZero()).IsIdentity() {
				t.Fatal("g * 0 is not the identity")
			}

			// g + (-g) == identity
			if !g.Add(g.Negate()).IsIdentity() {
				t.Fatal("g + (-g) is not the identity")
			}

			// scalar action distributes: (a+b)g == ag + bg
			a, _ := curve.ScalarRandom()
			b, _ := curve.ScalarRandom()
			if !g.Mul(a.Add(b)).Equal(g.Mul(a).Add(g.Mul(b))) {
				t.Fatal("(a+b)g != ag + bg")
			}

			if !g.IsOnCurve() {
				t.Fatal("base point reported off-curve")
			}
		})
	}
}

func TestPointBytesRoundTrip(t *testing.T) {
	for name, curve := range testCurves() {
		t.Run(name, func(t *testing.T) {
			a, err := curve.ScalarRandom()
			if err != nil {
				t.Fatalf("ScalarRandom failed: %v", err)
			}
			p := curve.BasePoint().Mul(a)

			if len(p.Bytes()) != curve.PointSize() {
				t.Fatalf("point encodes to %d bytes, PointSize is %d", len(p.Bytes()), curve.PointSize())
			}

			data := p.CompressedBytes()
			back, err := curve.PointFromBytes(data)
			if err != nil {
				t.Fatalf("PointFromBytes failed: %v", err)
			}
			if !back.Equal(p) {
				t.Fatal("point does not round-trip through bytes")
			}

			if err := curve.ValidatePoint(data); err != nil {
				t.Fatalf("ValidatePoint rejected a valid encoding: %v", err)
			}
			if err := curve.ValidatePoint(data[:len(data)-1]); err == nil {
				t.Fatal("ValidatePoint accepted a truncated encoding")
			}
		})
	}
}

func TestPairingSuite(t *testing.T) {
	suite := NewBLS12381Suite()

	hm, err := suite.HashToG1([]byte("pairing test message"))
	if err != nil {
		t.Fatalf("HashToG1 failed: %v", err)
	}
	if hm.IsIdentity() {
		t.Fatal("hash-to-point produced the identity")
	}

	hm2, err := suite.HashToG1([]byte("pairing test message"))
	if err != nil {
		t.Fatalf("HashToG1 failed: %v", err)
	}
	if !hm.Equal(hm2) {
		t.Fatal("hash-to-point is not deterministic")
	}

	// Bilinearity: e(a*P, Q) == e(P, a*Q)
	a, err := suite.G1().ScalarRandom()
	if err != nil {
		t.Fatalf("ScalarRandom failed: %v", err)
	}
	g1 := suite.G1().BasePoint()
	g2 := suite.G2().BasePoint()

	equal, err := suite.PairingEqual(g1.Mul(a), g2, g1, g2.Mul(a))
	if err != nil {
		t.Fatalf("PairingEqual failed: %v", err)
	}
	if !equal {
		t.Fatal("pairing is not bilinear: e(aP, Q) != e(P, aQ)")
	}

	equal, err = suite.PairingEqual(g1.Mul(a), g2, g1, g2)
	if err != nil {
		t.Fatalf("PairingEqual failed: %v", err)
	}
	if equal {
		t.Fatal("PairingEqual reported equality for distinct pairings")
	}
}
