package tbls

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Secp256k1Curve implements the Curve interface over btcec's secp256k1.
// btcec's scalar and point routines are not constant time; prefer ed25519 or
// BLS12-381 where timing side channels matter.
type Secp256k1Curve struct{}

// NewSecp256k1Curve creates a new secp256k1 curve instance
func NewSecp256k1Curve() *Secp256k1Curve {
	return &Secp256k1Curve{}
}

func (c *Secp256k1Curve) Name() string    { return "secp256k1" }
func (c *Secp256k1Curve) ScalarSize() int { return 32 }
func (c *Secp256k1Curve) PointSize() int  { return 33 } // Compressed

func (c *Secp256k1Curve) ScalarFromBytes(data []byte) (Scalar, error) {
	if len(data) != 32 {
		return nil, ErrInvalidScalarLength
	}

	var s btcec.ModNScalar
	if overflow := s.SetBytes((*[32]byte)(data)); overflow != 0 {
		return nil, ErrInvalidScalar
	}

	return &secp256k1Scalar{inner: &s}, nil
}

func (c *Secp256k1Curve) ScalarFromUniformBytes(data []byte) (Scalar, error) {
	if len(data) < 32 {
		return nil, ErrInvalidScalarLength
	}

	// Reduce the first 32 bytes modulo the group order
	var s btcec.ModNScalar
	s.SetBytes((*[32]byte)(data[:32]))
	return &secp256k1Scalar{inner: &s}, nil
}

func (c *Secp256k1Curve) ScalarRandom() (Scalar, error) {
	for {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}

		var s btcec.ModNScalar
		if overflow := s.SetBytes((*[32]byte)(buf)); overflow == 0 {
			return &secp256k1Scalar{inner: &s}, nil
		}
		// Rejection sampling keeps the distribution uniform
	}
}

func (c *Secp256k1Curve) ScalarZero() Scalar {
	return &secp256k1Scalar{inner: new(btcec.ModNScalar)}
}

func (c *Secp256k1Curve) ScalarOne() Scalar {
	var s btcec.ModNScalar
	s.SetInt(1)
	return &secp256k1Scalar{inner: &s}
}

func (c *Secp256k1Curve) PointFromBytes(data []byte) (Point, error) {
	if len(data) != 33 && len(data) != 65 {
		return nil, ErrInvalidPointLength
	}

	pub, err := btcec.ParsePubKey(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}

	return &secp256k1Point{inner: pub}, nil
}

func (c *Secp256k1Curve) BasePoint() Point {
	return &secp256k1Point{inner: btcec.Generator()}
}

func (c *Secp256k1Curve) PointIdentity() Point {
	// btcec has no representation for the point at infinity; nil stands in
	return &secp256k1Point{inner: nil}
}

func (c *Secp256k1Curve) ValidateScalar(data []byte) error {
	_, err := c.ScalarFromBytes(data)
	return err
}

func (c *Secp256k1Curve) ValidatePoint(data []byte) error {
	_, err := c.PointFromBytes(data)
	return err
}

// secp256k1Scalar implements the Scalar interface
type secp256k1Scalar struct {
	inner *btcec.ModNScalar
}

func (s *secp256k1Scalar) Bytes() []byte {
	var buf [32]byte
	s.inner.PutBytes(&buf)
	return buf[:]
}

func (s *secp256k1Scalar) String() string {
	return hex.EncodeToString(s.Bytes())
}

func (s *secp256k1Scalar) Add(other Scalar) Scalar {
	result := new(btcec.ModNScalar)
	result.Add(s.inner).Add(other.(*secp256k1Scalar).inner)
	return &secp256k1Scalar{inner: result}
}

func (s *secp256k1Scalar) Sub(other Scalar) Scalar {
	neg := new(btcec.ModNScalar)
	neg.Set(other.(*secp256k1Scalar).inner).Negate()
	result := new(btcec.ModNScalar)
	result.Add(s.inner).Add(neg)
	return &secp256k1Scalar{inner: result}
}

func (s *secp256k1Scalar) Mul(other Scalar) Scalar {
	result := new(btcec.ModNScalar)
	result.Set(s.inner).Mul(other.(*secp256k1Scalar).inner)
	return &secp256k1Scalar{inner: result}
}

func (s *secp256k1Scalar) Negate() Scalar {
	result := new(btcec.ModNScalar)
	result.Set(s.inner).Negate()
	return &secp256k1Scalar{inner: result}
}

func (s *secp256k1Scalar) Invert() (Scalar, error) {
	if s.IsZero() {
		return nil, ErrScalarZero
	}

	result := new(btcec.ModNScalar)
	result.Set(s.inner).InverseNonConst()
	return &secp256k1Scalar{inner: result}, nil
}

func (s *secp256k1Scalar) Equal(other Scalar) bool {
	return s.inner.Equals(other.(*secp256k1Scalar).inner)
}

func (s *secp256k1Scalar) IsZero() bool {
	return s.inner.IsZero()
}

func (s *secp256k1Scalar) Zeroize() {
	s.inner.Zero()
}

// secp256k1Point implements the Point interface
type secp256k1Point struct {
	inner *btcec.PublicKey
}

func (p *secp256k1Point) Bytes() []byte {
	if p.inner == nil {
		return make([]byte, 33) // Point at infinity
	}
	return p.inner.SerializeCompressed()
}

func (p *secp256k1Point) CompressedBytes() []byte {
	return p.Bytes() // secp256k1 points encode compressed
}

func (p *secp256k1Point) String() string {
	return hex.EncodeToString(p.CompressedBytes())
}

func (p *secp256k1Point) Add(other Point) Point {
	o := other.(*secp256k1Point)
	if p.inner == nil {
		return o
	}
	if o.inner == nil {
		return p
	}

	var a, b btcec.JacobianPoint
	p.inner.AsJacobian(&a)
	o.inner.AsJacobian(&b)

	btcec.AddNonConst(&a, &b, &a)

	if a.Z.IsZero() {
		// P + (-P) lands on the point at infinity
		return &secp256k1Point{inner: nil}
	}

	a.ToAffine()
	return &secp256k1Point{inner: btcec.NewPublicKey(&a.X, &a.Y)}
}

func (p *secp256k1Point) Sub(other Point) Point {
	return p.Add(other.Negate())
}

func (p *secp256k1Point) Mul(scalar Scalar) Point {
	if p.inner == nil {
		return p
	}

	k := scalar.(*secp256k1Scalar)
	if k.IsZero() {
		return &secp256k1Point{inner: nil}
	}

	var pt, result btcec.JacobianPoint
	p.inner.AsJacobian(&pt)

	btcec.ScalarMultNonConst(k.inner, &pt, &result)

	result.ToAffine()
	return &secp256k1Point{inner: btcec.NewPublicKey(&result.X, &result.Y)}
}

func (p *secp256k1Point) Negate() Point {
	if p.inner == nil {
		return p
	}

	var jac btcec.JacobianPoint
	p.inner.AsJacobian(&jac)
	jac.Y.Negate(1)
	jac.ToAffine()

	return &secp256k1Point{inner: btcec.NewPublicKey(&jac.X, &jac.Y)}
}

func (p *secp256k1Point) Equal(other Point) bool {
	o := other.(*secp256k1Point)
	if p.inner == nil || o.inner == nil {
		return p.inner == nil && o.inner == nil
	}
	return p.inner.IsEqual(o.inner)
}

func (p *secp256k1Point) IsIdentity() bool {
	return p.inner == nil
}

func (p *secp256k1Point) IsOnCurve() bool {
	// btcec validates points during parsing, so any held point is valid
	return true
}
