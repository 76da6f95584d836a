package tbls

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"filippo.io/edwards25519"
)

// Ed25519Curve implements the Curve interface over filippo.io/edwards25519.
// All operations are constant time.
type Ed25519Curve struct{}

// NewEd25519Curve creates a new Ed25519 curve instance
func NewEd25519Curve() *Ed25519Curve {
	return &Ed25519Curve{}
}

func (c *Ed25519Curve) Name() string    { return "ed25519" }
func (c *Ed25519Curve) ScalarSize() int { return 32 }
func (c *Ed25519Curve) PointSize() int  { return 32 }

func (c *Ed25519Curve) ScalarFromBytes(data []byte) (Scalar, error) {
	if len(data) != 32 {
		return nil, ErrInvalidScalarLength
	}

	s, err := new(edwards25519.Scalar).SetCanonicalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}

	return &ed25519Scalar{inner: s}, nil
}

func (c *Ed25519Curve) ScalarFromUniformBytes(data []byte) (Scalar, error) {
	if len(data) < 32 {
		return nil, ErrInvalidScalarLength
	}

	// SetUniformBytes wants exactly 64 bytes; zero-pad shorter inputs
	uniform := make([]byte, 64)
	copy(uniform, data)

	s, err := new(edwards25519.Scalar).SetUniformBytes(uniform)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}
	return &ed25519Scalar{inner: s}, nil
}

func (c *Ed25519Curve) ScalarRandom() (Scalar, error) {
	buf := make([]byte, 64) // 64 bytes for a uniform distribution
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}

	s, err := new(edwards25519.Scalar).SetUniformBytes(buf)
	if err != nil {
		return nil, err
	}
	return &ed25519Scalar{inner: s}, nil
}

func (c *Ed25519Curve) ScalarZero() Scalar {
	return &ed25519Scalar{inner: edwards25519.NewScalar()}
}

func (c *Ed25519Curve) ScalarOne() Scalar {
	one := make([]byte, 32)
	one[0] = 1
	s, _ := new(edwards25519.Scalar).SetCanonicalBytes(one)
	return &ed25519Scalar{inner: s}
}

func (c *Ed25519Curve) PointFromBytes(data []byte) (Point, error) {
	if len(data) != 32 {
		return nil, ErrInvalidPointLength
	}

	p, err := new(edwards25519.Point).SetBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}

	// Invalid encodings are rejected above, so held points are always valid
	return &ed25519Point{inner: p}, nil
}

func (c *Ed25519Curve) BasePoint() Point {
	return &ed25519Point{inner: edwards25519.NewGeneratorPoint()}
}

func (c *Ed25519Curve) PointIdentity() Point {
	return &ed25519Point{inner: edwards25519.NewIdentityPoint()}
}

func (c *Ed25519Curve) ValidateScalar(data []byte) error {
	_, err := c.ScalarFromBytes(data)
	return err
}

func (c *Ed25519Curve) ValidatePoint(data []byte) error {
	_, err := c.PointFromBytes(data)
	return err
}

// ed25519Scalar implements the Scalar interface
type ed25519Scalar struct {
	inner *edwards25519.Scalar
}

func (s *ed25519Scalar) Bytes() []byte {
	return s.inner.Bytes()
}

func (s *ed25519Scalar) String() string {
	return hex.EncodeToString(s.Bytes())
}

func (s *ed25519Scalar) Add(other Scalar) Scalar {
	result := edwards25519.NewScalar()
	result.Add(s.inner, other.(*ed25519Scalar).inner)
	return &ed25519Scalar{inner: result}
}

func (s *ed25519Scalar) Sub(other Scalar) Scalar {
	result := edwards25519.NewScalar()
	result.Subtract(s.inner, other.(*ed25519Scalar).inner)
	return &ed25519Scalar{inner: result}
}

func (s *ed25519Scalar) Mul(other Scalar) Scalar {
	result := edwards25519.NewScalar()
	result.Multiply(s.inner, other.(*ed25519Scalar).inner)
	return &ed25519Scalar{inner: result}
}

func (s *ed25519Scalar) Negate() Scalar {
	result := edwards25519.NewScalar()
	result.Negate(s.inner)
	return &ed25519Scalar{inner: result}
}

func (s *ed25519Scalar) Invert() (Scalar, error) {
	if s.IsZero() {
		return nil, ErrScalarZero
	}

	result := edwards25519.NewScalar()
	result.Invert(s.inner)
	return &ed25519Scalar{inner: result}, nil
}

func (s *ed25519Scalar) Equal(other Scalar) bool {
	return s.inner.Equal(other.(*ed25519Scalar).inner) == 1
}

func (s *ed25519Scalar) IsZero() bool {
	return s.inner.Equal(edwards25519.NewScalar()) == 1
}

func (s *ed25519Scalar) Zeroize() {
	// Replacing the inner scalar with zero clears the held value
	s.inner = edwards25519.NewScalar()
}

// ed25519Point implements the Point interface
type ed25519Point struct {
	inner *edwards25519.Point
}

func (p *ed25519Point) Bytes() []byte {
	return p.inner.Bytes()
}

func (p *ed25519Point) CompressedBytes() []byte {
	return p.Bytes() // Ed25519 encodings are already compressed
}

func (p *ed25519Point) String() string {
	return hex.EncodeToString(p.Bytes())
}

func (p *ed25519Point) Add(other Point) Point {
	result := edwards25519.NewIdentityPoint()
	result.Add(p.inner, other.(*ed25519Point).inner)
	return &ed25519Point{inner: result}
}

func (p *ed25519Point) Sub(other Point) Point {
	result := edwards25519.NewIdentityPoint()
	result.Subtract(p.inner, other.(*ed25519Point).inner)
	return &ed25519Point{inner: result}
}

func (p *ed25519Point) Mul(scalar Scalar) Point {
	result := edwards25519.NewIdentityPoint()
	result.ScalarMult(scalar.(*ed25519Scalar).inner, p.inner)
	return &ed25519Point{inner: result}
}

func (p *ed25519Point) Negate() Point {
	result := edwards25519.NewIdentityPoint()
	result.Negate(p.inner)
	return &ed25519Point{inner: result}
}

func (p *ed25519Point) Equal(other Point) bool {
	return p.inner.Equal(other.(*ed25519Point).inner) == 1
}

func (p *ed25519Point) IsIdentity() bool {
	return p.inner.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (p *ed25519Point) IsOnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(p.inner.Bytes())
	return err == nil
}
