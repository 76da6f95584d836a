package tbls

import (
	"encoding/hex"
	"fmt"

	"github.com/drand/kyber"
	bls12381 "github.com/drand/kyber-bls12381"
	"github.com/drand/kyber/pairing"
)

// kyberSuite is the process-wide BLS12-381 backend. The kyber suite carries
// no mutable state, so a single shared instance is safe.
var kyberSuite pairing.Suite = bls12381.NewBLS12381Suite()

// BLS12381Curve implements the Curve interface for one source group of
// BLS12-381. Both groups share the same scalar field, so scalars created
// through either instance interoperate.
type BLS12381Curve struct {
	group kyber.Group
	name  string
}

// NewBLS12381G1Curve returns the signature group (48-byte compressed points)
func NewBLS12381G1Curve() *BLS12381Curve {
	return &BLS12381Curve{group: kyberSuite.G1(), name: string(BLS12381G1)}
}

// NewBLS12381G2Curve returns the public key group (96-byte compressed points)
func NewBLS12381G2Curve() *BLS12381Curve {
	return &BLS12381Curve{group: kyberSuite.G2(), name: string(BLS12381G2)}
}

func (c *BLS12381Curve) Name() string    { return c.name }
func (c *BLS12381Curve) ScalarSize() int { return c.group.ScalarLen() }
func (c *BLS12381Curve) PointSize() int  { return c.group.PointLen() }

func (c *BLS12381Curve) ScalarFromBytes(data []byte) (Scalar, error) {
	if len(data) != c.group.ScalarLen() {
		return nil, ErrInvalidScalarLength
	}

	s := c.group.Scalar()
	if err := s.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}
	return &bls12381Scalar{group: c.group, inner: s}, nil
}

func (c *BLS12381Curve) ScalarFromUniformBytes(data []byte) (Scalar, error) {
	if len(data) < c.group.ScalarLen() {
		return nil, ErrInvalidScalarLength
	}

	// SetBytes reduces modulo the group order
	s := c.group.Scalar().SetBytes(data)
	return &bls12381Scalar{group: c.group, inner: s}, nil
}

func (c *BLS12381Curve) ScalarRandom() (Scalar, error) {
	s := c.group.Scalar().Pick(kyberSuite.RandomStream())
	return &bls12381Scalar{group: c.group, inner: s}, nil
}

func (c *BLS12381Curve) ScalarZero() Scalar {
	return &bls12381Scalar{group: c.group, inner: c.group.Scalar().Zero()}
}

func (c *BLS12381Curve) ScalarOne() Scalar {
	return &bls12381Scalar{group: c.group, inner: c.group.Scalar().One()}
}

func (c *BLS12381Curve) PointFromBytes(data []byte) (Point, error) {
	if len(data) != c.group.PointLen() {
		return nil, ErrInvalidPointLength
	}

	p := c.group.Point()
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return &bls12381Point{group: c.group, inner: p}, nil
}

func (c *BLS12381Curve) BasePoint() Point {
	return &bls12381Point{group: c.group, inner: c.group.Point().Base()}
}

func (c *BLS12381Curve) PointIdentity() Point {
	return &bls12381Point{group: c.group, inner: c.group.Point().Null()}
}

func (c *BLS12381Curve) ValidateScalar(data []byte) error {
	_, err := c.ScalarFromBytes(data)
	return err
}

func (c *BLS12381Curve) ValidatePoint(data []byte) error {
	_, err := c.PointFromBytes(data)
	return err
}

// bls12381Scalar implements the Scalar interface
type bls12381Scalar struct {
	group kyber.Group
	inner kyber.Scalar
}

func (s *bls12381Scalar) Bytes() []byte {
	data, err := s.inner.MarshalBinary()
	if err != nil {
		return make([]byte, s.group.ScalarLen())
	}
	return data
}

func (s *bls12381Scalar) String() string {
	return hex.EncodeToString(s.Bytes())
}

func (s *bls12381Scalar) Add(other Scalar) Scalar {
	r := s.group.Scalar().Add(s.inner, other.(*bls12381Scalar).inner)
	return &bls12381Scalar{group: s.group, inner: r}
}

func (s *bls12381Scalar) Sub(other Scalar) Scalar {
	r := s.group.Scalar().Sub(s.inner, other.(*bls12381Scalar).inner)
	return &bls12381Scalar{group: s.group, inner: r}
}

func (s *bls12381Scalar) Mul(other Scalar) Scalar {
	r := s.group.Scalar().Mul(s.inner, other.(*bls12381Scalar).inner)
	return &bls12381Scalar{group: s.group, inner: r}
}

func (s *bls12381Scalar) Negate() Scalar {
	r := s.group.Scalar().Neg(s.inner)
	return &bls12381Scalar{group: s.group, inner: r}
}

func (s *bls12381Scalar) Invert() (Scalar, error) {
	if s.IsZero() {
		return nil, ErrScalarZero
	}

	r := s.group.Scalar().Inv(s.inner)
	return &bls12381Scalar{group: s.group, inner: r}, nil
}

func (s *bls12381Scalar) Equal(other Scalar) bool {
	return s.inner.Equal(other.(*bls12381Scalar).inner)
}

func (s *bls12381Scalar) IsZero() bool {
	return s.inner.Equal(s.group.Scalar().Zero())
}

func (s *bls12381Scalar) Zeroize() {
	s.inner.Zero()
}

// bls12381Point implements the Point interface
type bls12381Point struct {
	group kyber.Group
	inner kyber.Point
}

func (p *bls12381Point) Bytes() []byte {
	data, err := p.inner.MarshalBinary()
	if err != nil {
		return make([]byte, p.group.PointLen())
	}
	return data
}

func (p *bls12381Point) CompressedBytes() []byte {
	return p.Bytes() // kyber marshals BLS12-381 points compressed
}

func (p *bls12381Point) String() string {
	return hex.EncodeToString(p.Bytes())
}

func (p *bls12381Point) Add(other Point) Point {
	r := p.group.Point().Add(p.inner, other.(*bls12381Point).inner)
	return &bls12381Point{group: p.group, inner: r}
}

func (p *bls12381Point) Sub(other Point) Point {
	r := p.group.Point().Sub(p.inner, other.(*bls12381Point).inner)
	return &bls12381Point{group: p.group, inner: r}
}

func (p *bls12381Point) Mul(scalar Scalar) Point {
	r := p.group.Point().Mul(scalar.(*bls12381Scalar).inner, p.inner)
	return &bls12381Point{group: p.group, inner: r}
}

func (p *bls12381Point) Negate() Point {
	r := p.group.Point().Neg(p.inner)
	return &bls12381Point{group: p.group, inner: r}
}

func (p *bls12381Point) Equal(other Point) bool {
	return p.inner.Equal(other.(*bls12381Point).inner)
}

func (p *bls12381Point) IsIdentity() bool {
	return p.inner.Equal(p.group.Point().Null())
}

func (p *bls12381Point) IsOnCurve() bool {
	data, err := p.inner.MarshalBinary()
	if err != nil {
		return false
	}
	return p.group.Point().UnmarshalBinary(data) == nil
}

// BLS12381Suite implements PairingSuite over drand's BLS12-381.
type BLS12381Suite struct {
	g1 *BLS12381Curve
	g2 *BLS12381Curve
}

// NewBLS12381Suite creates the default pairing suite with signatures on G1
func NewBLS12381Suite() *BLS12381Suite {
	return &BLS12381Suite{
		g1: NewBLS12381G1Curve(),
		g2: NewBLS12381G2Curve(),
	}
}

func (s *BLS12381Suite) Name() string { return "bls12381" }
func (s *BLS12381Suite) G1() Curve    { return s.g1 }
func (s *BLS12381Suite) G2() Curve    { return s.g2 }

// HashToG1 hashes a message into the signature group using the suite's
// hash-to-curve construction (RFC 9380).
func (s *BLS12381Suite) HashToG1(msg []byte) (Point, error) {
	hp, ok := kyberSuite.G1().Point().(kyber.HashablePoint)
	if !ok {
		return nil, ErrHashComputation.WithDetails("G1 does not support hash-to-point")
	}
	return &bls12381Point{group: kyberSuite.G1(), inner: hp.Hash(msg)}, nil
}

// PairingEqual reports whether e(a1, b1) == e(a2, b2).
func (s *BLS12381Suite) PairingEqual(a1, b1, a2, b2 Point) (bool, error) {
	ga1, ok1 := a1.(*bls12381Point)
	ga2, ok2 := a2.(*bls12381Point)
	gb1, ok3 := b1.(*bls12381Point)
	gb2, ok4 := b2.(*bls12381Point)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false, ErrInvalidPoint
	}

	left := kyberSuite.Pair(ga1.inner, gb1.inner)
	right := kyberSuite.Pair(ga2.inner, gb2.inner)
	return left.Equal(right), nil
}
