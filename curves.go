package tbls

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// Curve exposes the scalar-field and point-group arithmetic of one elliptic
// curve group. Implementations wrap an external curve library so the rest of
// the package never manipulates library types directly, which also keeps the
// arithmetic mockable in tests.
type Curve interface {
	// Metadata
	Name() string
	ScalarSize() int
	PointSize() int

	// Scalar constructors
	ScalarFromBytes([]byte) (Scalar, error)
	ScalarFromUniformBytes([]byte) (Scalar, error)
	ScalarRandom() (Scalar, error)
	ScalarZero() Scalar
	ScalarOne() Scalar

	// Point constructors
	PointFromBytes([]byte) (Point, error)
	BasePoint() Point
	PointIdentity() Point

	// Validation
	ValidateScalar([]byte) error
	ValidatePoint([]byte) error
}

// Scalar is an immutable element of the curve's prime-order scalar field.
// Every arithmetic method returns a fresh value; Zeroize is the only mutator.
type Scalar interface {
	// Serialization
	Bytes() []byte
	String() string

	// Field arithmetic
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	Negate() Scalar
	Invert() (Scalar, error)

	// Comparison
	Equal(Scalar) bool
	IsZero() bool

	// Security
	Zeroize()
}

// Point is an element of the curve group. Mul is the scalar action of the
// field on the group.
type Point interface {
	// Serialization
	Bytes() []byte
	CompressedBytes() []byte
	String() string

	// Group arithmetic
	Add(Point) Point
	Sub(Point) Point
	Mul(Scalar) Point
	Negate() Point

	// Comparison
	Equal(Point) bool
	IsIdentity() bool

	// Validation
	IsOnCurve() bool
}

// PairingSuite bundles the two source groups of a pairing-friendly curve.
// Signatures live on G1 and public keys on G2; both groups share the same
// scalar field, so shares dealt over either curve interoperate.
type PairingSuite interface {
	Name() string
	G1() Curve
	G2() Curve

	// HashToG1 hashes a message to a point of the signature group.
	HashToG1(msg []byte) (Point, error)

	// PairingEqual reports whether e(a1, b1) == e(a2, b2), with a1, a2 on G1
	// and b1, b2 on G2.
	PairingEqual(a1, b1, a2, b2 Point) (bool, error)
}

// CurveType selects one of the supported curve groups.
type CurveType string

const (
	Secp256k1  CurveType = "secp256k1"
	Ed25519    CurveType = "ed25519"
	BLS12381G1 CurveType = "bls12381-g1"
	BLS12381G2 CurveType = "bls12381-g2"
)

// NewCurve creates a new curve instance
func NewCurve(curveType CurveType) (Curve, error) {
	switch curveType {
	case Secp256k1:
		return NewSecp256k1Curve(), nil
	case Ed25519:
		return NewEd25519Curve(), nil
	case BLS12381G1:
		return NewBLS12381G1Curve(), nil
	case BLS12381G2:
		return NewBLS12381G2Curve(), nil
	default:
		return nil, fmt.Errorf("unsupported curve type: %s", curveType)
	}
}

// Adapter-level errors
var (
	ErrInvalidScalarLength = errors.New("invalid scalar length")
	ErrInvalidPointLength  = errors.New("invalid point length")
	ErrInvalidScalar       = errors.New("invalid scalar value")
	ErrInvalidPoint        = errors.New("invalid point")
	ErrScalarZero          = errors.New("scalar is zero")
)

// SecureRandom generates cryptographically secure random bytes
func SecureRandom(size int) ([]byte, error) {
	bytes := make([]byte, size)
	_, err := rand.Read(bytes)
	return bytes, err
}
