package tbls

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// ParticipantIndex is a small participant identifier assigned by the caller,
// typically a node index. It converts to the scalar used as the share's
// x-coordinate; index 0 is rejected there because x = 0 is the secret's own
// position.
type ParticipantIndex uint32

// ToScalar converts the participant index to an identifier scalar
func (pi ParticipantIndex) ToScalar(curve Curve) (Scalar, error) {
	if pi == 0 {
		return nil, ErrInvalidParticipantID.WithDetails("index 0 is reserved for the secret")
	}

	scalarSize := curve.ScalarSize()
	if scalarSize < 4 {
		return nil, fmt.Errorf("curve scalar size %d is too small (minimum 4 bytes required)", scalarSize)
	}

	// Uniform reduction keeps the mapping valid regardless of the curve's
	// canonical encoding; it stays injective because the field order is far
	// larger than the index range.
	buf := make([]byte, scalarSize)
	binary.BigEndian.PutUint32(buf[scalarSize-4:], uint32(pi))
	return curve.ScalarFromUniformBytes(buf)
}

// ParticipantIndexFromScalar recovers a small index from an identifier
// scalar, returning 0 when the scalar does not carry one.
func ParticipantIndexFromScalar(scalar Scalar) ParticipantIndex {
	if scalar == nil {
		return 0
	}

	data := scalar.Bytes()
	if len(data) < 4 {
		return 0
	}
	return ParticipantIndex(binary.BigEndian.Uint32(data[len(data)-4:]))
}

// IDFromWords builds an identifier scalar from a fixed-width 256-bit encoding
// of eight big-endian 32-bit words, reduced modulo the field order. The zero
// result is rejected; ids must never alias the secret's position.
func IDFromWords(curve Curve, words [8]uint32) (Scalar, error) {
	buf := make([]byte, 32)
	for i, w := range words {
		binary.BigEndian.PutUint32(buf[i*4:], w)
	}

	id, err := curve.ScalarFromUniformBytes(buf)
	if err != nil {
		return nil, err
	}
	if id.IsZero() {
		return nil, ErrZeroShareID
	}
	return id, nil
}

// HashToScalar hashes data to a scalar with domain separation, using uniform
// reduction to avoid truncation bias.
func HashToScalar(curve Curve, data ...[]byte) (Scalar, error) {
	hasher := sha256.New()

	hasher.Write([]byte("TBLS_HASH_TO_SCALAR"))
	hasher.Write([]byte(curve.Name()))

	for _, d := range data {
		// Length prefix to keep the transcript unambiguous
		lengthBytes := make([]byte, 4)
		binary.BigEndian.PutUint32(lengthBytes, uint32(len(d)))
		hasher.Write(lengthBytes)
		hasher.Write(d)
	}

	return curve.ScalarFromUniformBytes(hasher.Sum(nil))
}

// SecureCompare performs constant-time comparison of byte slices
func SecureCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	var result byte
	for i := 0; i < len(a); i++ {
		result |= a[i] ^ b[i]
	}

	return result == 0
}

// ZeroizeBytes securely clears a byte slice
func ZeroizeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// ZeroizeScalarSlice securely clears a slice of scalars
func ZeroizeScalarSlice(scalars []Scalar) {
	for _, scalar := range scalars {
		if scalar != nil {
			scalar.Zeroize()
		}
	}
}

// BatchInvert inverts every scalar with Montgomery's trick: one field
// inversion plus 3(n-1) multiplications. All inputs must be nonzero.
func BatchInvert(curve Curve, scalars []Scalar) ([]Scalar, error) {
	n := len(scalars)
	if n == 0 {
		return nil, nil
	}

	for i, scalar := range scalars {
		if scalar == nil || scalar.IsZero() {
			return nil, fmt.Errorf("index %d: %w", i, ErrScalarZero)
		}
	}

	if n == 1 {
		inv, err := scalars[0].Invert()
		if err != nil {
			return nil, err
		}
		return []Scalar{inv}, nil
	}

	// Forward pass: partials[i] = scalars[0] * ... * scalars[i]
	partials := make([]Scalar, n)
	partials[0] = scalars[0]
	for i := 1; i < n; i++ {
		partials[i] = partials[i-1].Mul(scalars[i])
	}

	// One inversion of the full product
	acc, err := partials[n-1].Invert()
	if err != nil {
		return nil, err
	}

	// Backward pass: peel one factor per step.
	// acc holds (scalars[0] * ... * scalars[i])^-1 at the top of each turn.
	inverses := make([]Scalar, n)
	for i := n - 1; i > 0; i-- {
		inverses[i] = acc.Mul(partials[i-1])
		acc = acc.Mul(scalars[i])
	}
	inverses[0] = acc

	return inverses, nil
}
