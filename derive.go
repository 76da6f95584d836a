package tbls

import (
	"crypto/sha256"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// HashAlgorithm selects the hash construction used for deterministic mask
// derivation.
type HashAlgorithm int

const (
	// SHA256HKDF uses SHA-256 with HKDF expansion
	SHA256HKDF HashAlgorithm = iota
	// Blake2b uses BLAKE2b with domain separation
	Blake2b
	// Shake256 uses the SHAKE256 XOF
	Shake256
)

// Derivation domain separators. Versioned so a future construction change
// cannot silently collide with masks derived today.
const (
	maskDeriveSalt   = "TBLS_MASK_COEFF_v1"
	maskDerivePrefix = "coeff:"
)

// MaskDeriver derives polynomial masks deterministically from seed material.
// The same seed, context, and parameters always produce the same mask, and
// therefore the same secret (the constant term) and the same shares. This
// supports reproducible share regeneration after a membership change without
// re-transporting the secret.
type MaskDeriver struct {
	curve     Curve
	algorithm HashAlgorithm
}

// NewMaskDeriver creates a deriver for the given curve and hash algorithm
func NewMaskDeriver(curve Curve, algorithm HashAlgorithm) (*MaskDeriver, error) {
	if curve == nil {
		return nil, ErrInvalidCurve.WithDetails("curve is nil")
	}
	switch algorithm {
	case SHA256HKDF, Blake2b, Shake256:
	default:
		return nil, ErrHashComputation.WithDetails("unsupported hash algorithm %d", algorithm)
	}

	return &MaskDeriver{curve: curve, algorithm: algorithm}, nil
}

// DeriveMask derives a mask of the given length (the scheme threshold) from
// seed and context. The caller owns zeroizing the returned scalars.
func (md *MaskDeriver) DeriveMask(seed, context []byte, length int) ([]Scalar, error) {
	if length <= 0 {
		return nil, ErrInvalidThreshold.WithDetails("mask length %d", length)
	}
	if len(seed) == 0 {
		return nil, ErrInvalidRecoveryInput.WithDetails("seed is empty")
	}

	mask := make([]Scalar, length)
	for i := range mask {
		coeff, err := md.deriveCoefficient(seed, context, uint32(i))
		if err != nil {
			ZeroizeScalarSlice(mask[:i])
			return nil, err
		}
		mask[i] = coeff
	}
	return mask, nil
}

// deriveCoefficient derives one coefficient with per-index domain separation
func (md *MaskDeriver) deriveCoefficient(seed, context []byte, index uint32) (Scalar, error) {
	indexBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(indexBytes, index)
	info := append(append([]byte(maskDerivePrefix), indexBytes...), context...)

	var uniform []byte
	switch md.algorithm {
	case SHA256HKDF:
		salt := []byte(maskDeriveSalt + ":" + md.curve.Name())
		reader := hkdf.New(sha256.New, seed, salt, info)
		uniform = make([]byte, 64)
		if _, err := io.ReadFull(reader, uniform); err != nil {
			return nil, ErrHashComputation.WithCause(err)
		}

	case Blake2b:
		hasher, err := blake2b.New(64, nil)
		if err != nil {
			return nil, ErrHashComputation.WithCause(err)
		}
		hasher.Write([]byte(maskDeriveSalt))
		hasher.Write([]byte(md.curve.Name()))
		hasher.Write(seed)
		hasher.Write(info)
		uniform = hasher.Sum(nil)

	case Shake256:
		shake := sha3.NewShake256()
		shake.Write([]byte(maskDeriveSalt))
		shake.Write([]byte(md.curve.Name()))
		shake.Write(seed)
		shake.Write(info)
		uniform = make([]byte, 64)
		if _, err := shake.Read(uniform); err != nil {
			return nil, ErrHashComputation.WithCause(err)
		}
	}

	scalar, err := md.curve.ScalarFromUniformBytes(uniform)
	ZeroizeBytes(uniform)
	if err != nil {
		return nil, ErrHashComputation.WithCause(err).WithDetails("coefficient %d", index)
	}
	return scalar, nil
}
