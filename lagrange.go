package tbls

// shareValue constrains the value types Lagrange interpolation can combine:
// anything with an additive combination and the scalar action of the field.
// Both Scalar (field multiplication as the action) and Point (scalar
// multiplication) satisfy it, so one routine recovers secrets and signatures.
type shareValue[V any] interface {
	Add(V) V
	Mul(Scalar) V
}

// recoverAtZero interpolates the polynomial sampled by (ids[i], values[i])
// at x = 0, the secret's reserved position. Evaluating at zero lets every
// Lagrange basis coefficient share one precomputed numerator, the product of
// all ids:
//
//	L_i(0) = a / (id_i * prod_{j != i} (id_j - id_i)),  a = prod_j id_j
//
// so the whole recovery costs O(k^2) with a single batch inversion. All
// validation happens before any inverse is taken; an unchecked inversion of
// the field zero is undefined in most backends.
func recoverAtZero[V shareValue[V]](curve Curve, values []V, ids []Scalar) (V, error) {
	var zero V

	if len(values) == 0 || len(values) != len(ids) {
		return zero, ErrInvalidRecoveryInput.WithDetails("%d values, %d ids", len(values), len(ids))
	}
	for _, id := range ids {
		if id == nil {
			return zero, ErrInvalidRecoveryInput.WithDetails("nil id")
		}
	}

	// Shared numerator. A zero product means some id was zero, which would
	// alias the secret's own position.
	numerator := curve.ScalarOne()
	for _, id := range ids {
		numerator = numerator.Mul(id)
	}
	if numerator.IsZero() {
		return zero, ErrZeroShareID
	}

	// A singleton set needs no interpolation: the value is the constant
	// polynomial's own evaluation. The zero-id check above still applies.
	if len(values) == 1 {
		return values[0], nil
	}

	denominators := make([]Scalar, len(ids))
	for i, idi := range ids {
		d := idi
		for j, idj := range ids {
			if j == i {
				continue
			}
			diff := idj.Sub(idi)
			if diff.IsZero() {
				return zero, ErrDuplicateShareID.WithDetails("indices %d and %d", i, j)
			}
			d = d.Mul(diff)
		}
		denominators[i] = d
	}

	// Every denominator is a product of nonzero factors, so batch inversion
	// cannot encounter a zero here.
	inverses, err := BatchInvert(curve, denominators)
	if err != nil {
		return zero, ErrInvalidRecoveryInput.WithCause(err)
	}

	result := values[0].Mul(numerator.Mul(inverses[0]))
	for i := 1; i < len(values); i++ {
		result = result.Add(values[i].Mul(numerator.Mul(inverses[i])))
	}
	return result, nil
}

// RecoverSecret reconstructs the dealt secret from a quorum of secret key
// shares. Any threshold-sized subset of a dealing's shares yields the same
// secret; fewer shares yield an unrelated field element, not an error.
func RecoverSecret(curve Curve, shares []*SecretShare) (Scalar, error) {
	values := make([]Scalar, len(shares))
	ids := make([]Scalar, len(shares))
	for i, share := range shares {
		if share == nil || share.ID == nil || share.Value == nil {
			return nil, ErrInvalidRecoveryInput.WithDetails("share %d is nil or incomplete", i)
		}
		values[i] = share.Value
		ids[i] = share.ID
	}
	return recoverAtZero(curve, values, ids)
}

// RecoverSignature reconstructs the full signature from a quorum of partial
// signatures. Signing is linear in the key, so interpolating the signature
// shares at zero yields exactly the signature the undivided secret would
// have produced.
func RecoverSignature(curve Curve, shares []*SignatureShare) (Point, error) {
	values := make([]Point, len(shares))
	ids := make([]Scalar, len(shares))
	for i, share := range shares {
		if share == nil || share.ID == nil || share.Value == nil {
			return nil, ErrInvalidRecoveryInput.WithDetails("share %d is nil or incomplete", i)
		}
		values[i] = share.Value
		ids[i] = share.ID
	}
	return recoverAtZero(curve, values, ids)
}

// RecoverCommit interpolates arbitrary group-element shares at zero, for
// example to rebuild a group public key from public key shares.
func RecoverCommit(curve Curve, values []Point, ids []Scalar) (Point, error) {
	for i, v := range values {
		if v == nil {
			return nil, ErrInvalidRecoveryInput.WithDetails("value %d is nil", i)
		}
	}
	return recoverAtZero(curve, values, ids)
}
