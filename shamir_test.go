package tbls

import (
	"errors"
	"testing"
)

func TestGenerateShareMatchesDealer(t *testing.T) {
	for name, curve := range testCurves() {
		t.Run(name, func(t *testing.T) {
			secret, err := curve.ScalarRandom()
			if err != nil {
				t.Fatalf("ScalarRandom failed: %v", err)
			}
			poly, err := NewRandomPolynomial(curve, 2, secret)
			if err != nil {
				t.Fatalf("NewRandomPolynomial failed: %v", err)
			}
			mask := poly.Coefficients()

			for i := 1; i <= 4; i++ {
				id, err := ParticipantIndex(i).ToScalar(curve)
				if err != nil {
					t.Fatalf("ToScalar(%d) failed: %v", i, err)
				}
				share := GenerateShare(curve, mask, id)
				if !share.ID.Equal(id) {
					t.Fatalf("share %d carries the wrong id", i)
				}
				if !share.Value.Equal(poly.Evaluate(id)) {
					t.Fatalf("share %d value differs from the polynomial evaluation", i)
				}
			}
		})
	}
}

// GenerateShare is pure: the same mask and id always produce the same value,
// and the mask is left untouched.
func TestGenerateShareDeterministic(t *testing.T) {
	curve := NewSecp256k1Curve()

	secret, err := curve.ScalarRandom()
	if err != nil {
		t.Fatalf("ScalarRandom failed: %v", err)
	}
	poly, err := NewRandomPolynomial(curve, 3, secret)
	if err != nil {
		t.Fatalf("NewRandomPolynomial failed: %v", err)
	}
	mask := poly.Coefficients()

	id, err := ParticipantIndex(9).ToScalar(curve)
	if err != nil {
		t.Fatalf("ToScalar failed: %v", err)
	}

	first := GenerateShare(curve, mask, id)
	second := GenerateShare(curve, mask, id)
	if !first.Value.Equal(second.Value) {
		t.Fatal("repeated generation produced different share values")
	}
	if !mask[0].Equal(secret) {
		t.Fatal("generation mutated the mask's constant term")
	}

	// A zero id is accepted here; it simply evaluates to the constant term.
	// Rejection is the recoverer's job.
	atZero := GenerateShare(curve, mask, curve.ScalarZero())
	if !atZero.Value.Equal(secret) {
		t.Fatal("evaluation at zero did not return the constant term")
	}
}

// A threshold-1 dealing uses a constant polynomial, so every share value is
// the secret itself. The dealer's mask zeroize must not reach the issued
// shares.
func TestThresholdOneDealing(t *testing.T) {
	for name, curve := range testCurves() {
		t.Run(name, func(t *testing.T) {
			secret, dealing := dealTestShares(t, curve, 1, 3)

			for i, share := range dealing.Shares {
				if share.Value.IsZero() {
					t.Fatalf("share %d was zeroized with the mask", i)
				}
				if !share.Value.Equal(secret) {
					t.Fatalf("share %d of a threshold-1 dealing is not the secret", i)
				}
			}

			recovered, err := RecoverSecret(curve, dealing.Shares[:1])
			if err != nil {
				t.Fatalf("RecoverSecret failed: %v", err)
			}
			if !recovered.Equal(secret) {
				t.Fatal("single share did not recover the threshold-1 secret")
			}
		})
	}
}

// Shares minted from a single-coefficient mask must survive the caller
// zeroizing the mask.
func TestGenerateShareSurvivesMaskZeroize(t *testing.T) {
	curve := NewSecp256k1Curve()

	secret, err := curve.ScalarRandom()
	if err != nil {
		t.Fatalf("ScalarRandom failed: %v", err)
	}
	expected := secret.Add(curve.ScalarZero())

	id, err := ParticipantIndex(3).ToScalar(curve)
	if err != nil {
		t.Fatalf("ToScalar failed: %v", err)
	}

	mask := []Scalar{secret}
	share := GenerateShare(curve, mask, id)
	ZeroizeScalarSlice(mask)

	if share.Value.IsZero() {
		t.Fatal("share value aliases the mask constant term")
	}
	if !share.Value.Equal(expected) {
		t.Fatal("share value changed when the mask was zeroized")
	}
}

func TestNewDealerValidation(t *testing.T) {
	curve := NewBLS12381G1Curve()

	cases := []struct {
		name      string
		threshold int
		shares    int
	}{
		{"zero threshold", 0, 3},
		{"negative threshold", -1, 3},
		{"threshold above shares", 4, 3},
		{"zero shares", 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewDealer(curve, tc.threshold, tc.shares); err == nil {
				t.Fatalf("NewDealer(%d, %d) accepted invalid parameters", tc.threshold, tc.shares)
			}
		})
	}

	if _, err := NewDealer(nil, 2, 3); !errors.Is(err, ErrInvalidCurve) {
		t.Fatalf("expected ErrInvalidCurve for nil curve, got %v", err)
	}

	dealer, err := NewDealer(curve, 2, 3)
	if err != nil {
		t.Fatalf("NewDealer failed: %v", err)
	}
	if dealer.Threshold() != 2 || dealer.Shares() != 3 {
		t.Fatal("dealer did not retain its parameters")
	}
}

func TestDealCommitmentBindsSecret(t *testing.T) {
	curve := NewBLS12381G2Curve()
	secret, dealing := dealTestShares(t, curve, 3, 5)

	if len(dealing.Commitments) != 3 {
		t.Fatalf("expected 3 commitments, got %d", len(dealing.Commitments))
	}
	if !dealing.Commitments[0].Equal(curve.BasePoint().Mul(secret)) {
		t.Fatal("Commitments[0] is not the public counterpart of the secret")
	}
}

func TestVerifyShare(t *testing.T) {
	for name, curve := range testCurves() {
		t.Run(name, func(t *testing.T) {
			_, dealing := dealTestShares(t, curve, 3, 5)

			for i, share := range dealing.Shares {
				if err := VerifyShare(curve, share, dealing.Commitments); err != nil {
					t.Fatalf("honest share %d failed verification: %v", i, err)
				}
			}

			forged, err := curve.ScalarRandom()
			if err != nil {
				t.Fatalf("ScalarRandom failed: %v", err)
			}
			tampered := &SecretShare{ID: dealing.Shares[0].ID, Value: forged}
			if err := VerifyShare(curve, tampered, dealing.Commitments); !errors.Is(err, ErrShareVerificationFailed) {
				t.Fatalf("expected ErrShareVerificationFailed for tampered share, got %v", err)
			}

			if err := VerifyShare(curve, dealing.Shares[0], nil); !errors.Is(err, ErrShareVerificationFailed) {
				t.Fatalf("expected ErrShareVerificationFailed for missing commitments, got %v", err)
			}
			if err := VerifyShare(curve, nil, dealing.Commitments); !errors.Is(err, ErrInvalidRecoveryInput) {
				t.Fatalf("expected ErrInvalidRecoveryInput for nil share, got %v", err)
			}
		})
	}
}

func TestPublicShareMatchesShare(t *testing.T) {
	curve := NewBLS12381G2Curve()
	_, dealing := dealTestShares(t, curve, 2, 4)

	for i, share := range dealing.Shares {
		public := PublicShare(curve, dealing.Commitments, share.ID)
		if !public.Equal(curve.BasePoint().Mul(share.Value)) {
			t.Fatalf("public share %d does not match base*value", i)
		}
	}
}

func TestDealMaskReproducible(t *testing.T) {
	curve := NewBLS12381G1Curve()

	deriver, err := NewMaskDeriver(curve, SHA256HKDF)
	if err != nil {
		t.Fatalf("NewMaskDeriver failed: %v", err)
	}
	seed := []byte("test seed for reproducible dealing")

	dealer, err := NewDealer(curve, 3, 5)
	if err != nil {
		t.Fatalf("NewDealer failed: %v", err)
	}

	deal := func() *Dealing {
		mask, err := deriver.DeriveMask(seed, []byte("epoch-1"), 3)
		if err != nil {
			t.Fatalf("DeriveMask failed: %v", err)
		}
		dealing, err := dealer.DealMask(mask)
		if err != nil {
			t.Fatalf("DealMask failed: %v", err)
		}
		return dealing
	}

	first := deal()
	second := deal()
	for i := range first.Shares {
		if !first.Shares[i].Value.Equal(second.Shares[i].Value) {
			t.Fatalf("share %d differs between deals of the same mask", i)
		}
	}
	for i := range first.Commitments {
		if !first.Commitments[i].Equal(second.Commitments[i]) {
			t.Fatalf("commitment %d differs between deals of the same mask", i)
		}
	}
}

func TestDealMaskLengthValidation(t *testing.T) {
	curve := NewSecp256k1Curve()

	dealer, err := NewDealer(curve, 3, 5)
	if err != nil {
		t.Fatalf("NewDealer failed: %v", err)
	}

	short := []Scalar{curve.ScalarOne(), curve.ScalarOne()}
	if _, err := dealer.DealMask(short); !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("expected ErrInvalidThreshold for short mask, got %v", err)
	}

	withNil := []Scalar{curve.ScalarOne(), nil, curve.ScalarOne()}
	if _, err := dealer.DealMask(withNil); !errors.Is(err, ErrInvalidRecoveryInput) {
		t.Fatalf("expected ErrInvalidRecoveryInput for nil coefficient, got %v", err)
	}
}
