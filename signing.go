package tbls

import (
	"time"
)

// Scheme implements Boneh-Lynn-Shacham signatures over a pairing suite, with
// signatures on G1 and public keys on G2, plus the threshold operations built
// on the shared Lagrange recoverer. Everything here delegates the curve and
// pairing work to the suite; the only structure is the interpolation.
type Scheme struct {
	suite PairingSuite
	audit AuditEventHandler
}

// NewScheme creates a signature scheme over the given pairing suite
func NewScheme(suite PairingSuite) *Scheme {
	return &Scheme{suite: suite, audit: &NullAuditHandler{}}
}

// NewBLS12381Scheme creates the default scheme over BLS12-381
func NewBLS12381Scheme() *Scheme {
	return NewScheme(NewBLS12381Suite())
}

// Suite returns the scheme's pairing suite
func (s *Scheme) Suite() PairingSuite { return s.suite }

// SetAuditHandler installs an audit handler; nil restores the no-op handler.
func (s *Scheme) SetAuditHandler(handler AuditEventHandler) {
	if handler == nil {
		handler = &NullAuditHandler{}
	}
	s.audit = handler
}

// GenerateKeyPair creates a fresh secret key and its G2 public key
func (s *Scheme) GenerateKeyPair() (Scalar, Point, error) {
	for {
		sk, err := s.suite.G1().ScalarRandom()
		if err != nil {
			return nil, nil, ErrRandomnessGeneration.WithCause(err)
		}
		if sk.IsZero() {
			continue
		}
		return sk, s.suite.G2().BasePoint().Mul(sk), nil
	}
}

// PublicKey derives the G2 public key of a secret key
func (s *Scheme) PublicKey(sk Scalar) Point {
	return s.suite.G2().BasePoint().Mul(sk)
}

// Sign produces the signature sk * H(msg) on G1
func (s *Scheme) Sign(sk Scalar, msg []byte) (Point, error) {
	if sk == nil || sk.IsZero() {
		return nil, ErrInvalidSignature.WithDetails("signing key is zero or nil")
	}

	hm, err := s.suite.HashToG1(msg)
	if err != nil {
		return nil, err
	}
	return hm.Mul(sk), nil
}

// Verify checks a signature through the pairing equation
// e(sig, g2) == e(H(msg), pub).
func (s *Scheme) Verify(pub Point, msg []byte, sig Point) error {
	if pub == nil || sig == nil {
		return ErrInvalidSignature.WithDetails("nil public key or signature")
	}
	// The identity signature verifies against the identity key for any
	// message; reject it outright.
	if sig.IsIdentity() || pub.IsIdentity() {
		return ErrInvalidSignature.WithDetails("identity element")
	}

	hm, err := s.suite.HashToG1(msg)
	if err != nil {
		return err
	}

	ok, err := s.suite.PairingEqual(sig, s.suite.G2().BasePoint(), hm, pub)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSignatureVerificationFailed
	}
	return nil
}

// AggregateSignatures sums signatures on the same message into one
func (s *Scheme) AggregateSignatures(sigs ...Point) (Point, error) {
	if len(sigs) == 0 {
		return nil, ErrNothingToAggregate
	}

	agg := s.suite.G1().PointIdentity()
	for i, sig := range sigs {
		if sig == nil {
			return nil, ErrInvalidSignature.WithDetails("signature %d is nil", i)
		}
		agg = agg.Add(sig)
	}
	return agg, nil
}

// AggregatePublicKeys sums public keys into the aggregate verification key
func (s *Scheme) AggregatePublicKeys(pubs ...Point) (Point, error) {
	if len(pubs) == 0 {
		return nil, ErrNothingToAggregate
	}

	agg := s.suite.G2().PointIdentity()
	for i, pub := range pubs {
		if pub == nil {
			return nil, ErrInvalidSignature.WithDetails("public key %d is nil", i)
		}
		agg = agg.Add(pub)
	}
	return agg, nil
}

// DealKey splits a secret key into a (threshold, shares) dealing. The
// commitments are taken on G2 so Commitments[0] is the group public key and
// PublicShare yields partial verification keys.
func (s *Scheme) DealKey(sk Scalar, threshold, shares int) (*Dealing, error) {
	dealer, err := NewDealer(s.suite.G2(), threshold, shares)
	if err != nil {
		return nil, err
	}
	dealer.SetAuditHandler(s.audit)
	return dealer.Deal(sk)
}

// SignShare produces a partial signature with one secret key share
func (s *Scheme) SignShare(share *SecretShare, msg []byte) (*SignatureShare, error) {
	if share == nil || share.ID == nil || share.Value == nil {
		return nil, ErrInvalidRecoveryInput.WithDetails("share is nil or incomplete")
	}

	sig, err := s.Sign(share.Value, msg)
	if err != nil {
		return nil, err
	}
	return &SignatureShare{ID: share.ID, Value: sig}, nil
}

// VerifyPartial checks a partial signature against the participant's public
// key share, computed from the dealing's G2 commitments.
func (s *Scheme) VerifyPartial(commitments []Point, msg []byte, share *SignatureShare) error {
	if share == nil || share.ID == nil || share.Value == nil {
		return ErrInvalidRecoveryInput.WithDetails("signature share is nil or incomplete")
	}

	pubShare := PublicShare(s.suite.G2(), commitments, share.ID)
	return s.Verify(pubShare, msg, share.Value)
}

// RecoverSignature interpolates a quorum of partial signatures at zero,
// producing the signature the undivided secret key would have made. Shares
// are not verified here; use VerifyPartial to screen inputs first.
func (s *Scheme) RecoverSignature(shares []*SignatureShare) (Point, error) {
	started := time.Now()

	sig, err := RecoverSignature(s.suite.G1(), shares)
	if err != nil {
		s.audit.OnRecovery(NewAuditEventBuilder(AuditEventSignatureRecovery, ReasonRecovery).
			WithCurve(s.suite.G1().Name()).
			WithShareCount(len(shares)).
			WithError(err).
			BuildRecovery(time.Since(started)))
		return nil, err
	}

	s.audit.OnRecovery(NewAuditEventBuilder(AuditEventSignatureRecovery, ReasonRecovery).
		WithCurve(s.suite.G1().Name()).
		WithShareCount(len(shares)).
		BuildRecovery(time.Since(started)))

	return sig, nil
}
