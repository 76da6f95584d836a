package tbls

import (
	"time"
)

// SecretShare is one participant's evaluation of the dealer's polynomial.
// ID is the x-coordinate and must never be the field zero, since x = 0 is
// the secret's own position.
type SecretShare struct {
	ID    Scalar
	Value Scalar
}

// NewSecretShare creates a new secret share
func NewSecretShare(id, value Scalar) *SecretShare {
	return &SecretShare{ID: id, Value: value}
}

// Zeroize securely clears the share value. The ID is not sensitive.
func (s *SecretShare) Zeroize() {
	if s.Value != nil {
		s.Value.Zeroize()
	}
}

// SignatureShare is a partial signature produced by signing with a secret
// key share. It lives in the signature group rather than the scalar field
// but is recovered with the same interpolation as secret shares.
type SignatureShare struct {
	ID    Scalar
	Value Point
}

// GenerateShare evaluates the mask polynomial at the participant's id.
// It performs no validation: zero and duplicate ids are a recovery-time
// concern, because generation happens independently per participant and
// never sees the rest of the id set.
func GenerateShare(curve Curve, mask []Scalar, id Scalar) *SecretShare {
	poly := Polynomial{curve: curve, coefficients: mask}
	return &SecretShare{ID: id, Value: poly.Evaluate(id)}
}

// Dealing is the output of one dealer run: the shares to distribute and the
// Feldman commitments to the mask (constant term first). Commitments[0] is
// the public counterpart of the dealt secret.
type Dealing struct {
	Shares      []*SecretShare
	Commitments []Point
}

// Zeroize clears all share values in the dealing
func (d *Dealing) Zeroize() {
	for _, share := range d.Shares {
		if share != nil {
			share.Zeroize()
		}
	}
}

// Dealer splits secrets into threshold shares over a fixed curve. Shares are
// issued at ids 1..n; the mask is discarded after each deal.
type Dealer struct {
	curve     Curve
	threshold int
	shares    int
	audit     AuditEventHandler
}

// NewDealer creates a dealer for a (threshold, shares) scheme. The parameters
// are validated up front so every later deal is structurally sound.
func NewDealer(curve Curve, threshold, shares int) (*Dealer, error) {
	if curve == nil {
		return nil, ErrInvalidCurve.WithDetails("curve is nil")
	}

	validator := NewDefaultThresholdValidator()
	if err := validator.Validate(threshold, shares); err != nil {
		return nil, err
	}

	return &Dealer{
		curve:     curve,
		threshold: threshold,
		shares:    shares,
		audit:     &NullAuditHandler{},
	}, nil
}

// SetAuditHandler installs an audit handler; nil restores the no-op handler.
func (d *Dealer) SetAuditHandler(handler AuditEventHandler) {
	if handler == nil {
		handler = &NullAuditHandler{}
	}
	d.audit = handler
}

// Threshold returns the recovery threshold of this dealer
func (d *Dealer) Threshold() int { return d.threshold }

// Shares returns the number of shares issued per deal
func (d *Dealer) Shares() int { return d.shares }

// Deal splits the secret with a fresh random mask and returns the shares and
// the Feldman commitments to the mask. The mask is zeroized before return.
func (d *Dealer) Deal(secret Scalar) (*Dealing, error) {
	if secret == nil {
		return nil, ErrInvalidRecoveryInput.WithDetails("secret is nil")
	}

	poly, err := NewRandomPolynomial(d.curve, d.threshold-1, secret)
	if err != nil {
		d.auditFailure(err)
		return nil, err
	}

	return d.dealPolynomial(poly)
}

// DealMask splits with a caller-supplied mask, whose constant term is the
// secret. The mask must have exactly threshold coefficients. Combined with
// MaskDeriver this gives reproducible dealings from a seed.
func (d *Dealer) DealMask(mask []Scalar) (*Dealing, error) {
	if len(mask) != d.threshold {
		err := ErrInvalidThreshold.WithDetails("mask has %d coefficients, dealer threshold is %d", len(mask), d.threshold)
		d.auditFailure(err)
		return nil, err
	}
	for i, coeff := range mask {
		if coeff == nil {
			err := ErrInvalidRecoveryInput.WithDetails("mask coefficient %d is nil", i)
			d.auditFailure(err)
			return nil, err
		}
	}

	return d.dealPolynomial(NewPolynomial(d.curve, mask))
}

func (d *Dealer) dealPolynomial(poly *Polynomial) (*Dealing, error) {
	started := time.Now()
	defer poly.Zeroize()

	commitments := poly.Commit(d.curve)

	shares := make([]*SecretShare, d.shares)
	for i := 0; i < d.shares; i++ {
		// 1-based ids: x = 0 is reserved for the secret itself
		id, err := ParticipantIndex(i + 1).ToScalar(d.curve)
		if err != nil {
			d.auditFailure(err)
			return nil, ErrInvalidParticipantID.WithCause(err).WithDetails("index %d", i+1)
		}

		shares[i] = &SecretShare{ID: id, Value: poly.Evaluate(id)}
	}

	d.audit.OnShareDealing(NewAuditEventBuilder(AuditEventShareDealing, ReasonManualTrigger).
		WithCurve(d.curve.Name()).
		WithThreshold(d.threshold).
		WithShareCount(d.shares).
		BuildShareDealing(time.Since(started)))

	return &Dealing{Shares: shares, Commitments: commitments}, nil
}

// Recover reconstructs a dealt secret from a quorum of shares, emitting a
// secret recovery audit event for the attempt, successful or not.
func (d *Dealer) Recover(shares []*SecretShare) (Scalar, error) {
	started := time.Now()

	secret, err := RecoverSecret(d.curve, shares)
	if err != nil {
		d.audit.OnRecovery(NewAuditEventBuilder(AuditEventSecretRecovery, ReasonRecovery).
			WithCurve(d.curve.Name()).
			WithThreshold(d.threshold).
			WithShareCount(len(shares)).
			WithError(err).
			BuildRecovery(time.Since(started)))
		return nil, err
	}

	d.audit.OnRecovery(NewAuditEventBuilder(AuditEventSecretRecovery, ReasonRecovery).
		WithCurve(d.curve.Name()).
		WithThreshold(d.threshold).
		WithShareCount(len(shares)).
		BuildRecovery(time.Since(started)))

	return secret, nil
}

func (d *Dealer) auditFailure(err error) {
	d.audit.OnValidationFailure(NewAuditEventBuilder(AuditEventValidationFailure, ReasonValidationError).
		WithCurve(d.curve.Name()).
		WithThreshold(d.threshold).
		WithError(err).
		BuildValidationFailure("dealing", err.Error()))
}

// PublicShare evaluates the commitment polynomial at the share's id, yielding
// the public counterpart of that participant's secret share.
func PublicShare(curve Curve, commitments []Point, id Scalar) Point {
	return evaluateCommitments(curve, commitments, id)
}

// VerifyShare checks a share against the dealing's Feldman commitments:
// base*share.Value must equal the commitment polynomial at share.ID.
func VerifyShare(curve Curve, share *SecretShare, commitments []Point) error {
	if share == nil || share.ID == nil || share.Value == nil {
		return ErrInvalidRecoveryInput.WithDetails("share is nil or incomplete")
	}
	if len(commitments) == 0 {
		return ErrShareVerificationFailed.WithDetails("no commitments supplied")
	}

	expected := evaluateCommitments(curve, commitments, share.ID)
	if !curve.BasePoint().Mul(share.Value).Equal(expected) {
		return ErrShareVerificationFailed
	}
	return nil
}
