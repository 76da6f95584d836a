package tbls

// SecurityLevel classifies how conservative a (threshold, shares) choice is
type SecurityLevel string

const (
	SecurityLevelLow    SecurityLevel = "low"
	SecurityLevelMedium SecurityLevel = "medium"
	SecurityLevelHigh   SecurityLevel = "high"
)

// Byzantine fault tolerance requires the threshold to clear 2/3 of the set
const byzantineRatio = 2.0 / 3.0

// ValidationResult contains the result of parameter validation
type ValidationResult struct {
	Valid                   bool          `json:"valid"`
	SecurityLevel           SecurityLevel `json:"security_level"`
	ByzantineFaultTolerance bool          `json:"byzantine_fault_tolerance"`
	Warnings                []string      `json:"warnings,omitempty"`
}

// ThresholdValidator checks (threshold, shares) parameters before a dealer
// is constructed.
type ThresholdValidator struct {
	MinThreshold int `json:"min_threshold"`
	MaxThreshold int `json:"max_threshold"`
	MaxShares    int `json:"max_shares"`
}

// NewDefaultThresholdValidator creates a validator with default bounds. The
// upper bounds exist to keep the quadratic recovery cost within reason, not
// for correctness.
func NewDefaultThresholdValidator() *ThresholdValidator {
	return &ThresholdValidator{
		MinThreshold: 1,
		MaxThreshold: 1000,
		MaxShares:    4096,
	}
}

// Validate rejects structurally unusable parameters
func (tv *ThresholdValidator) Validate(threshold, shares int) error {
	if threshold < tv.MinThreshold {
		return ErrInvalidThreshold.WithDetails("threshold %d is below minimum %d", threshold, tv.MinThreshold)
	}
	if threshold > tv.MaxThreshold {
		return ErrInvalidThreshold.WithDetails("threshold %d exceeds maximum %d", threshold, tv.MaxThreshold)
	}
	if shares < threshold {
		return ErrThresholdTooHigh.WithDetails("threshold %d, shares %d", threshold, shares)
	}
	if shares > tv.MaxShares {
		return ErrInvalidThreshold.WithDetails("share count %d exceeds maximum %d", shares, tv.MaxShares)
	}
	return nil
}

// Assess reports how conservative the parameters are. Unlike Validate it
// never fails; callers use it for operator-facing warnings.
func (tv *ThresholdValidator) Assess(threshold, shares int) *ValidationResult {
	result := &ValidationResult{
		Valid:         tv.Validate(threshold, shares) == nil,
		SecurityLevel: SecurityLevelMedium,
	}
	if !result.Valid {
		result.SecurityLevel = SecurityLevelLow
		return result
	}

	ratio := float64(threshold) / float64(shares)
	result.ByzantineFaultTolerance = ratio > byzantineRatio

	switch {
	case threshold == 1:
		result.SecurityLevel = SecurityLevelLow
		result.Warnings = append(result.Warnings, "threshold 1 means any single share reveals the secret")
	case ratio <= 0.5:
		result.SecurityLevel = SecurityLevelLow
		result.Warnings = append(result.Warnings, "threshold at or below half the share count")
	case result.ByzantineFaultTolerance:
		result.SecurityLevel = SecurityLevelHigh
	}

	return result
}
