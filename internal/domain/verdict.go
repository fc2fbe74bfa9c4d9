package domain

// RejectionReason - код причины, по которой сущность признана фантомной
type RejectionReason string

const (
	ReasonNone              RejectionReason = "NONE"
	ReasonBlacklistedLayer  RejectionReason = "BLACKLISTED_LAYER"
	ReasonInvisible         RejectionReason = "INVISIBLE"
	ReasonNoValidPoints     RejectionReason = "NO_VALID_POINTS"
	ReasonConnectsToOrigin  RejectionReason = "CONNECTS_TO_ORIGIN"
	ReasonExcessiveLength   RejectionReason = "EXCESSIVE_LENGTH"
	ReasonFarFromCenter     RejectionReason = "FAR_FROM_CENTER"
	ReasonExtremeCoordinate RejectionReason = "EXTREME_COORDINATE"
)

// ClassificationVerdict - результат проверки одной сущности.
// Reason содержит код первого сработавшего правила; правила проверяются
// в фиксированном порядке приоритета, дальше первая совпавшая не идём.
type ClassificationVerdict struct {
	IsPhantom bool            `json:"is_phantom"`
	Reason    RejectionReason `json:"reason"`
}

// ValidVerdict - вердикт для сущности, не попавшей ни под одно правило
func ValidVerdict() ClassificationVerdict {
	return ClassificationVerdict{IsPhantom: false, Reason: ReasonNone}
}

// PhantomVerdict - вердикт с указанием причины отклонения
func PhantomVerdict(reason RejectionReason) ClassificationVerdict {
	return ClassificationVerdict{IsPhantom: true, Reason: reason}
}
