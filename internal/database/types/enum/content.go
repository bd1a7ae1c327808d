package enum

// ContentSeverity is the qualitative harm ranking of flagged content.
type ContentSeverity string

const (
	SeverityCritical ContentSeverity = "Critical"
	SeverityHigh     ContentSeverity = "High"
	SeverityMedium   ContentSeverity = "Medium"
	SeverityLow      ContentSeverity = "Low"
)

// Valid reports whether the severity is one of the known values.
func (s ContentSeverity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	default:
		return false
	}
}

// HighPriority reports whether the severity warrants an alert.
func (s ContentSeverity) HighPriority() bool {
	return s == SeverityCritical || s == SeverityHigh
}

// ContentCategory classifies the type of policy violation.
type ContentCategory string

const (
	CategoryHateSpeech     ContentCategory = "Hate Speech"
	CategoryMisinformation ContentCategory = "Misinformation"
	CategoryCyberbullying  ContentCategory = "Cyberbullying"
	CategoryHarassment     ContentCategory = "Harassment"
	CategorySelfHarm       ContentCategory = "Self-harm"
	CategoryThreats        ContentCategory = "Threats"
	CategoryOther          ContentCategory = "Other"
)

// Platform identifies the source platform of monitored content.
type Platform string

const (
	PlatformTwitter   Platform = "Twitter"
	PlatformReddit    Platform = "Reddit"
	PlatformFacebook  Platform = "Facebook"
	PlatformInstagram Platform = "Instagram"
	PlatformYouTube   Platform = "YouTube"
	PlatformTikTok    Platform = "TikTok"
	PlatformOther     Platform = "Other"
)

// AIDecision is the automated system's recommended disposition,
// subject to human override.
type AIDecision string

const (
	AIDecisionRemove  AIDecision = "Remove"
	AIDecisionFlag    AIDecision = "Flag for Review"
	AIDecisionApprove AIDecision = "Approve"
)

// ReviewDecision is the disposition chosen by a human moderator.
type ReviewDecision string

const (
	ReviewDecisionApprove ReviewDecision = "approve"
	ReviewDecisionRemove  ReviewDecision = "remove"
)

// Valid reports whether the decision is one of the known values.
func (d ReviewDecision) Valid() bool {
	return d == ReviewDecisionApprove || d == ReviewDecisionRemove
}

// Action maps the review decision to the audit trail action it produces.
func (d ReviewDecision) Action() ModeratorAction {
	if d == ReviewDecisionApprove {
		return ActionApproved
	}
	return ActionRemoved
}

// ModeratorAction is the kind of action recorded in the audit trail.
type ModeratorAction string

const (
	ActionRemoved   ModeratorAction = "Removed"
	ActionApproved  ModeratorAction = "Approved"
	ActionWarned    ModeratorAction = "Warned"
	ActionEscalated ModeratorAction = "Escalated"
	ActionReviewed  ModeratorAction = "Reviewed"
)
