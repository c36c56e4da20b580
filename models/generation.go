package models

type GenerationTier string

const (
	TierPrimary     GenerationTier = "primary"
	TierSecondary   GenerationTier = "secondary"
	TierPlaceholder GenerationTier = "placeholder"
)

// ReasonQuotaOrAuth tags placeholder results produced after the remote
// tiers failed with quota or authorization errors.
const ReasonQuotaOrAuth = "quota_or_auth_fallback"

// GenerationResult is the outcome of the tiered image generation chain.
// Fallback results carry a reason code the UI surfaces next to the
// desaturated placeholder.
type GenerationResult struct {
	ImageURL string         `json:"image_url"`
	Tier     GenerationTier `json:"tier"`
	Fallback bool           `json:"fallback"`
	Reason   string         `json:"reason,omitempty"`
}
