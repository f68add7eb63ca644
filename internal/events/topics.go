package events

// Topic constants for domain events emitted by the rating platform.
const (
	TopicPremiumRecomputed             = "premium.recomputed"
	TopicPremiumDriftRepaired          = "premium.drift_repaired"
	TopicPremiumReconcileFallback      = "premium.reconcile_fallback"
	TopicContractRegenerationRequested = "contract.regeneration_requested"
	TopicContractGenerated             = "contract.generated"
)

// DefaultTopics returns the canonical list of emitted topics.
func DefaultTopics() []string {
	return []string{
		TopicPremiumRecomputed,
		TopicPremiumDriftRepaired,
		TopicPremiumReconcileFallback,
		TopicContractRegenerationRequested,
		TopicContractGenerated,
	}
}
