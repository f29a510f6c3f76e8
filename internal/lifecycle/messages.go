package lifecycle

import "fitpromo/internal/models"

type MessageSet string

const (
	MessagesInit        MessageSet = "init"
	MessagesPreparation MessageSet = "preparation"
	MessagesAnalysis    MessageSet = "analysis"
	MessagesGeneration  MessageSet = "generation"
)

var messageSets = map[MessageSet][]string{
	MessagesInit: {
		"Assembling the AI crew...",
		"Warming up the creative engine...",
		"Reading the promotion brief...",
	},
	MessagesPreparation: {
		"Assembling the AI crew...",
		"Warming up the creative engine...",
		"Reading the promotion brief...",
	},
	MessagesAnalysis: {
		"Studying the image closely...",
		"Decoding the brand DNA...",
		"Reading colors and mood...",
		"Designing the best composition...",
	},
	MessagesGeneration: {
		"The AI picked up the brush...",
		"Tuning the color palette...",
		"Adding a beauty touch...",
		"Searching for the perfect composition...",
		"Adjusting the lighting...",
		"Picking the best shot...",
		"Polishing the background...",
		"Layering in the brand mood...",
		"Adding the finishing touches...",
		"Almost there, hang tight...",
	},
}

// PhaseSet maps an aggregate status to the message set of its phase.
func PhaseSet(status models.GenerationStatus) MessageSet {
	switch status {
	case models.GenerationPending:
		return MessagesPreparation
	case models.GenerationAnalyzing:
		return MessagesAnalysis
	default:
		return MessagesGeneration
	}
}

// PhaseMessages returns the rotating messages shown while in status.
func PhaseMessages(status models.GenerationStatus) []string {
	return Messages(PhaseSet(status))
}

func Messages(set MessageSet) []string {
	msgs := messageSets[set]
	out := make([]string, len(msgs))
	copy(out, msgs)
	return out
}

// MessageSetFor picks the set for the current snapshot; before the first
// snapshot arrives the init set is used.
func MessageSetFor(gen *models.Generation) MessageSet {
	if gen == nil {
		return MessagesInit
	}
	return PhaseSet(gen.Status)
}
