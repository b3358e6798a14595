package engine

// Options are the behavioral toggles the engine recognizes.
type Options struct {
	// LearnResistances lets monsters accumulate knowledge of the player's
	// resistances from observed outcomes and prune spells accordingly.
	LearnResistances bool

	// CheatKnowledge gives monsters the player's true resistance flags
	// without having to learn them.
	CheatKnowledge bool

	// SmallSenseRange halves every race's awareness radius for flow-based
	// detection.
	SmallSenseRange bool

	// DisturbNear interrupts the player whenever a visible monster moves
	// nearby.
	DisturbNear bool
}

// DefaultOptions matches a standard game: learning on, cheating off.
func DefaultOptions() Options {
	return Options{
		LearnResistances: true,
		DisturbNear:      true,
	}
}

func (o Options) senseRange(base int) int {
	if o.SmallSenseRange {
		return base / 2
	}
	return base
}
