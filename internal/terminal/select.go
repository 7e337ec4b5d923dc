package terminal

import "math/rand"

// PatternLength is the size of the repeating script, script, reward cycle
const PatternLength = 3

// KindForPattern maps a pattern position to the kind of screen it shows
func KindForPattern(p int) Kind {
	if p == PatternLength-1 {
		return KindReward
	}
	return KindScript
}

// Choice is the outcome of one next-screen selection
type Choice struct {
	Pattern   int
	Index     int
	RewardURL string // set only for reward choices
}

// Next advances the pattern and picks the next screen uniformly within the
// kind the pattern prescribes. Immediate repeats are allowed. A reward choice
// draws the reward screen and its image independently.
func Next(c Catalog, rng *rand.Rand, pattern int) Choice {
	next := (pattern + 1) % PatternLength
	if KindForPattern(next) == KindReward {
		ri := rng.Intn(len(c.Rewards))
		url := c.RewardURLs[rng.Intn(len(c.RewardURLs))]
		return Choice{Pattern: next, Index: len(c.Scripts) + ri, RewardURL: url}
	}
	return Choice{Pattern: next, Index: rng.Intn(len(c.Scripts))}
}
