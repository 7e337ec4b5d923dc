package terminal

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// countingSource returns a constant stream and counts draws
type countingSource struct {
	draws int
}

func (s *countingSource) Int63() int64 {
	s.draws++
	return 0
}

func (s *countingSource) Seed(int64) {}

func TestNextFollowsPattern(t *testing.T) {
	c := DefaultCatalog()
	rng := rand.New(rand.NewSource(7))

	p := 0
	var kinds []Kind
	for i := 0; i < 9; i++ {
		ch := Next(c, rng, p)
		require.Equal(t, (p+1)%PatternLength, ch.Pattern)
		require.Equal(t, KindForPattern(ch.Pattern), c.KindAt(ch.Index))
		kinds = append(kinds, c.KindAt(ch.Index))
		p = ch.Pattern
	}
	// starting from 0 the next positions are 1, 2, 0, ...
	require.Equal(t, []Kind{
		KindScript, KindReward, KindScript,
		KindScript, KindReward, KindScript,
		KindScript, KindReward, KindScript,
	}, kinds)
}

func TestNextRewardDrawsTwice(t *testing.T) {
	c := DefaultCatalog()
	src := &countingSource{}
	rng := rand.New(src)

	ch := Next(c, rng, 1)
	require.Equal(t, 2, ch.Pattern)
	require.Equal(t, 2, src.draws, "reward screen and reward image are separate draws")
	require.NotEmpty(t, ch.RewardURL)

	src.draws = 0
	ch = Next(c, rng, 2)
	require.Equal(t, 0, ch.Pattern)
	require.Equal(t, 1, src.draws)
	require.Empty(t, ch.RewardURL)
}

func TestNextAllowsImmediateRepeats(t *testing.T) {
	c := DefaultCatalog()
	rng := rand.New(&countingSource{})

	a := Next(c, rng, 0)
	b := Next(c, rng, 2)
	require.Equal(t, a.Index, b.Index)
}

func TestNextDeterministicForSeed(t *testing.T) {
	c := DefaultCatalog()
	run := func() []Choice {
		rng := rand.New(rand.NewSource(42))
		p := 0
		var out []Choice
		for i := 0; i < 30; i++ {
			ch := Next(c, rng, p)
			out = append(out, ch)
			p = ch.Pattern
		}
		return out
	}
	require.Equal(t, run(), run())
}

func TestRewardDrawsAreIndependent(t *testing.T) {
	c := DefaultCatalog()
	rng := rand.New(rand.NewSource(2024))

	urlIndex := make(map[string]int, len(c.RewardURLs))
	for i, u := range c.RewardURLs {
		urlIndex[u] = i
	}

	// 100 consecutive reward activations cover both marginals
	screens := make(map[int]int)
	urls := make(map[int]int)
	for i := 0; i < 100; i++ {
		ch := Next(c, rng, 1)
		screens[ch.Index]++
		urls[urlIndex[ch.RewardURL]]++
	}
	require.Len(t, screens, len(c.Rewards))
	require.Len(t, urls, len(c.RewardURLs))

	// every (screen, image) pairing occurs, nothing ties an image to a screen
	joint := make(map[[2]int]int)
	for i := 0; i < 2000; i++ {
		ch := Next(c, rng, 1)
		joint[[2]int{ch.Index, urlIndex[ch.RewardURL]}]++
	}
	require.Len(t, joint, len(c.Rewards)*len(c.RewardURLs))
}
