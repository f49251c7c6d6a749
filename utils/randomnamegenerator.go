package utils

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/Pallinder/go-randomdata"
)

// RandomNameGenerator hands out unique silly names. The sequence is fixed by
// the seed so the same scene gets the same names on every run.
type RandomNameGenerator struct {
	mu    sync.Mutex
	seed  int64
	used  map[string]struct{}
	count int
}

func NewRandomNameGenerator(seed int64) *RandomNameGenerator {
	return &RandomNameGenerator{seed: seed}
}

func (rng *RandomNameGenerator) RandomName() string {
	rng.mu.Lock()
	defer rng.mu.Unlock()

	if rng.used == nil {
		rng.used = make(map[string]struct{})
		randomdata.CustomRand(rand.New(rand.NewSource(rng.seed)))
	}
	rng.count++
	for attempt := 0; attempt < 32; attempt++ {
		name := randomdata.SillyName()
		// avoid duplicate names
		if _, exists := rng.used[name]; !exists {
			rng.used[name] = struct{}{}
			return name
		}
	}
	name := fmt.Sprintf("%s%d", randomdata.SillyName(), rng.count)
	rng.used[name] = struct{}{}
	return name
}
