package fake

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Faker is the single random source of a generation run. It is seeded once
// and never reseeded, so a seed fully determines every value drawn from it.
type Faker struct {
	rand *rand.Rand
}

func New(seed uint64) *Faker {
	return &Faker{
		rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// IntN returns a value in [0, n).
func (f *Faker) IntN(n int) int {
	return f.rand.IntN(n)
}

// Between returns an integer in [lo, hi).
func (f *Faker) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + f.rand.IntN(hi-lo)
}

// Uniform returns a float in [lo, hi).
func (f *Faker) Uniform(lo, hi float64) float64 {
	return lo + f.rand.Float64()*(hi-lo)
}

func (f *Faker) Bernoulli(p float64) bool {
	return f.rand.Float64() < p
}

func (f *Faker) Pick(items []string) string {
	return items[f.rand.IntN(len(items))]
}

// Weighted returns an index drawn with the given relative weights.
func (f *Faker) Weighted(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	x := f.rand.Float64() * total
	for i, w := range weights {
		if x < w {
			return i
		}
		x -= w
	}
	return len(weights) - 1
}

// SampleIndexes draws k distinct indexes out of [0, n) using a partial
// Fisher-Yates shuffle. The result keeps draw order.
func (f *Faker) SampleIndexes(n, k int) []int {
	if k > n {
		k = n
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + f.rand.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

// Day returns start shifted by a whole number of days in [0, days).
func (f *Faker) Day(start time.Time, days int) time.Time {
	return start.AddDate(0, 0, f.rand.IntN(days))
}

func (f *Faker) Phone() string {
	return fmt.Sprintf("300-%07d", f.Between(1000000, 10000000))
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Pick chooses one element of a typed slice.
func Pick[T any](f *Faker, items []T) T {
	return items[f.rand.IntN(len(items))]
}
