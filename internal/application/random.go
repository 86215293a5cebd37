package application

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/precieux0/instagram-repo2/internal/ports"
)

// NewRand returns a goroutine-safe source. The scheduler and the reconnect
// side channel draw from the same generator.
func NewRand(seed1, seed2 uint64) ports.Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed1, seed2))}
}

type lockedRand struct {
	mu sync.Mutex
	r  ports.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func drawInRange(rng ports.Rand, r domain.Range) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.IntN(r.Max-r.Min+1)
}

func drawDelay(rng ports.Rand, d domain.DelayRange) time.Duration {
	minSeconds := int(d.Min / time.Second)
	maxSeconds := int(d.Max / time.Second)
	return time.Duration(drawInRange(rng, domain.Range{Min: minSeconds, Max: maxSeconds})) * time.Second
}
