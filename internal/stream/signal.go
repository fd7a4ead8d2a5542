package stream

import (
	"math"
	"math/rand"
	"sync"
)

// Source produces the memory and CPU readings at time t.
type Source interface {
	Sample(t float64) (memory, cpu float64)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(t float64) (memory, cpu float64)

func (f SourceFunc) Sample(t float64) (float64, float64) { return f(t) }

// Generator is the synthetic server load: a slow sine for memory and a
// faster cosine for CPU, each with uniform jitter.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

func (g *Generator) Sample(t float64) (float64, float64) {
	g.mu.Lock()
	u1, u2 := g.rng.Float64(), g.rng.Float64()
	g.mu.Unlock()
	return Memory(t) + u1*10, CPU(t) + u2*5
}

// Memory is the noiseless memory signal 50 + 20·sin(0.1t).
func Memory(t float64) float64 { return 50 + 20*math.Sin(0.1*t) }

// CPU is the noiseless CPU signal 30 + 15·cos(0.15t).
func CPU(t float64) float64 { return 30 + 15*math.Cos(0.15*t) }

// Smooth is the Generator without jitter.
var Smooth = SourceFunc(func(t float64) (float64, float64) { return Memory(t), CPU(t) })
