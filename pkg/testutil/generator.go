package testutil

import (
	"fmt"
	"math/rand"
	"path"

	"pgregory.net/rapid"
)

// GeneratorConfig controls tree generation.
type GeneratorConfig struct {
	Seed      int64 // Random seed for determinism
	MaxDepth  int   // Deepest directory level below "/"
	MaxFanout int   // Maximum sub-directories per directory
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:      42,
		MaxDepth:  4,
		MaxFanout: 5,
	}
}

// Generator creates random but reproducible directory trees.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// Tree builds a MapReader with a random hierarchy.
func (g *Generator) Tree() *MapReader {
	r := NewMapReader()
	var grow func(dir string, depth int)
	grow = func(dir string, depth int) {
		if depth > g.cfg.MaxDepth {
			return
		}
		n := g.rng.Intn(g.cfg.MaxFanout + 1)
		for i := 0; i < n; i++ {
			child := path.Join(dir, dirName(g.rng.Intn(26), i))
			r.Add(child)
			grow(child, depth+1)
		}
	}
	grow("/", 1)
	return r
}

// Wide builds "/" with n sibling directories named d000, d001, ...
func Wide(n int) *MapReader {
	r := NewMapReader()
	for i := 0; i < n; i++ {
		r.Add(fmt.Sprintf("/d%03d", i))
	}
	return r
}

// DrawTree draws a random hierarchy inside a rapid property.
func DrawTree(t *rapid.T, maxDepth, maxFanout int) *MapReader {
	r := NewMapReader()
	var grow func(dir string, depth int)
	grow = func(dir string, depth int) {
		if depth > maxDepth {
			return
		}
		n := rapid.IntRange(0, maxFanout).Draw(t, "fanout:"+dir)
		for i := 0; i < n; i++ {
			letter := rapid.IntRange(0, 25).Draw(t, "letter")
			child := path.Join(dir, dirName(letter, i))
			r.Add(child)
			grow(child, depth+1)
		}
	}
	grow("/", 1)
	return r
}

// dirName yields names unique among siblings whose first letter varies.
func dirName(letter, i int) string {
	return fmt.Sprintf("%c%d", 'a'+letter, i)
}
