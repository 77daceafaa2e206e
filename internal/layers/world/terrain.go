package world

import (
	"github.com/aquilax/go-perlin"

	"github.com/vovakirdan/frameloop/internal/core"
)

type biome struct {
	name  string
	glyph rune
	color core.Color
	below float64 // upper bound of the noise band
}

// biomes is ordered by rising noise value.
var biomes = []biome{
	{"deep water", '≈', core.ColorBlue, -0.25},
	{"water", '~', core.ColorBrightBlue, -0.08},
	{"sand", '.', core.ColorYellow, 0},
	{"grass", '"', core.ColorGreen, 0.18},
	{"forest", '♣', core.ColorBrightGreen, 0.32},
	{"rock", '^', core.ColorGray, 0.45},
	{"snow", '*', core.ColorBrightWhite, 2},
}

const (
	noiseScale    = 0.06
	cacheCapacity = 1 << 15
)

type cell struct{ x, y int }

// terrain samples a Perlin height field on the integer cell grid and keeps
// recent samples, since the view mostly scrolls over cells it has seen.
type terrain struct {
	noise *perlin.Perlin
	cache map[cell]float64
}

func newTerrain(seed int64) *terrain {
	return &terrain{
		noise: perlin.NewPerlin(2, 2, 3, seed),
		cache: make(map[cell]float64, cacheCapacity),
	}
}

// height returns the noise value at a cell, roughly in [-1, 1]. Rows are
// sampled twice as far apart as columns because terminal cells are tall.
func (t *terrain) height(x, y int) float64 {
	c := cell{x, y}
	if h, ok := t.cache[c]; ok {
		return h
	}
	if len(t.cache) >= cacheCapacity {
		clear(t.cache)
	}
	h := t.noise.Noise2D(float64(x)*noiseScale, float64(y)*noiseScale*2)
	t.cache[c] = h
	return h
}

func (t *terrain) biomeAt(x, y int) biome {
	h := t.height(x, y)
	for _, b := range biomes {
		if h < b.below {
			return b
		}
	}
	return biomes[len(biomes)-1]
}
