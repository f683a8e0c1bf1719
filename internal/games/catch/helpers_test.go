package catch

import (
	"math"

	"github.com/vovakirdan/tui-catch/internal/config"
)

// scriptedRand replays fixed draws so spawn decisions can be asserted exactly.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		panic("scriptedRand: out of floats")
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		panic("scriptedRand: out of ints")
	}
	i := r.ints[0] % n
	r.ints = r.ints[1:]
	return i
}

func testConfig() config.CatchConfig {
	return config.DefaultCatchConfig()
}

var testField = Field{Width: 400, Height: 600}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
