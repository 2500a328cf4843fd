package terrain

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/hexterrain/pkg/math"
)

// Hex is an axial coordinate on the block lattice.
type Hex struct {
	Q, R int
}

// HexDirections are the six lattice steps, matching BlockShape corners.
var HexDirections = [6]Hex{
	{1, 0}, {0, 1}, {-1, 1}, {-1, 0}, {0, -1}, {1, -1},
}

// Add returns h + o.
func (h Hex) Add(o Hex) Hex {
	return Hex{h.Q + o.Q, h.R + o.R}
}

// Scale returns h * k.
func (h Hex) Scale(k int) Hex {
	return Hex{h.Q * k, h.R * k}
}

// Neighbor returns the adjacent cell in direction dir.
func (h Hex) Neighbor(dir int) Hex {
	return h.Add(HexDirections[mod6(dir)])
}

// RingHex returns the lattice cell of block (ring, line, segment).
func RingHex(ring, line, segment int) Hex {
	if ring == 0 {
		return Hex{}
	}
	return HexDirections[mod6(line)].Scale(ring).Add(HexDirections[mod6(line+2)].Scale(segment))
}

// lattice converts between axial cells and world XZ for blocks spaced
// spacing apart.
type lattice struct {
	spacing float32
}

func (lt lattice) world(h Hex) math.Vec2 {
	a := BlockShape.Corner(0).Scale(lt.spacing / cos30)
	b := BlockShape.Corner(1).Scale(lt.spacing / cos30)
	return a.Scale(float32(h.Q)).Add(b.Scale(float32(h.R)))
}

// nearest returns the cell whose centre is closest to p.
func (lt lattice) nearest(p math.Vec2) Hex {
	r := p.X / (lt.spacing * cos30)
	q := p.Y/lt.spacing - r*sin30
	return cubeRound(q, r)
}

func cubeRound(q, r float32) Hex {
	s := -q - r
	rq, rr, rs := round(q), round(r), round(s)
	dq, dr, ds := math32.Abs(rq-q), math32.Abs(rr-r), math32.Abs(rs-s)
	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	}
	return Hex{int(rq), int(rr)}
}

func round(x float32) float32 {
	return math32.Floor(x + 0.5)
}
