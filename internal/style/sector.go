package style

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Sector identifies one clover sector. Index is 1-based; angles are in
// degrees, measured clockwise on screen from the positive X axis.
type Sector struct {
	Index int
	Start float64
	End   float64
}

// SectorAt returns the sector of a clover centred at center (pixels) that
// the pointer pixel falls in. A pointer exactly on the positive X axis
// resolves to the last sector.
func SectorAt(center, pointer r2.Vec, sectorAngle, gapAngle float64) Sector {
	d := r2.Sub(pointer, center)
	angle := math.Atan2(d.Y, d.X) * 180 / math.Pi
	if angle <= 0 {
		angle += 360
	}
	step := sectorAngle + gapAngle
	index := int(math.Ceil(angle / step))
	start := float64(index-1) * step
	return Sector{Index: index, Start: start, End: start + sectorAngle}
}

// SectorAt resolves the pointer against a clover style. It returns false
// for any other kind.
func (s *Style) SectorAt(center, pointer r2.Vec) (Sector, bool) {
	if s.kind != KindClover || s.angle+s.spaceAngle <= 0 {
		return Sector{}, false
	}
	return SectorAt(center, pointer, s.angle, s.spaceAngle), true
}
