package sectlib

import "math"

// Polygon is an arbitrary simple polygonal section. Vertices run
// counter-clockwise; coordinates need not be centered, properties are
// reported about the centroid.
type Polygon struct {
	Vertices []Point
}

func (p Polygon) Name() string { return "poly" }

// Properties computes area and centroid with the shoelace formula and
// the second moments with the corresponding Green's-theorem sums. The
// torsion constant uses the polar approximation Iy+Iz, which is exact
// only for circular sections; treat it as an upper bound.
func (p Polygon) Properties() Properties {
	n := len(p.Vertices)
	if n < 3 {
		return Properties{}
	}

	var signedArea, sy, sz float64
	var iyy, izz float64
	minY, maxY := p.Vertices[0].Y, p.Vertices[0].Y
	minZ, maxZ := p.Vertices[0].Z, p.Vertices[0].Z

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		vi, vj := p.Vertices[i], p.Vertices[j]
		cross := vi.Y*vj.Z - vj.Y*vi.Z

		signedArea += cross
		sy += (vi.Y + vj.Y) * cross
		sz += (vi.Z + vj.Z) * cross
		izz += (vi.Z*vi.Z + vi.Z*vj.Z + vj.Z*vj.Z) * cross
		iyy += (vi.Y*vi.Y + vi.Y*vj.Y + vj.Y*vj.Y) * cross

		minY = math.Min(minY, vi.Y)
		maxY = math.Max(maxY, vi.Y)
		minZ = math.Min(minZ, vi.Z)
		maxZ = math.Max(maxZ, vi.Z)
	}

	signedArea /= 2
	area := math.Abs(signedArea)
	if area == 0 {
		return Properties{}
	}
	cy := sy / (6 * signedArea)
	cz := sz / (6 * signedArea)

	// second moments about the origin, then shift to the centroid
	iz := math.Abs(izz / 12)
	iy := math.Abs(iyy / 12)
	iz -= area * cz * cz
	iy -= area * cy * cy

	return Properties{
		A:      area,
		Iy:     iy,
		Iz:     iz,
		J:      iy + iz,
		Width:  maxY - minY,
		Height: maxZ - minZ,
	}
}

func (p Polygon) Outline() []Point {
	props := p.Properties()
	if props.A == 0 {
		return nil
	}

	var signedArea, sy, sz float64
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := p.Vertices[i].Y*p.Vertices[j].Z - p.Vertices[j].Y*p.Vertices[i].Z
		signedArea += cross
		sy += (p.Vertices[i].Y + p.Vertices[j].Y) * cross
		sz += (p.Vertices[i].Z + p.Vertices[j].Z) * cross
	}
	signedArea /= 2
	cy := sy / (6 * signedArea)
	cz := sz / (6 * signedArea)

	out := make([]Point, n)
	for i, v := range p.Vertices {
		out[i] = Point{v.Y - cy, v.Z - cz}
	}
	return out
}
