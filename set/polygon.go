package set

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// HPolygon is a bounded two dimensional polygon in constraint representation
// { x : <D_i, x> <= O_i }, with the constraint normals sorted counter
// clockwise. Vertices are materialised lazily from adjacent constraint
// pairs.
type HPolygon struct {
	Directions [][2]float64
	Offsets    []float64
	vertices   [][2]float64
}

// NewHPolygon builds a polygon from constraint normals and offsets. The
// normals are sorted counter clockwise on construction and must positively
// span the plane for the polygon to be bounded.
func NewHPolygon(directions [][2]float64, offsets []float64) *HPolygon {
	if len(directions) != len(offsets) {
		panic(errors.New("set: polygon directions and offsets don't agree"))
	}
	if len(directions) < 3 {
		panic(errors.New("set: polygon needs at least three constraints"))
	}
	p := &HPolygon{Directions: directions, Offsets: offsets}
	sort.Sort(byAngle{p})
	return p
}

type byAngle struct{ p *HPolygon }

func (s byAngle) Len() int { return len(s.p.Directions) }
func (s byAngle) Less(i, j int) bool {
	di, dj := s.p.Directions[i], s.p.Directions[j]
	return math.Atan2(di[1], di[0]) < math.Atan2(dj[1], dj[0])
}
func (s byAngle) Swap(i, j int) {
	s.p.Directions[i], s.p.Directions[j] = s.p.Directions[j], s.p.Directions[i]
	s.p.Offsets[i], s.p.Offsets[j] = s.p.Offsets[j], s.p.Offsets[i]
}

// Dim of a polygon is two.
func (p *HPolygon) Dim() int { return 2 }

// Vertices returns the polygon vertices, one per adjacent constraint pair.
func (p *HPolygon) Vertices() [][2]float64 {
	if p.vertices != nil {
		return p.vertices
	}
	m := len(p.Directions)
	p.vertices = make([][2]float64, 0, m)
	for i := 0; i < m; i++ {
		j := (i + 1) % m
		v, ok := lineIntersection(p.Directions[i], p.Offsets[i], p.Directions[j], p.Offsets[j])
		if ok {
			p.vertices = append(p.vertices, v)
		}
	}
	return p.vertices
}

// Support maximises over the vertices.
func (p *HPolygon) Support(d mat.Vector) float64 {
	checkDim(p, d)
	res := math.Inf(-1)
	for _, v := range p.Vertices() {
		s := d.AtVec(0)*v[0] + d.AtVec(1)*v[1]
		if s > res {
			res = s
		}
	}
	return res
}

// lineIntersection solves <u,x> = ru, <v,x> = rv.
func lineIntersection(u [2]float64, ru float64, v [2]float64, rv float64) ([2]float64, bool) {
	det := u[0]*v[1] - u[1]*v[0]
	if math.Abs(det) < 1e-14 {
		return [2]float64{}, false
	}
	return [2]float64{
		(ru*v[1] - rv*u[1]) / det,
		(rv*u[0] - ru*v[0]) / det,
	}, true
}

// OverapproximatePolygon computes a polygon overapproximation of a two
// dimensional set within Hausdorff distance eps, by recursive refinement of
// the support directions. Starting from the four axis directions, each
// angular sector is split while the gap between the supporting line at the
// bisector and the outer vertex of the sector exceeds eps.
func OverapproximatePolygon(x LazySet, eps float64) *HPolygon {
	if x.Dim() != 2 {
		panic(errors.New("set: polygon overapproximation needs a two dimensional set"))
	}
	if eps <= 0 {
		panic(errors.New("set: polygon tolerance must be positive"))
	}
	axes := [][2]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	var dirs [][2]float64
	var offs []float64
	for i := range axes {
		u := axes[i]
		v := axes[(i+1)%len(axes)]
		ru := support2(x, u)
		rv := support2(x, v)
		refineSector(x, u, ru, v, rv, eps, 0, &dirs, &offs)
	}
	return NewHPolygon(dirs, offs)
}

const maxRefinementDepth = 40

// refineSector emits the constraint for u and recursively splits (u, v)
// until the sector error is below eps. The constraint for v belongs to the
// next sector.
func refineSector(x LazySet, u [2]float64, ru float64, v [2]float64, rv float64, eps float64, depth int, dirs *[][2]float64, offs *[]float64) {
	w := [2]float64{u[0] + v[0], u[1] + v[1]}
	norm := math.Hypot(w[0], w[1])
	w[0] /= norm
	w[1] /= norm
	rw := support2(x, w)
	// The sector error is how far the outer vertex of the two neighbour
	// constraints sticks out beyond the supporting line at the bisector.
	p, ok := lineIntersection(u, ru, v, rv)
	gap := math.Inf(1)
	if ok {
		gap = w[0]*p[0] + w[1]*p[1] - rw
	}
	if gap <= eps || depth >= maxRefinementDepth {
		*dirs = append(*dirs, u)
		*offs = append(*offs, ru)
		return
	}
	refineSector(x, u, ru, w, rw, eps, depth+1, dirs, offs)
	refineSector(x, w, rw, v, rv, eps, depth+1, dirs, offs)
}

func support2(x LazySet, d [2]float64) float64 {
	res := x.Support(mat.NewVecDense(2, []float64{d[0], d[1]}))
	if NanOrInf(res) {
		panic(errors.New("set: non-finite support value"))
	}
	return res
}
