/*package grid contains the node-centered field containers which couple
particles to the mesh. Scalar and VecField share a flat array layout and the
same cloud-in-cell weighting for their Scatter and Gather operations.*/
package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/gopic/geom"
)

// Dims gives the number of nodes along each axis of a field.
type Dims [3]int

// NewDims returns the node counts (nx, ny, nz). Every axis needs at least
// three nodes for the interior second-difference stencils to exist.
func NewDims(nx, ny, nz int) Dims {
	if nx < 3 || ny < 3 || nz < 3 {
		panic(fmt.Sprintf(
			"Dimensions (%d, %d, %d) are invalid: every axis needs at "+
				"least 3 nodes.", nx, ny, nz,
		))
	}
	return Dims{nx, ny, nz}
}

// Len returns the total number of nodes.
func (d Dims) Len() int { return d[0] * d[1] * d[2] }

// Idx returns the flat index of the node (i, j, k).
func (d Dims) Idx(i, j, k int) int {
	return i + j*d[0] + k*d[0]*d[1]
}

// cell is the base node of the grid cell containing a logical coordinate,
// along with the fractional offsets inside that cell.
type cell struct {
	i, j, k    int
	di, dj, dk float64
}

// scatterCell locates the cell containing lc. ok is false if lc falls
// outside [0, dim-1) on any axis: such contributions are dropped rather
// than extrapolated.
func (d Dims) scatterCell(lc geom.Vec) (c cell, ok bool) {
	if lc[0] < 0 || lc[0] >= float64(d[0]-1) ||
		lc[1] < 0 || lc[1] >= float64(d[1]-1) ||
		lc[2] < 0 || lc[2] >= float64(d[2]-1) {
		return cell{}, false
	}
	return d.gatherCell(lc), true
}

// gatherCell is the same lookup without the drop policy. A coordinate on an
// upper face folds into the last interior cell with an offset of exactly 1,
// so Gather is defined on the closed interval [0, dim-1].
func (d Dims) gatherCell(lc geom.Vec) cell {
	i, j, k := int(lc[0]), int(lc[1]), int(lc[2])
	if i > d[0]-2 {
		i = d[0] - 2
	}
	if j > d[1]-2 {
		j = d[1] - 2
	}
	if k > d[2]-2 {
		k = d[2] - 2
	}
	return cell{
		i, j, k,
		lc[0] - float64(i), lc[1] - float64(j), lc[2] - float64(k),
	}
}

// corners returns the flat indices of the cell's eight corner nodes and the
// trilinear weight of each. The weights sum to exactly 1.
func (c cell) corners(d Dims) (idx [8]int, w [8]float64) {
	i, j, k := c.i, c.j, c.k
	di, dj, dk := c.di, c.dj, c.dk

	idx = [8]int{
		d.Idx(i, j, k),
		d.Idx(i+1, j, k),
		d.Idx(i, j+1, k),
		d.Idx(i+1, j+1, k),
		d.Idx(i, j, k+1),
		d.Idx(i+1, j, k+1),
		d.Idx(i, j+1, k+1),
		d.Idx(i+1, j+1, k+1),
	}
	w = [8]float64{
		(1 - di) * (1 - dj) * (1 - dk),
		di * (1 - dj) * (1 - dk),
		(1 - di) * dj * (1 - dk),
		di * dj * (1 - dk),
		(1 - di) * (1 - dj) * dk,
		di * (1 - dj) * dk,
		(1 - di) * dj * dk,
		di * dj * dk,
	}
	return idx, w
}

//////////////////
// Scalar field //
//////////////////

// Scalar is a node-centered scalar field.
type Scalar struct {
	Dims Dims
	Data []float64
}

// NewScalar allocates a zero-initialized scalar field.
func NewScalar(d Dims) *Scalar {
	return &Scalar{d, make([]float64, d.Len())}
}

// At returns the value at the node (i, j, k). The caller guarantees the
// triple is within the field's shape.
func (f *Scalar) At(i, j, k int) float64 { return f.Data[f.Dims.Idx(i, j, k)] }

// Set assigns the value at the node (i, j, k).
func (f *Scalar) Set(i, j, k int, x float64) { f.Data[f.Dims.Idx(i, j, k)] = x }

// Clear resets every node to zero in place.
func (f *Scalar) Clear() {
	for i := range f.Data {
		f.Data[i] = 0
	}
}

// Copy returns a deep copy of f.
func (f *Scalar) Copy() *Scalar {
	out := NewScalar(f.Dims)
	copy(out.Data, f.Data)
	return out
}

// Sum returns the sum over all nodes.
func (f *Scalar) Sum() float64 { return floats.Sum(f.Data) }

// Scatter deposits val onto the eight nodes surrounding the logical
// coordinate lc with cloud-in-cell weights. Coordinates outside [0, dim-1)
// on any axis are dropped silently.
func (f *Scalar) Scatter(lc geom.Vec, val float64) {
	c, ok := f.Dims.scatterCell(lc)
	if !ok {
		return
	}
	idx, w := c.corners(f.Dims)
	for n := 0; n < 8; n++ {
		f.Data[idx[n]] += val * w[n]
	}
}

// Gather returns the trilinearly interpolated value at the logical
// coordinate lc. It is defined for lc in [0, dim-1] on every axis.
func (f *Scalar) Gather(lc geom.Vec) float64 {
	idx, w := f.Dims.gatherCell(lc).corners(f.Dims)
	sum := 0.0
	for n := 0; n < 8; n++ {
		sum += f.Data[idx[n]] * w[n]
	}
	return sum
}

// Add returns a new field with x added to every node.
func (f *Scalar) Add(x float64) *Scalar { return f.mapped(func(v float64) float64 { return v + x }) }

// Sub returns a new field with x subtracted from every node.
func (f *Scalar) Sub(x float64) *Scalar { return f.mapped(func(v float64) float64 { return v - x }) }

// Mul returns a new field with every node multiplied by x.
func (f *Scalar) Mul(x float64) *Scalar { return f.mapped(func(v float64) float64 { return v * x }) }

// Div returns a new field with every node divided by x.
func (f *Scalar) Div(x float64) *Scalar { return f.mapped(func(v float64) float64 { return v / x }) }

func (f *Scalar) mapped(op func(float64) float64) *Scalar {
	out := NewScalar(f.Dims)
	for i, v := range f.Data {
		out.Data[i] = op(v)
	}
	return out
}

// AddScaledSelf adds x*g to f in place. The fields must have the same shape.
func (f *Scalar) AddScaledSelf(g *Scalar, x float64) {
	f.checkShape(g)
	floats.AddScaled(f.Data, x, g.Data)
}

// DivFieldSelf divides f elementwise by g in place. The fields must have the
// same shape.
func (f *Scalar) DivFieldSelf(g *Scalar) {
	f.checkShape(g)
	floats.Div(f.Data, g.Data)
}

func (f *Scalar) checkShape(g *Scalar) {
	if f.Dims != g.Dims {
		panic(fmt.Sprintf(
			"Field shapes %v and %v do not match.", f.Dims, g.Dims,
		))
	}
}

//////////////////
// Vector field //
//////////////////

// VecField is a node-centered vector field.
type VecField struct {
	Dims Dims
	Data []geom.Vec
}

// NewVecField allocates a zero-initialized vector field.
func NewVecField(d Dims) *VecField {
	return &VecField{d, make([]geom.Vec, d.Len())}
}

// At returns the vector at the node (i, j, k).
func (f *VecField) At(i, j, k int) geom.Vec { return f.Data[f.Dims.Idx(i, j, k)] }

// Set assigns the vector at the node (i, j, k).
func (f *VecField) Set(i, j, k int, v geom.Vec) { f.Data[f.Dims.Idx(i, j, k)] = v }

// Clear resets every node to the zero vector in place.
func (f *VecField) Clear() {
	for i := range f.Data {
		f.Data[i] = geom.Vec{}
	}
}

// Copy returns a deep copy of f.
func (f *VecField) Copy() *VecField {
	out := NewVecField(f.Dims)
	copy(out.Data, f.Data)
	return out
}

// Scatter deposits val scaled by the cloud-in-cell weights onto the eight
// nodes surrounding lc. Coordinates outside [0, dim-1) are dropped silently.
func (f *VecField) Scatter(lc geom.Vec, val geom.Vec) {
	c, ok := f.Dims.scatterCell(lc)
	if !ok {
		return
	}
	idx, w := c.corners(f.Dims)
	for n := 0; n < 8; n++ {
		f.Data[idx[n]] = f.Data[idx[n]].Add(val.Scale(w[n]))
	}
}

// Gather returns the trilinearly interpolated vector at lc. It is defined
// for lc in [0, dim-1] on every axis.
func (f *VecField) Gather(lc geom.Vec) geom.Vec {
	idx, w := f.Dims.gatherCell(lc).corners(f.Dims)
	sum := geom.Vec{}
	for n := 0; n < 8; n++ {
		sum = sum.Add(f.Data[idx[n]].Scale(w[n]))
	}
	return sum
}

// Mul returns a new field with every node scaled by x.
func (f *VecField) Mul(x float64) *VecField {
	out := NewVecField(f.Dims)
	for i, v := range f.Data {
		out.Data[i] = v.Scale(x)
	}
	return out
}
