// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestV(t *testing.T) {
	var u V3
	v := V3{1, 2, 4}
	w := V3{0, -1, 2}

	if u.Add(&v, &w); u != (V3{1, 1, 6}) {
		t.Fatalf("V3.Add\nhave %v\nwant [1 1 6]", u)
	}
	if u.Sub(&v, &w); u != (V3{1, 3, 2}) {
		t.Fatalf("V3.Sub\nhave %v\nwant [1 3 2]", u)
	}
	if u.Scale(-1, &v); u != (V3{-1, -2, -4}) {
		t.Fatalf("V3.Scale\nhave %v\nwant [-1 -2 -4]", u)
	}
	if u.Scale(2, &w); u != (V3{0, -2, 4}) {
		t.Fatalf("V3.Scale\nhave %v\nwant [0 -2 4]", u)
	}
	if d := v.Dot(&w); d != 6 {
		t.Fatalf("V3.Dot\nhave %v\nwant 6\n", d)
	}
	if d := v.Dot(&v); d != 21 {
		t.Fatalf("V3.Dot\nhave %v\nwant 21\n", d)
	}
	if l := v.Len(); l != float32(math.Sqrt(21)) {
		t.Fatalf("V3.Len\nhave %v\nwant %v\n", l, math.Sqrt(21))
	}
	if l := w.Len(); l != float32(math.Sqrt(5)) {
		t.Fatalf("V3.Len\nhave %v\nwant %v\n", l, math.Sqrt(5))
	}

	v = V3{0, 0, -2}
	w = V3{0, 4, 0}

	if v.Norm(&v); v != (V3{0, 0, -1}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 0 -1]", v)
	}
	if w.Norm(&w); w != (V3{0, 1, 0}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 1 0]", w)
	}
	if u.Cross(&v, &w); u != (V3{1, 0, 0}) {
		t.Fatalf("V3.Cross\nhave %v\nwant [1 0 0]", u)
	}
	if u.Cross(&w, &v); u != (V3{-1, 0, 0}) {
		t.Fatalf("V3.Cross\nhave %v\nwant [-1 0 0]", u)
	}

	m := M3{
		{2, 0, 1},
		{1, 3, 2},
		{4, 2, 3},
	}
	v = V3{-1, 0, 1}

	if u.Mul(&m, &v); u != (V3{2, 2, 2}) {
		t.Fatalf("V3.Mul\nhave %v\nwant [2 2 2]", u)
	}
	m.I()
	if u.Mul(&m, &v); u != v {
		t.Fatalf("V3.Mul\nhave %v\nwant %v", u, v)
	}
}

func TestM(t *testing.T) {
	var l M3
	m := M3{
		{1, 4, 7},
		{2, 5, 8},
		{3, 6, 9},
	}
	n := M3{
		{0, 1, 0},
		{0, 0, 1},
		{1, 0, 0},
	}

	if l.I(); l != (M3{{1}, {0, 1}, {0, 0, 1}}) {
		t.Fatalf("M3.I\nhave %v\nwant [%v %v %v]", l, V3{1}, V3{0, 1}, V3{0, 0, 1})
	}
	if l.Mul(&m, &n); l != (M3{m[1], m[2], m[0]}) {
		t.Fatalf("M3.Mul\nhave %v\nwant [%v %v %v]", l, m[1], m[2], m[0])
	}
	if l.Mul(&n, &m); l != (M3{{7, 1, 4}, {8, 2, 5}, {9, 3, 6}}) {
		t.Fatalf("M3.Mul\nhave %v\nwant %v", l, M3{{7, 1, 4}, {8, 2, 5}, {9, 3, 6}})
	}
	if l.Transpose(&m); l != (M3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}) {
		t.Fatalf("M3.Transpose\nhave %v\nwant %v", l, M3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	}
	if l.Invert(&n); l != (M3{n[1], n[2], n[0]}) {
		t.Fatalf("M3.Invert\nhave %v\nwant %v", l, M3{n[1], n[2], n[0]})
	}
	l = m
	if ok := l.Invert(&m); ok || l != m {
		t.Fatalf("M3.Invert (singular)\nhave %v, %t\nwant %v, false", l, ok, m)
	}
}

func TestQ(t *testing.T) {
	var r Q
	q := Q{V: V3{1, 0, 0}, R: 3}
	p := Q{V: V3{0, 1, 0}, R: 3}

	if r.Mul(&q, &p); r.V != (V3{3, 3, 1}) || r.R != 9 {
		t.Fatalf("Q.Mul\nhave %v\nwant {[3 3 1] 9}", r)
	}
	if r.Mul(&p, &q); r.V != (V3{3, 3, -1}) || r.R != 9 {
		t.Fatalf("Q.Mul\nhave %v\nwant {[3 3 -1] 9}", r)
	}
	if q.Mul(&q, &q); q.V != (V3{6}) || q.R != 8 {
		t.Fatalf("Q.Mul\nhave %v\nwant {[6 0 0] 8}", q)
	}
}

func TestTRS(t *testing.T) {
	var x, r, s M4
	var q Q

	x.Translate(-1, -2, -3)
	q.Rotate(0, &V3{1})
	r.RotateQ(&q)
	s.Scale(5, 5, 5)
	x.Mul(&x, &r)
	x.Mul(&x, &s)
	if x != (M4{{5}, {1: 5}, {2: 5}, {-1, -2, -3, 1}}) {
		t.Fatalf("T*R*S\nhave %v\nwant %v", x, M4{{5}, {1: 5}, {2: 5}, {-1, -2, -3, 1}})
	}
	v := V4{1, 1, 1, 1}
	v.Mul(&x, &v)
	if v != (V4{4, 3, 2, 1}) {
		t.Fatalf("TRS*v\nhave %v\nwant %v", v, V4{4, 3, 2, 1})
	}
}

func TestVElem(t *testing.T) {
	var u V2
	v := V2{6, -8}
	w := V2{2, 4}

	if u.MulElem(&v, &w); u != (V2{12, -32}) {
		t.Fatalf("V2.MulElem\nhave %v\nwant [12 -32]", u)
	}
	if u.DivElem(&v, &w); u != (V2{3, -2}) {
		t.Fatalf("V2.DivElem\nhave %v\nwant [3 -2]", u)
	}
	if l := v.Len(); l != 10 {
		t.Fatalf("V2.Len\nhave %v\nwant 10", l)
	}
	if u.Norm(&v); u != (V2{0.6, -0.8}) {
		t.Fatalf("V2.Norm\nhave %v\nwant [0.6 -0.8]", u)
	}

	var x V4
	y := V4{1, 2, 3, 4}
	z := V4{4, 3, 2, 1}

	if x.Add(&y, &z); x != (V4{5, 5, 5, 5}) {
		t.Fatalf("V4.Add\nhave %v\nwant [5 5 5 5]", x)
	}
	if x.Sub(&y, &z); x != (V4{-3, -1, 1, 3}) {
		t.Fatalf("V4.Sub\nhave %v\nwant [-3 -1 1 3]", x)
	}
	if x.MulElem(&y, &z); x != (V4{4, 6, 6, 4}) {
		t.Fatalf("V4.MulElem\nhave %v\nwant [4 6 6 4]", x)
	}
	if d := y.Dot(&z); d != 20 {
		t.Fatalf("V4.Dot\nhave %v\nwant 20", d)
	}
}

const epsilon = 1e-4

func equalM4(m *M4, n mgl32.Mat4) bool {
	for i := range m {
		for j := range m[i] {
			if math.Abs(float64(m[i][j]-n[i*4+j])) > epsilon {
				return false
			}
		}
	}
	return true
}

func TestInvert(t *testing.T) {
	var m, n, p, id M4
	id.I()

	var r M4
	var s M4
	m.Translate(3, -7, 0.5)
	r.RotateXYZ(0.3, -1.2, 2)
	s.Scale(2, 0.5, 4)
	m.Mul(&m, &r)
	m.Mul(&m, &s)

	if !n.Invert(&m) {
		t.Fatal("M4.Invert: unexpected singular matrix")
	}
	p.Mul(&n, &m)
	for i := range p {
		for j := range p[i] {
			if math.Abs(float64(p[i][j]-id[i][j])) > epsilon {
				t.Fatalf("M4.Invert: n⋅m\nhave %v\nwant %v", p, id)
			}
		}
	}

	var g mgl32.Mat4
	for i := range m {
		copy(g[i*4:], m[i][:])
	}
	if !equalM4(&n, g.Inv()) {
		t.Fatalf("M4.Invert\nhave %v\nwant %v", n, g.Inv())
	}

	sing := M4{{1, 2, 3, 4}, {2, 4, 6, 8}, {0, 0, 1}, {0, 0, 0, 1}}
	n = sing
	if n.Invert(&n) || n != sing {
		t.Fatalf("M4.Invert (singular)\nhave %v\nwant %v", n, sing)
	}
}

func TestRotate(t *testing.T) {
	var m M4
	const angle = 0.75

	m.RotateX(angle)
	if g := mgl32.HomogRotate3DX(angle); !equalM4(&m, g) {
		t.Fatalf("M4.RotateX\nhave %v\nwant %v", m, g)
	}
	m.RotateY(angle)
	if g := mgl32.HomogRotate3DY(angle); !equalM4(&m, g) {
		t.Fatalf("M4.RotateY\nhave %v\nwant %v", m, g)
	}
	m.RotateZ(angle)
	if g := mgl32.HomogRotate3DZ(angle); !equalM4(&m, g) {
		t.Fatalf("M4.RotateZ\nhave %v\nwant %v", m, g)
	}

	x, y, z := float32(0.4), float32(-1.1), float32(2.3)
	m.RotateXYZ(x, y, z)
	g := mgl32.HomogRotate3DZ(z).Mul4(mgl32.HomogRotate3DY(y)).Mul4(mgl32.HomogRotate3DX(x))
	if !equalM4(&m, g) {
		t.Fatalf("M4.RotateXYZ\nhave %v\nwant %v", m, g)
	}

	var q Q
	var n M4
	q.Euler(x, y, z)
	if l := q.Len(); math.Abs(float64(l-1)) > epsilon {
		t.Fatalf("Q.Euler: Q.Len\nhave %v\nwant 1", l)
	}
	n.RotateQ(&q)
	if !equalM4(&n, g) {
		t.Fatalf("M4.RotateQ(Q.Euler)\nhave %v\nwant %v", n, g)
	}

	q.Rotate(angle, &V3{0, 1, 0})
	n.RotateQ(&q)
	if g := mgl32.HomogRotate3DY(angle); !equalM4(&n, g) {
		t.Fatalf("M4.RotateQ(Q.Rotate)\nhave %v\nwant %v", n, g)
	}
}

func TestApply(t *testing.T) {
	var m, r, tr M4
	var q Q

	m.Scale(2, 2, 2)
	q.Rotate(math.Pi/2, &V3{0, 0, 1})
	r.RotateQ(&q)
	m.Apply(&r)
	tr.Translate(10, 20, 30)
	m.Apply(&tr)

	v := V4{1, 0, 0, 1}
	v.Mul(&m, &v)
	want := V4{10, 22, 30, 1}
	for i := range v {
		if math.Abs(float64(v[i]-want[i])) > epsilon {
			t.Fatalf("M4.Apply: T⋅R⋅S⋅v\nhave %v\nwant %v", v, want)
		}
	}
	if p := m.Translation(); p != (V3{10, 20, 30}) {
		t.Fatalf("M4.Translation\nhave %v\nwant [10 20 30]", p)
	}
}

func TestTranslateLocalXZ(t *testing.T) {
	var m, r M4
	m.Translate(1, 5, 1)
	r.RotateY(math.Pi / 2)
	m.Mul(&m, &r)

	m.TranslateLocalXZ(0, -2)
	p := m.Translation()
	want := V3{-1, 5, 1}
	for i := range p {
		if math.Abs(float64(p[i]-want[i])) > epsilon {
			t.Fatalf("M4.TranslateLocalXZ\nhave %v\nwant %v", p, want)
		}
	}

	// Pitch must not change the height.
	m.RotateX(-math.Pi / 4)
	m[3][1] = 3
	m.TranslateLocalXZ(0, -1)
	if y := m[3][1]; y != 3 {
		t.Fatalf("M4.TranslateLocalXZ: y\nhave %v\nwant 3", y)
	}
	if z := m[3][2]; z >= 0 {
		t.Fatalf("M4.TranslateLocalXZ: z\nhave %v\nwant < 0", z)
	}
}
