package core

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -1, 0.5}

	if got := a.Add(b); got != (Vec3{5, 1, 3.5}) {
		t.Errorf("Add() = %v, expected {5 1 3.5}", got)
	}
	if got := a.Sub(b); got != (Vec3{-3, 3, 2.5}) {
		t.Errorf("Sub() = %v, expected {-3 3 2.5}", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale() = %v, expected {2 4 6}", got)
	}
	if got := a.Dot(b); got != 3.5 {
		t.Errorf("Dot() = %v, expected 3.5", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}

	if got := x.Cross(y); got != (Vec3{0, 0, 1}) {
		t.Errorf("x × y = %v, expected z", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}.Normalize()
	if math.Abs(v.Length()-1) > 1e-9 {
		t.Errorf("Normalize() length = %v, expected 1", v.Length())
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Normalize() of zero = %v, expected zero", zero)
	}
}
