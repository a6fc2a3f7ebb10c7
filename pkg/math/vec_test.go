package math

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec2NormalizeZero(t *testing.T) {
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("zero vector should normalize to zero, got %v", got)
	}
}

func TestVec2Perp(t *testing.T) {
	got := Vec2{1, 0}.Perp()
	want := Vec2{0, 1}
	if got != want {
		t.Errorf("Vec2.Perp() = %v, want %v", got, want)
	}
}

func TestVec2Rotate(t *testing.T) {
	got := Vec2{1, 0}.Rotate(float32(math.Pi / 2))
	if abs(got.X) > 1e-6 || abs(got.Y-1) > 1e-6 {
		t.Errorf("Vec2.Rotate(pi/2) = %v, want (0, 1)", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Dot(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Vec3.Dot() = %v, want 32", got)
	}
}

func TestVec2dSub(t *testing.T) {
	a := Vec2d{10, 20}
	b := Vec2d{1, 2}
	got := a.Sub(b)
	want := Vec2d{9, 18}
	if got != want {
		t.Errorf("Vec2d.Sub() = %v, want %v", got, want)
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
