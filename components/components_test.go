package components

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"cyan", Cyan, false},
		{" Magenta ", Magenta, false},
		{"AZURE", Azure, false},
		{"#00ffff", Cyan, false},
		{"0x007FFF", Azure, false},
		{"123456", Color(0x123456), false},
		{"", 0, true},
		{"teal", 0, true},
		{"#FFF", 0, true},
		{"#GGGGGG", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorString(t *testing.T) {
	if Cyan.String() != "cyan" {
		t.Errorf("Cyan.String() = %q", Cyan.String())
	}
	if got := Color(0x123456).String(); got != "#123456" {
		t.Errorf("off-palette String() = %q, want #123456", got)
	}
}

func TestMetabolismNormalized(t *testing.T) {
	tests := []struct {
		m    Metabolism
		want float64
	}{
		{Metabolism{Energy: 1, Initial: 1}, 1},
		{Metabolism{Energy: 0.25, Initial: 0.5}, 0.5},
		{Metabolism{Energy: -0.1, Initial: 1}, 0},
		{Metabolism{Energy: 2, Initial: 1}, 1},
		{Metabolism{Energy: 1, Initial: 0}, 0},
	}
	for _, tt := range tests {
		if got := tt.m.Normalized(); got != tt.want {
			t.Errorf("%+v.Normalized() = %v, want %v", tt.m, got, tt.want)
		}
	}
}

func TestNewBodyStacked(t *testing.T) {
	at := r2.Vec{X: 1.5, Y: -2}
	b := NewBody(at, 9, 0.15)

	if b.NumSegments() != 9 {
		t.Fatalf("NumSegments() = %d, want 9", b.NumSegments())
	}
	for i, s := range b.Segments {
		if s != at {
			t.Errorf("segment %d = %v, want %v", i, s, at)
		}
	}
	if b.Head() != at {
		t.Errorf("Head() = %v, want %v", b.Head(), at)
	}
}

func TestMotionApplyForce(t *testing.T) {
	var m Motion
	m.ApplyForce(r2.Vec{X: 1})
	m.ApplyForce(r2.Vec{Y: 2})
	if m.Acceleration != (r2.Vec{X: 1, Y: 2}) {
		t.Errorf("Acceleration = %v, want (1, 2)", m.Acceleration)
	}
}
