package plan_test

import (
	"errors"
	"image"
	"testing"

	"thumbtrack/internal/plan"
	"thumbtrack/internal/services"
)

func TestNewLayoutComputesRows(t *testing.T) {
	layout, err := plan.NewLayout(5, 10, 0, 320, 180)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	if layout.Rows != 1 {
		t.Fatalf("expected 1 row for 5 frames in 10 columns, got %d", layout.Rows)
	}
	w, h := layout.CanvasSize()
	if w != 3200 || h != 180 {
		t.Fatalf("unexpected canvas size %dx%d", w, h)
	}

	layout, err = plan.NewLayout(25, 10, 0, 320, 180)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	if layout.Rows != 3 {
		t.Fatalf("expected 3 rows for 25 frames in 10 columns, got %d", layout.Rows)
	}
	if layout.Cells() < 25 {
		t.Fatalf("layout capacity %d cannot hold 25 frames", layout.Cells())
	}
}

func TestNewLayoutRespectsExplicitRows(t *testing.T) {
	layout, err := plan.NewLayout(5, 5, 4, 100, 100)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	if layout.Rows != 4 {
		t.Fatalf("expected explicit rows preserved, got %d", layout.Rows)
	}

	if _, err := plan.NewLayout(30, 10, 2, 100, 100); err == nil {
		t.Fatal("expected error when explicit rows cannot hold frames")
	} else if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input marker, got %v", err)
	}
}

func TestNewLayoutRejectsBadGeometry(t *testing.T) {
	cases := [][5]int{
		{0, 10, 0, 320, 180},
		{5, 0, 0, 320, 180},
		{5, 10, 0, 0, 180},
		{5, 10, 0, 320, -1},
	}
	for _, tc := range cases {
		if _, err := plan.NewLayout(tc[0], tc[1], tc[2], tc[3], tc[4]); err == nil {
			t.Fatalf("NewLayout(%v): expected error", tc)
		}
	}
}

func TestCellOriginRowMajor(t *testing.T) {
	layout, err := plan.NewLayout(12, 4, 0, 320, 180)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	for i := 0; i < 12; i++ {
		want := image.Pt((i%4)*320, (i/4)*180)
		if got := layout.CellOrigin(i); got != want {
			t.Fatalf("CellOrigin(%d) = %v, want %v", i, got, want)
		}
	}
	if layout.CellOrigin(5) != image.Pt(320, 180) {
		t.Fatalf("spot check failed: %v", layout.CellOrigin(5))
	}
}
