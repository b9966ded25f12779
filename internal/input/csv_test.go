package input

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/gravsim/internal/vec"
)

func TestReadBodies(t *testing.T) {
	src := `pos_x,pos_y,pos_z,vel_x,vel_y,vel_z,mass
0,0,0,0,0,0,1.0
1,0,0,0,1,0,1e-6
`
	bodies, err := ReadBodies(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadBodies: %v", err)
	}
	if len(bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(bodies))
	}

	if bodies[0].GM != 1.0 {
		t.Errorf("body 0 Gm: got %f", bodies[0].GM)
	}
	if bodies[1].Pos != vec.New(1, 0, 0) {
		t.Errorf("body 1 position: got %v", bodies[1].Pos)
	}
	if bodies[1].Vel != vec.New(0, 1, 0) {
		t.Errorf("body 1 velocity: got %v", bodies[1].Vel)
	}
	if bodies[1].NextVel != bodies[1].Vel {
		t.Error("staging buffer not initialized to velocity")
	}
}

func TestReadBodiesColumnOrder(t *testing.T) {
	// Columns are addressed by header name, not position.
	src := `mass,vel_z,vel_y,vel_x,pos_z,pos_y,pos_x,comment
2.5,6,5,4,3,2,1,ignored
`
	bodies, err := ReadBodies(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadBodies: %v", err)
	}

	b := bodies[0]
	if b.Pos != vec.New(1, 2, 3) || b.Vel != vec.New(4, 5, 6) || b.GM != 2.5 {
		t.Errorf("shuffled columns misread: %+v", b)
	}
}

func TestReadBodiesMissingColumn(t *testing.T) {
	src := "pos_x,pos_y,pos_z,vel_x,vel_y,vel_z\n0,0,0,0,0,0\n"
	_, err := ReadBodies(strings.NewReader(src))
	if err == nil || !strings.Contains(err.Error(), "mass") {
		t.Errorf("expected missing-column error naming mass, got %v", err)
	}
}

func TestReadBodiesBadValue(t *testing.T) {
	src := `pos_x,pos_y,pos_z,vel_x,vel_y,vel_z,mass
0,0,0,0,0,0,1
1,zero,0,0,0,0,1
`
	_, err := ReadBodies(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Errorf("error should name the failing row: %v", err)
	}
}

func TestReadBodiesEmpty(t *testing.T) {
	_, err := ReadBodies(strings.NewReader(""))
	if !errors.Is(err, ErrNoHeader) {
		t.Errorf("expected ErrNoHeader, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bodies.csv")
	data := "pos_x,pos_y,pos_z,vel_x,vel_y,vel_z,mass\n0,0,0,0,0,0,1\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	bodies, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(bodies) != 1 {
		t.Errorf("expected 1 body, got %d", len(bodies))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
