package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/taigrr/asciimesh/pkg/math3d"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMTLFlush(t *testing.T) {
	src := `# materials
Kd 0 0 0
newmtl first
Kd 0.2 0.4 0.6
newmtl second
Ka 1 1 1
newmtl third
Kd 2 -1 0.5
Kd bad values here
`
	core, logs := observer.New(zap.WarnLevel)
	l := &MTLLoader{Log: zap.New(core)}

	mats, err := l.LoadReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}

	want := []Material{
		{Name: "first", Diffuse: math3d.V3(0.2, 0.4, 0.6)},
		{Name: "second", Diffuse: DefaultDiffuse},
		{Name: "third", Diffuse: math3d.V3(2, -1, 0.5)},
	}
	if len(mats) != len(want) {
		t.Fatalf("got %d materials, want %d", len(mats), len(want))
	}
	for i := range want {
		if mats[i] != want[i] {
			t.Errorf("material %d = %+v, want %+v", i, mats[i], want[i])
		}
	}

	if logs.FilterMessage("Kd outside of a material").Len() != 1 {
		t.Errorf("expected stray Kd warning, got %v", logs.All())
	}
	if logs.FilterMessage("skipping malformed Kd").Len() != 1 {
		t.Errorf("expected malformed Kd warning, got %v", logs.All())
	}
}

func TestMTLExtension(t *testing.T) {
	l := &MTLLoader{}
	if _, err := l.Load("materials.txt"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}
