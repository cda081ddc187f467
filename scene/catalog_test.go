package scene

import (
	"reflect"
	"testing"

	"github.com/donat19/intel-render-engine/types"
)

func TestCatalogLookups(t *testing.T) {
	catalog := DefaultCatalog()

	expNames := []string{"advanced_clouds", "clouds", "complex", "demo", "minimal"}
	if !reflect.DeepEqual(catalog.Names(), expNames) {
		t.Fatalf("expected catalog names %v; got %v", expNames, catalog.Names())
	}

	for _, name := range expNames {
		if !catalog.Contains(name) {
			t.Fatalf("expected catalog to contain %q", name)
		}
		sc, err := catalog.Get(name)
		if err != nil {
			t.Fatal(err)
		}
		if sc.Name != name {
			t.Fatalf("expected scene name %q; got %q", name, sc.Name)
		}
		if len(sc.Objects) == 0 || len(sc.Lights) == 0 {
			t.Fatalf("expected scene %q to define objects and lights", name)
		}
	}
}

func TestCatalogUnknownScene(t *testing.T) {
	catalog := DefaultCatalog()

	if catalog.Contains("nope") {
		t.Fatal("expected Contains to report false for an unknown scene")
	}
	if _, err := catalog.Get("nope"); err == nil {
		t.Fatal("expected an error while looking up an unknown scene")
	}
}

func TestCatalogReturnsFreshInstances(t *testing.T) {
	catalog := DefaultCatalog()

	first, err := catalog.Get("demo")
	if err != nil {
		t.Fatal(err)
	}
	first.Objects[0].Position = types.XYZ(99, 99, 99)

	second, err := catalog.Get("demo")
	if err != nil {
		t.Fatal(err)
	}
	if second.Objects[0].Position == first.Objects[0].Position {
		t.Fatal("expected Get to return a fresh scene instance")
	}
}

func TestCloudsStartingPose(t *testing.T) {
	catalog := DefaultCatalog()

	sc, err := catalog.Get("clouds")
	if err != nil {
		t.Fatal(err)
	}

	expPos := types.XYZ(0, 5, 20)
	if sc.CameraPosition != expPos {
		t.Fatalf("expected clouds camera position %v; got %v", expPos, sc.CameraPosition)
	}
	if sc.CameraAngles[1] != DefaultYaw {
		t.Fatalf("expected clouds camera yaw %f; got %f", DefaultYaw, sc.CameraAngles[1])
	}
}

func TestComplexSceneContents(t *testing.T) {
	catalog := DefaultCatalog()

	sc, err := catalog.Get("complex")
	if err != nil {
		t.Fatal(err)
	}

	var spheres, bobbing int
	for _, obj := range sc.Objects {
		if obj.Type != ObjectSphere {
			continue
		}
		spheres++
		if obj.Anim != nil && obj.Anim.Kind == AnimBob {
			bobbing++
		}
	}

	// 5x5 grid filtered down to the even-parity cells.
	if spheres != 13 || bobbing != 13 {
		t.Fatalf("expected 13 bobbing spheres; got %d spheres, %d bobbing", spheres, bobbing)
	}
}
