package scene

import (
	"fmt"
	"sort"

	"github.com/donat19/intel-render-engine/types"
)

// A registry of named scene constructors. Lookups build a fresh Scene
// instance so callers can never mutate a shared copy.
type Catalog struct {
	builders map[string]func() *Scene
}

// Create a catalog pre-populated with the built-in scenes.
func DefaultCatalog() *Catalog {
	return &Catalog{
		builders: map[string]func() *Scene{
			"demo":            demoScene,
			"minimal":         minimalScene,
			"complex":         complexScene,
			"clouds":          cloudsScene,
			"advanced_clouds": advancedCloudsScene,
		},
	}
}

// Look up a scene by name.
func (c *Catalog) Get(name string) (*Scene, error) {
	builder, exists := c.builders[name]
	if !exists {
		return nil, fmt.Errorf("scene catalog: unknown scene %q", name)
	}
	return builder(), nil
}

// Report whether the catalog contains the given scene name.
func (c *Catalog) Contains(name string) bool {
	_, exists := c.builders[name]
	return exists
}

// Get the sorted list of registered scene names.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.builders))
	for name := range c.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// The default demo scene: animated sphere, ground plane, rotating torus
// and a couple of static boxes.
func demoScene() *Scene {
	return &Scene{
		Name: "demo",
		Objects: []Object{
			{
				Type:     ObjectSphere,
				Position: types.XYZ(0, 0, 0),
				Sphere:   SphereParams{Radius: 1.0},
				Anim:     &Animation{Kind: AnimOrbit},
			},
			{
				Type:     ObjectBox,
				Position: types.XYZ(0, -2, 0),
				Box:      BoxParams{HalfExtents: types.XYZ(4.0, 0.05, 4.0)},
			},
			{
				Type:     ObjectTorus,
				Position: types.XYZ(0, 1, 3),
				Torus:    TorusParams{MajorRadius: 1.0, MinorRadius: 0.3},
				Anim:     &Animation{Kind: AnimRotate},
			},
			{
				Type:     ObjectBox,
				Position: types.XYZ(-3, 0, -2),
				Box:      BoxParams{HalfExtents: types.XYZ(0.4, 0.4, 0.4)},
			},
			{
				Type:     ObjectBox,
				Position: types.XYZ(3, 0.5, -1),
				Box:      BoxParams{HalfExtents: types.XYZ(0.3, 0.6, 0.3)},
			},
		},
		Lights: []Light{
			{Position: types.XYZ(5, 5, 5), Color: types.XYZ(1, 1, 1), Intensity: 1.0},
			{Position: types.XYZ(-3, 2, 2), Color: types.XYZ(0.8, 0.6, 0.4), Intensity: 0.7},
		},
		CameraPosition: types.XYZ(0, 0, 5),
		CameraAngles:   types.XYZ(0, DefaultYaw, 0),
	}
}

// A single lit sphere; mainly useful for smoke tests.
func minimalScene() *Scene {
	return &Scene{
		Name: "minimal",
		Objects: []Object{
			{
				Type:     ObjectSphere,
				Position: types.XYZ(0, 0, 0),
				Sphere:   SphereParams{Radius: 1.0},
			},
		},
		Lights: []Light{
			{Position: types.XYZ(2, 2, 2), Color: types.XYZ(1, 1, 1), Intensity: 1.0},
		},
		CameraPosition: types.XYZ(0, 0, 5),
		CameraAngles:   types.XYZ(0, DefaultYaw, 0),
	}
}

// A checkerboard of bobbing spheres around a rotating torus.
func complexScene() *Scene {
	sc := &Scene{
		Name:           "complex",
		CameraPosition: types.XYZ(0, 3, 8),
		CameraAngles:   types.XYZ(0, DefaultYaw, 0),
	}

	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			if (i+j)%2 != 0 {
				continue
			}
			sc.Objects = append(sc.Objects, Object{
				Type:     ObjectSphere,
				Position: types.XYZ(float32(i)*2.0, 0, float32(j)*2.0),
				Sphere:   SphereParams{Radius: 0.5},
				Anim:     &Animation{Kind: AnimBob, Phase: float32(i+j) * 0.5},
			})
		}
	}

	sc.Objects = append(sc.Objects,
		Object{
			Type:     ObjectTorus,
			Position: types.XYZ(0, 2, 0),
			Torus:    TorusParams{MajorRadius: 1.5, MinorRadius: 0.4},
			Anim:     &Animation{Kind: AnimRotate},
		},
		Object{
			Type:     ObjectBox,
			Position: types.XYZ(0, -1, 0),
			Box:      BoxParams{HalfExtents: types.XYZ(5.0, 0.05, 5.0)},
		},
	)

	sc.Lights = []Light{
		{Position: types.XYZ(5, 5, 5), Color: types.XYZ(1, 0.8, 0.6), Intensity: 1.0},
		{Position: types.XYZ(-5, 3, -5), Color: types.XYZ(0.6, 0.8, 1), Intensity: 1.0},
		{Position: types.XYZ(0, 8, 0), Color: types.XYZ(0.8, 1, 0.8), Intensity: 1.0},
	}

	return sc
}

// Volumetric cloud layer above a ground plane.
func cloudsScene() *Scene {
	return &Scene{
		Name: "clouds",
		Objects: []Object{
			{
				Type:     ObjectCloudVolume,
				Position: types.XYZ(0, 10, 0),
				Cloud:    CloudVolumeParams{Extents: types.XYZ(40, 6, 40), Density: 0.6},
			},
			{
				Type:     ObjectBox,
				Position: types.XYZ(0, -1, 0),
				Box:      BoxParams{HalfExtents: types.XYZ(50, 0.1, 50)},
			},
		},
		Lights: []Light{
			{Position: types.XYZ(30, 40, 20), Color: types.XYZ(1, 0.95, 0.85), Intensity: 1.2},
		},
		CameraPosition: types.XYZ(0, 5, 20),
		CameraAngles:   types.XYZ(0, DefaultYaw, 0),
	}
}

// Dense multi-layer cloudscape; designed for the hdr kernel.
func advancedCloudsScene() *Scene {
	sc := cloudsScene()
	sc.Name = "advanced_clouds"
	sc.Objects = append(sc.Objects, Object{
		Type:     ObjectCloudVolume,
		Position: types.XYZ(0, 18, 0),
		Cloud:    CloudVolumeParams{Extents: types.XYZ(60, 4, 60), Density: 0.35},
	})
	sc.Lights = append(sc.Lights, Light{
		Position: types.XYZ(-20, 25, -10), Color: types.XYZ(0.7, 0.8, 1), Intensity: 0.5,
	})
	return sc
}
