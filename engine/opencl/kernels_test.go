package opencl

import (
	"path/filepath"
	"testing"
)

func TestResolveKernel(t *testing.T) {
	type spec struct {
		scene      string
		hdr        bool
		expProgram string
		expEntry   string
		expError   bool
	}

	specs := []spec{
		{scene: "demo", hdr: false, expProgram: "raymarch.cl", expEntry: "demoScene"},
		{scene: "demo", hdr: true, expProgram: "raymarch.cl", expEntry: "demoSceneHDR"},
		{scene: "minimal", hdr: false, expProgram: "raymarch.cl", expEntry: "minimalScene"},
		{scene: "complex", hdr: true, expProgram: "raymarch.cl", expEntry: "complexSceneHDR"},
		{scene: "clouds", hdr: false, expProgram: "clouds.cl", expEntry: "volumetricClouds"},
		{scene: "clouds", hdr: true, expProgram: "clouds.cl", expEntry: "volumetricCloudsHDR"},
		{scene: "advanced_clouds", hdr: true, expProgram: "clouds_advanced.cl", expEntry: "advancedCloudsHDR"},
		// advanced_clouds has no ldr entry of its own and borrows the
		// basic clouds profile.
		{scene: "advanced_clouds", hdr: false, expProgram: "clouds.cl", expEntry: "volumetricClouds"},
		{scene: "unknown", hdr: false, expError: true},
	}

	programDir := "CL"
	for _, s := range specs {
		programPath, entryPoint, err := resolveKernel(programDir, s.scene, s.hdr)
		if s.expError {
			if err == nil {
				t.Fatalf("[%s hdr=%v] expected an error", s.scene, s.hdr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("[%s hdr=%v] %v", s.scene, s.hdr, err)
		}

		expPath := filepath.Join(programDir, s.expProgram)
		if programPath != expPath {
			t.Fatalf("[%s hdr=%v] expected program path %q; got %q", s.scene, s.hdr, expPath, programPath)
		}
		if entryPoint != s.expEntry {
			t.Fatalf("[%s hdr=%v] expected entry point %q; got %q", s.scene, s.hdr, s.expEntry, entryPoint)
		}
	}
}

func TestKernelProfilesCoverCatalog(t *testing.T) {
	// Every profile that borrows an ldr entry must point at a profile
	// that actually has one.
	for name, profile := range kernelProfiles {
		if profile.hdrEntry == "" {
			t.Fatalf("scene %q has no hdr entry point", name)
		}
		if profile.ldrEntry != "" {
			continue
		}
		fallback, exists := kernelProfiles[profile.ldrFallback]
		if !exists || fallback.ldrEntry == "" {
			t.Fatalf("scene %q has no usable ldr fallback", name)
		}
	}
}
