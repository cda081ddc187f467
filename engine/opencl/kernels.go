package opencl

import (
	"fmt"
	"path/filepath"

	"github.com/donat19/intel-render-engine/engine/opencl/device"
	"github.com/donat19/intel-render-engine/log"
)

// The tone-map entry point compiled into every hdr-capable program unit.
const tonemapEntryPoint = "tonemapResolve"

// Program and entry point names for one catalog scene.
type kernelProfile struct {
	program  string
	ldrEntry string
	hdrEntry string

	// Scene whose profile serves the ldr path when this scene has no ldr
	// entry of its own. Empty for self-contained profiles.
	ldrFallback string
}

// The fixed scene-name to program/entry-point mapping.
var kernelProfiles = map[string]kernelProfile{
	"demo":    {program: "raymarch.cl", ldrEntry: "demoScene", hdrEntry: "demoSceneHDR"},
	"minimal": {program: "raymarch.cl", ldrEntry: "minimalScene", hdrEntry: "minimalSceneHDR"},
	"complex": {program: "raymarch.cl", ldrEntry: "complexScene", hdrEntry: "complexSceneHDR"},
	"clouds":  {program: "clouds.cl", ldrEntry: "volumetricClouds", hdrEntry: "volumetricCloudsHDR"},
	"advanced_clouds": {
		program:     "clouds_advanced.cl",
		hdrEntry:    "advancedCloudsHDR",
		ldrFallback: "clouds",
	},
}

// Resolve the program path and scene entry point for (scene, hdr).
func resolveKernel(programDir, sceneName string, hdr bool) (programPath, entryPoint string, err error) {
	profile, exists := kernelProfiles[sceneName]
	if !exists {
		return "", "", fmt.Errorf("opencl engine: no kernel profile for scene %q", sceneName)
	}

	if hdr {
		return filepath.Join(programDir, profile.program), profile.hdrEntry, nil
	}

	if profile.ldrEntry == "" {
		if profile.ldrFallback == "" {
			return "", "", fmt.Errorf("opencl engine: scene %q has no ldr kernel", sceneName)
		}
		profile = kernelProfiles[profile.ldrFallback]
	}
	return filepath.Join(programDir, profile.program), profile.ldrEntry, nil
}

// The compiled kernels for the active scene. When hdr is active the
// tonemap kernel is loaded from the same program unit as the scene
// kernel.
type sceneKernels struct {
	program *device.Program
	scene   *device.Kernel
	tonemap *device.Kernel

	// True when the scene kernel writes float radiance into the hdr
	// buffer; false when it writes rgba directly.
	hdr bool
}

// Release the kernels and their program unit. Idempotent and safe on a
// partially constructed value.
func (sk *sceneKernels) Release() {
	if sk == nil {
		return
	}
	if sk.scene != nil {
		sk.scene.Release()
		sk.scene = nil
	}
	if sk.tonemap != nil {
		sk.tonemap.Release()
		sk.tonemap = nil
	}
	if sk.program != nil {
		sk.program.Release()
		sk.program = nil
	}
}

// Build the kernel set for a scene. When the hdr variant fails to build
// the build is retried exactly once with hdr forced off and a warning is
// logged; a failure with no viable fallback is a KernelBuildError.
func buildSceneKernels(dev *device.Device, logger log.Logger, programDir, sceneName string, hdr bool) (*sceneKernels, error) {
	kernels, err := tryBuildSceneKernels(dev, programDir, sceneName, hdr)
	if err == nil {
		return kernels, nil
	}

	if hdr {
		logger.Warningf("hdr kernel build for scene %q failed; retrying with hdr disabled: %v", sceneName, err)
		kernels, retryErr := tryBuildSceneKernels(dev, programDir, sceneName, false)
		if retryErr == nil {
			return kernels, nil
		}
		return nil, &KernelBuildError{Scene: sceneName, HDR: false, Err: retryErr}
	}

	return nil, &KernelBuildError{Scene: sceneName, HDR: hdr, Err: err}
}

// Single build attempt; no fallback logic.
func tryBuildSceneKernels(dev *device.Device, programDir, sceneName string, hdr bool) (*sceneKernels, error) {
	programPath, entryPoint, err := resolveKernel(programDir, sceneName, hdr)
	if err != nil {
		return nil, err
	}

	program, err := dev.BuildProgram(programPath)
	if err != nil {
		return nil, err
	}

	kernels := &sceneKernels{
		program: program,
		hdr:     hdr,
	}

	kernels.scene, err = program.Kernel(entryPoint)
	if err != nil {
		kernels.Release()
		return nil, err
	}

	if hdr {
		kernels.tonemap, err = program.Kernel(tonemapEntryPoint)
		if err != nil {
			kernels.Release()
			return nil, err
		}
	}

	return kernels, nil
}
