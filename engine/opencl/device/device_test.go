package device

import (
	"testing"
)

func TestSelectDevices(t *testing.T) {
	devList, err := SelectDevices(AllDevices, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(devList) == 0 {
		t.Skip("no opencl devices available; check that openCL drivers are installed")
	}

	for _, dev := range devList {
		if dev.Name == "" {
			t.Fatal("expected device name to be non-empty")
		}
	}
}

func TestDeviceInit(t *testing.T) {
	dev := createTestDevice(t)
	defer dev.Close()

	if dev.Type.String() == "" {
		t.Fatalf("expected a valid device type for '%s'", dev.Name)
	}

	if err := dev.Finish(); err != nil {
		t.Fatalf("error draining command queue for '%s': %v", dev.Name, err)
	}
}

func TestDeviceCloseIsIdempotent(t *testing.T) {
	dev := createTestDevice(t)
	dev.Close()
	dev.Close()
}

func TestBuildProgramErrors(t *testing.T) {
	dev := createTestDevice(t)
	defer dev.Close()

	_, err := dev.BuildProgram("testdata/missing.cl")
	if err == nil {
		t.Fatal("expected an error while building a missing program file")
	}
}

func TestUnknownKernelEntryPoint(t *testing.T) {
	dev := createTestDevice(t)
	defer dev.Close()

	program, err := dev.BuildProgram("testdata/test.cl")
	if err != nil {
		t.Fatal(err)
	}
	defer program.Release()

	_, err = program.Kernel("foo")
	if err == nil {
		t.Fatal("expected to get an error while trying to load an unknown kernel")
	}
}

// Select and initialize the first available device; skips the test when
// the host has no opencl runtime.
func createTestDevice(t *testing.T) *Device {
	t.Helper()

	devList, err := SelectDevices(AllDevices, "")
	if err != nil || len(devList) == 0 {
		t.Skip("no opencl devices available; check that openCL drivers are installed")
	}

	dev := devList[0]
	if err = dev.Init(); err != nil {
		t.Skipf("cannot initialize opencl device '%s': %v", dev.Name, err)
	}
	return dev
}
