package device

import (
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"
)

const buildLogBufferSize = 120000

// A compiled opencl program unit. Programs are built and released
// independently of the owning device so callers can swap kernels without
// tearing down the context and queue.
type Program struct {
	device  *Device
	name    string
	program cl.Program
}

// Load and compile the program source at the given path. The directory
// containing the source is added to the include path so programs can
// share headers.
func (d *Device) BuildProgram(programFile string) (*Program, error) {
	var errCode cl.ErrorCode

	if d.ctx == nil {
		return nil, fmt.Errorf("opencl device (%s): device not initialized", d.Name)
	}

	absProgramPath, err := filepath.Abs(programFile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(absProgramPath)
	if err != nil {
		return nil, err
	}
	progSrc := cl.Str(string(data) + "\x00")

	prog := &Program{
		device: d,
		name:   filepath.Base(programFile),
	}

	prog.program = cl.CreateProgramWithSource(
		*d.ctx,
		1,
		&progSrc,
		nil,
		(*int32)(&errCode),
	)
	if errCode != cl.SUCCESS {
		return nil, fmt.Errorf("opencl device (%s): could not create program %s (error: %s; code %d)", d.Name, prog.name, ErrorName(errCode), errCode)
	}

	errCode = cl.BuildProgram(
		prog.program,
		1,
		&d.Id,
		cl.Str(fmt.Sprintf("-I %s\x00", filepath.Dir(absProgramPath))),
		nil,
		nil,
	)
	if errCode != cl.SUCCESS {
		var logLen uint64
		buildLog := make([]byte, buildLogBufferSize)

		cl.GetProgramBuildInfo(prog.program, d.Id, cl.PROGRAM_BUILD_LOG, uint64(len(buildLog)), unsafe.Pointer(&buildLog[0]), &logLen)
		prog.Release()
		return nil, fmt.Errorf("opencl device (%s): could not build program %s (error: %s; code %d):\n%s", d.Name, prog.name, ErrorName(errCode), errCode, string(buildLog[0:logLen-1]))
	}

	return prog, nil
}

// Load kernel entry point by name.
func (p *Program) Kernel(name string) (*Kernel, error) {
	var errCode cl.ErrorCode
	kernelHandle := cl.CreateKernel(
		p.program,
		cl.Str(name+"\x00"),
		(*int32)(&errCode),
	)

	if errCode != cl.SUCCESS {
		return nil, fmt.Errorf("opencl device (%s): could not load kernel %s from %s (error: %s; code %d)", p.device.Name, name, p.name, ErrorName(errCode), errCode)
	}

	return &Kernel{
		device:       p.device,
		kernelHandle: kernelHandle,
		name:         name,
	}, nil
}

// Release the compiled program. Idempotent.
func (p *Program) Release() {
	if p.program != nil {
		cl.ReleaseProgram(p.program)
		p.program = nil
	}
}
