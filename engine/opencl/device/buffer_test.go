package device

import (
	"reflect"
	"testing"

	"github.com/achilleasa/gopencl/v1.2/cl"
)

func TestBufferAllocate(t *testing.T) {
	dev := createTestDevice(t)
	defer dev.Close()

	buf := dev.Buffer("test")
	defer buf.Release()
	err := buf.Allocate(128, cl.MEM_READ_WRITE)
	if err != nil {
		t.Fatal(err)
	}

	expSize := 128
	if buf.Size() != expSize {
		t.Fatalf("expected buffer size to be %d; got %d", expSize, buf.Size())
	}
}

func TestBufferReallocateReleasesPrevious(t *testing.T) {
	dev := createTestDevice(t)
	defer dev.Close()

	buf := dev.Buffer("test")
	defer buf.Release()
	if err := buf.Allocate(64, cl.MEM_READ_WRITE); err != nil {
		t.Fatal(err)
	}
	if err := buf.Allocate(256, cl.MEM_READ_WRITE); err != nil {
		t.Fatal(err)
	}

	expSize := 256
	if buf.Size() != expSize {
		t.Fatalf("expected buffer size to be %d; got %d", expSize, buf.Size())
	}
}

func TestBufferReleaseIsIdempotent(t *testing.T) {
	dev := createTestDevice(t)
	defer dev.Close()

	buf := dev.Buffer("test")
	if err := buf.Allocate(64, cl.MEM_READ_WRITE); err != nil {
		t.Fatal(err)
	}

	buf.Release()
	buf.Release()

	if buf.Size() != 0 {
		t.Fatalf("expected released buffer size to be 0; got %d", buf.Size())
	}
}

func TestDataReadWrite(t *testing.T) {
	dev := createTestDevice(t)
	defer dev.Close()

	data := make([]byte, 128)
	for i := 0; i < 128; i++ {
		data[i] = byte(i)
	}

	buf := dev.Buffer("test")
	defer buf.Release()
	err := buf.Allocate(128, cl.MEM_READ_WRITE)
	if err != nil {
		t.Fatal(err)
	}

	err = buf.WriteData(data, 0)
	if err != nil {
		t.Fatal(err)
	}

	dataOut := make([]byte, 128)
	err = buf.ReadData(0, 0, 0, dataOut)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(data, dataOut) {
		t.Fatal("read data does not match written data")
	}
}

func TestDataReadWriteOffsets(t *testing.T) {
	dev := createTestDevice(t)
	defer dev.Close()

	data := make([]byte, 128)
	for i := 0; i < 128; i++ {
		data[i] = byte(i)
	}

	buf := dev.Buffer("test")
	defer buf.Release()
	err := buf.Allocate(128, cl.MEM_READ_WRITE)
	if err != nil {
		t.Fatal(err)
	}

	err = buf.WriteData(data, 64)
	if err != nil {
		t.Fatal(err)
	}

	dataOut := make([]byte, 128)
	err = buf.ReadData(64, 0, 64, dataOut)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(data[:64], dataOut[:64]) {
		t.Fatal("read data does not match written data")
	}
}

func TestGetSliceData(t *testing.T) {
	data := make([]int32, 32)
	_, dataLen := getSliceData(data)

	expSize := 4 * 32
	if dataLen != expSize {
		t.Fatalf("expected datalen to be %d; got %d", expSize, dataLen)
	}
}
