//go:build opencl

package search

/*
#cgo CFLAGS: -I${SRCDIR}/../../deps/opencl-headers
#cgo windows LDFLAGS: -L${SRCDIR}/../../deps/lib -lOpenCL
#cgo linux LDFLAGS: -lOpenCL
#cgo darwin LDFLAGS: -framework OpenCL

#ifdef __APPLE__
#include <OpenCL/opencl.h>
#else
#include <CL/cl.h>
#endif

#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"context"
	"embed"
	"fmt"
	"unsafe"

	"github.com/omnivanity/omnivanity/internal/chain"
	"github.com/omnivanity/omnivanity/internal/pattern"
)

//go:embed kernels/filter_match.cl
var filterKernelSource embed.FS

//go:embed kernels/turbo_ed25519.cl
var turboKernelSource embed.FS

const (
	kindPrefix   = 0
	kindSuffix   = 1
	kindContains = 2

	addrStride = 96 // bytes reserved per address slot in the device buffer
)

// turboTicker is the one chain this build offers the full on-device search
// for: Solana's address is a bare Base58 encoding of the raw Ed25519
// pubkey, the exact shape turbo_ed25519.cl derives and encodes in one
// kernel. Every other Ed25519-family chain in the registry layers a hash
// or checksum stage the kernel doesn't implement, so they stay on the
// filter-only hybrid path.
const turboTicker = "SOL"

// openclGPUBackend implements gpuBackend by dispatching the filter_match
// kernel once per FilterBatch call, following the teacher's OpenCL init
// and buffer-management pattern (pkg/generator/ethereum/gpu.go). When the
// adapter is turboTicker it also compiles turbo_ed25519.cl and exposes
// RunTurboBatch for the full-device search path.
type openclGPUBackend struct {
	platform C.cl_platform_id
	device   C.cl_device_id
	context  C.cl_context
	queue    C.cl_command_queue
	program  C.cl_program
	kernel   C.cl_kernel

	bufAddresses C.cl_mem
	bufFlags     C.cl_mem

	turboCapable bool
	turboProgram C.cl_program
	turboKernel  C.cl_kernel
	patternBytes []byte
	patternKind  uint32
	caseFold     uint32
}

func newGPUBackend(adapter chain.Adapter, addressType chain.AddressType, pat *pattern.Pattern) (gpuBackend, error) {
	if pat == nil {
		return nil, fmt.Errorf("search: opencl backend needs a pattern")
	}
	// The device tests the raw address text, so a Prefix pattern carries the
	// chain's visible prefix with it; the CPU matcher re-applies its own
	// stripping rules on every flagged candidate regardless.
	value := pat.Value
	if pat.Kind == pattern.Prefix {
		value = adapter.VisiblePrefix(addressType) + value
	}
	b := &openclGPUBackend{
		patternBytes: []byte(value),
		patternKind:  patternKindCode(pat.Kind),
	}
	if pat.CaseInsensitive {
		b.caseFold = 1
	}
	if err := b.init(); err != nil {
		return nil, fmt.Errorf("search: opencl init: %w", err)
	}

	if adapter.Ticker() == turboTicker {
		if err := b.initTurbo(); err != nil {
			return nil, fmt.Errorf("search: opencl turbo init: %w", err)
		}
		b.turboCapable = true
	}

	return b, nil
}

func patternKindCode(k pattern.Kind) uint32 {
	switch k {
	case pattern.Suffix:
		return kindSuffix
	case pattern.Contains:
		return kindContains
	default:
		return kindPrefix
	}
}

func (b *openclGPUBackend) init() error {
	var numPlatforms C.cl_uint
	if ret := C.clGetPlatformIDs(1, &b.platform, &numPlatforms); ret != C.CL_SUCCESS || numPlatforms == 0 {
		return fmt.Errorf("no OpenCL platform available (code %d)", ret)
	}

	var numDevices C.cl_uint
	if ret := C.clGetDeviceIDs(b.platform, C.CL_DEVICE_TYPE_GPU, 1, &b.device, &numDevices); ret != C.CL_SUCCESS || numDevices == 0 {
		return fmt.Errorf("no OpenCL GPU device available (code %d)", ret)
	}

	var ret C.cl_int
	b.context = C.clCreateContext(nil, 1, &b.device, nil, nil, &ret)
	if ret != C.CL_SUCCESS {
		return fmt.Errorf("clCreateContext failed (code %d)", ret)
	}

	b.queue = C.clCreateCommandQueue(b.context, b.device, 0, &ret)
	if ret != C.CL_SUCCESS {
		return fmt.Errorf("clCreateCommandQueue failed (code %d)", ret)
	}

	src, err := filterKernelSource.ReadFile("kernels/filter_match.cl")
	if err != nil {
		return fmt.Errorf("read embedded kernel: %w", err)
	}
	cSrc := C.CString(string(src))
	defer C.free(unsafe.Pointer(cSrc))

	b.program = C.clCreateProgramWithSource(b.context, 1, &cSrc, nil, &ret)
	if ret != C.CL_SUCCESS {
		return fmt.Errorf("clCreateProgramWithSource failed (code %d)", ret)
	}
	if ret := C.clBuildProgram(b.program, 1, &b.device, nil, nil, nil); ret != C.CL_SUCCESS {
		return fmt.Errorf("clBuildProgram failed (code %d)", ret)
	}

	kernelName := C.CString("filter_match")
	defer C.free(unsafe.Pointer(kernelName))
	b.kernel = C.clCreateKernel(b.program, kernelName, &ret)
	if ret != C.CL_SUCCESS {
		return fmt.Errorf("clCreateKernel failed (code %d)", ret)
	}

	return nil
}

// FilterBatch uploads addresses as fixed-width ASCII rows and runs one
// thread per address. The host then scans the
// returned flag buffer for candidate indices to re-verify on CPU.
func (b *openclGPUBackend) FilterBatch(ctx context.Context, addresses []string) ([]int, error) {
	n := len(addresses)
	if n == 0 {
		return nil, nil
	}

	hostAddrs := make([]byte, n*addrStride)
	for i, a := range addresses {
		copy(hostAddrs[i*addrStride:], a)
	}

	var ret C.cl_int
	b.bufAddresses = C.clCreateBuffer(b.context, C.CL_MEM_READ_ONLY, C.size_t(len(hostAddrs)), nil, &ret)
	if ret != C.CL_SUCCESS {
		return nil, fmt.Errorf("clCreateBuffer addresses failed (code %d)", ret)
	}
	defer C.clReleaseMemObject(b.bufAddresses)

	b.bufFlags = C.clCreateBuffer(b.context, C.CL_MEM_WRITE_ONLY, C.size_t(n), nil, &ret)
	if ret != C.CL_SUCCESS {
		return nil, fmt.Errorf("clCreateBuffer flags failed (code %d)", ret)
	}
	defer C.clReleaseMemObject(b.bufFlags)

	if ret := C.clEnqueueWriteBuffer(b.queue, b.bufAddresses, C.CL_TRUE, 0, C.size_t(len(hostAddrs)),
		unsafe.Pointer(&hostAddrs[0]), 0, nil, nil); ret != C.CL_SUCCESS {
		return nil, fmt.Errorf("clEnqueueWriteBuffer addresses failed (code %d)", ret)
	}

	bufPattern := C.clCreateBuffer(b.context, C.CL_MEM_READ_ONLY, C.size_t(len(b.patternBytes)), nil, &ret)
	if ret != C.CL_SUCCESS {
		return nil, fmt.Errorf("clCreateBuffer pattern failed (code %d)", ret)
	}
	defer C.clReleaseMemObject(bufPattern)
	if ret := C.clEnqueueWriteBuffer(b.queue, bufPattern, C.CL_TRUE, 0, C.size_t(len(b.patternBytes)),
		unsafe.Pointer(&b.patternBytes[0]), 0, nil, nil); ret != C.CL_SUCCESS {
		return nil, fmt.Errorf("clEnqueueWriteBuffer pattern failed (code %d)", ret)
	}

	stride := C.cl_uint(addrStride)
	patternLen := C.cl_uint(len(b.patternBytes))
	kind := C.cl_uint(b.patternKind)
	caseInsensitive := C.cl_uint(b.caseFold)

	C.clSetKernelArg(b.kernel, 0, C.size_t(unsafe.Sizeof(b.bufAddresses)), unsafe.Pointer(&b.bufAddresses))
	C.clSetKernelArg(b.kernel, 1, C.size_t(unsafe.Sizeof(stride)), unsafe.Pointer(&stride))
	C.clSetKernelArg(b.kernel, 2, C.size_t(unsafe.Sizeof(bufPattern)), unsafe.Pointer(&bufPattern))
	C.clSetKernelArg(b.kernel, 3, C.size_t(unsafe.Sizeof(patternLen)), unsafe.Pointer(&patternLen))
	C.clSetKernelArg(b.kernel, 4, C.size_t(unsafe.Sizeof(kind)), unsafe.Pointer(&kind))
	C.clSetKernelArg(b.kernel, 5, C.size_t(unsafe.Sizeof(caseInsensitive)), unsafe.Pointer(&caseInsensitive))
	C.clSetKernelArg(b.kernel, 6, C.size_t(unsafe.Sizeof(b.bufFlags)), unsafe.Pointer(&b.bufFlags))

	globalSize := C.size_t(n)
	// One work-group per 256 addresses; a batch that does not divide evenly
	// leaves the work-group size to the OpenCL runtime.
	localSize := C.size_t(256)
	localSizePtr := &localSize
	if n%256 != 0 {
		localSizePtr = nil
	}
	if ret := C.clEnqueueNDRangeKernel(b.queue, b.kernel, 1, nil, &globalSize, localSizePtr, 0, nil, nil); ret != C.CL_SUCCESS {
		return nil, fmt.Errorf("clEnqueueNDRangeKernel failed (code %d)", ret)
	}

	flags := make([]byte, n)
	if ret := C.clEnqueueReadBuffer(b.queue, b.bufFlags, C.CL_TRUE, 0, C.size_t(n),
		unsafe.Pointer(&flags[0]), 0, nil, nil); ret != C.CL_SUCCESS {
		return nil, fmt.Errorf("clEnqueueReadBuffer flags failed (code %d)", ret)
	}

	var out []int
	for i, f := range flags {
		if f != 0 {
			out = append(out, i)
		}
	}
	return out, nil
}

// SupportsTurbo reports whether this backend compiled the turbo kernel for
// adapter, which only happens at construction time for turboTicker.
func (b *openclGPUBackend) SupportsTurbo(adapter chain.Adapter) bool {
	return b.turboCapable && adapter.Ticker() == turboTicker
}

// initTurbo compiles turbo_ed25519.cl, mirroring init's build of the
// filter_match program above.
func (b *openclGPUBackend) initTurbo() error {
	src, err := turboKernelSource.ReadFile("kernels/turbo_ed25519.cl")
	if err != nil {
		return fmt.Errorf("read embedded turbo kernel: %w", err)
	}
	cSrc := C.CString(string(src))
	defer C.free(unsafe.Pointer(cSrc))

	var ret C.cl_int
	b.turboProgram = C.clCreateProgramWithSource(b.context, 1, &cSrc, nil, &ret)
	if ret != C.CL_SUCCESS {
		return fmt.Errorf("clCreateProgramWithSource (turbo) failed (code %d)", ret)
	}
	if ret := C.clBuildProgram(b.turboProgram, 1, &b.device, nil, nil, nil); ret != C.CL_SUCCESS {
		return fmt.Errorf("clBuildProgram (turbo) failed (code %d)", ret)
	}

	kernelName := C.CString("turbo_ed25519")
	defer C.free(unsafe.Pointer(kernelName))
	b.turboKernel = C.clCreateKernel(b.turboProgram, kernelName, &ret)
	if ret != C.CL_SUCCESS {
		return fmt.Errorf("clCreateKernel (turbo) failed (code %d)", ret)
	}
	return nil
}

// RunTurboBatch uploads the fixed base seed and pattern once per dispatch,
// launches one thread per candidate key and reads back the per-thread
// match flags. It never decides a hit on its own: the caller (runTurbo in
// gpu.go) rebuilds each flagged global ID's full 32-byte seed and
// re-derives the address through the real adapter before trusting it.
func (b *openclGPUBackend) RunTurboBatch(ctx context.Context, baseSeed [24]byte, keysPerDispatch uint64) ([]uint64, error) {
	var ret C.cl_int

	bufSeed := C.clCreateBuffer(b.context, C.CL_MEM_READ_ONLY, 24, nil, &ret)
	if ret != C.CL_SUCCESS {
		return nil, fmt.Errorf("clCreateBuffer base_seed failed (code %d)", ret)
	}
	defer C.clReleaseMemObject(bufSeed)

	patLen := len(b.patternBytes)
	if patLen == 0 {
		patLen = 1 // clCreateBuffer rejects a zero-size buffer
	}
	bufPattern := C.clCreateBuffer(b.context, C.CL_MEM_READ_ONLY, C.size_t(patLen), nil, &ret)
	if ret != C.CL_SUCCESS {
		return nil, fmt.Errorf("clCreateBuffer pattern failed (code %d)", ret)
	}
	defer C.clReleaseMemObject(bufPattern)

	bufFlags := C.clCreateBuffer(b.context, C.CL_MEM_WRITE_ONLY, C.size_t(keysPerDispatch), nil, &ret)
	if ret != C.CL_SUCCESS {
		return nil, fmt.Errorf("clCreateBuffer out_flags failed (code %d)", ret)
	}
	defer C.clReleaseMemObject(bufFlags)

	if ret := C.clEnqueueWriteBuffer(b.queue, bufSeed, C.CL_TRUE, 0, 24,
		unsafe.Pointer(&baseSeed[0]), 0, nil, nil); ret != C.CL_SUCCESS {
		return nil, fmt.Errorf("clEnqueueWriteBuffer base_seed failed (code %d)", ret)
	}
	if len(b.patternBytes) > 0 {
		if ret := C.clEnqueueWriteBuffer(b.queue, bufPattern, C.CL_TRUE, 0, C.size_t(len(b.patternBytes)),
			unsafe.Pointer(&b.patternBytes[0]), 0, nil, nil); ret != C.CL_SUCCESS {
			return nil, fmt.Errorf("clEnqueueWriteBuffer pattern failed (code %d)", ret)
		}
	}

	patternLen := C.cl_uint(len(b.patternBytes))
	kind := C.cl_uint(b.patternKind)
	caseInsensitive := C.cl_uint(b.caseFold)

	C.clSetKernelArg(b.turboKernel, 0, C.size_t(unsafe.Sizeof(bufSeed)), unsafe.Pointer(&bufSeed))
	C.clSetKernelArg(b.turboKernel, 1, C.size_t(unsafe.Sizeof(bufPattern)), unsafe.Pointer(&bufPattern))
	C.clSetKernelArg(b.turboKernel, 2, C.size_t(unsafe.Sizeof(patternLen)), unsafe.Pointer(&patternLen))
	C.clSetKernelArg(b.turboKernel, 3, C.size_t(unsafe.Sizeof(kind)), unsafe.Pointer(&kind))
	C.clSetKernelArg(b.turboKernel, 4, C.size_t(unsafe.Sizeof(caseInsensitive)), unsafe.Pointer(&caseInsensitive))
	C.clSetKernelArg(b.turboKernel, 5, C.size_t(unsafe.Sizeof(bufFlags)), unsafe.Pointer(&bufFlags))

	globalSize := C.size_t(keysPerDispatch)
	if ret := C.clEnqueueNDRangeKernel(b.queue, b.turboKernel, 1, nil, &globalSize, nil, 0, nil, nil); ret != C.CL_SUCCESS {
		return nil, fmt.Errorf("clEnqueueNDRangeKernel (turbo) failed (code %d)", ret)
	}

	flags := make([]byte, keysPerDispatch)
	if ret := C.clEnqueueReadBuffer(b.queue, bufFlags, C.CL_TRUE, 0, C.size_t(keysPerDispatch),
		unsafe.Pointer(&flags[0]), 0, nil, nil); ret != C.CL_SUCCESS {
		return nil, fmt.Errorf("clEnqueueReadBuffer out_flags failed (code %d)", ret)
	}

	var out []uint64
	for i, f := range flags {
		if f != 0 {
			out = append(out, uint64(i))
		}
	}
	return out, nil
}

func (b *openclGPUBackend) Close() {
	C.clReleaseKernel(b.kernel)
	C.clReleaseProgram(b.program)
	if b.turboCapable {
		C.clReleaseKernel(b.turboKernel)
		C.clReleaseProgram(b.turboProgram)
	}
	C.clReleaseCommandQueue(b.queue)
	C.clReleaseContext(b.context)
}
