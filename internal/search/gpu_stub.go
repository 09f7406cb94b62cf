//go:build !opencl

package search

import (
	"context"
	"fmt"

	"github.com/omnivanity/omnivanity/internal/chain"
	"github.com/omnivanity/omnivanity/internal/pattern"
)

// stubGPUBackend is the non-OpenCL build's gpuBackend. Build with
// -tags opencl to enable the real device backend.
type stubGPUBackend struct{}

func newGPUBackend(chain.Adapter, chain.AddressType, *pattern.Pattern) (gpuBackend, error) {
	return nil, fmt.Errorf("search: GPU support not compiled. Build with: go build -tags opencl")
}

func (stubGPUBackend) FilterBatch(context.Context, []string) ([]int, error) {
	return nil, fmt.Errorf("search: GPU support not compiled")
}

func (stubGPUBackend) SupportsTurbo(chain.Adapter) bool { return false }

func (stubGPUBackend) RunTurboBatch(context.Context, [24]byte, uint64) ([]uint64, error) {
	return nil, fmt.Errorf("search: GPU support not compiled")
}

func (stubGPUBackend) Close() {}
