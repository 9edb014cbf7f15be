package furshell

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// CpuBuffer accumulates vertices on the CPU every frame and mirrors them into
// a GPU buffer that grows geometrically. Meant for transient geometry like
// debug lines, where contents change wholesale each frame.
type CpuBuffer[T any] struct {
	label string
	usage wgpu.BufferUsage

	data     []T
	buffer   *wgpu.Buffer
	capacity int
}

func NewCpuBuffer[T any](label string, usage wgpu.BufferUsage) *CpuBuffer[T] {
	return &CpuBuffer[T]{
		label: label,
		usage: usage | wgpu.BufferUsageCopyDst,
	}
}

func (b *CpuBuffer[T]) Clear() {
	b.data = b.data[:0]
}

func (b *CpuBuffer[T]) Push(items ...T) {
	b.data = append(b.data, items...)
}

func (b *CpuBuffer[T]) Len() int {
	return len(b.data)
}

// Upload syncs CPU contents to the GPU, reallocating when the buffer is too
// small, and returns the GPU buffer.
func (b *CpuBuffer[T]) Upload(gpu *GpuState) *wgpu.Buffer {
	if len(b.data) == 0 {
		return b.buffer
	}

	var elem T
	elemSize := int(MakeAnySlice([]T{elem}).ElementSize())
	needed := len(b.data) * elemSize

	if b.buffer == nil || needed > b.capacity {
		if b.buffer != nil {
			b.buffer.Release()
		}

		capacity := b.capacity
		if capacity == 0 {
			capacity = 1024
		}
		for capacity < needed {
			capacity *= 2
		}

		buffer, err := gpu.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: b.label,
			Size:  uint64(capacity),
			Usage: b.usage,
		})
		if err != nil {
			panic(err)
		}
		b.buffer = buffer
		b.capacity = capacity
	}

	if err := gpu.queue.WriteBuffer(b.buffer, 0, untypedSliceToWgpuBytes(MakeAnySlice(b.data))); err != nil {
		panic(err)
	}
	return b.buffer
}
