package glmem

import (
	"github.com/glstream/glmem/glcore"
)

// Side selects which representation of the pixels a mapping exposes.
type Side int

const (
	// SideCPU maps the CPU-visible bytes.
	SideCPU Side = iota + 1

	// SideGPU maps the GL texture handle.
	SideGPU
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideCPU:
		return "cpu"
	case SideGPU:
		return "gpu"
	default:
		return "unknown"
	}
}

// Mode is the access mode of a mapping.
type Mode int

const (
	// ModeRead requests read access.
	ModeRead Mode = 1 << iota

	// ModeWrite requests write access.
	ModeWrite
)

// ModeReadWrite requests both.
const ModeReadWrite = ModeRead | ModeWrite

func (m Mode) read() bool  { return m&ModeRead != 0 }
func (m Mode) write() bool { return m&ModeWrite != 0 }

// Mapping is an active view of a Memory. CPU mappings expose Bytes, the
// plane's full padded block; GPU mappings expose Texture. Release with
// Unmap: unmapping a written mapping is what marks the written side as the
// newer one for the next access.
type Mapping struct {
	mem  *Memory
	side Side
	mode Mode
	done bool

	// Bytes is the CPU view (CPU mappings only). Pixel data starts at the
	// plane's content offset within the block.
	Bytes []byte

	// Texture is the GL texture name (GPU mappings only).
	Texture uint32
}

// Map returns a view of the pixels on the requested side, first resolving
// any pending transfer so a read never observes stale data.
//
// GPU mappings of external/opaque targets return the raw handle and never
// transfer; CPU mappings of such targets fail with ErrUnsupportedMapping.
func (m *Memory) Map(side Side, mode Mode) (*Mapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return nil, ErrDestroyed
	}

	switch side {
	case SideGPU:
		if m.target != glcore.TargetExternalOES && mode.read() && m.state == stateCPUNewer {
			if err := m.ctx.Run(m.resolveUpload); err != nil {
				return nil, err
			}
			m.state = stateConsistent
		}
		return &Mapping{mem: m, side: side, mode: mode, Texture: m.tex}, nil

	case SideCPU:
		if m.target == glcore.TargetExternalOES {
			Logger().Debug("rejecting CPU mapping of external texture", "texture", m.tex)
			return nil, ErrUnsupportedMapping
		}
		var bytes []byte
		err := m.ctx.Run(func() error {
			var err error
			bytes, err = m.resolveCPUView(mode.read())
			return err
		})
		if err != nil {
			return nil, err
		}
		// Only a resolved download settles the state. A CPU read with a
		// CPU-side write still pending resolves nothing; the upload mark
		// must survive for the next GPU-side read.
		if mode.read() && m.state == stateGPUNewer {
			m.state = stateConsistent
		}
		return &Mapping{mem: m, side: side, mode: mode, Bytes: bytes}, nil

	default:
		return nil, ErrUnsupportedMapping
	}
}

// Unmap releases the mapping. If the mapping was writable, the mapped
// side becomes the newer one; the opposite side refreshes on its next
// read. Unmap is idempotent.
func (mp *Mapping) Unmap() {
	if mp.done {
		return
	}
	mp.done = true
	if !mp.mode.write() {
		return
	}
	m := mp.mem
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed || m.target == glcore.TargetExternalOES {
		return
	}
	switch mp.side {
	case SideCPU:
		m.state = stateCPUNewer
		if m.pbo != nil {
			m.pbo.markDataWritten()
		}
	case SideGPU:
		m.state = stateGPUNewer
	}
}
