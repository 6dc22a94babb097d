package musmix

import (
	"unsafe"

	"github.com/quasilyte/musmix/musfile"
)

// EngineInfo contains the engine stats, like its memory usage.
type EngineInfo struct {
	// MaxFrames is the largest buffer Mix can accept (in frames).
	MaxFrames uint

	// MemoryUsage approximates the engine size in bytes.
	// The effect samples are owned by the archive and they're not counted.
	MemoryUsage uint

	// PendingCommands is a number of control commands
	// that were not applied by the audio callback yet.
	PendingCommands uint
}

// GetInfo returns the engine-related info.
func (e *Engine) GetInfo() EngineInfo {
	e.ctl.Lock()
	defer e.ctl.Unlock()

	memoryUsage := int(unsafe.Sizeof(Engine{}))
	memoryUsage += len(e.catalog.entries) * int(unsafe.Sizeof(effectEntry{}))
	if e.song != nil {
		memoryUsage += int(unsafe.Sizeof(musfile.Score{}))
		memoryUsage += len(e.song.Instruments) * 2
	}

	return EngineInfo{
		MaxFrames:       MaxFrames,
		MemoryUsage:     uint(memoryUsage),
		PendingCommands: uint(e.queue.len()),
	}
}
