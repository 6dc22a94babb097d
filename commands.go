package musmix

import (
	"sync/atomic"
)

type commandKind uint8

const (
	cmdNone commandKind = iota
	cmdStartEffect
	cmdStopEffect
	cmdUpdateEffect
	cmdPlaySong
	cmdStopSong
	cmdPauseSong
	cmdResumeSong
	cmdSetMusicVolume
)

// command is a control request issued from the game tick context
// and executed at the top of the next audio callback.
type command struct {
	kind commandKind

	slot    int
	handle  Handle
	effect  EffectID
	samples []byte
	left    int
	right   int

	seq    *sequencer
	volume float32
}

// commandQueueSize must be a power of two.
const commandQueueSize = 512

// commandQueue is a bounded single-producer single-consumer ring.
//
// The producer is the control side (serialized by Engine.ctl),
// the consumer is the audio callback.
// Neither push nor pop allocates.
type commandQueue struct {
	buf [commandQueueSize]command

	// head is the next slot to read, tail is the next slot to write.
	// Both only grow; the indexes are taken modulo the buffer size.
	head atomic.Uint32
	tail atomic.Uint32
}

func (q *commandQueue) push(c command) bool {
	tail := q.tail.Load()
	if tail-q.head.Load() == commandQueueSize {
		return false
	}
	q.buf[tail%commandQueueSize] = c
	q.tail.Store(tail + 1)
	return true
}

func (q *commandQueue) pop(dst *command) bool {
	head := q.head.Load()
	if head == q.tail.Load() {
		return false
	}
	slot := &q.buf[head%commandQueueSize]
	*dst = *slot
	// Drop the references so the released sequencers and samples
	// don't stay reachable through the ring.
	*slot = command{}
	q.head.Store(head + 1)
	return true
}

func (q *commandQueue) len() int {
	return int(q.tail.Load() - q.head.Load())
}
