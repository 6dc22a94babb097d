package musmix

type numeric interface {
	int | int32 | float32
}

func clamp[T numeric](v, min, max T) T {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// stereoGains converts a volume (0-127) and a stereo separation
// (0-255, 128 is centered) into left and right channel gains.
//
// The separation follows an x^2 law.
func stereoGains(volume, separation int) (left, right int) {
	// Separation range becomes 1-256.
	separation++

	leftSep := separation + 1
	left = volume - ((volume * leftSep * leftSep) >> 16)
	if left < 0 || left > 127 {
		panic("musmix: left gain is out of range")
	}

	rightSep := separation - 256
	right = volume - ((volume * rightSep * rightSep) >> 16)
	if right < 0 || right > 127 {
		panic("musmix: right gain is out of range")
	}

	return left, right
}

// ticksToFrames converts MUS ticks (140 Hz) into output frames.
// The remainder of the division is carried between the calls,
// so a long song doesn't drift away from the score timing.
func ticksToFrames(ticks uint32, sampleRate int, remainder *int) int {
	total := int(ticks)*sampleRate + *remainder
	*remainder = total % musTicksPerSecond
	return total / musTicksPerSecond
}
