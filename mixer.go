package musmix

// EffectSampleRate is the native rate of the sound effects.
const EffectSampleRate = 11025

// mixDivisor scales a sum of (sample-128)*gain products into [-1, 1].
const mixDivisor = 16383.0

// resampler is an accumulator-based rate converter.
// The accumulator is always in [0, outRate) between the frames.
type resampler struct {
	outRate int
	inRate  int
	accum   int
}

func newResampler(outRate, inRate int) resampler {
	r := resampler{outRate: outRate, inRate: inRate}
	if outRate > inRate {
		// The first advance reaches the threshold, so the very first
		// output frame already carries a fresh source sample.
		r.accum = outRate - inRate
	}
	return r
}

// sfxMixer is a zero-order-hold resampling mixer of the effect channels.
//
// Between two source samples the previous sample is repeated.
// This produces some aliasing for the upsampled effects,
// but it matches how the DMX effects are expected to sound.
type sfxMixer struct {
	resampler resampler

	// The last computed source sample.
	// It's held over the frames and the callbacks.
	left  float32
	right float32

	// numSourceSamples counts the computed source samples.
	numSourceSamples uint64
}

// mix writes len(buf)/2 stereo frames into buf.
// The SFX layer overwrites the buffer contents.
func (m *sfxMixer) mix(pool *channelPool, buf []float32) {
	r := &m.resampler
	for i := 0; i < len(buf); i += 2 {
		r.accum += r.inRate
		for r.accum >= r.outRate {
			r.accum -= r.outRate
			m.nextSourceSample(pool)
		}
		buf[i] = m.left
		buf[i+1] = m.right
	}
}

func (m *sfxMixer) nextSourceSample(pool *channelPool) {
	// This function dominates the effects mixing execution time.
	dl := 0
	dr := 0
	for slot := range pool.channels {
		ch := &pool.channels[slot]
		if !ch.isActive() {
			continue
		}
		sample := int(ch.samples[ch.pos]) - 128
		ch.pos++
		dl += sample * ch.leftGain
		dr += sample * ch.rightGain
		if ch.pos >= len(ch.samples) {
			pool.finish(slot)
		}
	}
	m.left = clamp(float32(dl)/mixDivisor, -1, 1)
	m.right = clamp(float32(dr)/mixDivisor, -1, 1)
	m.numSourceSamples++
}
