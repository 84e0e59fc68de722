package params

const (
	SecParam  = 256
	SecBytes  = SecParam / 8
	StatParam = 80

	// OversampleBytes is the number of extra random bytes read on top of the
	// byte length of a group order before reducing, so that the reduced value
	// is statistically close to uniform.
	OversampleBytes = (2*StatParam + 7) / 8 // = 20

	// MaxSampleIterations bounds rejection sampling loops.
	MaxSampleIterations = 255

	// FrameCapacity is the initial capacity of a pooled hash-input frame.
	// It fits an identity, a short message and two compressed points.
	FrameCapacity = 256

	// MaxPooledFrame is the largest frame we return to the pool.
	// Larger frames are left to the garbage collector.
	MaxPooledFrame = 64 << 10
)
