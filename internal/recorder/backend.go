package recorder

// CaptureBackend opens capture sessions on the platform's default input
// device. The production implementation is MalgoBackend; tests substitute
// a fake that feeds synthetic samples.
type CaptureBackend interface {
	// Open claims the default input device and registers onSamples as the
	// streaming callback. The callback runs on a driver-owned thread and
	// receives interleaved float32 samples; it must return quickly.
	Open(onSamples func([]float32)) (CaptureSession, error)
}

// CaptureSession is one open device stream. Close releases the device and
// must be called exactly once; after Close no further callbacks arrive.
type CaptureSession interface {
	// Format reports the device's native sample rate and channel count,
	// fixed for the lifetime of the session.
	Format() Format

	// Start begins streaming into the registered callback.
	Start() error

	// Close stops the stream and releases the device.
	Close() error
}
