package recorder

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gen2brain/malgo"
)

// MalgoBackend captures from the default input device via miniaudio.
type MalgoBackend struct{}

// Open initializes a capture device in its native format. Passing zero for
// sample rate and channels lets miniaudio resolve the device defaults; the
// resolved values are read back from the device handle.
func (MalgoBackend) Open(onSamples func([]float32)) (CaptureSession, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}

	deviceCfg := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceCfg.Capture.Format = malgo.FormatF32
	deviceCfg.Capture.Channels = 0 // device native
	deviceCfg.SampleRate = 0       // device native
	deviceCfg.Alsa.NoMMap = 1

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, frameCount uint32) {
			onSamples(bytesToFloat32(input))
		},
	}

	device, err := malgo.InitDevice(ctx.Context, deviceCfg, callbacks)
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("no input device found: %w", err)
	}

	return &malgoSession{
		ctx:    ctx,
		device: device,
		format: Format{
			SampleRate: int(device.SampleRate()),
			Channels:   int(device.CaptureChannels()),
		},
	}, nil
}

type malgoSession struct {
	ctx    *malgo.AllocatedContext
	device *malgo.Device
	format Format
}

func (s *malgoSession) Format() Format { return s.format }

func (s *malgoSession) Start() error {
	if err := s.device.Start(); err != nil {
		return fmt.Errorf("failed to start stream: %w", err)
	}
	return nil
}

func (s *malgoSession) Close() error {
	s.device.Uninit()
	err := s.ctx.Uninit()
	s.ctx.Free()
	if err != nil {
		return fmt.Errorf("failed to release audio context: %w", err)
	}
	return nil
}

// bytesToFloat32 decodes little-endian float32 frames as delivered by the
// device callback. The input slice is reused by the driver after the
// callback returns, so samples are copied out.
func bytesToFloat32(data []byte) []float32 {
	samples := make([]float32, 0, len(data)/4)
	for i := 0; i+4 <= len(data); i += 4 {
		bits := binary.LittleEndian.Uint32(data[i : i+4])
		samples = append(samples, math.Float32frombits(bits))
	}
	return samples
}
