// Package wavio reads and writes mono float64 sample buffers as WAV files.
//
// Decoding accepts 8/16/24/32-bit PCM and 32-bit IEEE float streams in any
// channel count; multi-channel input is mixed down to mono by averaging.
// Encoding always produces 16-bit PCM mono.
package wavio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	riff "github.com/youpy/go-riff"
	wav "github.com/youpy/go-wav"

	"github.com/modemlab/fskmodem/dsp/core"
)

// ErrUnsupportedFormat indicates a WAV encoding this package cannot decode.
var ErrUnsupportedFormat = errors.New("wavio: unsupported wav format")

const readBlockSamples = 2048

// Info describes the format of a decoded WAV stream.
type Info struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	FloatFormat   bool
}

// DecodeMono decodes a WAV stream into normalized mono samples in [-1, 1].
// Multi-channel streams are averaged across channels.
func DecodeMono(r io.Reader) ([]float64, Info, error) {
	rr, ok := r.(riff.RIFFReader)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, Info{}, fmt.Errorf("wavio: read stream: %w", err)
		}
		rr = bytes.NewReader(data)
	}
	reader := wav.NewReader(rr)

	format, err := reader.Format()
	if err != nil {
		return nil, Info{}, fmt.Errorf("wavio: read format: %w", err)
	}

	if err := checkFormat(format); err != nil {
		return nil, Info{}, err
	}

	info := Info{
		SampleRate:    int(format.SampleRate),
		Channels:      int(format.NumChannels),
		BitsPerSample: int(format.BitsPerSample),
		FloatFormat:   format.AudioFormat == wav.AudioFormatIEEEFloat,
	}

	channels := info.Channels
	bits := info.BitsPerSample
	out := make([]float64, 0, readBlockSamples)

	for {
		block, readErr := reader.ReadSamples(readBlockSamples)

		for _, s := range block {
			var sum float64
			for ch := 0; ch < channels; ch++ {
				if info.FloatFormat {
					sum += reader.FloatValue(s, uint(ch))
				} else {
					sum += normalizePCM(reader.IntValue(s, uint(ch)), bits)
				}
			}
			out = append(out, sum/float64(channels))
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, Info{}, fmt.Errorf("wavio: read samples: %w", readErr)
		}
	}

	return out, info, nil
}

// ReadMono reads a WAV file into normalized mono samples in [-1, 1].
func ReadMono(path string) ([]float64, Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Info{}, fmt.Errorf("wavio: open %s: %w", path, err)
	}
	defer f.Close()

	return DecodeMono(f)
}

// EncodeMono writes samples as a 16-bit PCM mono WAV stream. Samples outside
// [-1, 1] are clipped.
func EncodeMono(w io.Writer, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate must be > 0: %d", sampleRate)
	}

	writer := wav.NewWriter(w, uint32(len(samples)), 1, uint32(sampleRate), 16)

	block := make([]wav.Sample, 0, readBlockSamples)
	for start := 0; start < len(samples); start += readBlockSamples {
		end := min(start+readBlockSamples, len(samples))

		block = block[:0]
		for _, v := range samples[start:end] {
			q := int(math.Round(core.Clamp(v, -1, 1) * 32767))
			block = append(block, wav.Sample{Values: [2]int{q, 0}})
		}

		if err := writer.WriteSamples(block); err != nil {
			return fmt.Errorf("wavio: write samples: %w", err)
		}
	}

	return nil
}

// WriteMono writes samples to path as a 16-bit PCM mono WAV file.
func WriteMono(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: create %s: %w", path, err)
	}

	if err := EncodeMono(f, samples, sampleRate); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("wavio: close %s: %w", path, err)
	}

	return nil
}

func checkFormat(format *wav.WavFormat) error {
	if format.NumChannels == 0 {
		return fmt.Errorf("%w: zero channels", ErrUnsupportedFormat)
	}

	switch format.AudioFormat {
	case wav.AudioFormatPCM:
		switch format.BitsPerSample {
		case 8, 16, 24, 32:
			return nil
		default:
			return fmt.Errorf("%w: %d-bit pcm", ErrUnsupportedFormat, format.BitsPerSample)
		}
	case wav.AudioFormatIEEEFloat:
		if format.BitsPerSample != 32 {
			return fmt.Errorf("%w: %d-bit float", ErrUnsupportedFormat, format.BitsPerSample)
		}
		return nil
	default:
		return fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, format.AudioFormat)
	}
}

// normalizePCM maps an integer PCM value to [-1, 1). 8-bit WAV is unsigned
// offset binary; wider widths are signed two's complement.
func normalizePCM(v, bits int) float64 {
	if bits == 8 {
		return (float64(v) - 128) / 128
	}

	return float64(v) / float64(int64(1)<<(bits-1))
}
