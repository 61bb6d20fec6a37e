package wavio

import (
	"bytes"
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	wav "github.com/youpy/go-wav"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	const rate = 44100
	in := make([]float64, 200)
	for i := range in {
		in[i] = 0.75 * math.Sin(2*math.Pi*1000*float64(i)/rate)
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeMono(&buf, in, rate))

	out, info, err := DecodeMono(&buf)
	require.NoError(t, err)
	require.Equal(t, Info{SampleRate: rate, Channels: 1, BitsPerSample: 16}, info)
	require.Len(t, out, len(in))

	for i := range in {
		require.InDelta(t, in[i], out[i], 1.0/32768+1e-9, "sample %d", i)
	}
}

func TestWriteReadMonoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")

	in := []float64{0, 0.5, -0.5, 0.25, -0.25}
	require.NoError(t, WriteMono(path, in, 8000))

	out, info, err := ReadMono(path)
	require.NoError(t, err)
	require.Equal(t, 8000, info.SampleRate)
	require.Len(t, out, len(in))

	for i := range in {
		require.InDelta(t, in[i], out[i], 1.0/32768+1e-9, "sample %d", i)
	}
}

func TestDecodeStereoMixdown(t *testing.T) {
	var buf bytes.Buffer
	writer := wav.NewWriter(&buf, 3, 2, 8000, 16)

	// Opposite channels cancel, equal channels pass through.
	samples := []wav.Sample{
		{Values: [2]int{16384, -16384}},
		{Values: [2]int{9830, 9830}},
		{Values: [2]int{-32768, -32768}},
	}
	require.NoError(t, writer.WriteSamples(samples))

	out, info, err := DecodeMono(&buf)
	require.NoError(t, err)
	require.Equal(t, 2, info.Channels)
	require.Len(t, out, 3)

	require.InDelta(t, 0.0, out[0], 1e-12)
	require.InDelta(t, 0.3, out[1], 1e-4)
	require.InDelta(t, -1.0, out[2], 1e-12)
}

func TestDecodeFloat32(t *testing.T) {
	values := []float32{0, 0.25, -0.5, 1, -1}

	payload := new(bytes.Buffer)
	for _, v := range values {
		require.NoError(t, binary.Write(payload, binary.LittleEndian, v))
	}

	stream := rawWav(t, wav.AudioFormatIEEEFloat, 1, 32, 8000, payload.Bytes())

	out, info, err := DecodeMono(bytes.NewReader(stream))
	require.NoError(t, err)
	require.True(t, info.FloatFormat)
	require.Equal(t, 32, info.BitsPerSample)
	require.Len(t, out, len(values))

	for i, v := range values {
		require.InDelta(t, float64(v), out[i], 1e-9, "sample %d", i)
	}
}

func TestDecode8BitPCM(t *testing.T) {
	stream := rawWav(t, wav.AudioFormatPCM, 1, 8, 8000, []byte{128, 255, 0, 192})

	out, _, err := DecodeMono(bytes.NewReader(stream))
	require.NoError(t, err)
	require.Len(t, out, 4)

	require.InDelta(t, 0.0, out[0], 1e-12)
	require.InDelta(t, 127.0/128, out[1], 1e-12)
	require.InDelta(t, -1.0, out[2], 1e-12)
	require.InDelta(t, 0.5, out[3], 1e-12)
}

func TestDecodeUnsupportedFormats(t *testing.T) {
	cases := []struct {
		name   string
		format uint16
		bits   uint16
	}{
		{"12-bit pcm", wav.AudioFormatPCM, 12},
		{"64-bit float", wav.AudioFormatIEEEFloat, 64},
		{"compressed", 85, 16},
	}

	for _, tc := range cases {
		stream := rawWav(t, tc.format, 1, tc.bits, 8000, nil)

		_, _, err := DecodeMono(bytes.NewReader(stream))
		require.ErrorIs(t, err, ErrUnsupportedFormat, tc.name)
	}
}

func TestEncodeClipsRange(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeMono(&buf, []float64{2, -2}, 8000))

	out, _, err := DecodeMono(&buf)
	require.NoError(t, err)
	require.Len(t, out, 2)

	require.InDelta(t, 1.0, out[0], 1e-3)
	require.InDelta(t, -1.0, out[1], 1e-3)
}

func TestEncodeInvalidRate(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, EncodeMono(&buf, []float64{0}, 0))
	require.Error(t, EncodeMono(&buf, []float64{0}, -8000))
}

func TestDecodeEmptyData(t *testing.T) {
	stream := rawWav(t, wav.AudioFormatPCM, 1, 16, 8000, nil)

	out, info, err := DecodeMono(bytes.NewReader(stream))
	require.NoError(t, err)
	require.Empty(t, out)
	require.Equal(t, 8000, info.SampleRate)
}

// rawWav assembles a minimal RIFF/WAVE stream with a single fmt and data
// chunk, for formats the high-level writer cannot produce.
func rawWav(t *testing.T, format, channels, bits uint16, rate uint32, data []byte) []byte {
	t.Helper()

	blockAlign := channels * bits / 8
	byteRate := rate * uint32(blockAlign)

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	require.NoError(t, binary.Write(buf, binary.LittleEndian, uint32(36+len(data))))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	require.NoError(t, binary.Write(buf, binary.LittleEndian, uint32(16)))
	require.NoError(t, binary.Write(buf, binary.LittleEndian, format))
	require.NoError(t, binary.Write(buf, binary.LittleEndian, channels))
	require.NoError(t, binary.Write(buf, binary.LittleEndian, rate))
	require.NoError(t, binary.Write(buf, binary.LittleEndian, byteRate))
	require.NoError(t, binary.Write(buf, binary.LittleEndian, blockAlign))
	require.NoError(t, binary.Write(buf, binary.LittleEndian, bits))

	buf.WriteString("data")
	require.NoError(t, binary.Write(buf, binary.LittleEndian, uint32(len(data))))
	buf.Write(data)

	return buf.Bytes()
}
