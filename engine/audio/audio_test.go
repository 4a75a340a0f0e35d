package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSniffContainers(t *testing.T) {
	wavHdr := append([]byte("RIFF"), 0, 0, 0, 0)
	wavHdr = append(wavHdr, []byte("WAVE")...)
	assert.Equal(t, FormatWAV, sniff(wavHdr))

	assert.Equal(t, FormatOGG, sniff([]byte("OggS\x00rest")))

	assert.Equal(t, FormatUnknown, sniff([]byte("ID3\x03junk")))
	assert.Equal(t, FormatUnknown, sniff(nil))
	assert.Equal(t, FormatUnknown, sniff([]byte("RIF")))
}

func TestVolumeToGain(t *testing.T) {
	assert.InDelta(t, 0, volumeToGain(1), 1e-9)
	assert.InDelta(t, -1, volumeToGain(0.5), 1e-9)
	assert.InDelta(t, -2, volumeToGain(0.25), 1e-9)
	assert.Equal(t, float64(-10), volumeToGain(0))
}
