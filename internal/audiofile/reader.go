package audiofile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
)

const (
	extWAV  = ".wav"
	extMP3  = ".mp3"
	extFLAC = ".flac"
)

// ReadFile decodes an audio file into a Buffer. WAV, MP3 and FLAC are
// supported; the format is chosen by extension, falling back to magic
// bytes when the extension is missing or unknown.
func ReadFile(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case extWAV, extMP3, extFLAC:
	default:
		ext, err = sniffFormat(f)
		if err != nil {
			return nil, err
		}
	}

	switch ext {
	case extWAV:
		return decodeWAV(f)
	case extMP3:
		streamer, format, err := mp3.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode mp3: %w", err)
		}
		return drainStreamer(streamer, format)
	case extFLAC:
		streamer, format, err := flac.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode flac: %w", err)
		}
		return drainStreamer(streamer, format)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// sniffFormat inspects the first bytes of the file and rewinds it.
func sniffFormat(r io.ReadSeeker) (string, error) {
	header := make([]byte, 12)
	n, err := r.Read(header)
	if err != nil && err != io.EOF {
		return "", err
	}
	header = header[:n]
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	switch {
	case len(header) >= 12 && string(header[:4]) == "RIFF" && string(header[8:12]) == "WAVE":
		return extWAV, nil
	case len(header) >= 4 && string(header[:4]) == "fLaC":
		return extFLAC, nil
	case len(header) >= 3 && string(header[:3]) == "ID3":
		return extMP3, nil
	case len(header) >= 2 && header[0] == 0xFF && (header[1]&0xF6) == 0xF2:
		return extMP3, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

func decodeWAV(f *os.File) (*Buffer, error) {
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid WAV file", ErrUnsupportedFormat)
	}
	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	nch := pcm.Format.NumChannels
	if nch <= 0 || len(pcm.Data) == 0 {
		return nil, ErrNoData
	}

	scale := float64(int64(1) << (d.BitDepth - 1))
	frames := len(pcm.Data) / nch
	channels := make([][]float64, nch)
	for ch := range channels {
		channels[ch] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < nch; ch++ {
			channels[ch][i] = float64(pcm.Data[i*nch+ch]) / scale
		}
	}
	return NewBuffer(channels, pcm.Format.SampleRate)
}

// drainStreamer pulls every sample out of a beep decoder into a Buffer.
// Beep streams stereo sample pairs regardless of the source channel
// count; mono sources keep only the left channel.
func drainStreamer(streamer beep.StreamSeekCloser, format beep.Format) (*Buffer, error) {
	defer streamer.Close()

	nch := format.NumChannels
	if nch > 2 {
		nch = 2
	}
	if nch <= 0 {
		nch = 1
	}

	channels := make([][]float64, nch)
	chunk := make([][2]float64, 2048)
	for {
		n, ok := streamer.Stream(chunk)
		for i := 0; i < n; i++ {
			channels[0] = append(channels[0], chunk[i][0])
			if nch == 2 {
				channels[1] = append(channels[1], chunk[i][1])
			}
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("stream samples: %w", err)
	}
	if len(channels[0]) == 0 {
		return nil, ErrNoData
	}
	return NewBuffer(channels, int(format.SampleRate))
}
