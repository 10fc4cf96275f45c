package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pion/opus"
	"github.com/pion/opus/pkg/oggreader"
)

// Clip holds PCM samples decoded from a voice message. SampleRate is the
// decoder's output rate, not the rate declared by the clip's OpusHead: Opus
// frames always decode at 48kHz regardless of the encoder's input rate.
type Clip struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

const (
	// frameBytes fits one decoded 20ms Opus frame at 48kHz (960 samples, 16-bit).
	frameBytes = 1920
	// decodeSampleRate is the fixed output rate of the Opus decoder.
	decodeSampleRate = 48000
)

// opusTagsSignature opens the comment header packet that follows the ID
// header in every Ogg Opus stream. It carries no audio and must never reach
// the frame decoder.
var opusTagsSignature = []byte("OpusTags")

// DecodeOggOpus decodes an OGG-encapsulated Opus voice clip into 16-bit PCM.
// The clip is staged through a uniquely named temporary file that is removed
// on every return path, including decode failures.
func DecodeOggOpus(data []byte) (*Clip, error) {
	decoder := opus.NewDecoder()
	return decodeOggOpus(data, func(segment, out []byte) error {
		_, _, err := decoder.Decode(segment, out)
		return err
	})
}

func decodeOggOpus(data []byte, decodeFrame func(segment, out []byte) error) (*Clip, error) {
	tmp, err := os.CreateTemp("", "voice-*.ogg")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding temp file: %w", err)
	}

	ogg, header, err := oggreader.NewWith(tmp)
	if err != nil {
		return nil, fmt.Errorf("parsing ogg container: %w", err)
	}

	out := make([]byte, frameBytes)
	var pcm []int16

	for {
		segments, _, err := ogg.ParseNextPage()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ogg page: %w", err)
		}

		for _, segment := range segments {
			if bytes.HasPrefix(segment, opusTagsSignature) {
				continue
			}
			if err := decodeFrame(segment, out); err != nil {
				return nil, fmt.Errorf("decoding opus frame: %w", err)
			}
			for i := 0; i+1 < len(out); i += 2 {
				pcm = append(pcm, int16(uint16(out[i])|uint16(out[i+1])<<8))
			}
		}
	}

	if len(pcm) == 0 {
		return nil, fmt.Errorf("ogg stream contained no audio frames")
	}

	return &Clip{
		Samples:    pcm,
		SampleRate: decodeSampleRate,
		Channels:   int(header.Channels),
	}, nil
}
