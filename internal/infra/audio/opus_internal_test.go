package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

// Fixture helpers building structurally valid Ogg Opus streams: an ID page
// carrying OpusHead, the mandatory comment page carrying OpusTags, and
// optional audio pages. Page checksums use the Ogg CRC (polynomial
// 0x04c11db7, unreflected, zero init).

var oggCRCTable = func() (table [256]uint32) {
	const poly = 0x04c11db7
	for i := range table {
		r := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if r&0x80000000 != 0 {
				r = r<<1 ^ poly
			} else {
				r <<= 1
			}
		}
		table[i] = r
	}
	return table
}()

func oggChecksum(page []byte) uint32 {
	var crc uint32
	for i, b := range page {
		// The checksum field itself is computed as zero.
		if i > 21 && i < 26 {
			b = 0
		}
		crc = crc<<8 ^ oggCRCTable[byte(crc>>24)^b]
	}
	return crc
}

func oggPage(headerType byte, sequence uint32, segments ...[]byte) []byte {
	page := []byte{'O', 'g', 'g', 'S', 0, headerType}
	page = append(page, make([]byte, 8)...) // granule position
	page = binary.LittleEndian.AppendUint32(page, 1)
	page = binary.LittleEndian.AppendUint32(page, sequence)
	page = append(page, 0, 0, 0, 0) // checksum, filled in below
	page = append(page, byte(len(segments)))
	for _, s := range segments {
		page = append(page, byte(len(s)))
	}
	for _, s := range segments {
		page = append(page, s...)
	}
	binary.LittleEndian.PutUint32(page[22:26], oggChecksum(page))
	return page
}

func opusHead(channels byte, sampleRate uint32) []byte {
	head := []byte("OpusHead")
	head = append(head, 1, channels)
	head = binary.LittleEndian.AppendUint16(head, 312) // pre-skip
	head = binary.LittleEndian.AppendUint32(head, sampleRate)
	head = binary.LittleEndian.AppendUint16(head, 0) // output gain
	return append(head, 0)                           // channel mapping family
}

func opusTags() []byte {
	tags := []byte("OpusTags")
	tags = binary.LittleEndian.AppendUint32(tags, 4)
	tags = append(tags, []byte("test")...)
	return binary.LittleEndian.AppendUint32(tags, 0)
}

func voiceClip(sampleRate uint32, audioSegments ...[]byte) []byte {
	clip := oggPage(0x02, 0, opusHead(1, sampleRate))
	clip = append(clip, oggPage(0x00, 1, opusTags())...)
	if len(audioSegments) > 0 {
		clip = append(clip, oggPage(0x04, 2, audioSegments...)...)
	}
	return clip
}

func TestDecodeOggOpus_SkipsCommentHeader(t *testing.T) {
	// Header-only stream: ID page plus comment page, no audio pages. The
	// comment packet must be skipped, not handed to the frame decoder.
	_, err := DecodeOggOpus(voiceClip(48000))
	if err == nil {
		t.Fatal("expected error for a stream with no audio pages")
	}
	if strings.Contains(err.Error(), "decoding opus frame") {
		t.Errorf("comment header reached the frame decoder: %v", err)
	}
	if !strings.Contains(err.Error(), "no audio frames") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDecodeOggOpus_DecodesAudioPages(t *testing.T) {
	frames := 0
	decodeFrame := func(segment, out []byte) error {
		if bytes.HasPrefix(segment, opusTagsSignature) {
			t.Fatal("comment packet handed to the frame decoder")
		}
		frames++
		for i := 0; i+1 < len(out); i += 2 {
			out[i] = 7
			out[i+1] = 0
		}
		return nil
	}

	stream := voiceClip(16000, []byte{0x08, 1, 2, 3}, []byte{0x08, 4, 5, 6})
	clip, err := decodeOggOpus(stream, decodeFrame)
	if err != nil {
		t.Fatalf("decodeOggOpus: %v", err)
	}

	if frames != 2 {
		t.Errorf("frames decoded: got %d, want 2", frames)
	}
	if want := 2 * frameBytes / 2; len(clip.Samples) != want {
		t.Errorf("samples: got %d, want %d", len(clip.Samples), want)
	}
	for i, s := range clip.Samples {
		if s != 7 {
			t.Fatalf("sample %d: got %d, want 7", i, s)
		}
	}
	if clip.Channels != 1 {
		t.Errorf("channels: got %d, want 1", clip.Channels)
	}
	// The decoder emits 48kHz output even when the OpusHead declares a lower
	// input rate; the WAV must be labeled with the output rate.
	if clip.SampleRate != decodeSampleRate {
		t.Errorf("sample rate: got %d, want %d", clip.SampleRate, decodeSampleRate)
	}
}

func TestDecodeOggOpus_FrameErrorIsHard(t *testing.T) {
	decodeFrame := func(segment, out []byte) error {
		return errors.New("unsupported frame code")
	}

	_, err := decodeOggOpus(voiceClip(48000, []byte{0x08, 1, 2, 3}), decodeFrame)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "decoding opus frame") {
		t.Errorf("unexpected error: %v", err)
	}
}
