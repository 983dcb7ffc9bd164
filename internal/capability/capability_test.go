package capability

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/AnyUserName/imgfit-cli/internal/codec"
	"github.com/AnyUserName/imgfit-cli/internal/encoder"
)

type fakeEncoder struct {
	c     codec.Codec
	out   []byte
	err   error
	calls int
}

func (f *fakeEncoder) Codec() codec.Codec { return f.c }
func (f *fakeEncoder) Available() bool    { return true }
func (f *fakeEncoder) Encode(_ context.Context, _ image.Image, _ float64) ([]byte, error) {
	f.calls++
	return f.out, f.err
}

type fakeSource map[codec.Codec]encoder.Encoder

func (s fakeSource) Get(c codec.Codec) encoder.Encoder { return s[c] }

func TestProbe(t *testing.T) {
	webp := &fakeEncoder{c: codec.WebP, out: []byte("RIFF")}
	avif := &fakeEncoder{c: codec.AVIF, err: errors.New("no av1 encoder")}
	src := fakeSource{
		codec.JPEG: &fakeEncoder{c: codec.JPEG},
		codec.PNG:  &fakeEncoder{c: codec.PNG},
		codec.WebP: webp,
		codec.AVIF: avif,
	}

	caps := Probe(context.Background(), src, nil)

	want := map[codec.Codec]bool{
		codec.JPEG: true,
		codec.PNG:  true,
		codec.WebP: true,
		codec.AVIF: false,
		codec.HEIC: false,
	}
	for c, ok := range want {
		if caps.Supports(c) != ok {
			t.Errorf("Supports(%s) = %v, want %v", c, !ok, ok)
		}
	}
	if webp.calls != 1 || avif.calls != 1 {
		t.Errorf("each probed codec should be encoded once, got webp=%d avif=%d", webp.calls, avif.calls)
	}
}

func TestProbeEmptyOutputIsUnsupported(t *testing.T) {
	src := fakeSource{codec.WebP: &fakeEncoder{c: codec.WebP, out: nil}}
	if Probe(context.Background(), src, nil).Supports(codec.WebP) {
		t.Error("empty probe output should count as unsupported")
	}
}

func TestProbeMissingEncoder(t *testing.T) {
	caps := Probe(context.Background(), fakeSource{}, nil)
	for _, c := range codec.All {
		if caps.Supports(c) {
			t.Errorf("%s supported without an encoder", c)
		}
	}
}

func TestProbeRealRegistry(t *testing.T) {
	caps := Probe(context.Background(), encoder.NewRegistry(encoder.Options{}), nil)
	if !caps.Supports(codec.JPEG) || !caps.Supports(codec.PNG) {
		t.Error("stdlib codecs must always be supported")
	}
	if caps.Supports(codec.HEIC) {
		t.Error("HEIC output must never be supported")
	}
}

func TestStaticForcesHEICOff(t *testing.T) {
	caps := Static(map[codec.Codec]bool{codec.HEIC: true, codec.JPEG: true})
	if caps.Supports(codec.HEIC) {
		t.Error("Static should force HEIC off")
	}
	if got := caps.Supported(); len(got) != 1 || got[0] != codec.JPEG {
		t.Errorf("Supported() = %v", got)
	}
}

func TestNotes(t *testing.T) {
	caps := Static(map[codec.Codec]bool{codec.JPEG: true, codec.WebP: true})
	notes := caps.Notes()
	if len(notes) != 2 {
		t.Fatalf("notes = %v", notes)
	}
	if !strings.HasPrefix(notes[0], "AVIF") {
		t.Errorf("first note = %q", notes[0])
	}
	if !strings.HasPrefix(notes[1], "HEIC") {
		t.Errorf("last note = %q", notes[1])
	}
}
