package encoder

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os/exec"
	"strings"
	"testing"

	"github.com/gen2brain/avif"
	xwebp "golang.org/x/image/webp"

	"github.com/AnyUserName/imgfit-cli/internal/codec"
)

// testImage returns a gradient with some high-frequency detail, so that
// lossy quality settings produce visibly different sizes.
func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 96, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 96; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / 96),
				G: uint8((x*y + 7*x) % 256),
				B: uint8((y * 37) % 256),
				A: 255,
			})
		}
	}
	return img
}

func TestPercent(t *testing.T) {
	tests := []struct {
		q    float64
		want int
	}{
		{0, 1},
		{0.35, 35},
		{0.92, 92},
		{1, 100},
		{1.7, 100},
		{-3, 1},
	}
	for _, tt := range tests {
		if got := percent(tt.q); got != tt.want {
			t.Errorf("percent(%v) = %d, want %d", tt.q, got, tt.want)
		}
	}
}

func TestAvifencQuantizer(t *testing.T) {
	if got := avifencQuantizer(1); got != 0 {
		t.Errorf("quantizer(1) = %d, want 0", got)
	}
	if got := avifencQuantizer(0); got != 63 {
		t.Errorf("quantizer(0) = %d, want 63", got)
	}
	if a, b := avifencQuantizer(0.4), avifencQuantizer(0.9); a <= b {
		t.Errorf("lower quality should give a higher quantizer: %d <= %d", a, b)
	}
}

func TestJPEGEncoder_QualityAffectsSize(t *testing.T) {
	enc := &JPEGEncoder{}
	ctx := context.Background()
	low, err := enc.Encode(ctx, testImage(), 0.35)
	if err != nil {
		t.Fatalf("encode low: %v", err)
	}
	high, err := enc.Encode(ctx, testImage(), 0.95)
	if err != nil {
		t.Fatalf("encode high: %v", err)
	}
	if len(low) >= len(high) {
		t.Fatalf("expected low quality size < high quality size, got %d >= %d", len(low), len(high))
	}
	if _, err := jpeg.Decode(bytes.NewReader(high)); err != nil {
		t.Fatalf("output does not decode as jpeg: %v", err)
	}
}

func TestPNGEncoder_IgnoresQuality(t *testing.T) {
	enc := &PNGEncoder{}
	ctx := context.Background()
	a, err := enc.Encode(ctx, testImage(), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := enc.Encode(ctx, testImage(), 0.9)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("png output should not depend on quality")
	}
	if _, err := png.Decode(bytes.NewReader(a)); err != nil {
		t.Fatalf("output does not decode as png: %v", err)
	}
}

func TestWebPEncoder_Decodes(t *testing.T) {
	data, err := (&WebPEncoder{}).Encode(context.Background(), testImage(), 0.8)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := xwebp.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 96 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}
}

func TestAVIFEncoder_Decodes(t *testing.T) {
	data, err := (&AVIFEncoder{Speed: 10}).Encode(context.Background(), testImage(), 0.6)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := avif.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestExternalAVIFEncoder(t *testing.T) {
	if _, err := exec.LookPath("avifenc"); err != nil {
		t.Skip("avifenc not installed")
	}
	enc := &ExternalAVIFEncoder{Speed: 10}
	data, err := enc.Encode(context.Background(), testImage(), 0.6)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output")
	}
}

func TestEncodersHonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, enc := range []Encoder{&JPEGEncoder{}, &PNGEncoder{}, &WebPEncoder{}, &AVIFEncoder{}} {
		if _, err := enc.Encode(ctx, testImage(), 0.5); err == nil {
			t.Errorf("%s: expected error for cancelled context", enc.Codec())
		}
	}
}

type unavailable struct{ *PNGEncoder }

func (unavailable) Codec() codec.Codec { return codec.WebP }
func (unavailable) Available() bool    { return false }

func TestRegistry(t *testing.T) {
	r := NewRegistryWith(&JPEGEncoder{}, &PNGEncoder{}, unavailable{})
	if r.Get(codec.JPEG) == nil || r.Get(codec.PNG) == nil {
		t.Fatal("jpeg and png should be registered")
	}
	if r.Get(codec.WebP) != nil {
		t.Error("unavailable encoder should not be registered")
	}
	if r.Get(codec.HEIC) != nil {
		t.Error("heic must never have an encoder")
	}
	if s := r.String(); !strings.Contains(s, "jpeg, png") {
		t.Errorf("String() = %q", s)
	}
	if s := NewRegistryWith().String(); s != "no encoders available" {
		t.Errorf("empty String() = %q", s)
	}
}

func TestNewRegistryBackends(t *testing.T) {
	r := NewRegistry(Options{JPEG: JPEGJpegli})
	jpegEnc, ok := r.Get(codec.JPEG).(*JPEGEncoder)
	if !ok || !jpegEnc.UseJpegli {
		t.Error("jpegli backend not selected")
	}
	if _, ok := r.Get(codec.AVIF).(*AVIFEncoder); !ok {
		t.Error("native avif encoder should be the default")
	}
}

func TestValidateOptions(t *testing.T) {
	if err := ValidateOptions(Options{}); err != nil {
		t.Errorf("zero options: %v", err)
	}
	bad := []Options{
		{JPEG: "mozjpeg"},
		{AVIF: "rav1e"},
		{AVIFSpeed: 11},
	}
	for _, o := range bad {
		if err := ValidateOptions(o); err == nil {
			t.Errorf("ValidateOptions(%+v) = nil, want error", o)
		}
	}
}
