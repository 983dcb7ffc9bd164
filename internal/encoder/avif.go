package encoder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/avif"

	"github.com/AnyUserName/imgfit-cli/internal/codec"
)

// DefaultAVIFSpeed trades encode time for size (0=slowest, 10=fastest).
const DefaultAVIFSpeed = 6

// AVIFEncoder encodes images to AVIF in process via gen2brain/avif.
type AVIFEncoder struct {
	Speed int
}

func (e *AVIFEncoder) Codec() codec.Codec { return codec.AVIF }
func (e *AVIFEncoder) Available() bool    { return true }

func (e *AVIFEncoder) Encode(ctx context.Context, img image.Image, quality float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := percent(quality)
	var buf bytes.Buffer
	err := avif.Encode(&buf, img, avif.Options{
		Quality:      q,
		QualityAlpha: q,
		Speed:        clampSpeed(e.Speed),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clampSpeed(s int) int {
	if s <= 0 {
		return DefaultAVIFSpeed
	}
	if s > 10 {
		return 10
	}
	return s
}

// Atomic counter for unique temp file names across goroutines.
var tempCounter atomic.Int64

// ExternalAVIFEncoder encodes images to AVIF by shelling out to avifenc.
// Install: brew install libavif / apt install libavif-bin
type ExternalAVIFEncoder struct {
	Speed int

	once        sync.Once
	available   bool
	avifencPath string
}

func (e *ExternalAVIFEncoder) Codec() codec.Codec { return codec.AVIF }

func (e *ExternalAVIFEncoder) Available() bool {
	e.once.Do(func() {
		path, err := exec.LookPath("avifenc")
		if err == nil {
			e.available = true
			e.avifencPath = path
		}
	})
	return e.available
}

// avifencQuantizer maps quality [0,1] to avifenc's quantizer scale, where
// lower is better: 0 (lossless-ish) to 63 (worst).
func avifencQuantizer(quality float64) int {
	return 63 - int(math.Round(clampQuality(quality)*63))
}

func (e *ExternalAVIFEncoder) Encode(ctx context.Context, img image.Image, quality float64) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("avifenc not found in PATH; install with: brew install libavif")
	}

	q := avifencQuantizer(quality)

	id := tempCounter.Add(1)
	srcFile, err := os.CreateTemp("", fmt.Sprintf("imgfit_avif_src_%d_*.png", id))
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	srcPath := srcFile.Name()
	dstFile, err := os.CreateTemp("", fmt.Sprintf("imgfit_avif_dst_%d_*.avif", id))
	if err != nil {
		srcFile.Close()
		os.Remove(srcPath)
		return nil, fmt.Errorf("create temp: %w", err)
	}
	dstPath := dstFile.Name()
	dstFile.Close()
	defer os.Remove(srcPath)
	defer os.Remove(dstPath)

	if err := png.Encode(srcFile, img); err != nil {
		srcFile.Close()
		return nil, fmt.Errorf("encode temp png: %w", err)
	}
	srcFile.Close()

	cmd := exec.CommandContext(ctx, e.avifencPath,
		"--min", fmt.Sprintf("%d", q),
		"--max", fmt.Sprintf("%d", q),
		"--speed", fmt.Sprintf("%d", clampSpeed(e.Speed)),
		"-j", "all",
		srcPath,
		dstPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("avifenc: %w: %s", err, string(out))
	}

	return os.ReadFile(dstPath)
}
