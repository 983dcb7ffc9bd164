package decoder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	apperrors "github.com/AnyUserName/imgfit-cli/internal/errors"
)

// Converter turns HEIC/HEIF bytes into PNG bytes the native decoder reads.
type Converter interface {
	ToPNG(ctx context.Context, data []byte) ([]byte, error)
}

// LoadFunc initializes a Converter. It runs at most once per HEIFLoader.
type LoadFunc func() (Converter, error)

// LoadState describes where a HEIFLoader is in its lifecycle.
type LoadState int

const (
	NotLoaded LoadState = iota
	Loaded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "not loaded"
}

// HEIFLoader loads the HEIF helper on first use and caches the outcome,
// success or failure, for the rest of the process.
type HEIFLoader struct {
	load LoadFunc
	log  *slog.Logger

	once  sync.Once
	mu    sync.Mutex
	state LoadState
	conv  Converter
	err   error
}

// NewHEIFLoader wraps load. Nothing is loaded until Get is called.
func NewHEIFLoader(load LoadFunc, log *slog.Logger) *HEIFLoader {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &HEIFLoader{load: load, log: log}
}

// Get returns the helper, loading it on the first call.
func (l *HEIFLoader) Get() (Converter, error) {
	l.once.Do(func() {
		conv, err := l.load()
		if err == nil && conv == nil {
			err = errors.New("loader returned no converter")
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if err != nil {
			l.state, l.err = Failed, fmt.Errorf("%w: %v", apperrors.ErrHelperUnavailable, err)
			l.log.Warn("heif helper load failed", "error", err)
			return
		}
		l.state, l.conv = Loaded, conv
		l.log.Debug("heif helper loaded")
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conv, l.err
}

// State reports whether the helper has been loaded yet.
func (l *HEIFLoader) State() LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// LoadHelper is the LoadFunc used by the CLI. It prefers the linked libheif
// and falls back to the heif-convert tool.
func LoadHelper() (Converter, error) {
	conv, libErr := LoadLibheif()
	if libErr == nil {
		return conv, nil
	}
	conv, toolErr := LoadHeifConvert()
	if toolErr == nil {
		return conv, nil
	}
	return nil, fmt.Errorf("%v; %v", libErr, toolErr)
}

// LoadHeifConvert finds heif-convert on PATH.
func LoadHeifConvert() (Converter, error) {
	path, err := exec.LookPath("heif-convert")
	if err != nil {
		return nil, fmt.Errorf("heif-convert: %w", err)
	}
	return &heifConvert{path: path}, nil
}

type heifConvert struct {
	path string
	seq  atomic.Int64
}

func (h *heifConvert) ToPNG(ctx context.Context, data []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", fmt.Sprintf("imgfit-heif-%d-", h.seq.Add(1)))
	if err != nil {
		return nil, fmt.Errorf("heif temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in.heic")
	out := filepath.Join(dir, "out.png")
	if err := os.WriteFile(in, data, 0o600); err != nil {
		return nil, fmt.Errorf("heif temp input: %w", err)
	}

	cmd := exec.CommandContext(ctx, h.path, in, out)
	if output, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("heif-convert: %w: %s", err, strings.TrimSpace(string(output)))
	}
	png, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("heif-convert output: %w", err)
	}
	return png, nil
}
