//go:build !heif

package convert

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/AnyUserName/imgfit-cli/internal/codec"
	"github.com/AnyUserName/imgfit-cli/internal/decoder"
	apperrors "github.com/AnyUserName/imgfit-cli/internal/errors"
	"github.com/AnyUserName/imgfit-cli/internal/media"
	"github.com/AnyUserName/imgfit-cli/internal/target"
)

func TestRunHEICWithoutLibheifRecordsDecodeError(t *testing.T) {
	loader := decoder.NewHEIFLoader(decoder.LoadLibheif, nil)
	enc := &fakeEncoder{c: codec.JPEG, sizeFor: fixedSize(10)}
	conv := New(allCaps(), registry(enc), decoder.New(loader, nil), nil, nil)

	files := []media.InputFile{
		media.NewInputFile("photo.heic", "image/heic", []byte("not really heic")),
		pngFile(t, "b.png"),
	}
	batch := conv.Run(context.Background(), files, Options{Codec: codec.JPEG, Preset: target.Same}, nil)

	if len(batch.Records) != 2 || batch.Converted != 1 {
		t.Fatalf("records=%d converted=%d", len(batch.Records), batch.Converted)
	}
	rec := batch.Records[0]
	if !apperrors.IsKind(rec.Err, apperrors.KindDecode) {
		t.Fatalf("kind = %q, want decode (err %v)", apperrors.KindOf(rec.Err), rec.Err)
	}
	if !errors.Is(rec.Err, apperrors.ErrHelperUnavailable) {
		t.Errorf("err = %v, want helper unavailable", rec.Err)
	}
	if loader.State() != decoder.Failed {
		t.Errorf("loader state = %s", loader.State())
	}
	if !batch.Records[1].OK() {
		t.Errorf("png after heic failed: %v", batch.Records[1].Err)
	}
}

func TestLoadHelperWithoutAnyBackend(t *testing.T) {
	if _, err := exec.LookPath("heif-convert"); err == nil {
		t.Skip("heif-convert installed")
	}
	t.Setenv("PATH", t.TempDir())

	conv := New(allCaps(), registry(&fakeEncoder{c: codec.JPEG, sizeFor: fixedSize(10)}),
		decoder.New(decoder.NewHEIFLoader(decoder.LoadHelper, nil), nil), nil, nil)
	rec := conv.Convert(context.Background(), media.NewInputFile("x.heif", "", []byte{0}), Options{Codec: codec.JPEG, Preset: target.Same})
	if !errors.Is(rec.Err, apperrors.ErrHelperUnavailable) || apperrors.Op(rec.Err) != "decode.heif.load" {
		t.Fatalf("err = %v (op %q)", rec.Err, apperrors.Op(rec.Err))
	}
}
