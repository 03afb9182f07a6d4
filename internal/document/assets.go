package document

import (
	"context"
	"io"

	"go.uber.org/zap"
)

// AssetStore is the slice of the storage layer the document generator
// needs: fetching the static logo and signature images.
type AssetStore interface {
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)
}

// fetchAsset downloads one static asset. Failures are non-fatal: the
// document is generated without the image and the failure is logged, never
// surfaced to the caller.
func fetchAsset(ctx context.Context, store AssetStore, path string, logger *zap.Logger) []byte {
	if store == nil || path == "" {
		return nil
	}

	rc, err := store.Download(ctx, path)
	if err != nil {
		logger.Warn("asset fetch failed, generating document without image",
			zap.String("asset", path),
			zap.Error(err))
		return nil
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		logger.Warn("asset read failed, generating document without image",
			zap.String("asset", path),
			zap.Error(err))
		return nil
	}
	return data
}

// imageType sniffs the gofpdf image-type tag from the leading magic bytes.
// Unknown formats return "" and the image is skipped.
func imageType(data []byte) string {
	switch {
	case len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n":
		return "png"
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "jpg"
	case len(data) >= 6 && (string(data[:6]) == "GIF87a" || string(data[:6]) == "GIF89a"):
		return "gif"
	default:
		return ""
	}
}
