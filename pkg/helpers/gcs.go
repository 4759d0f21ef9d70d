package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

var ErrUnsupportedDocumentType = errors.New("unsupported document content type")

var documentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// DocumentObjectPath returns kyc/<owner>/<random><ext>. The extension comes from
// the content type, never from the client filename.
func DocumentObjectPath(owner, contentType string) (string, error) {
	ext, ok := documentTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", ErrUnsupportedDocumentType
	}
	return path.Join("kyc", owner, uuid.NewString()+ext), nil
}

// UploadDocument streams r into bucket/objectPath as a private object and returns its gs:// URI.
func UploadDocument(ctx context.Context, client *storage.Client, bucket, objectPath, contentType string, metadata map[string]string, r io.Reader) (string, error) {
	wc := client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.Metadata = metadata
	wc.ChunkSize = 0 // scans are small; single request upload
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", objectPath, err)
	}
	return ObjectURI(bucket, objectPath), nil
}

func ObjectURI(bucket, objectPath string) string {
	return "gs://" + bucket + "/" + objectPath
}
