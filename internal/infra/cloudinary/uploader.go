package cloudinary

import (
	"bytes"
	"context"
	"fmt"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

type Uploader struct {
	client *cld.Cloudinary
	folder string
	logger *zap.Logger
}

func NewUploader(cloudName, apiKey, apiSecret, folder string, logger *zap.Logger) (*Uploader, error) {
	client, err := cld.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &Uploader{client: client, folder: folder, logger: logger}, nil
}

func (u *Uploader) UploadImage(ctx context.Context, key string, image []byte) (string, error) {
	resp, err := u.client.Upload.Upload(ctx, bytes.NewReader(image), uploader.UploadParams{
		PublicID: key,
		Folder:   u.folder,
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("upload image: %s", resp.Error.Message)
	}

	u.logger.Debug("image uploaded",
		zap.String("public_id", resp.PublicID),
		zap.String("url", resp.SecureURL),
	)

	return resp.SecureURL, nil
}
