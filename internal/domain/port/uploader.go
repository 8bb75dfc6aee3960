package port

import "context"

type ImageUploader interface {
	UploadImage(ctx context.Context, key string, image []byte) (string, error)
}
