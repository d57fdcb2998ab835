package helper

import (
	"context"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
)

/*
BlobService is the uniform upload/delete facade used by controllers
(assignment attachments, material files, avatars). It returns the public
URL plus the object key that is stored in the DB and used for deletion.
*/
type BlobService interface {
	UploadToDir(ctx context.Context, dir string, fh *multipart.FileHeader) (publicURL, objectKey, contentType string, err error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
	DeleteManyByPublicURL(ctx context.Context, publicURLs []string) (deleted []string, failed map[string]error)
}

// --------------------------------------------------
// Aliyun OSS backed implementation
// --------------------------------------------------

type OSSBlobService struct {
	svc *OSSService
}

// NewOSSBlobServiceFromEnv builds an instance from ENV. prefix is optional
// (example: "uploads/").
func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s}, nil
}

func (b *OSSBlobService) UploadToDir(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, string, error) {
	if fh == nil {
		return "", "", "", fiber.NewError(fiber.StatusBadRequest, "File not found in request")
	}
	key, ct, err := b.svc.UploadFromFormFileToDir(ctx, dir, fh)
	if err != nil {
		return "", "", "", err
	}
	return b.svc.PublicURL(key), key, ct, nil
}

func (b *OSSBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	return b.svc.DeleteByPublicURL(ctx, publicURL)
}

func (b *OSSBlobService) DeleteManyByPublicURL(ctx context.Context, publicURLs []string) ([]string, map[string]error) {
	return b.svc.DeleteManyByPublicURL(ctx, publicURLs)
}

// TryGetFormFile fetches a multipart file under any of the given field names.
// Returns nil when none is present.
func TryGetFormFile(c *fiber.Ctx, names ...string) *multipart.FileHeader {
	for _, n := range names {
		if fh, err := c.FormFile(n); err == nil && fh != nil {
			return fh
		}
	}
	return nil
}
