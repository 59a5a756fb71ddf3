package service

import (
	"bytes"
	"io"
	"net/http"

	"github.com/AnthoniusHendriyanto/course-service/internal/course/domain"
	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
	"github.com/AnthoniusHendriyanto/course-service/pkg/constant"
)

// readImage buffers an upload of at most maxSize bytes and sets its content
// type from the bytes themselves. Only PNG and JPEG pass.
func readImage(upload domain.ImageUpload, maxSize int64) (domain.ImageUpload, error) {
	if upload.Body == nil {
		return domain.ImageUpload{}, autherror.ErrMissingImage
	}
	if maxSize > 0 && upload.Size > maxSize {
		return domain.ImageUpload{}, autherror.ErrImageTooLarge
	}

	r := upload.Body
	if maxSize > 0 {
		r = io.LimitReader(upload.Body, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.ImageUpload{}, err
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return domain.ImageUpload{}, autherror.ErrImageTooLarge
	}
	if len(data) == 0 {
		return domain.ImageUpload{}, autherror.ErrMissingImage
	}

	contentType := http.DetectContentType(data)
	if _, ok := constant.AllowedImageTypes[contentType]; !ok {
		return domain.ImageUpload{}, autherror.ErrInvalidImageFormat
	}

	return domain.ImageUpload{
		Filename:    upload.Filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Body:        bytes.NewReader(data),
	}, nil
}
