package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrImageTooLarge        = errors.New("image too large")
	ErrImageTypeUnsupported = errors.New("unsupported image type")
	ErrNoImage              = errors.New("no image provided")
)

// Image is an uploaded image that passed validation. File is rewound to
// the start and must be closed by the caller.
type Image struct {
	File      multipart.File
	MIME      string
	Extension string
	Size      int64
}

// ImageValidator checks the declared header first and then sniffs the
// actual content, returning the status code to answer with on failure
func ImageValidator(fh *multipart.FileHeader, maxSize int64, allowed []string) (int, *Image, error) {
	if fh == nil {
		return http.StatusBadRequest, nil, ErrNoImage
	}

	// Cheap checks on what the client claims
	ct := fh.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "image/") {
		return http.StatusBadRequest, nil, ErrImageTypeUnsupported
	}

	if fh.Size > maxSize {
		return http.StatusRequestEntityTooLarge, nil, ErrImageTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, nil, err
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, err
	}

	if !slices.ContainsFunc(allowed, func(t string) bool { return mime.Is(t) }) {
		f.Close()
		return http.StatusBadRequest, nil, ErrImageTypeUnsupported
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, err
	}

	return 0, &Image{
		File:      f,
		MIME:      mime.String(),
		Extension: mime.Extension(),
		Size:      fh.Size,
	}, nil
}
