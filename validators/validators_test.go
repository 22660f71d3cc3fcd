package validators

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailValidator(t *testing.T) {
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
	assert.ErrorIs(t, EmailValidator("Ana <ana@medflow.test>"), ErrEmailInvalid)
	assert.NoError(t, EmailValidator("student@medflow.test"))
}

func TestRoleValidator(t *testing.T) {
	assert.NoError(t, RoleValidator("student"))
	assert.NoError(t, RoleValidator("admin"))
	assert.ErrorIs(t, RoleValidator("teacher"), ErrRoleInvalid)
}

// formFile builds a real multipart.FileHeader by parsing a request
func formFile(t *testing.T, name, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["image"][0]
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageValidator(t *testing.T) {
	allowed := []string{"image/png", "image/jpeg"}

	t.Run("accepts png", func(t *testing.T) {
		status, img, err := ImageValidator(formFile(t, "a.png", "image/png", pngBytes(t)), 1<<20, allowed)
		require.NoError(t, err)
		defer img.File.Close()

		assert.Zero(t, status)
		assert.Equal(t, "image/png", img.MIME)
		assert.Equal(t, ".png", img.Extension)
	})

	t.Run("rejects spoofed content", func(t *testing.T) {
		status, _, err := ImageValidator(formFile(t, "a.png", "image/png", []byte("just some text")), 1<<20, allowed)
		assert.ErrorIs(t, err, ErrImageTypeUnsupported)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("rejects large files", func(t *testing.T) {
		status, _, err := ImageValidator(formFile(t, "a.png", "image/png", pngBytes(t)), 8, allowed)
		assert.ErrorIs(t, err, ErrImageTooLarge)
		assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := ImageValidator(nil, 1<<20, allowed)
		assert.ErrorIs(t, err, ErrNoImage)
	})
}
