package testutil

import (
	"bytes"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateMultipartBody builds a multipart request body holding one file field and
// plain value fields. It returns the body and its content type.
func CreateMultipartBody(t *testing.T, fileField, fileName string, fileContent []byte, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var b bytes.Buffer
	writer := multipart.NewWriter(&b)

	if fileField != "" {
		fileWriter, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)

		_, err = fileWriter.Write(fileContent)
		require.NoError(t, err)
	}

	for key, value := range values {
		require.NoError(t, writer.WriteField(key, value))
	}

	require.NoError(t, writer.Close())
	return &b, writer.FormDataContentType()
}

// CreateTestForm parses a multipart form with a single file, the way gin exposes it to handlers
func CreateTestForm(t *testing.T, fileField, fileName string, fileContent []byte, values map[string]string) *multipart.Form {
	t.Helper()

	body, contentType := CreateMultipartBody(t, fileField, fileName, fileContent, values)

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	reader := multipart.NewReader(body, params["boundary"])
	form, err := reader.ReadForm(32 << 20) // 32 MB
	require.NoError(t, err)

	return form
}
