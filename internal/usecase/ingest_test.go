package usecase

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type filePart struct {
	field    string
	filename string
	content  string
}

func newMultipartRequest(t *testing.T, fields map[string]string, file *filePart) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		fw, err := w.CreateFormFile(file.field, file.filename)
		require.NoError(t, err)
		_, err = io.WriteString(fw, file.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestIngestSymbolAllFields(t *testing.T) {
	fsp := newFakeStorage()
	u := newTestUsecase(newFakeRepo(), fsp)

	req := newMultipartRequest(t, map[string]string{
		"num":         "13",
		"name":        "Ahau",
		"preview":     "the sun",
		"description": "solar lord",
	}, &filePart{field: "image", filename: "ahau.png", content: "png-bytes"})

	s, err := u.IngestSymbol(context.Background(), req, KindGlyph)
	require.NoError(t, err)

	assert.Equal(t, 13, s.Num)
	assert.Equal(t, "Ahau", s.Name)
	assert.Equal(t, "the sun", s.Preview)
	assert.Equal(t, "solar lord", s.Description)
	assert.Equal(t, "p1_ahau.png", s.Image)
	assert.Equal(t, []byte("png-bytes"), fsp.files["p1_ahau.png"])
}

func TestIngestSymbolKinIgnoresDetails(t *testing.T) {
	u := newTestUsecase(newFakeRepo(), newFakeStorage())

	req := newMultipartRequest(t, map[string]string{
		"num":         "1",
		"name":        "Imix",
		"preview":     "should be dropped",
		"description": "should be dropped",
	}, nil)

	s, err := u.IngestSymbol(context.Background(), req, KindKin)
	require.NoError(t, err)

	assert.Empty(t, s.Preview)
	assert.Empty(t, s.Description)
}

func TestIngestSymbolNoFile(t *testing.T) {
	fsp := newFakeStorage()
	u := newTestUsecase(newFakeRepo(), fsp)

	req := newMultipartRequest(t, map[string]string{"num": "2", "name": "Ik"}, nil)

	s, err := u.IngestSymbol(context.Background(), req, KindKin)
	require.NoError(t, err)

	assert.Empty(t, s.Image)
	assert.Empty(t, fsp.files)
}

func TestIngestSymbolEmptyFilenameMeansKeepCurrent(t *testing.T) {
	fsp := newFakeStorage()
	u := newTestUsecase(newFakeRepo(), fsp)

	req := newMultipartRequest(t, map[string]string{"num": "2", "name": "Ik"},
		&filePart{field: "image", filename: "", content: ""})

	s, err := u.IngestSymbol(context.Background(), req, KindKin)
	require.NoError(t, err)

	assert.Empty(t, s.Image)
	assert.Empty(t, fsp.files)
}

func TestIngestSymbolBadNum(t *testing.T) {
	fsp := newFakeStorage()
	u := newTestUsecase(newFakeRepo(), fsp)

	req := newMultipartRequest(t, map[string]string{"num": "thirteen", "name": "Ahau"},
		&filePart{field: "image", filename: "ahau.png", content: "png"})

	_, err := u.IngestSymbol(context.Background(), req, KindGlyph)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Empty(t, fsp.files, "a rejected submission must leave no file behind")
}

func TestIngestSymbolMissingContentType(t *testing.T) {
	u := newTestUsecase(newFakeRepo(), newFakeStorage())

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(nil))

	_, err := u.IngestSymbol(context.Background(), req, KindGlyph)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestIngestSymbolWrongContentType(t *testing.T) {
	u := newTestUsecase(newFakeRepo(), newFakeStorage())

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{"num":1}`)))
	req.Header.Set("Content-Type", "application/json")

	_, err := u.IngestSymbol(context.Background(), req, KindGlyph)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestIngestSymbolAbsentFieldsDefault(t *testing.T) {
	u := newTestUsecase(newFakeRepo(), newFakeStorage())

	req := newMultipartRequest(t, map[string]string{"name": "Ik"}, nil)

	s, err := u.IngestSymbol(context.Background(), req, KindGlyph)
	require.NoError(t, err)

	assert.Zero(t, s.Num)
	assert.Empty(t, s.Preview)
	assert.Empty(t, s.Description)
}
