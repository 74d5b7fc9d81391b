package documents

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edgerag/rag-gateway/internal/config"
	"github.com/edgerag/rag-gateway/internal/entity"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsecase struct {
	fileObject *entity.FileObject
	chunks     *entity.ChunksResponse
	err        error

	lastFilename  string
	lastChunksReq *entity.ChunksRequest
}

func (s *stubUsecase) SaveUpload(_ context.Context, fh *multipart.FileHeader) (*entity.FileObject, error) {
	s.lastFilename = fh.Filename
	return s.fileObject, s.err
}

func (s *stubUsecase) Chunk(_ context.Context, req *entity.ChunksRequest) (*entity.ChunksResponse, error) {
	s.lastChunksReq = req
	return s.chunks, s.err
}

func newTestRouter(usecase *stubUsecase) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(usecase, config.FileStoreConfig{MaxUploadSize: 1 << 22}))
	return r
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestUploadFileReturnsFileObject(t *testing.T) {
	usecase := &stubUsecase{fileObject: &entity.FileObject{
		ID:       "file-id",
		Filename: "doc.txt",
		Object:   entity.FileObjectType,
	}}
	router := newTestRouter(usecase)

	body, contentType := multipartBody(t, "doc.txt", "hello")
	req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"file-id"`)
	assert.Equal(t, "doc.txt", usecase.lastFilename)
}

func TestUploadFileRequiresFileField(t *testing.T) {
	router := newTestRouter(&stubUsecase{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("note", "no file here"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/files", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChunksReturnsChunks(t *testing.T) {
	usecase := &stubUsecase{chunks: &entity.ChunksResponse{
		ID:       "file-id",
		Filename: "doc.txt",
		Chunks:   []string{"first", "second"},
	}}
	router := newTestRouter(usecase)

	body := `{"id": "file-id", "filename": "doc.txt", "chunk_capacity": 100}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/chunks", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"first"`)
	require.NotNil(t, usecase.lastChunksReq)
	assert.Equal(t, uint(100), usecase.lastChunksReq.ChunkCapacity)
}

func TestChunksRejectsMissingFields(t *testing.T) {
	usecase := &stubUsecase{}
	router := newTestRouter(usecase)

	body := `{"id": "file-id", "chunk_capacity": 100}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/chunks", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, usecase.lastChunksReq)
}

func TestChunksMapsFileNotFound(t *testing.T) {
	usecase := &stubUsecase{err: entity.ErrFileNotFound}
	router := newTestRouter(usecase)

	body := `{"id": "missing", "filename": "doc.txt", "chunk_capacity": 100}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/chunks", strings.NewReader(body)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
