package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"feedboard/handlers"
	"feedboard/images"
	"feedboard/routes"
	"feedboard/store"
	"feedboard/token"
)

const testSecret = "handlers-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router   *gin.Engine
	mem      *store.Memory
	tokens   *token.Manager
	imageDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mem := store.NewMemory()
	dir := t.TempDir()

	imgs, err := images.NewManager(dir)
	require.NoError(t, err)

	tokens := token.NewManager(testSecret, time.Hour)
	router := routes.New(
		handlers.NewAuth(mem.Users, tokens),
		handlers.NewFeed(mem.Posts, mem.Users, imgs),
		tokens,
		dir,
	)

	return &testApp{router: router, mem: mem, tokens: tokens, imageDir: dir}
}

func (a *testApp) do(t *testing.T, method, path, bearer string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) doJSON(t *testing.T, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return a.do(t, method, path, bearer, bytes.NewReader(raw), "application/json")
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

// registerAndLogin runs the real signup and login flows and returns the
// issued bearer token and user id.
func (a *testApp) registerAndLogin(t *testing.T, email, name string) (bearer, userID string) {
	t.Helper()

	rec := a.doJSON(t, http.MethodPut, "/auth/signup", "", gin.H{
		"email":    email,
		"password": "secret-pass",
		"name":     name,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.doJSON(t, http.MethodPost, "/auth/login", "", gin.H{
		"email":    email,
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	return body["token"].(string), body["userId"].(string)
}

type filePart struct {
	filename    string
	contentType string
	data        []byte
}

func pngPart(filename string) *filePart {
	return &filePart{filename: filename, contentType: "image/png", data: []byte("png-bytes")}
}

func multipartForm(t *testing.T, fields map[string]string, file *filePart) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		require.NoError(t, w.WriteField(name, value))
	}

	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename=%q`, file.filename))
		h.Set("Content-Type", file.contentType)

		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// createPost drives POST /feed/post and returns the created post's id and
// imageUrl.
func (a *testApp) createPost(t *testing.T, bearer, title, content string) (postID, imageURL string) {
	t.Helper()

	body, contentType := multipartForm(t, map[string]string{
		"title":   title,
		"content": content,
	}, pngPart("photo.png"))

	rec := a.do(t, http.MethodPost, "/feed/post", bearer, body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	post := decode(t, rec)["post"].(map[string]any)
	return post["_id"].(string), post["imageUrl"].(string)
}
