package handle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/keepsake/pkg/configs"
	"github.com/yeisme/keepsake/pkg/internal/model"
	"github.com/yeisme/keepsake/pkg/internal/service"
	"github.com/yeisme/keepsake/pkg/internal/types"
	"github.com/yeisme/keepsake/pkg/middleware"
	"github.com/yeisme/keepsake/pkg/queue"
)

const password = "Birthday2024"

var nonWord = regexp.MustCompile(`[^A-Za-z0-9]+`)

type memBlobs struct {
	mu   sync.Mutex
	keys []string
}

func (m *memBlobs) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}

	m.mu.Lock()
	m.keys = append(m.keys, key)
	m.mu.Unlock()

	return m.PublicURL(key), nil
}

func (m *memBlobs) Remove(context.Context, string) error { return nil }

func (m *memBlobs) List(context.Context, string) ([]types.BlobObject, error) { return nil, nil }

func (m *memBlobs) PublicURL(key string) string { return "http://blob.test/bucket/" + key }

type server struct {
	engine *gin.Engine
	db     *gorm.DB
	blobs  *memBlobs
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + nonWord.ReplaceAllString(t.Name(), "_") + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if _, err := service.Seed(context.Background(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := configs.Defaults()
	cfg.Admin.Password = password

	blobs := &memBlobs{}
	deps := service.Deps{DB: db, Blobs: blobs, Events: queue.Discard{}, Config: cfg}

	r := gin.New()
	r.Use(middleware.BodyLimit(1<<20), func(c *gin.Context) {
		c.Request = c.Request.WithContext(service.WithDeps(c.Request.Context(), deps))
		c.Next()
	})

	api := r.Group("/api/v1")
	api.POST("/admin", Admin)
	api.POST("/admin/media", AdminMedia)
	api.GET("/gallery", Gallery)
	api.POST("/uploads", SubmitUploads)
	api.GET("/wishes", ListWishes)
	api.POST("/wishes", CreateWish)
	api.GET("/voice-notes", ListVoiceNotes)
	api.POST("/voice-notes", CreateVoiceNote)
	api.GET("/letters/count", LetterCount)
	api.POST("/letters", SealLetter)
	api.GET("/milestones", Milestones)
	api.GET("/firsts", Firsts)
	api.GET("/scheduler/jobs", SchedulerJobs)

	return &server{engine: r, db: db, blobs: blobs}
}

func (s *server) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	return w
}

func (s *server) admin(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, http.MethodPost, "/api/v1/admin", strings.NewReader(body), "application/json")
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}

	return v
}

type formFile struct {
	field, name, contentType, body string
}

func multipartBody(t *testing.T, fields map[string]string, files ...formFile) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}

	for _, f := range files {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name)}
		h["Content-Type"] = []string{f.contentType}

		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}

		_, _ = part.Write([]byte(f.body))
	}

	_ = mw.Close()

	return &buf, mw.FormDataContentType()
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrUnauthorized, http.StatusUnauthorized},
		{service.ErrUnknownAction, http.StatusBadRequest},
		{fmt.Errorf("x: %w", service.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("x: %w", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", service.ErrUpload), http.StatusBadGateway},
		{fmt.Errorf("x: %w", service.ErrStore), http.StatusInternalServerError},
		{errors.New("unclassified"), http.StatusInternalServerError},
		{&http.MaxBytesError{Limit: 1}, http.StatusRequestEntityTooLarge},
	}

	for _, tc := range cases {
		if got := statusOf(tc.err); got != tc.want {
			t.Errorf("statusOf(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestAdminEndpoint(t *testing.T) {
	s := newServer(t)

	w := s.admin(t, `{"action":"verify","password":"nope"}`)
	if w.Code != http.StatusUnauthorized || decode[types.ErrorResponse](t, w).Error != "Invalid password" {
		t.Fatalf("wrong password: %d %s", w.Code, w.Body)
	}

	w = s.admin(t, `{"action":"dance","password":"`+password+`"}`)
	if w.Code != http.StatusBadRequest || decode[types.ErrorResponse](t, w).Error != "Invalid action" {
		t.Fatalf("unknown action: %d %s", w.Code, w.Body)
	}

	w = s.admin(t, `{"action":"verify","password":"`+password+`"}`)
	if w.Code != http.StatusOK || !decode[types.SuccessResponse](t, w).Success {
		t.Fatalf("verify: %d %s", w.Code, w.Body)
	}

	w = s.admin(t, `{"action":"approve","password":"`+password+`","uploadId":"missing"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("approve missing: %d %s", w.Code, w.Body)
	}

	w = s.admin(t, `{"action":"list_firsts","password":"`+password+`"}`)
	if w.Code != http.StatusOK || len(decode[types.FirstsResponse](t, w).Firsts) != 6 {
		t.Fatalf("list_firsts: %d %s", w.Code, w.Body)
	}

	w = s.admin(t, `{"action":"list_milestones","password":"`+password+`"}`)
	if !strings.Contains(w.Body.String(), `"milestone_media":[]`) {
		t.Fatalf("milestones must carry milestone_media: %s", w.Body)
	}
}

func TestSubmitModerateGallery(t *testing.T) {
	s := newServer(t)

	body, ct := multipartBody(t, map[string]string{"name": "Grandma", "message": "So proud"},
		formFile{"files", "cake.jpg", "image/jpeg", "jpeg"},
		formFile{"files", "dance.mp4", "video/mp4", "mp4"},
	)

	w := s.do(t, http.MethodPost, "/api/v1/uploads", body, ct)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: %d %s", w.Code, w.Body)
	}

	created := decode[types.UploadsResponse](t, w).Uploads
	if len(created) != 2 || created[0].Approved {
		t.Fatalf("created = %+v", created)
	}

	w = s.do(t, http.MethodGet, "/api/v1/gallery", nil, "")
	if got := decode[types.UploadsResponse](t, w).Uploads; len(got) != 0 {
		t.Fatalf("pending uploads leaked into gallery: %+v", got)
	}

	var video model.FamilyUpload
	for _, u := range created {
		if u.FileType == model.FileTypeVideo {
			video = u
		}
	}

	w = s.admin(t, `{"action":"approve","password":"`+password+`","uploadId":"`+video.ID+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("approve: %d %s", w.Code, w.Body)
	}

	w = s.do(t, http.MethodGet, "/api/v1/gallery?type=video", nil, "")
	if got := decode[types.UploadsResponse](t, w).Uploads; len(got) != 1 || got[0].ID != video.ID {
		t.Fatalf("video gallery = %+v", got)
	}

	w = s.do(t, http.MethodGet, "/api/v1/gallery?type=image", nil, "")
	if got := decode[types.UploadsResponse](t, w).Uploads; len(got) != 0 {
		t.Fatalf("image gallery = %+v", got)
	}

	w = s.do(t, http.MethodGet, "/api/v1/gallery?type=audio", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad type: %d", w.Code)
	}
}

func TestSubmitValidation(t *testing.T) {
	s := newServer(t)

	body, ct := multipartBody(t, map[string]string{"name": "Grandma"})

	w := s.do(t, http.MethodPost, "/api/v1/uploads", body, ct)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("no files: %d %s", w.Code, w.Body)
	}

	big := strings.Repeat("x", 2<<20)
	body, ct = multipartBody(t, map[string]string{"name": "Grandma"}, formFile{"files", "big.jpg", "image/jpeg", big})

	w = s.do(t, http.MethodPost, "/api/v1/uploads", body, ct)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized body: %d %s", w.Code, w.Body)
	}

	if len(s.blobs.keys) != 0 {
		t.Fatalf("rejected submissions must not upload: %v", s.blobs.keys)
	}
}

func TestWishesEndpoints(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/wishes", strings.NewReader(`{"name":"  ","message":"hi"}`), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank name: %d %s", w.Code, w.Body)
	}

	w = s.do(t, http.MethodPost, "/api/v1/wishes", strings.NewReader(`{"name":"Uncle Bo","message":"Happy 1st!"}`), "application/json")
	if w.Code != http.StatusCreated || decode[types.WishResponse](t, w).Wish.GuestName != "Uncle Bo" {
		t.Fatalf("create: %d %s", w.Code, w.Body)
	}

	w = s.do(t, http.MethodGet, "/api/v1/wishes", nil, "")
	if got := decode[types.WishesResponse](t, w).Wishes; len(got) != 1 {
		t.Fatalf("wishes = %+v", got)
	}
}

func TestLettersEndpoints(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/letters", strings.NewReader(`{"name":"Mum","content":"secret words"}`), "application/json")
	if w.Code != http.StatusCreated {
		t.Fatalf("seal: %d %s", w.Code, w.Body)
	}

	if strings.Contains(w.Body.String(), "secret words") {
		t.Fatalf("content echoed: %s", w.Body)
	}

	w = s.do(t, http.MethodGet, "/api/v1/letters/count", nil, "")
	if decode[types.LetterCountResponse](t, w).Count != 1 {
		t.Fatalf("count: %s", w.Body)
	}
}

func TestVoiceNoteEndpoints(t *testing.T) {
	s := newServer(t)

	body, ct := multipartBody(t, map[string]string{"name": "Auntie", "duration": "42.7"},
		formFile{"audio", "blob", "audio/webm", "opus"})

	w := s.do(t, http.MethodPost, "/api/v1/voice-notes", body, ct)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body)
	}

	note := decode[types.VoiceNoteResponse](t, w).VoiceNote
	if note.DurationSeconds == nil || *note.DurationSeconds != 30 {
		t.Fatalf("duration = %v", note.DurationSeconds)
	}

	body, ct = multipartBody(t, map[string]string{"name": "Auntie"})

	w = s.do(t, http.MethodPost, "/api/v1/voice-notes", body, ct)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing audio: %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/v1/voice-notes", nil, "")
	if got := decode[types.VoiceNotesResponse](t, w).VoiceNotes; len(got) != 1 {
		t.Fatalf("voice notes = %+v", got)
	}
}

func TestAdminMediaEndpoint(t *testing.T) {
	s := newServer(t)

	body, ct := multipartBody(t, map[string]string{"password": "bad", "folder": "firsts"},
		formFile{"file", "smile.png", "image/png", "png"})

	if w := s.do(t, http.MethodPost, "/api/v1/admin/media", body, ct); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: %d", w.Code)
	}

	body, ct = multipartBody(t, map[string]string{"password": password, "folder": "milestones"},
		formFile{"file", "walk.MOV", "video/quicktime", "mov"})

	w := s.do(t, http.MethodPost, "/api/v1/admin/media", body, ct)
	if w.Code != http.StatusOK {
		t.Fatalf("upload: %d %s", w.Code, w.Body)
	}

	res := decode[types.AdminMediaResponse](t, w)
	if res.FileType != model.FileTypeVideo || !strings.Contains(res.URL, "/milestones/") || !strings.HasSuffix(res.URL, ".mov") {
		t.Fatalf("media = %+v", res)
	}
}

func TestPublicTimelineAndJobs(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/milestones", nil, "")
	if got := decode[types.MilestonesResponse](t, w).Milestones; len(got) != 12 || got[0].MonthLabel != "Month 1" {
		t.Fatalf("milestones = %d", len(got))
	}

	w = s.do(t, http.MethodGet, "/api/v1/firsts", nil, "")
	if got := decode[types.FirstsResponse](t, w).Firsts; len(got) != 6 {
		t.Fatalf("firsts = %d", len(got))
	}

	w = s.do(t, http.MethodGet, "/api/v1/scheduler/jobs", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"jobs":[]`) {
		t.Fatalf("jobs: %d %s", w.Code, w.Body)
	}

}
