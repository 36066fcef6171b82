package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"articles-backend/internal/bootstrap"
	"articles-backend/internal/config"
	"articles-backend/internal/model"
	"articles-backend/internal/testutil"
	httptransport "articles-backend/internal/transport/http"
)

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.OpenDB(t)
	app := &bootstrap.App{
		Config: &config.Config{
			App:  config.AppConfig{Name: "articles-backend", Env: "test", GinMode: gin.TestMode},
			Auth: config.AuthConfig{JWTSecret: testutil.JWTSecret, AllowRoleOnRegister: true},
		},
		Log:       slog.New(slog.NewJSONHandler(io.Discard, nil)),
		DB:        db,
		StartedAt: time.Now(),
	}
	return &testServer{t: t, db: db, router: httptransport.NewRouter(app)}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func TestRegisterLoginProfile(t *testing.T) {
	s := newTestServer(t)
	creds := map[string]string{"username": "alice", "password": "wonderland"}

	rec := s.do(http.MethodPost, "/api/auth/register", "", creds)
	expectStatus(t, rec, http.StatusOK)
	if tok := decode[map[string]string](t, rec)["token"]; tok == "" {
		t.Fatalf("expected token on register")
	}

	rec = s.do(http.MethodPost, "/api/auth/register", "", creds)
	expectStatus(t, rec, http.StatusBadRequest)

	rec = s.do(http.MethodPost, "/api/auth/login", "", creds)
	expectStatus(t, rec, http.StatusOK)
	token := decode[map[string]string](t, rec)["token"]

	rec = s.do(http.MethodGet, "/api/auth/profile", token, nil)
	expectStatus(t, rec, http.StatusOK)
	profile := decode[map[string]any](t, rec)
	if profile["username"] != "alice" || profile["role"] != "User" {
		t.Fatalf("unexpected profile: %v", profile)
	}
	if _, leaked := profile["password"]; leaked {
		t.Fatalf("profile must not expose the password hash: %v", profile)
	}
}

func TestLoginFailuresCarryNoToken(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "bob", "correct-horse", model.RoleUser)

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "wrong password", body: map[string]string{"username": "bob", "password": "nope"}},
		{name: "unknown user", body: map[string]string{"username": "ghost", "password": "correct-horse"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/api/auth/login", "", tt.body)
			expectStatus(t, rec, http.StatusUnauthorized)
			body := decode[map[string]any](t, rec)
			if _, ok := body["token"]; ok {
				t.Fatalf("failed login must not return a token: %v", body)
			}
			if body["code"] != "invalid_credentials" {
				t.Fatalf("unexpected error kind: %v", body)
			}
		})
	}
}

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "root", "pw", model.RoleAdmin)
	user := testutil.CreateUser(t, s.db, "carol", "pw", model.RoleUser)
	category := testutil.CreateCategory(t, s.db, "Technology", admin.ID)
	categoryPath := fmt.Sprintf("/api/categories/%d", category.ID)

	endpoints := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/api/categories", map[string]string{"name": "Science"}},
		{http.MethodPut, categoryPath, map[string]string{"name": "Tech"}},
		{http.MethodDelete, categoryPath, nil},
		{http.MethodGet, "/api/admin/article-events", nil},
	}

	userToken := testutil.Token(t, user.ID)
	for _, ep := range endpoints {
		t.Run(ep.method+" "+ep.path, func(t *testing.T) {
			expectStatus(t, s.do(ep.method, ep.path, "", ep.body), http.StatusUnauthorized)
			expectStatus(t, s.do(ep.method, ep.path, userToken, ep.body), http.StatusForbidden)
		})
	}

	expectStatus(t, s.do(http.MethodGet, "/api/auth/profile", "not-a-jwt", nil), http.StatusForbidden)

	adminToken := testutil.Token(t, admin.ID)
	rec := s.do(http.MethodPost, "/api/categories", adminToken, map[string]string{"name": "Science"})
	expectStatus(t, rec, http.StatusOK)
	created := decode[model.Category](t, rec)
	if created.Name != "Science" || created.UserID != admin.ID {
		t.Fatalf("unexpected category: %+v", created)
	}
}

func TestCategoryNotFound(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "root", "pw", model.RoleAdmin)
	token := testutil.Token(t, admin.ID)

	expectStatus(t, s.do(http.MethodPut, "/api/categories/999", token, map[string]string{"name": "x"}), http.StatusNotFound)
	expectStatus(t, s.do(http.MethodDelete, "/api/categories/999", token, nil), http.StatusNotFound)
	expectStatus(t, s.do(http.MethodDelete, "/api/categories/abc", token, nil), http.StatusBadRequest)
}

func TestDeleteReferencedCategoryLeavesDanglingArticle(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "root", "pw", model.RoleAdmin)
	category := testutil.CreateCategory(t, s.db, "Technology", admin.ID)
	article := testutil.CreateArticle(t, s.db, &model.Article{
		Title: "The Future of AI", Content: "...", UserID: admin.ID, CategoryID: category.ID,
	})

	rec := s.do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", category.ID), testutil.Token(t, admin.ID), nil)
	expectStatus(t, rec, http.StatusOK)
	if msg := decode[map[string]string](t, rec)["message"]; msg != "Category deleted" {
		t.Fatalf("unexpected message %q", msg)
	}

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/articles?articleId=%d", article.ID), "", nil)
	expectStatus(t, rec, http.StatusOK)
	list := decode[[]map[string]any](t, rec)
	if len(list) != 1 {
		t.Fatalf("expected the article to survive, got %v", list)
	}
	if list[0]["category"] != nil {
		t.Fatalf("expected dangling category to be null, got %v", list[0]["category"])
	}
	if got := uint(list[0]["categoryId"].(float64)); got != category.ID {
		t.Fatalf("categoryId should still reference the deleted category, got %d", got)
	}
}

func TestListArticlesFilterAndSort(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "root", "pw", model.RoleAdmin)
	tech := testutil.CreateCategory(t, s.db, "Technology", admin.ID)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	titles := []string{"The Future of AI", "Quantum Physics", "Daily Rain Report", "Go Concurrency"}
	for i, title := range titles {
		testutil.CreateArticle(t, s.db, &model.Article{
			Title: title, Content: "...", UserID: admin.ID, CategoryID: tech.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	rec := s.do(http.MethodGet, "/api/articles?title=ai", "", nil)
	expectStatus(t, rec, http.StatusOK)
	got := decode[[]model.Article](t, rec)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches for title=ai, got %d", len(got))
	}
	for _, a := range got {
		if a.Title != "The Future of AI" && a.Title != "Daily Rain Report" {
			t.Fatalf("unexpected match %q", a.Title)
		}
	}

	rec = s.do(http.MethodGet, "/api/articles?title=%25", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if got = decode[[]model.Article](t, rec); len(got) != 0 {
		t.Fatalf("percent in title filter must match literally, got %d articles", len(got))
	}

	rec = s.do(http.MethodGet, "/api/articles?sortBy=createdAt&sortOrder=desc", "", nil)
	expectStatus(t, rec, http.StatusOK)
	got = decode[[]model.Article](t, rec)
	if len(got) != len(titles) {
		t.Fatalf("expected %d articles, got %d", len(titles), len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatalf("articles not in non-increasing createdAt order at %d", i)
		}
	}

	rec = s.do(http.MethodGet, "/api/articles?createdAtStart=2024-01-01T01:00:00Z&createdAtEnd=2024-01-01T02:00:00Z", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if got = decode[[]model.Article](t, rec); len(got) != 2 {
		t.Fatalf("expected 2 articles in range, got %d", len(got))
	}

	for _, bad := range []string{"?sortBy=password", "?articleId=x", "?createdAtStart=yesterday"} {
		expectStatus(t, s.do(http.MethodGet, "/api/articles"+bad, "", nil), http.StatusBadRequest)
	}
}

func TestArticleOwnership(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "root", "pw", model.RoleAdmin)
	owner := testutil.CreateUser(t, s.db, "owner", "pw", model.RoleUser)
	other := testutil.CreateUser(t, s.db, "other", "pw", model.RoleUser)
	category := testutil.CreateCategory(t, s.db, "Science", admin.ID)

	newArticle := func() string {
		a := testutil.CreateArticle(t, s.db, &model.Article{
			Title: "Mine", Content: "...", UserID: owner.ID, CategoryID: category.ID,
		})
		return fmt.Sprintf("/api/articles/%d", a.ID)
	}
	update := map[string]string{"title": "Edited"}

	path := newArticle()
	expectStatus(t, s.do(http.MethodPut, path, testutil.Token(t, other.ID), update), http.StatusForbidden)
	expectStatus(t, s.do(http.MethodDelete, path, testutil.Token(t, other.ID), nil), http.StatusForbidden)

	rec := s.do(http.MethodPut, path, testutil.Token(t, owner.ID), update)
	expectStatus(t, rec, http.StatusOK)
	if a := decode[model.Article](t, rec); a.Title != "Edited" || a.UserID != owner.ID {
		t.Fatalf("owner update not applied: %+v", a)
	}
	rec = s.do(http.MethodDelete, path, testutil.Token(t, owner.ID), nil)
	expectStatus(t, rec, http.StatusOK)
	if msg := decode[map[string]string](t, rec)["message"]; msg != "Article deleted" {
		t.Fatalf("unexpected message %q", msg)
	}

	path = newArticle()
	expectStatus(t, s.do(http.MethodPut, path, testutil.Token(t, admin.ID), update), http.StatusOK)
	expectStatus(t, s.do(http.MethodDelete, path, testutil.Token(t, admin.ID), nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodDelete, path, testutil.Token(t, admin.ID), nil), http.StatusNotFound)
}

func TestCreateArticleRoundTrip(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "root", "pw", model.RoleAdmin)
	author := testutil.CreateUser(t, s.db, "writer", "pw", model.RoleUser)
	category := testutil.CreateCategory(t, s.db, "Arts", admin.ID)
	token := testutil.Token(t, author.ID)

	rec := s.do(http.MethodPost, "/api/articles", token, map[string]any{
		"title": "The Renaissance of Digital Art", "content": "Digital art is experiencing a renaissance...", "categoryId": category.ID,
	})
	expectStatus(t, rec, http.StatusOK)
	created := decode[model.Article](t, rec)
	if created.ID == 0 || created.UserID != author.ID {
		t.Fatalf("unexpected created article: %+v", created)
	}

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/articles?articleId=%d", created.ID), "", nil)
	expectStatus(t, rec, http.StatusOK)
	list := decode[[]model.Article](t, rec)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("expected exactly the created article, got %+v", list)
	}
	got := list[0]
	if got.Category == nil || got.Category.Name != "Arts" {
		t.Fatalf("expected joined category, got %+v", got.Category)
	}
	if got.User == nil || got.User.ID != author.ID || got.User.Username != "writer" {
		t.Fatalf("expected reduced user projection, got %+v", got.User)
	}

	expectStatus(t, s.do(http.MethodPost, "/api/articles", token, map[string]any{
		"title": "x", "content": "y", "categoryId": 9999,
	}), http.StatusBadRequest)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/admin/article-events?articleId=%d", created.ID), testutil.Token(t, admin.ID), nil)
	expectStatus(t, rec, http.StatusOK)
	events := decode[[]model.ArticleEvent](t, rec)
	if len(events) != 1 || events[0].Action != model.ArticleCreated || events[0].UserID != author.ID {
		t.Fatalf("expected one created event, got %+v", events)
	}
}

func TestOperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/healthz", "", nil)
	expectStatus(t, rec, http.StatusOK)

	s.do(http.MethodGet, "/api/categories", "", nil)
	rec = s.do(http.MethodGet, "/metrics", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if !bytes.Contains(rec.Body.Bytes(), []byte("articles_http_requests_total")) {
		t.Fatalf("expected http metrics in exposition")
	}

	rec = s.do(http.MethodGet, "/docs/openapi.json", "", nil)
	expectStatus(t, rec, http.StatusOK)
	doc := decode[map[string]any](t, rec)
	if doc["openapi"] != "3.0.0" {
		t.Fatalf("unexpected openapi document: %v", doc["openapi"])
	}
	expectStatus(t, s.do(http.MethodGet, "/docs", "", nil), http.StatusOK)
}
