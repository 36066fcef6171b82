package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type loginBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func TestBindJSONReportsFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"alice"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var body loginBody
	if BindJSON(c, &body) {
		t.Fatalf("expected bind failure")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var got ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Code != KindValidation {
		t.Fatalf("expected validation kind, got %q", got.Code)
	}
	if len(got.Fields) != 1 || got.Fields[0].Field != "password" || got.Fields[0].Rule != "required" {
		t.Fatalf("unexpected fields: %+v", got.Fields)
	}
}

func TestBindJSONMalformed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":`))
	c.Request.Header.Set("Content-Type", "application/json")

	var body loginBody
	if BindJSON(c, &body) {
		t.Fatalf("expected bind failure")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestErrorBodyShape(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	Error(c, http.StatusNotFound, KindNotFound, "article not found")

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got["error"] != "article not found" || got["code"] != "not_found" {
		t.Fatalf("unexpected body: %v", got)
	}
	if _, ok := got["fields"]; ok {
		t.Fatalf("fields should be omitted: %v", got)
	}
}
