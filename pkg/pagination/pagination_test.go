package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestFromContext_Defaults(t *testing.T) {
	p := FromContext(newContext("/"))

	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset)
	}
}

func TestFromContext_Params(t *testing.T) {
	p := FromContext(newContext("/?limit=5&offset=15"))

	if p.Limit != 5 {
		t.Errorf("expected limit 5, got %d", p.Limit)
	}
	if p.Offset != 15 {
		t.Errorf("expected offset 15, got %d", p.Offset)
	}
}

func TestFromContext_CapsLimit(t *testing.T) {
	p := FromContext(newContext("/?limit=5000"))

	if p.Limit != MaxLimit {
		t.Errorf("expected limit capped to %d, got %d", MaxLimit, p.Limit)
	}
}

func TestFromContext_NegativeOffset(t *testing.T) {
	p := FromContext(newContext("/?offset=-3"))

	if p.Offset != 0 {
		t.Errorf("expected offset clamped to 0, got %d", p.Offset)
	}
}

func TestNewResponse(t *testing.T) {
	resp := NewResponse([]int{1, 2, 3}, 10, 3, 0)

	if !resp.HasMore {
		t.Error("expected has_more true")
	}

	resp = NewResponse([]int{1}, 10, 3, 9)
	if resp.HasMore {
		t.Error("expected has_more false on last page")
	}
}
