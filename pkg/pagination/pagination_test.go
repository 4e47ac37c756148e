package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestFromContext_Defaults(t *testing.T) {
	p := FromContext(newContext(t, "/"))

	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected default offset 0, got %d", p.Offset)
	}
}

func TestFromContext_CustomValues(t *testing.T) {
	p := FromContext(newContext(t, "/?limit=50&offset=10"))

	if p.Limit != 50 {
		t.Errorf("expected limit 50, got %d", p.Limit)
	}
	if p.Offset != 10 {
		t.Errorf("expected offset 10, got %d", p.Offset)
	}
}

func TestFromContext_CapsLimit(t *testing.T) {
	p := FromContext(newContext(t, "/?limit=5000"))
	if p.Limit != MaxLimit {
		t.Errorf("expected capped limit %d, got %d", MaxLimit, p.Limit)
	}
}

func TestFromContext_NegativeValues(t *testing.T) {
	p := FromContext(newContext(t, "/?limit=-5&offset=-3"))
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit for negative input, got %d", p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0 for negative input, got %d", p.Offset)
	}
}

func TestSetDefaultLimit(t *testing.T) {
	orig := DefaultLimit
	defer SetDefaultLimit(orig)

	SetDefaultLimit(25)
	p := FromContext(newContext(t, "/"))
	if p.Limit != 25 {
		t.Errorf("expected configured default 25, got %d", p.Limit)
	}

	SetDefaultLimit(0)
	if DefaultLimit != 25 {
		t.Errorf("expected zero to be ignored, default changed to %d", DefaultLimit)
	}
	SetDefaultLimit(MaxLimit + 1)
	if DefaultLimit != 25 {
		t.Errorf("expected over-cap to be ignored, default changed to %d", DefaultLimit)
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	resp := NewResponse([]int{1, 2, 3}, 30, 10, 0)
	if !resp.HasMore {
		t.Error("expected has_more true for first page of 30")
	}

	resp = NewResponse([]int{1, 2, 3}, 30, 10, 20)
	if resp.HasMore {
		t.Error("expected has_more false for last page")
	}
}

func TestParams_SQL(t *testing.T) {
	p := Params{Limit: 10, Offset: 20}
	if got := p.SQL(); got != "LIMIT 10 OFFSET 20" {
		t.Errorf("SQL() = %q", got)
	}
}

func TestParams_NextOffset(t *testing.T) {
	p := Params{Limit: 10, Offset: 20}
	if !p.HasNext(35) {
		t.Error("expected HasNext true")
	}
	if p.HasNext(30) {
		t.Error("expected HasNext false at boundary")
	}
	if p.NextOffset() != 30 {
		t.Errorf("NextOffset() = %d", p.NextOffset())
	}
}
