package host_test

import (
	"crypto/tls"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-htmlsnapshot/pkg/host"
)

func TestNewRequest_BuildsAbsoluteURL(t *testing.T) {
	r := httptest.NewRequest("GET", "/orders/7?format=html", nil)
	r.Host = "api.example.com"

	req := host.NewRequest(r, "GetOrder")
	if got := req.AbsoluteURI(); got != "http://api.example.com/orders/7?format=html" {
		t.Fatalf("unexpected url %q", got)
	}
	if req.OperationName != "GetOrder" || req.Method != "GET" {
		t.Fatalf("unexpected request %+v", req)
	}

	r.TLS = &tls.ConnectionState{}
	if got := host.NewRequest(r, "").URL.Scheme; got != "https" {
		t.Fatalf("tls: want https, got %q", got)
	}

	r.TLS = nil
	r.Header.Set("X-Forwarded-Proto", "https")
	if got := host.NewRequest(r, "").URL.Scheme; got != "https" {
		t.Fatalf("forwarded: want https, got %q", got)
	}
}

func TestRequest_Items(t *testing.T) {
	var req host.Request
	if _, ok := req.Item(host.ItemErrorStatus); ok {
		t.Fatalf("expected empty item bag")
	}
	req.SetItem(host.ItemErrorStatus, "x")
	if v, ok := req.Item(host.ItemErrorStatus); !ok || v != "x" {
		t.Fatalf("item not stored: %v %v", v, ok)
	}
	var nilReq *host.Request
	if nilReq.AbsoluteURI() != "" {
		t.Fatalf("nil request should have empty uri")
	}
}

func TestResultAndResponse(t *testing.T) {
	redirect := host.Redirect("/orders/7", 302)
	if !redirect.HasLocation() || redirect.StatusCode != 302 {
		t.Fatalf("unexpected redirect %+v", redirect)
	}
	if host.NewResult("x", 200).HasLocation() {
		t.Fatalf("plain result should not carry a location")
	}

	res := host.NewResponse()
	if res.StatusCode != 200 || res.Written() {
		t.Fatalf("unexpected new response %+v", res)
	}
	if _, err := res.Write(nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !res.Written() {
		t.Fatalf("empty write should mark the response written")
	}
	_, _ = res.Write([]byte("ok"))
	if string(res.Bytes()) != "ok" {
		t.Fatalf("unexpected body %q", res.Bytes())
	}
}

func TestMime(t *testing.T) {
	if got := host.ContentFormat("text/html; charset=utf-8"); got != "html" {
		t.Fatalf("content format: got %q", got)
	}
	if got := host.ContentFormat(host.MimeJSONReport); got != "jsonreport" {
		t.Fatalf("content format: got %q", got)
	}
	for format, want := range map[string]string{
		"html":       host.MimeHTML,
		"SHTM":       host.MimeHTML,
		"jsonreport": host.MimeJSONReport,
		"json":       host.MimeJSON,
	} {
		if got, ok := host.MimeForFormat(format); !ok || got != want {
			t.Fatalf("format %q: want %q, got %q (%v)", format, want, got, ok)
		}
	}
	if _, ok := host.MimeForFormat("xml"); ok {
		t.Fatalf("xml should not map to a mime type")
	}
}

func TestConfig_IgnoreFormat(t *testing.T) {
	var cfg host.Config
	cfg.IgnoreFormat("html")
	cfg.IgnoreFormat("html")
	cfg.IgnoreFormat("")
	if len(cfg.IgnoreFormatsInMetadata) != 1 {
		t.Fatalf("unexpected ignore list %v", cfg.IgnoreFormatsInMetadata)
	}
}
