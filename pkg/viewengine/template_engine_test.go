package viewengine_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-htmlsnapshot/pkg/host"
	"github.com/goliatone/go-htmlsnapshot/pkg/viewengine"
)

func newTemplateEngine(t *testing.T) *viewengine.TemplateEngine {
	t.Helper()

	engine, err := viewengine.NewTemplateEngine(viewengine.WithTemplatesFS(fstest.MapFS{
		"GetOrder.html": {Data: []byte("<h1>Order {{ Model.id }}</h1><p>{{ Model.note }}</p>")},
		"GetError.html": {Data: []byte("{{ error_status.errorCode }}:{{ status }}")},
		"Broken.html":   {Data: []byte("{% if %}")},
	}))
	if err != nil {
		t.Fatalf("new template engine: %v", err)
	}
	return engine
}

func htmlRequest(operation string) *host.Request {
	return &host.Request{
		OperationName:       operation,
		ResponseContentType: "text/html; charset=utf-8",
		Items:               map[string]any{},
	}
}

func TestTemplateEngine_RendersOperationView(t *testing.T) {
	engine := newTemplateEngine(t)
	res := host.NewResponse()

	body := map[string]any{"id": 42, "note": "<b>rush</b>"}
	outcome := engine.ProcessRequest(context.Background(), htmlRequest("GetOrder"), res, body)
	if outcome.Kind != host.Handled {
		t.Fatalf("expected handled, got %+v", outcome)
	}

	want := "<h1>Order 42</h1><p>&lt;b&gt;rush&lt;/b&gt;</p>"
	if got := string(res.Bytes()); got != want {
		t.Fatalf("unexpected body\nwant: %q\n got: %q", want, got)
	}
}

func TestTemplateEngine_ExposesErrorStatus(t *testing.T) {
	engine := newTemplateEngine(t)
	req := htmlRequest("GetError")
	req.SetItem(host.ItemErrorStatus, &host.ResponseStatus{ErrorCode: "NotFound"})
	res := host.NewResponse()
	res.StatusCode = http.StatusNotFound

	outcome := engine.ProcessRequest(context.Background(), req, res, nil)
	if outcome.Kind != host.Handled {
		t.Fatalf("expected handled, got %+v", outcome)
	}
	if got := string(res.Bytes()); got != "NotFound:404" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestTemplateEngine_MissingViewIsUnhandled(t *testing.T) {
	engine := newTemplateEngine(t)
	res := host.NewResponse()

	outcome := engine.ProcessRequest(context.Background(), htmlRequest("ListOrders"), res, nil)
	if outcome.Kind != host.Unhandled {
		t.Fatalf("expected unhandled, got %+v", outcome)
	}
	if res.Written() {
		t.Fatalf("unhandled engine must not write")
	}
}

func TestTemplateEngine_OtherContentTypesAreUnhandled(t *testing.T) {
	engine := newTemplateEngine(t)
	req := htmlRequest("GetOrder")
	req.ResponseContentType = host.MimeJSONReport

	outcome := engine.ProcessRequest(context.Background(), req, host.NewResponse(), map[string]any{"id": 1})
	if outcome.Kind != host.Unhandled {
		t.Fatalf("expected unhandled for jsonreport, got %+v", outcome)
	}
}

func TestTemplateEngine_BrokenViewFails(t *testing.T) {
	engine := newTemplateEngine(t)
	res := host.NewResponse()

	outcome := engine.ProcessRequest(context.Background(), htmlRequest("Broken"), res, nil)
	if outcome.Kind != host.Failed || outcome.Err == nil {
		t.Fatalf("expected failure, got %+v", outcome)
	}
	if res.Written() {
		t.Fatalf("failed engine must not write")
	}
}

func TestNewTemplateEngine_RequiresTemplates(t *testing.T) {
	if _, err := viewengine.NewTemplateEngine(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

type captureRenderer struct {
	data any
}

func (c *captureRenderer) Render(string, any, ...io.Writer) (string, error) { return "", nil }

func (c *captureRenderer) RenderTemplate(_ string, data any, _ ...io.Writer) (string, error) {
	c.data = data
	return "", nil
}

func (c *captureRenderer) RenderString(string, any, ...io.Writer) (string, error) { return "", nil }

func (c *captureRenderer) RegisterFilter(string, func(any, any) (any, error)) error { return nil }

func (c *captureRenderer) GlobalContext(any) error { return nil }

func (c *captureRenderer) Exists(string) bool { return true }

func TestTemplateEngine_PassesResponseUnderModelKey(t *testing.T) {
	renderer := &captureRenderer{}
	engine, err := viewengine.NewTemplateEngine(viewengine.WithTemplateRenderer(renderer))
	if err != nil {
		t.Fatalf("new template engine: %v", err)
	}

	body := map[string]any{"id": 7}
	if outcome := engine.ProcessRequest(context.Background(), htmlRequest("GetOrder"), host.NewResponse(), body); outcome.Kind != host.Handled {
		t.Fatalf("expected handled, got %+v", outcome)
	}

	data, ok := renderer.data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected template data %T", renderer.data)
	}
	if diff := cmp.Diff(body, data[host.ModelKey]); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
	if data["operation"] != "GetOrder" {
		t.Fatalf("unexpected operation %v", data["operation"])
	}
}
