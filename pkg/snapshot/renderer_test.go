package snapshot_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-htmlsnapshot/pkg/snapshot"
	"github.com/goliatone/go-htmlsnapshot/pkg/testsupport"
)

var fixedNow = time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

func newRenderer(options ...snapshot.Option) *snapshot.Renderer {
	options = append([]snapshot.Option{snapshot.WithClock(func() time.Time { return fixedNow })}, options...)
	return snapshot.New(snapshot.DefaultConfig(), options...)
}

func TestRender_PreRenderedPassThrough(t *testing.T) {
	renderer := newRenderer()

	inputs := []string{"", "<h1>hello</h1>", "<script>alert(1)</script>", "ünïcødé ${Dto}"}
	for _, input := range inputs {
		out, err := renderer.Render(snapshot.PreRendered(input), snapshot.RenderRequest{OperationName: "Op"})
		if err != nil {
			t.Fatalf("render %q: %v", input, err)
		}
		if out.IsDelegated() {
			t.Fatalf("expected rendered outcome for %q", input)
		}
		if got := string(out.Bytes()); got != input {
			t.Fatalf("pass-through mismatch: want %q, got %q", input, got)
		}
	}
}

func TestRender_StructuredPayload(t *testing.T) {
	renderer := newRenderer()

	out, err := renderer.Render(snapshot.Structured(map[string]int{"count": 3}), snapshot.RenderRequest{
		AbsoluteURL:   "https://api.example.com/count?format=html",
		OperationName: "GetCount",
		Format:        snapshot.FormatHTML,
		StatusCode:    200,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out.Bytes())

	if got := testsupport.DtoBlock(t, page); got != `{"count":3}` {
		t.Fatalf("unexpected dto block: %q", got)
	}
	if !strings.Contains(page, "<title>GetCount Snapshot of Tue, 05 Mar 2024 14:30:00 UTC</title>") {
		t.Fatalf("title not rendered:\n%s", page)
	}
	if !strings.Contains(page, "Snapshot of <i>GetCount</i> generated by") {
		t.Fatalf("header not rendered:\n%s", page)
	}
	if !strings.Contains(page, `data-service-url="https://api.example.com/count?"`) {
		t.Fatalf("service url not rendered:\n%s", page)
	}
	if !strings.Contains(page, `data-humanize="true"`) {
		t.Fatalf("humanize flag not rendered")
	}
	for _, placeholder := range []string{"${Dto}", "${Title}", "${MvcIncludes}", "${Header}", "${ServiceUrl}", "${Humanize}"} {
		if strings.Contains(page, placeholder) {
			t.Fatalf("placeholder %s left in page", placeholder)
		}
	}
}

func TestRender_EscapesPayloadMarkup(t *testing.T) {
	renderer := newRenderer()

	out, err := renderer.Render(snapshot.Structured("<script>"), snapshot.RenderRequest{OperationName: "Echo"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	block := testsupport.DtoBlock(t, string(out.Bytes()))
	if block != `"&lt;script&gt;"` {
		t.Fatalf("unexpected escaped payload: %q", block)
	}
	if strings.ContainsAny(block, "<>") {
		t.Fatalf("payload contains raw angle brackets: %q", block)
	}
}

func TestRender_NestedMarkupNeverEscapesTheDtoBlock(t *testing.T) {
	renderer := newRenderer()

	payload := map[string]any{
		"html":  "</script><script>alert(1)</script>",
		"items": []string{"<b>", "a > b"},
	}
	out, err := renderer.Render(snapshot.Structured(payload), snapshot.RenderRequest{OperationName: "Nested"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.ContainsAny(testsupport.DtoBlock(t, string(out.Bytes())), "<>") {
		t.Fatalf("payload contains raw angle brackets")
	}
}

func TestRender_PlaceholderTextInPayloadIsNotSubstituted(t *testing.T) {
	renderer := newRenderer()

	out, err := renderer.Render(snapshot.Structured("${Title}"), snapshot.RenderRequest{OperationName: "Op"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := testsupport.DtoBlock(t, string(out.Bytes())); got != `"${Title}"` {
		t.Fatalf("payload was substituted: %q", got)
	}
}

func TestRender_NilPayloadSerializesAsNull(t *testing.T) {
	renderer := newRenderer(snapshot.WithSerializer(snapshot.SerializerFunc(func(any) (string, error) {
		return "", nil
	})))

	out, err := renderer.Render(snapshot.Structured(nil), snapshot.RenderRequest{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := testsupport.DtoBlock(t, string(out.Bytes())); got != "null" {
		t.Fatalf("expected null, got %q", got)
	}
}

func TestRender_SerializationErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	renderer := newRenderer(snapshot.WithSerializer(snapshot.SerializerFunc(func(any) (string, error) {
		return "", boom
	})))

	_, err := renderer.Render(snapshot.Structured(struct{}{}), snapshot.RenderRequest{OperationName: "Op"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected serialization error, got %v", err)
	}
}

func TestRender_HeaderEscapesOperationName(t *testing.T) {
	renderer := newRenderer()

	out, err := renderer.Render(snapshot.Structured(1), snapshot.RenderRequest{OperationName: "<img src=x>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out.Bytes())
	if strings.Contains(page, "<img src=x>") {
		t.Fatalf("operation name rendered unescaped")
	}
	if !strings.Contains(page, "<i>&lt;img src=x&gt;</i>") {
		t.Fatalf("escaped operation name missing from header")
	}
}

func TestRender_CustomTemplateConfigAndIncludes(t *testing.T) {
	cfg := snapshot.Config{
		TitleFormat:     "%[1]s@%[2]s",
		HeaderFormat:    "[%[1]s]",
		Humanize:        false,
		TimestampLayout: "2006-01-02",
	}
	tpl := "${Title}|${Header}|${MvcIncludes}|${ServiceUrl}|${Humanize}|${Dto}"
	renderer := snapshot.New(cfg,
		snapshot.WithClock(func() time.Time { return fixedNow }),
		snapshot.WithTemplate(tpl),
		snapshot.WithIncludes(snapshot.IncludesFunc(func() string { return "<link rel=stylesheet>" })),
	)

	out, err := renderer.Render(snapshot.Structured([]int{1, 2}), snapshot.RenderRequest{
		AbsoluteURL:   "https://x/y?format=shtm&zoo=1",
		OperationName: "List",
		OperationDoc:  "<p>docs</p>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `List@2024-03-05|[List]<div class="operation-doc"><p>docs</p></div>|<link rel=stylesheet>|https://x/y?zoo=1&amp;|false|[1,2]`
	if got := string(out.Bytes()); got != want {
		t.Fatalf("unexpected page\nwant: %q\n got: %q", want, got)
	}
}

func TestNew_FillsEmptyConfigWithDefaults(t *testing.T) {
	renderer := snapshot.New(snapshot.Config{})
	cfg := renderer.Config()
	if cfg.TitleFormat != snapshot.DefaultTitleFormat || cfg.HeaderFormat != snapshot.DefaultHeaderFormat {
		t.Fatalf("expected default formats, got %+v", cfg)
	}
	if cfg.TimestampLayout != snapshot.DefaultTimestampLayout {
		t.Fatalf("expected default layout, got %q", cfg.TimestampLayout)
	}
	if cfg.Humanize {
		t.Fatalf("humanize must keep the explicit zero value")
	}
}

func TestPayloadOf(t *testing.T) {
	if !snapshot.PayloadOf("<p>x</p>").IsPreRendered() {
		t.Fatalf("string should be pre-rendered")
	}
	if snapshot.PayloadOf(map[string]any{}).IsPreRendered() {
		t.Fatalf("map should be structured")
	}
	explicit := snapshot.Structured("text")
	if snapshot.PayloadOf(explicit).IsPreRendered() {
		t.Fatalf("explicit structured payload should be kept")
	}
}
