package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-htmlsnapshot/internal/prompt"
	"github.com/goliatone/go-htmlsnapshot/pkg/testsupport"
)

const ordersAPI = `
openapi: 3.0.3
info:
  title: Orders
  version: 1.0.0
paths:
  /orders/{id}:
    get:
      operationId: getOrder
      summary: Fetch one order
      responses:
        "200":
          description: ok
`

type fixedDriver struct{}

func (fixedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	return "https://api.example.com/orders/7", nil
}

func (fixedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) { return true, nil }

func (fixedDriver) Select(context.Context, prompt.SelectConfig) (int, error) { return 0, nil }

func TestRun_RendersStdin(t *testing.T) {
	opts, err := parseFlags([]string{"-operation", "GetOrder", "-url", "https://api.example.com/orders/7?format=html"})
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	var out bytes.Buffer
	in := strings.NewReader(`{"id": 7, "total": 12.50, "notes": "<b>rush</b>"}`)
	if err := run(testsupport.Context(), opts, in, &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	page := out.String()
	if got := testsupport.DtoBlock(t, page); got != `{"id":7,"notes":"&lt;b&gt;rush&lt;/b&gt;","total":12.50}` {
		t.Fatalf("unexpected dto block %q", got)
	}
	if !strings.Contains(page, "<title>GetOrder Snapshot of ") {
		t.Fatalf("title missing:\n%s", page)
	}
	if !strings.Contains(page, `data-service-url="https://api.example.com/orders/7?"`) {
		t.Fatalf("service url missing:\n%s", page)
	}
}

func TestRun_RawInputPassesThrough(t *testing.T) {
	opts, err := parseFlags([]string{"-raw"})
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	var out bytes.Buffer
	if err := run(testsupport.Context(), opts, strings.NewReader("<p>ready</p>"), &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "<p>ready</p>" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRun_InteractiveWithOpenAPI(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "openapi.yaml")
	if err := os.WriteFile(specPath, []byte(ordersAPI), 0o644); err != nil {
		t.Fatalf("write openapi: %v", err)
	}
	outPath := filepath.Join(dir, "snapshot.html")

	opts, err := parseFlags([]string{"-openapi", specPath, "-output", outPath, "-interactive"})
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if err := run(testsupport.Context(), opts, strings.NewReader(`{"id":7}`), &bytes.Buffer{}, fixedDriver{}); err != nil {
		t.Fatalf("run: %v", err)
	}

	page, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{
		"<title>getOrder Snapshot of ",
		`<div class="operation-doc"><p><strong>Fetch one order</strong></p>`,
		`data-humanize="true"`,
	} {
		if !strings.Contains(string(page), want) {
			t.Fatalf("expected %q in page:\n%s", want, page)
		}
	}
}

func TestRun_ResolvesOperationFromURL(t *testing.T) {
	specPath := filepath.Join(t.TempDir(), "openapi.yaml")
	if err := os.WriteFile(specPath, []byte(ordersAPI), 0o644); err != nil {
		t.Fatalf("write openapi: %v", err)
	}
	opts, err := parseFlags([]string{"-openapi", specPath, "-url", "http://localhost/orders/9?x=1"})
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	var out bytes.Buffer
	if err := run(testsupport.Context(), opts, strings.NewReader(`{}`), &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "<title>getOrder Snapshot of ") {
		t.Fatalf("operation not resolved from url:\n%s", out.String())
	}
}

func TestRun_InvalidJSON(t *testing.T) {
	opts, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	err = run(testsupport.Context(), opts, strings.NewReader(`{"id":`), &bytes.Buffer{}, nil)
	if err == nil || !strings.Contains(err.Error(), "decode input") {
		t.Fatalf("expected decode error, got %v", err)
	}
}
