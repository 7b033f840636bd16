package openapi

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const petstore = `
openapi: 3.0.3
info:
  title: Orders
  version: 1.0.0
paths:
  /orders:
    get:
      operationId: listOrders
      summary: List orders
      responses:
        "200":
          description: ok
    post:
      operationId: createOrder
      responses:
        "201":
          description: created
  /orders/{id}:
    get:
      operationId: getOrder
      description: Returns a single order by **id**.
      responses:
        "200":
          description: ok
  /orders/latest:
    get:
      responses:
        "200":
          description: ok
`

func loadPetstore(t *testing.T) *Resolver {
	t.Helper()

	r, err := Load(context.Background(), []byte(petstore))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return r
}

func TestResolver_Lookup(t *testing.T) {
	r := loadPetstore(t)

	cases := []struct {
		method string
		path   string
		want   string
		ok     bool
	}{
		{method: "GET", path: "/orders", want: "listOrders", ok: true},
		{method: "post", path: "/orders/", want: "createOrder", ok: true},
		{method: "GET", path: "/orders/42", want: "getOrder", ok: true},
		{method: "GET", path: "/orders/latest", want: "get:/orders/latest", ok: true},
		{method: "DELETE", path: "/orders/42", ok: false},
		{method: "GET", path: "/orders/42/items", ok: false},
	}
	for _, tc := range cases {
		op, ok := r.Lookup(tc.method, tc.path)
		if ok != tc.ok {
			t.Fatalf("%s %s: expected ok=%v, got %v", tc.method, tc.path, tc.ok, ok)
		}
		if ok && op.ID != tc.want {
			t.Fatalf("%s %s: expected %q, got %q", tc.method, tc.path, tc.want, op.ID)
		}
	}
}

func TestResolver_Operations(t *testing.T) {
	r := loadPetstore(t)

	var ids []string
	for _, op := range r.Operations() {
		ids = append(ids, op.ID)
	}
	want := []string{"createOrder", "get:/orders/latest", "getOrder", "listOrders"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_ResolveOperationRendersDocs(t *testing.T) {
	r := loadPetstore(t)

	info, ok := r.ResolveOperation("GET", "/orders/9")
	if !ok {
		t.Fatalf("expected operation")
	}
	if info.Name != "getOrder" {
		t.Fatalf("unexpected name %q", info.Name)
	}
	if !strings.Contains(info.Doc, "<strong>id</strong>") {
		t.Fatalf("expected rendered markdown, got %q", info.Doc)
	}

	info, ok = r.ResolveOperation("GET", "/orders")
	if !ok || !strings.Contains(info.Doc, "<strong>List orders</strong>") {
		t.Fatalf("expected summary in docs, got %+v", info)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := Load(context.Background(), []byte("openapi: 3.0.3\ninfo: {title: x, version: '1'}\npaths: {}\n")); err == nil {
		t.Fatalf("expected error for document without paths")
	}
}
