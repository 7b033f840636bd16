package openapi

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-htmlsnapshot/internal/markdown"
	"github.com/goliatone/go-htmlsnapshot/pkg/htmlformat"
)

// Operation is the subset of an OpenAPI operation used for display.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
}

type route struct {
	method   string
	segments []string
	op       Operation
}

// Resolver matches requests against the document's path templates.
type Resolver struct {
	routes []route
}

var _ htmlformat.OperationResolver = (*Resolver)(nil)

// LoadFile reads and parses an OpenAPI document from disk.
func LoadFile(ctx context.Context, path string) (*Resolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return Load(ctx, data)
}

// Load parses an OpenAPI document (JSON or YAML) and indexes its operations.
func Load(ctx context.Context, data []byte) (*Resolver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}

	r := &Resolver{}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		r.add("GET", path, item.Get)
		r.add("PUT", path, item.Put)
		r.add("POST", path, item.Post)
		r.add("DELETE", path, item.Delete)
		r.add("PATCH", path, item.Patch)
		r.add("HEAD", path, item.Head)
		r.add("OPTIONS", path, item.Options)
		r.add("TRACE", path, item.Trace)
	}

	// Literal segments win over parameters.
	sort.Slice(r.routes, func(i, j int) bool {
		a, b := r.routes[i], r.routes[j]
		if la, lb := literalCount(a.segments), literalCount(b.segments); la != lb {
			return la > lb
		}
		if a.op.Path != b.op.Path {
			return a.op.Path < b.op.Path
		}
		return a.method < b.method
	})
	return r, nil
}

func (r *Resolver) add(method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}
	r.routes = append(r.routes, route{
		method:   method,
		segments: splitPath(path),
		op: Operation{
			ID:          opID,
			Method:      method,
			Path:        path,
			Summary:     operation.Summary,
			Description: operation.Description,
		},
	})
}

// Lookup returns the operation whose path template matches the request.
func (r *Resolver) Lookup(method, path string) (Operation, bool) {
	if r == nil {
		return Operation{}, false
	}
	method = strings.ToUpper(method)
	segments := splitPath(path)
	for _, rt := range r.routes {
		if rt.method != method || !matches(rt.segments, segments) {
			continue
		}
		return rt.op, true
	}
	return Operation{}, false
}

// Operations lists every indexed operation sorted by id.
func (r *Resolver) Operations() []Operation {
	out := make([]Operation, 0, len(r.routes))
	for _, rt := range r.routes {
		out = append(out, rt.op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ResolveOperation implements htmlformat.OperationResolver. The summary and
// description are rendered from Markdown into sanitized HTML.
func (r *Resolver) ResolveOperation(method, path string) (htmlformat.OperationInfo, bool) {
	op, ok := r.Lookup(method, path)
	if !ok {
		return htmlformat.OperationInfo{}, false
	}

	var doc []string
	if op.Summary != "" {
		doc = append(doc, "**"+strings.TrimSpace(op.Summary)+"**")
	}
	if op.Description != "" {
		doc = append(doc, op.Description)
	}
	return htmlformat.OperationInfo{
		Name: op.ID,
		Doc:  markdown.Render(strings.Join(doc, "\n\n")),
	}, true
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func isParam(segment string) bool {
	return strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}")
}

func literalCount(segments []string) int {
	n := 0
	for _, segment := range segments {
		if !isParam(segment) {
			n++
		}
	}
	return n
}

func matches(template, path []string) bool {
	if len(template) != len(path) {
		return false
	}
	for i, segment := range template {
		if isParam(segment) {
			if path[i] == "" {
				return false
			}
			continue
		}
		if segment != path[i] {
			return false
		}
	}
	return true
}
