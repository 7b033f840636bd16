package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"

	"github.com/goliatone/go-htmlsnapshot/internal/openapi"
	"github.com/goliatone/go-htmlsnapshot/internal/prompt"
	"github.com/goliatone/go-htmlsnapshot/pkg/config"
	"github.com/goliatone/go-htmlsnapshot/pkg/snapshot"
)

type options struct {
	input       string
	output      string
	operation   string
	url         string
	method      string
	configPath  string
	openAPIPath string
	status      int
	raw         bool
	interactive bool
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("invalid arguments: %v", err)
	}

	var driver prompt.Driver
	if opts.interactive {
		driver = prompt.NewSurveyDriver()
	}

	if err := run(context.Background(), opts, os.Stdin, os.Stdout, driver); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			os.Exit(130)
		}
		log.Fatalf("Failed to render snapshot: %v", err)
	}
	if opts.output != "" {
		fmt.Printf("Snapshot written to %s\n", opts.output)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("htmlsnapshot", flag.ContinueOnError)
	fs.StringVar(&opts.input, "input", "-", "JSON document to render (- for stdin)")
	fs.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	fs.StringVar(&opts.operation, "operation", "", "operation name shown in the title and header")
	fs.StringVar(&opts.url, "url", "", "request URL used for the format links")
	fs.StringVar(&opts.method, "method", "GET", "HTTP method used to match -url against the OpenAPI document")
	fs.StringVar(&opts.configPath, "config", "", "settings file (JSON or YAML)")
	fs.StringVar(&opts.openAPIPath, "openapi", "", "OpenAPI document used to resolve operation names and docs")
	fs.IntVar(&opts.status, "status", 200, "response status code")
	fs.BoolVar(&opts.raw, "raw", false, "treat the input as pre-rendered HTML")
	fs.BoolVar(&opts.interactive, "interactive", false, "prompt for missing inputs")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer, driver prompt.Driver) error {
	settings, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.openAPIPath == "" {
		opts.openAPIPath = settings.OpenAPIPath
	}

	data, err := readInput(opts.input, stdin)
	if err != nil {
		return err
	}
	payload, err := decodePayload(data, opts.raw)
	if err != nil {
		return err
	}

	var resolver *openapi.Resolver
	if opts.openAPIPath != "" {
		resolver, err = openapi.LoadFile(ctx, opts.openAPIPath)
		if err != nil {
			return err
		}
	}

	if driver != nil {
		in, err := prompt.Complete(ctx, driver, prompt.Inputs{
			OperationName: opts.operation,
			URL:           opts.url,
			Humanize:      settings.Humanize,
		}, promptOperations(resolver))
		if err != nil {
			return err
		}
		opts.operation, opts.url, settings.Humanize = in.OperationName, in.URL, in.Humanize
	}

	req := snapshot.RenderRequest{
		AbsoluteURL:   opts.url,
		OperationName: opts.operation,
		Format:        snapshot.FormatHTML,
		StatusCode:    opts.status,
	}
	if resolver != nil {
		applyOperation(resolver, opts, &req)
	}

	renderer, err := settings.NewRenderer()
	if err != nil {
		return err
	}
	out, err := renderer.Render(payload, req)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, out.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	_, err = stdout.Write(out.Bytes())
	return err
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// decodePayload keeps numbers verbatim so the embedded JSON matches the input.
func decodePayload(data []byte, raw bool) (snapshot.Payload, error) {
	if raw {
		return snapshot.PreRendered(string(data)), nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return snapshot.Structured(nil), nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return snapshot.Payload{}, fmt.Errorf("decode input: %w", err)
	}
	return snapshot.Structured(value), nil
}

func promptOperations(resolver *openapi.Resolver) []prompt.Operation {
	if resolver == nil {
		return nil
	}
	var out []prompt.Operation
	for _, op := range resolver.Operations() {
		out = append(out, prompt.Operation{ID: op.ID, Method: op.Method, Path: op.Path, Summary: op.Summary})
	}
	return out
}

// applyOperation fills the operation docs from the OpenAPI document, matching
// by operation id first and by -method/-url second.
func applyOperation(resolver *openapi.Resolver, opts options, req *snapshot.RenderRequest) {
	for _, op := range resolver.Operations() {
		if op.ID != opts.operation {
			continue
		}
		if info, ok := resolver.ResolveOperation(op.Method, op.Path); ok {
			req.OperationDoc = info.Doc
		}
		return
	}
	if opts.url == "" {
		return
	}
	u, err := url.Parse(opts.url)
	if err != nil {
		return
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	if info, ok := resolver.ResolveOperation(opts.method, path); ok {
		if req.OperationName == "" {
			req.OperationName = info.Name
		}
		req.OperationDoc = info.Doc
	}
}
