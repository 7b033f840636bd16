package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	htmlsnapshot "github.com/goliatone/go-htmlsnapshot"
	"github.com/goliatone/go-htmlsnapshot/internal/openapi"
	"github.com/goliatone/go-htmlsnapshot/pkg/config"
	"github.com/goliatone/go-htmlsnapshot/pkg/htmlformat"
	"github.com/goliatone/go-htmlsnapshot/pkg/viewengine"
)

func main() {
	configPath := flag.String("config", "", "settings file (JSON or YAML)")
	addr := flag.String("addr", "", "listen address (overrides settings)")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		config.Exitf("load settings: %v", err)
	}
	if *addr != "" {
		settings.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, settings, log.Default())
	if err != nil {
		config.Exitf("build app: %v", err)
	}
	registerServices(app, newOrderStore(time.Now))

	srv := &http.Server{
		Addr:              settings.Addr,
		Handler:           app,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("htmlsnapshot demo listening on %s", settings.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("listen: %v", err)
	}
}

// newApp wires the html format plugin and its optional collaborators from
// settings.
func newApp(ctx context.Context, settings config.Settings, logger *log.Logger) (*htmlsnapshot.App, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	renderer, err := settings.NewRenderer()
	if err != nil {
		return nil, err
	}

	formatOpts := []htmlformat.Option{
		htmlformat.WithRenderer(renderer),
		htmlformat.WithCreatedStatus(settings.CreatedStatus),
		htmlformat.WithLogger(logger),
	}
	if settings.OpenAPIPath != "" {
		resolver, err := openapi.LoadFile(ctx, settings.OpenAPIPath)
		if err != nil {
			return nil, err
		}
		formatOpts = append(formatOpts, htmlformat.WithOperationResolver(resolver))
		logger.Printf("resolving operations from %s (%d operations)", settings.OpenAPIPath, len(resolver.Operations()))
	}

	app, err := htmlsnapshot.NewApp(htmlformat.New(formatOpts...), htmlsnapshot.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	// The plugin claims text/html as default; settings may choose otherwise.
	app.Config().DefaultContentType = settings.DefaultContentType

	if settings.ViewsDir != "" {
		engine, err := viewengine.NewTemplateEngine(viewengine.WithTemplatesDir(settings.ViewsDir))
		if err != nil {
			return nil, err
		}
		app.AddViewEngine(engine)
		logger.Printf("rendering views from %s", settings.ViewsDir)
	}
	return app, nil
}
