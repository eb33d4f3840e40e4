package app

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/orgdesk/internal/pkg/backend"
	"github.com/shandysiswandi/orgdesk/internal/pkg/cache"
	"github.com/shandysiswandi/orgdesk/internal/pkg/clock"
	"github.com/shandysiswandi/orgdesk/internal/pkg/config"
	"github.com/shandysiswandi/orgdesk/internal/pkg/goroutine"
	"github.com/shandysiswandi/orgdesk/internal/pkg/idempotency"
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/messaging"
	"github.com/shandysiswandi/orgdesk/internal/pkg/router"
	"github.com/shandysiswandi/orgdesk/internal/pkg/uid"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine      *goroutine.Manager
	validator      validator.Validator
	inputValidator validator.InputValidator
	clock          clock.Clocker
	uuid           uid.StringID

	// resources
	cacheConn *redis.Client
	cache     cache.Cache
	idemp     idempotency.Idempotency
	messaging messaging.Messaging
	backend   *backend.Client

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initCache()
	app.initMessaging()
	app.initBackend()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
