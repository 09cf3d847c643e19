package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ouisvc/config"
	"ouisvc/internal/db"
	"ouisvc/internal/health"
	"ouisvc/internal/logs"
	"ouisvc/internal/middleware"
	"ouisvc/internal/models"
	"ouisvc/internal/oui"
	"ouisvc/internal/ouihttp"
	"ouisvc/internal/registry"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type App struct {
	cfg        *config.Config
	Router     *mux.Router
	httpServer *http.Server

	db     *gorm.DB
	svc    *oui.Service
	mgr    *registry.Manager
	ctx    context.Context
	cancel context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) {
	a.cfg = cfg

	// 1) Logging
	logs.Init(logs.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		File:   a.cfg.Logging.File,
	})

	// 2) DB (optional — empty driver means fetch/file-only mode)
	if drv := a.cfg.Database.Driver; drv != "" {
		d, err := db.Open(drv, a.cfg.Database.DSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		a.db = d
		if err := a.db.AutoMigrate(&models.RegistrySnapshot{}); err != nil {
			log.Fatalf("db migrate failed: %v", err)
		}
	}

	// 3) Lookup service + registry manager
	a.svc = oui.NewService()
	var repo *registry.Repo
	if a.db != nil {
		repo = registry.NewRepo(a.db)
	}
	loadOpts := oui.LoadOptions{SkipMalformed: a.cfg.Registry.SkipMalformed}
	if a.cfg.Registry.Delimiter != "" {
		loadOpts.Comma = rune(a.cfg.Registry.Delimiter[0])
	}
	a.mgr = registry.NewManager(
		a.svc, repo,
		a.cfg.FetchURLsOrDefault(oui.DefaultFetchURLs()),
		loadOpts,
		a.cfg.Registry.KeepSnapshots,
	)

	bootCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	if err := a.mgr.Bootstrap(bootCtx, a.cfg.Registry.File, a.cfg.Registry.FetchOnStart); err != nil {
		if a.cfg.Registry.File != "" {
			// a configured file that does not load is a corrupt source, not
			// something to limp past with a partial index
			log.Fatalf("registry load failed: %v", err)
		}
		logs.Logger.Warnf("registry bootstrap: %v (serving 503 until a refresh succeeds)", err)
	}

	// 4) Router + middleware
	a.Router = mux.NewRouter()
	a.Router.Use(middleware.RequestID)
	a.Router.Use(middleware.Recoverer)
	a.Router.Use(middleware.LoggerMW)

	a.RegisterWebUI("/ui/")

	// 5) Health (/healthz and /readyz)
	if a.db != nil {
		health.RegisterRoutesWithDB(a.Router, a.db, a.svc.Ready)
	} else {
		health.RegisterRoutes(a.Router, a.svc.Ready)
	}

	// 6) API
	ouihttp.NewHTTP(a.svc).RegisterRoutes(a.Router)
	registry.NewHTTP(a.mgr, repo).RegisterRoutes(a.Router)

	a.Router.Walk(func(rt *mux.Route, r *mux.Router, ancestors []*mux.Route) error {
		path, _ := rt.GetPathTemplate()
		methods, _ := rt.GetMethods()
		log.Printf("route: %-6v %s", methods, path)
		return nil
	})
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return ErrNotInitialized
	}
	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigs; a.cancel() }()

	if iv := a.cfg.Registry.RefreshInterval; iv > 0 {
		go a.mgr.RunPeriodic(a.ctx, iv)
	}

	a.httpServer = &http.Server{
		Addr:         bind,
		Handler:      a.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-a.ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = a.httpServer.Shutdown(ctx)
	return nil
}

var ErrNotInitialized = &initError{"server not initialized (call Initialize(cfg) first)"}

type initError struct{ s string }

func (e *initError) Error() string { return e.s }
