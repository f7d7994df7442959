package resort_web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"alpenworks.io/resort-services/internal/common"
	database "alpenworks.io/resort-services/internal/db"
	"alpenworks.io/resort-services/internal/log"
	"alpenworks.io/resort-services/internal/store"
	"alpenworks.io/resort-services/internal/view"
)

type ResortWebServer struct {
	store       store.Store
	hub         *view.Hub
	server      *http.Server
	renderer    *Renderer
	metrics     *common.Metrics
	pollSeconds int
}

func NewResortWebServer(ctx context.Context, cfg Config, metrics *common.Metrics) (*ResortWebServer, error) {
	liftStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Loading up front both warms the view and surfaces seed defects
	// (duplicate ids, empty paths) at startup instead of per request.
	lifts, err := liftStore.Lifts(ctx)
	if err != nil {
		return nil, err
	}

	hub := view.NewHub(ctx, lifts)
	return newResortWebServer(liftStore, hub, cfg, metrics)
}

func openStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch {
	case cfg.DatabaseConnection != "":
		db, err := database.NewDatabaseConnection(ctx, cfg.DatabaseConnection)
		if err != nil {
			return nil, err
		}
		return store.NewPostgresStore(db), nil
	case cfg.SeedPath != "":
		return store.LoadSeedStore(cfg.SeedPath)
	default:
		return store.NewEmbeddedSeedStore()
	}
}

func newResortWebServer(liftStore store.Store, hub *view.Hub, cfg Config, metrics *common.Metrics) (*ResortWebServer, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	server := &ResortWebServer{
		store:       liftStore,
		hub:         hub,
		renderer:    renderer,
		metrics:     metrics,
		pollSeconds: cfg.PollSeconds,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/", func(writer http.ResponseWriter, request *http.Request) {
		http.Redirect(writer, request, "/map", http.StatusFound)
	})
	router.Get("/map", server.timed("map", server.handleMapPage))
	router.Get("/map/partial", server.timed("map_partial", server.handleMapPartial))
	router.Get("/lifts/{id}/detail", server.timed("lift_detail", server.handleLiftDetail))
	router.Get("/api/map", server.timed("api_map", server.handleMapAPI))
	router.Get("/ws", server.handleWS)
	router.Get("/healthz", server.handleHealthz)

	server.server = &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: router,
	}

	return server, nil
}

// Router exposes the handler for httptest.
func (server *ResortWebServer) Router() http.Handler {
	return server.server.Handler
}

func (server *ResortWebServer) timed(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	if server.metrics == nil {
		return next
	}
	return func(writer http.ResponseWriter, request *http.Request) {
		start := time.Now()
		next(writer, request)
		server.metrics.HTTPRequestSeconds.
			WithLabelValues(endpoint).
			Observe(time.Since(start).Seconds())
	}
}

func (server *ResortWebServer) startHosting() {
	err := server.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Logger.Fatal("server error", zap.Error(err))
	}
}

func (server *ResortWebServer) Serve(ctx context.Context) {
	log.Logger.Info("listening", zap.String("addr", server.server.Addr))

	go server.startHosting()
	<-ctx.Done()

	log.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	server.server.Shutdown(shutdownCtx)

	server.hub.Inbox() <- view.ShutdownHub{}
}
