package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/mkalio/shopcore-backend/internal/auth"
	"github.com/mkalio/shopcore-backend/internal/eventengine"
	"github.com/mkalio/shopcore-backend/internal/features/cart"
	"github.com/mkalio/shopcore-backend/internal/features/catalog"
	"github.com/mkalio/shopcore-backend/internal/features/order"
	"github.com/mkalio/shopcore-backend/internal/features/promotion"
	"github.com/mkalio/shopcore-backend/internal/features/user"
	"github.com/mkalio/shopcore-backend/internal/metrics"
	"github.com/mkalio/shopcore-backend/internal/middlewares"
)

type ServerConfig struct {
	Addr         string
	TokenManager *auth.TokenService
}

type server struct {
	*ServerConfig

	doneCh        chan struct{}   // signals internal go routines to shut down
	internalSrvWG *sync.WaitGroup // waits for internal go routines to finish before exiting

	eventEngine   eventengine.SubscribeRegisterPublisher
	serverMetrics *metrics.ServerMetrics
	srv           *http.Server
}

func NewServer(serverConfig *ServerConfig) *server {
	srv := &server{
		ServerConfig:  serverConfig,
		doneCh:        make(chan struct{}),
		internalSrvWG: &sync.WaitGroup{},
	}

	return srv
}

func (s *server) Run() {
	s.prep()

	router := chi.NewRouter()

	// strip trailing slashes so /products/1/ routes like /products/1
	router.Use(chimiddleware.StripSlashes)
	router.Use(s.serverMetrics.Middleware)

	router.Mount("/api/v1", s.v1Router()) // api version 1 subrouter

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.Addr),
		Handler: router,
	}

	// start server and listen for [os.Signal] signals to gracefully shut down
	s.listenAndServe()
}

func (s *server) listenAndServe() {
	shutdownCtx, shutdownCancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer shutdownCancel()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(
		func() error {
			slog.Info("server started", "port", s.Addr)

			if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			return nil
		},
	)

	errGrp.Go(
		func() error {
			<-shutdownCtx.Done() // block until a shutdown signal arrives
			slog.Info("server is gracefully shutting down...")

			ctx, cancel := context.WithTimeout(
				context.Background(),
				(20 * time.Second),
			)
			defer cancel()

			slog.Info("waiting for all pending requests to finish...")
			if err := s.srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server failed to shut down gracefully: %w", err)
			}

			return nil
		},
	)

	if err := errGrp.Wait(); err != nil {
		slog.Error(err.Error())
		return
	}
	slog.Info("all pending requests completed")

	slog.Info("waiting for internal go routines...")
	close(s.doneCh)
	s.internalSrvWG.Wait()

	slog.Info("server has been gracefully shut down")
}

// prep prepares server-wide dependencies needed before routing.
func (s *server) prep() {
	s.eventEngine = eventengine.NewEventEngine(
		&eventengine.EventEngineConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
		},
	)

	s.serverMetrics = metrics.NewServerMetrics("api")
}

func (s *server) v1Router() *chi.Mux {
	r := chi.NewRouter()

	// health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/dashboard", dashboardHandler)

	// user feature
	userStore := seedUserStore()
	userService := user.NewService(userStore, s.TokenManager)
	userHandler := user.NewHandler(userService)
	userHandler.RegisterRoutes(r)

	// middleware
	middleware := middlewares.NewMiddleware(
		s.TokenManager,
	)

	// catalog feature
	catalogStore := seedCatalogStore()
	reservations := catalog.NewReservationEngine(catalogStore)
	catalogService := catalog.NewService(catalogStore)
	catalogHandler := catalog.NewHandler(
		catalogService,
		middleware,
	)
	catalogHandler.RegisterRoutes(r)

	// low-stock watcher, fed by checkout commits
	catalog.NewHandlerEvents(
		&catalog.HandlerEventsConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
			EventEngine:   s.eventEngine,
			Metrics:       s.serverMetrics,
		},
	)

	// promotion feature
	promotionStore := seedPromotionStore()
	promotionHandler := promotion.NewHandler(
		promotionStore,
		middleware,
	)
	promotionHandler.RegisterRoutes(r)

	// cart feature
	cartStore := cart.NewStore()
	cartService := cart.NewService(
		cartStore,
		catalogService,
		reservations,
		s.serverMetrics,
	)
	cartHandler := cart.NewHandler(
		cartService,
		middleware,
	)
	cartHandler.RegisterRoutes(r)

	// order feature
	orderService := order.NewService(
		&order.ServiceConfig{
			Store:        order.NewStore(),
			CartStore:    cartStore,
			Promotions:   promotionStore,
			Reservations: reservations,
			EventEngine:  s.eventEngine,
			Metrics:      s.serverMetrics,
		},
	)
	orderHandler := order.NewHandler(
		orderService,
		middleware,
	)
	orderHandler.RegisterRoutes(r)

	return r
}
