package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"driver-service/internal/config"
	"driver-service/internal/driver-service/adapters/driven/bm"
	"driver-service/internal/driver-service/adapters/driven/db"
	"driver-service/internal/driver-service/adapters/driven/tripgw"
	"driver-service/internal/driver-service/adapters/driven/ws"
	"driver-service/internal/driver-service/adapters/driver/myhttp/handle"
	"driver-service/internal/driver-service/core/ports/driven"
	"driver-service/internal/driver-service/core/services"
	"driver-service/internal/mylogger"
)

const WaitTime = 10

type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	srv    *http.Server
	mylog  mylogger.Logger
	db     *db.DataBase
	mb     driven.IStatusBroker
	ctx    context.Context
	appCtx context.Context
	mu     sync.Mutex
}

func NewServer(ctx, appCtx context.Context, mylog mylogger.Logger, cfg *config.Config) *Server {
	s := &Server{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		mylog:  mylog,
		mux:    http.NewServeMux(),
	}

	return s
}

// Run initializes routes and starts listening. It returns when the server stops.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	// Initialize database connection
	database, err := db.ConnectDB(s.ctx, s.cfg.DB, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = database
	if err := database.EnsureSchema(s.ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	mylog.Info("Successful database connection")

	// Initialize RabbitMQ connection
	mb, err := bm.New(s.appCtx, *s.cfg.RabbitMq, s.mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	s.mb = mb
	mylog.Info("Successful message broker connection")

	// Configure routes and handlers
	s.Configure()

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.DriverServicePort),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.DriverServicePort)

	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Info("Shutting down HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.mb != nil {
		if err := s.mb.Close(); err != nil {
			s.mylog.Error("Failed to close message broker", err)
		} else {
			s.mylog.Info("Message broker closed")
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.mylog.Error("Failed to close database", err)
			return fmt.Errorf("db close: %w", err)
		}
		s.mylog.Info("Database closed")
	}

	s.mylog.Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure wires repositories, services and handlers onto the mux.
func (s *Server) Configure() {
	// Repositories and outbound adapters
	driverRepo := db.NewDriverRepository(s.db)
	tripGateway := tripgw.New(s.cfg.Trip, s.mylog)
	wsManager := ws.NewWebSocketManager()

	// services
	driverService := services.NewDriverService(driverRepo, s.mylog, s.mb, wsManager)
	tripService := services.NewTripService(tripGateway, driverService, s.mylog)

	// handlers
	driverHandler := handle.NewDriverHandler(driverService, s.mylog)
	tripHandler := handle.NewTripHandler(tripService, s.mylog)
	wsHandler := handle.NewWebSocketHandler(wsManager, s.mylog)

	// Register routes
	s.mux.Handle("POST /drivers", driverHandler.Register())
	s.mux.Handle("GET /drivers", driverHandler.GetAll())
	s.mux.Handle("GET /drivers/available", driverHandler.FindAvailable())
	s.mux.Handle("GET /drivers/{id}", driverHandler.GetByID())
	s.mux.Handle("PATCH /drivers/{id}", driverHandler.Update())
	s.mux.Handle("DELETE /drivers/{id}", driverHandler.Delete())
	s.mux.Handle("PATCH /drivers/{id}/status", driverHandler.SetStatus())

	s.mux.Handle("GET /drivers/{id}/trips", tripHandler.TripsByDriver())
	s.mux.Handle("GET /drivers/trips/available", tripHandler.AvailableTrips())
	s.mux.Handle("POST /drivers/{driver_id}/trips/{trip_id}/accept", tripHandler.Accept())
	s.mux.Handle("PATCH /drivers/{driver_id}/trips/{trip_id}/cancel", tripHandler.Cancel())
	s.mux.Handle("POST /drivers/{driver_id}/trips/{trip_id}/end", tripHandler.End())

	s.mux.Handle("GET /health", handle.Health())

	// websocket routes
	s.mux.Handle("GET /ws/drivers/{driver_id}", wsHandler.HandleDriverWebSocket())
}
