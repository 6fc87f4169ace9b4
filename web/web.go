// Package web provides the registry's web server: routing, controllers and
// the background session sweep.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/schemahub/schemahub/config"
	"github.com/schemahub/schemahub/logger"
	"github.com/schemahub/schemahub/web/controller"
	"github.com/schemahub/schemahub/web/job"
	"github.com/schemahub/schemahub/web/middleware"
	"github.com/schemahub/schemahub/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Server is the registry web server with its controllers and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	db *gorm.DB

	index  *controller.IndexController
	post   *controller.PostController
	raw    *controller.RawController
	server *controller.ServerController

	sessionService *service.SessionService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a web server bound to the given database handle.
func NewServer(db *gorm.DB) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{db: db, ctx: ctx, cancel: cancel}
}

// initRouter initializes Gin, registers middleware, wires services into
// controllers and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	if webDomain := config.GetWebDomain(); webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	s.sessionService = service.NewSessionService(s.db)
	userService := service.NewUserService(s.db, s.sessionService)
	postService := service.NewPostService(s.db)
	captchaService := service.NewCaptchaService()
	serverService := service.NewServerService()

	g := engine.Group(config.GetWebBasePath())
	s.index = controller.NewIndexController(g, s.sessionService, userService, captchaService)
	s.post = controller.NewPostController(g, s.sessionService, postService)
	s.raw = controller.NewRawController(g, postService)
	s.server = controller.NewServerController(g, s.sessionService, serverService)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background maintenance jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@hourly", job.NewClearSessionJob(s.sessionService))
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.startTask()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(config.GetWebListen(), strconv.Itoa(config.GetWebPort()))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{Handler: engine}
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("serve failed:", err)
		}
	}()

	logger.Infof("web server running on %s", addr)
	return nil
}

// Stop shuts down the server, the cron scheduler and the listener.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}

	var err error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = s.httpServer.Shutdown(ctx)
	} else if s.listener != nil {
		err = s.listener.Close()
	}
	return err
}
