// Package web provides the YaMDb API server: routing, middleware wiring,
// and background job scheduling.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/Slavchick12/api-yamdb/config"
	"github.com/Slavchick12/api-yamdb/logger"
	"github.com/Slavchick12/api-yamdb/util/common"
	"github.com/Slavchick12/api-yamdb/web/controller"
	"github.com/Slavchick12/api-yamdb/web/entity"
	"github.com/Slavchick12/api-yamdb/web/job"
	"github.com/Slavchick12/api-yamdb/web/middleware"
	"github.com/Slavchick12/api-yamdb/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// Server is the API server with its controllers, services, and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	auth       *controller.AuthController
	users      *controller.UserController
	categories *controller.CategoryController
	genres     *controller.GenreController
	titles     *controller.TitleController
	reviews    *controller.ReviewController
	comments   *controller.CommentController

	tokenService *service.TokenService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initRouter initializes Gin, registers middleware and controllers, and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	s.tokenService = service.NewTokenService()
	engine.Use(middleware.Auth(s.tokenService))

	basePath := config.GetBasePath()
	g := engine.Group(basePath)

	mailer := service.NewMailer()
	s.auth = controller.NewAuthController(g, service.NewAuthService(mailer))
	s.users = controller.NewUserController(g, service.NewUserService())
	s.categories = controller.NewCategoryController(g, service.NewCategoryService())
	s.genres = controller.NewGenreController(g, service.NewGenreService())
	s.titles = controller.NewTitleController(g, service.NewTitleService())
	s.reviews = controller.NewReviewController(g, service.NewReviewService())
	s.comments = controller.NewCommentController(g, service.NewCommentService())

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, entity.Detail{Detail: "Not found."})
	})

	return engine, nil
}

// startTask schedules background maintenance jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@hourly", job.NewCheckpointJob())
}

// Start initializes and starts the API server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("API server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the API server and cron jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }

// GetCron returns the server's cron scheduler instance.
func (s *Server) GetCron() *cron.Cron { return s.cron }
