package restserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo"
	echoMidd "github.com/labstack/echo/middleware"

	"github.com/golangid/relay/logger"
	"github.com/golangid/relay/middleware"
	"github.com/golangid/relay/router"
	"github.com/golangid/relay/wrapper"
)

// RestServer introspection HTTP server, exposes router stats and hosts the websocket upgrade endpoint
type RestServer struct {
	opt          option
	serverEngine *echo.Echo
	router       *router.Router
}

// NewServer create new REST server
func NewServer(rt *router.Router, opts ...OptionFunc) *RestServer {
	server := &RestServer{
		serverEngine: echo.New(),
		router:       rt,
		opt:          getDefaultOption(),
	}
	for _, opt := range opts {
		opt(&server.opt)
	}

	server.serverEngine.HTTPErrorHandler = wrapper.CustomHTTPErrorHandler
	server.serverEngine.Use(echoMidd.CORS())

	server.serverEngine.GET("/", server.liveness)

	var introspectionMidds []echo.MiddlewareFunc
	if server.opt.basicAuthUsername != "" {
		midd := middleware.NewMiddleware(server.opt.basicAuthUsername, server.opt.basicAuthPass)
		introspectionMidds = append(introspectionMidds, midd.HTTPBasicAuth(true))
	}
	server.serverEngine.GET("/stats", server.getStats, introspectionMidds...)
	server.serverEngine.GET("/subscriptions/:clientID", server.getClientSubscriptions, introspectionMidds...)

	if server.opt.wsHandler != nil {
		server.serverEngine.GET(server.opt.wsPath, echo.WrapHandler(server.opt.wsHandler))
	}

	if server.opt.debugMode {
		for _, route := range server.serverEngine.Routes() {
			logger.LogGreen(fmt.Sprintf("[REST-ROUTE] %-6s %-30s", route.Method, route.Path))
		}
	}

	return server
}

// Handler expose underlying http handler
func (s *RestServer) Handler() http.Handler {
	return s.serverEngine
}

func (s *RestServer) Serve() {
	s.serverEngine.HideBanner = true
	s.serverEngine.HidePort = true
	port := fmt.Sprintf(":%d", s.opt.httpPort)
	fmt.Printf("\x1b[34;1m⇨ HTTP server run at port [::]%s\x1b[0m\n\n", port)
	if err := s.serverEngine.Start(port); err != nil {
		switch e := err.(type) {
		case *net.OpError:
			panic(e)
		}
	}
}

func (s *RestServer) Shutdown(ctx context.Context) {
	deferFunc := logger.LogWithDefer("Stopping HTTP server...")
	defer deferFunc()

	s.serverEngine.Shutdown(ctx)
}

func (s *RestServer) liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message":   "Service relay up and running",
		"timestamp": time.Now().Format(time.RFC3339Nano),
	})
}

func (s *RestServer) getStats(c echo.Context) error {
	return wrapper.NewHTTPResponse(http.StatusOK, "Success get router stats", s.router.Stats()).JSON(c.Response())
}

func (s *RestServer) getClientSubscriptions(c echo.Context) error {
	clientID := c.Param("clientID")
	subscriptions := s.router.ListClientSubscriptions(clientID)
	if len(subscriptions) == 0 {
		return wrapper.NewHTTPResponse(http.StatusNotFound, fmt.Sprintf("No subscriptions for client %s", clientID)).JSON(c.Response())
	}
	return wrapper.NewHTTPResponse(http.StatusOK, "Success get client subscriptions", subscriptions).JSON(c.Response())
}
