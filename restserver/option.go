package restserver

import "net/http"

type option struct {
	httpPort                         uint16
	wsPath                           string
	wsHandler                        http.Handler
	basicAuthUsername, basicAuthPass string
	debugMode                        bool
}

// OptionFunc type
type OptionFunc func(*option)

func getDefaultOption() option {
	return option{
		httpPort:  8004,
		wsPath:    "/ws",
		debugMode: true,
	}
}

// SetHTTPPort option func
func SetHTTPPort(port uint16) OptionFunc {
	return func(o *option) {
		o.httpPort = port
	}
}

// SetWebsocketHandler option func, mount ws upgrade handler to given path
func SetWebsocketHandler(path string, handler http.Handler) OptionFunc {
	return func(o *option) {
		o.wsPath = path
		o.wsHandler = handler
	}
}

// SetBasicAuth option func, guard stats and subscription endpoints with basic auth
func SetBasicAuth(username, password string) OptionFunc {
	return func(o *option) {
		o.basicAuthUsername = username
		o.basicAuthPass = password
	}
}

// SetDebugMode option func
func SetDebugMode(debugMode bool) OptionFunc {
	return func(o *option) {
		o.debugMode = debugMode
	}
}
