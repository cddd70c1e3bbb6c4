package restserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golangid/relay/relayshared"
	"github.com/golangid/relay/restserver"
	"github.com/golangid/relay/router"
	"github.com/golangid/relay/wrapper"
	"github.com/stretchr/testify/assert"
)

func TestRestServerRoutes(t *testing.T) {
	rt := router.New(router.SetDebugMode(false))
	rt.Subscribe("client-1", relayshared.TopicPriceUpdates, relayshared.Filter{Symbols: []string{"BTC/USDT"}})

	srv := restserver.NewServer(rt, restserver.SetDebugMode(false))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	t.Run("Testcase #1: liveness", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/")
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Testcase #2: stats snapshot", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/stats")
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body wrapper.HTTPResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Success)
		stats := body.Data.(map[string]interface{})
		assert.Equal(t, float64(1), stats["totalSubscriptions"])
	})

	t.Run("Testcase #3: client subscriptions", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/subscriptions/client-1")
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Testcase #4: unknown client", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/subscriptions/ghost")
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Testcase #5: unknown route", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/nope")
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRestServerBasicAuth(t *testing.T) {
	rt := router.New(router.SetDebugMode(false))
	srv := restserver.NewServer(rt,
		restserver.SetDebugMode(false),
		restserver.SetBasicAuth("admin", "secret"),
	)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	t.Run("Testcase #1: reject without credentials", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/stats")
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Testcase #2: accept valid credentials", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, ts.URL+"/stats", nil)
		req.SetBasicAuth("admin", "secret")
		resp, err := http.DefaultClient.Do(req)
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Testcase #3: liveness stays open", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/")
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
