// Package testutil provides a fake WebDriver remote end and mocks for tests.
package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Recorded is one request seen by the fake driver.
type Recorded struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type canned struct {
	status      int
	contentType string
	body        []byte
}

// Driver is an in-process WebDriver endpoint. It implements status,
// session creation and deletion, and title; other routes answer with
// canned responses registered through Respond, or a W3C "unknown command"
// error.
type Driver struct {
	Server *httptest.Server

	mu       sync.Mutex
	requests []Recorded
	sessions map[string]bool
	canned   map[string]canned
	token    string
}

// NewDriver starts a fake driver and stops it when the test ends.
func NewDriver(t testing.TB) *Driver {
	t.Helper()
	gin.SetMode(gin.TestMode)

	d := &Driver{
		sessions: make(map[string]bool),
		canned:   make(map[string]canned),
	}

	router := gin.New()
	router.Use(d.record, d.authorize)
	router.GET("/status", d.status)
	router.POST("/session", d.newSession)
	router.DELETE("/session/:sessionId", d.deleteSession)
	router.GET("/session/:sessionId/title", d.title)
	router.NoRoute(d.fallback)

	d.Server = httptest.NewServer(router)
	t.Cleanup(d.Server.Close)
	return d
}

// URL returns the base URL of the driver.
func (d *Driver) URL() string {
	return d.Server.URL
}

// Respond registers a canned reply for method and path.
func (d *Driver) Respond(method, path string, status int, contentType string, body []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.canned[method+" "+path] = canned{status: status, contentType: contentType, body: body}
}

// RespondJSON registers a canned JSON reply.
func (d *Driver) RespondJSON(method, path string, status int, body string) {
	d.Respond(method, path, status, "application/json; charset=utf-8", []byte(body))
}

// RequireToken makes every request without "Bearer <token>" fail with a
// plain-text 401.
func (d *Driver) RequireToken(token string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.token = token
}

// Requests returns a copy of the requests seen so far.
func (d *Driver) Requests() []Recorded {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Recorded(nil), d.requests...)
}

// LastRequest returns the most recent request.
func (d *Driver) LastRequest() Recorded {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.requests) == 0 {
		return Recorded{}
	}
	return d.requests[len(d.requests)-1]
}

// Sessions returns the number of live sessions.
func (d *Driver) Sessions() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sessions)
}

func (d *Driver) record(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	d.mu.Lock()
	d.requests = append(d.requests, Recorded{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Header: c.Request.Header.Clone(),
		Body:   body,
	})
	d.mu.Unlock()

	c.Next()
}

func (d *Driver) authorize(c *gin.Context) {
	d.mu.Lock()
	token := d.token
	d.mu.Unlock()

	if token != "" && c.GetHeader("Authorization") != "Bearer "+token {
		c.Data(http.StatusUnauthorized, "text/plain", []byte("Unauthorized"))
		c.Abort()
		return
	}
	c.Next()
}

func (d *Driver) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"value": gin.H{"ready": true, "message": "fake driver ready"}})
}

func (d *Driver) newSession(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, "invalid argument", err.Error())
		return
	}
	caps, _ := payload["capabilities"].(map[string]any)

	id := uuid.NewString()
	d.mu.Lock()
	d.sessions[id] = true
	d.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"value": gin.H{"sessionId": id, "capabilities": caps}})
}

func (d *Driver) deleteSession(c *gin.Context) {
	id := c.Param("sessionId")

	d.mu.Lock()
	live := d.sessions[id]
	delete(d.sessions, id)
	d.mu.Unlock()

	if !live {
		writeError(c, http.StatusNotFound, "invalid session id", "session "+id+" does not exist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": nil})
}

func (d *Driver) title(c *gin.Context) {
	d.mu.Lock()
	live := d.sessions[c.Param("sessionId")]
	d.mu.Unlock()

	if !live {
		writeError(c, http.StatusNotFound, "invalid session id", "no such session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": "Fake Page"})
}

func (d *Driver) fallback(c *gin.Context) {
	d.mu.Lock()
	reply, ok := d.canned[c.Request.Method+" "+c.Request.URL.Path]
	d.mu.Unlock()

	if !ok {
		writeError(c, http.StatusNotFound, "unknown command",
			strings.Join([]string{c.Request.Method, c.Request.URL.Path}, " ")+" is not a known command")
		return
	}
	c.Data(reply.status, reply.contentType, reply.body)
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"value": gin.H{
		"error":      code,
		"message":    message,
		"stacktrace": "",
	}})
}
