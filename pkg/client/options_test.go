package client

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: time.Second}
	c, err := NewClient("http://localhost", WithHTTPClient(custom))
	require.NoError(t, err)
	assert.Same(t, custom, c.httpClient)

	c, err = NewClient("http://localhost", WithHTTPClient(nil))
	require.NoError(t, err)
	assert.NotNil(t, c.httpClient)
}

func TestWithUserAgent(t *testing.T) {
	c, err := NewClient("http://localhost", WithUserAgent("myapp/2.0"))
	require.NoError(t, err)
	assert.Equal(t, "myapp/2.0", c.userAgent)

	c, err = NewClient("http://localhost", WithUserAgent(""))
	require.NoError(t, err)
	assert.Contains(t, c.userAgent, "keggmatch-go-sdk/")
}

type capturingLogger struct {
	debugs int
	errors int
}

func (l *capturingLogger) Debugf(format string, args ...interface{}) { l.debugs++ }
func (l *capturingLogger) Errorf(format string, args ...interface{}) { l.errors++ }

func TestWithLogger(t *testing.T) {
	lg := &capturingLogger{}
	c, err := NewClient("http://localhost", WithLogger(lg))
	require.NoError(t, err)
	assert.Same(t, Logger(lg), c.logger)

	c, err = NewClient("http://localhost", WithLogger(nil))
	require.NoError(t, err)
	assert.NotNil(t, c.logger)
}
