package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.NotNil(t, config)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 30*time.Second, config.Download.ConnectTimeout)
	assert.Equal(t, 30*time.Second, config.Download.ReadTimeout)
	assert.Contains(t, config.Download.UserAgent, "Mozilla/5.0")
	assert.Equal(t, 5*time.Second, config.Resolver.ExpandTimeout)
	assert.False(t, config.Resolver.SampleMode)
	assert.Contains(t, config.Resolver.YouTubePrimary, "vevioz.com")
	assert.Contains(t, config.Resolver.TikTokEndpoint, "tikwm.com")
	assert.Equal(t, "info", config.Logging.Level)
}
