package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	require.NoError(t, Load())

	assert.Equal(t, ":8080", APIAddr())
	assert.Equal(t, AuthPresence, AuthMode())
	assert.Equal(t, SessionMemory, SessionBackend())
	assert.Equal(t, 12*time.Hour, SessionTTL())
	assert.Equal(t, 15*time.Second, InsightInterval())
	assert.Equal(t, 10, InsightWindow())
	assert.Equal(t, 2*time.Second, PowerInterval())
	assert.False(t, MQTTEnabled())
	assert.False(t, UseCloudServices())
	assert.Equal(t, "SuperAdmin", FeedRole())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_ADDR", ":9999")
	t.Setenv("AUTH_MODE", AuthSession)
	t.Setenv("SESSION_BACKEND", SessionRedis)
	t.Setenv("INSIGHT_INTERVAL", "1m")
	t.Setenv("USE_CLOUD_SERVICES", "true")
	require.NoError(t, Load())

	assert.Equal(t, ":9999", APIAddr())
	assert.Equal(t, AuthSession, AuthMode())
	assert.Equal(t, SessionRedis, SessionBackend())
	assert.Equal(t, time.Minute, InsightInterval())
	assert.True(t, UseCloudServices())
}
