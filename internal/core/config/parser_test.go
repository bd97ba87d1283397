package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Fixtures
// =============================================================================

const minimalValidConfig = `
containers:
  c1:
    image: ubuntu:trusty
`

const fullConfig = `
containers:
  zk1:
    image: jplock/zookeeper
    ports: [2181, "2888"]
    environment:
      MYID: 1
      ENSEMBLE: "zk1,zk2"
  app:
    image: ubuntu:trusty
    command: /bin/sleep 300000
    links:
      zk1: zookeeper
    volumes:
      /tmp/app: /data
      /tmp/logs:
    expose: [8080]
    start_delay: 2
    holy: true

network:
  flaky: 61%
`

// =============================================================================
// ParseYAML Tests
// =============================================================================

func TestParseYAML_Minimal(t *testing.T) {
	cfg, err := ParseYAML([]byte(minimalValidConfig))
	require.NoError(t, err)
	require.Len(t, cfg.Containers, 1)
	assert.Equal(t, "ubuntu:trusty", cfg.Containers["c1"].Image)
	assert.Equal(t, DefaultNetwork(), cfg.Network)
}

func TestParseYAML_Full(t *testing.T) {
	cfg, err := ParseYAML([]byte(fullConfig))
	require.NoError(t, err)
	require.Len(t, cfg.Containers, 2)

	zk := cfg.Containers["zk1"]
	assert.Equal(t, map[string]string{"2181": "2181", "2888": "2888"}, zk.Ports)
	assert.Equal(t, map[string]any{"MYID": 1, "ENSEMBLE": "zk1,zk2"}, zk.Environment)

	app := cfg.Containers["app"]
	assert.Equal(t, "/bin/sleep 300000", app.Command)
	assert.Equal(t, map[string]string{"zk1": "zookeeper"}, app.Links)
	assert.Equal(t, map[string]string{"/tmp/app": "/data", "/tmp/logs": "/tmp/logs"}, app.Volumes)
	assert.Equal(t, []string{"8080"}, app.Expose)
	assert.Equal(t, 2, app.StartDelay)
	assert.True(t, app.Holy)

	assert.Equal(t, "61%", cfg.Network.Flaky())
	assert.Equal(t, DefaultNetwork().Slow(), cfg.Network.Slow())
}

func TestParseYAML_Empty(t *testing.T) {
	for _, input := range []string{"", "   \n", "# just a comment\n"} {
		_, err := ParseYAML([]byte(input))
		require.Error(t, err)
		assert.Equal(t, KindMissingContainersSection, KindOf(err))
	}
}

func TestParseYAML_InvalidSyntax(t *testing.T) {
	_, err := ParseYAML([]byte("containers: [unclosed"))
	require.Error(t, err)
	assert.Equal(t, KindInvalidYAML, KindOf(err))
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestParseYAML_MissingImage(t *testing.T) {
	_, err := ParseYAML([]byte(`
containers:
  c1:
    command: /bin/bash
`))
	require.Error(t, err)
	assert.Equal(t, KindMissingImage, KindOf(err))
}
