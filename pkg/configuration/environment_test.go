package configuration

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfiguration_Defaults(t *testing.T) {
	t.Setenv("LOG_PATH", filepath.Join(t.TempDir(), "app.log"))

	c := &Configuration{}
	require.NoError(t, c.load(nil))
	t.Cleanup(c.Unload)

	assert.Equal(t, "oms", c.Database.Name)
	assert.Equal(t, "1000", c.SAP.SalesOrg)
	assert.Equal(t, "OMS", c.CP.Sender)
	assert.Equal(t, "localhost:3200", c.SocketAddress)
	assert.Contains(t, c.Database.Opts, "dbname=oms")
}

func TestConfiguration_LogLevels(t *testing.T) {
	cases := map[string]logrus.Level{
		"silent": logrus.PanicLevel,
		"error":  logrus.ErrorLevel,
		"warn":   logrus.WarnLevel,
		"info":   logrus.InfoLevel,
		"debug":  logrus.DebugLevel,
		"bogus":  logrus.ErrorLevel,
		"":       logrus.ErrorLevel,
	}
	for input, want := range cases {
		c := &Configuration{LogLevel: input}
		assert.Equal(t, want, c.LogrusLogLevel(), "level %q", input)
	}
}

func TestConfiguration_ProductionSocket(t *testing.T) {
	t.Setenv("GO_APP_ENV", Production)
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_PATH", filepath.Join(t.TempDir(), "app.log"))

	c := &Configuration{}
	require.NoError(t, c.load(nil))
	t.Cleanup(c.Unload)

	assert.Equal(t, ":8080", c.SocketAddress)
}
