package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
[server]
http_port = 8080
read_timeout = 15
write_timeout = 15
idle_timeout = 60
shutdown_timeout = 30

[database]
host = "localhost"
port = 5432
user = "svc"
password = "secret"
dbname = "bookings"
sslmode = "disable"
max_open_conns = 25
max_idle_conns = 10
conn_max_lifetime = 300

[redis]
addr = "localhost:6379"
db = 0

[logs]
file = "logs/service.log"
level = "info"

[metrics]
enabled = true
path = "/metrics"
service_name = "booking-service"

[profile_service]
url = "http://localhost:8081"
timeout = 5
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "bookings", cfg.Database.DBName)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "http://localhost:8081", cfg.ProfileService.URL)
}

func TestDatabaseDSN(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t,
		"host=localhost port=5432 user=svc password=secret dbname=bookings sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  string
		replace string
	}{
		{"bad port", `http_port = 8080`, `http_port = 0`},
		{"missing db host", `host = "localhost"`, `host = ""`},
		{"missing redis addr", `addr = "localhost:6379"`, `addr = ""`},
		{"metrics path required", `path = "/metrics"`, `path = ""`},
		{"profile url required", `url = "http://localhost:8081"`, `url = ""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Replace(validConfig, tt.mutate, tt.replace, 1)
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
