package compose

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/myblog/djscaffold/internal/errors"
)

const sampleManifest = `
version: "3.8"
services:
  postgres:
    image: postgres:15
    healthcheck:
      test: ["CMD-SHELL", "pg_isready -U postgres"]
      interval: 5s
      retries: 5
  redis:
    image: redis:7-alpine
    ports:
      - 6379:6379
  backend:
    build: .
    command: ./start.sh
    ports:
      - "8000:8000"
    depends_on:
      - postgres
      - redis
  nginx:
    build:
      context: ./nginx
      dockerfile: Dockerfile.nginx
    ports:
      - target: 80
        published: 8080
    depends_on:
      backend:
        condition: service_started
volumes:
  postgres_data:
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Len(t, m.Services, 4)
	require.NotNil(t, m.Services["postgres"].Healthcheck)
	assert.Equal(t, HealthTest{"CMD-SHELL", "pg_isready -U postgres"}, m.Services["postgres"].Healthcheck.Test)
	assert.Nil(t, m.Services["backend"].Healthcheck)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "services: [unclosed"},
		{"bad healthcheck test", "services:\n  db:\n    healthcheck:\n      test: {cmd: x}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, oerrors.ErrValidation)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	m, err := Parse([]byte("version: '3'\n"))
	require.NoError(t, err)
	assert.Empty(t, m.Services)
}

func TestHealthTest_Argv(t *testing.T) {
	tests := []struct {
		name string
		test HealthTest
		want []string
	}{
		{"exec form", HealthTest{"CMD", "redis-cli", "ping"}, []string{"redis-cli", "ping"}},
		{"shell form", HealthTest{"CMD-SHELL", "pg_isready -U postgres"}, []string{"sh", "-c", "pg_isready -U postgres"}},
		{"disabled", HealthTest{"NONE"}, nil},
		{"empty", nil, nil},
		{"shell without command", HealthTest{"CMD-SHELL"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.test.Argv())
		})
	}
}

func TestManifest_HealthProbe(t *testing.T) {
	m, err := Parse([]byte(`
services:
  postgres:
    healthcheck:
      test: pg_isready -U postgres
  redis:
    healthcheck:
      test: ["CMD", "redis-cli", "ping"]
  backend: {}
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"sh", "-c", "pg_isready -U postgres"}, m.HealthProbe("postgres"))
	assert.Equal(t, []string{"redis-cli", "ping"}, m.HealthProbe("redis"))
	assert.Nil(t, m.HealthProbe("backend"))
	assert.Nil(t, m.HealthProbe("mysql"))
}

func TestLoad(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, DefaultFile, []byte(sampleManifest), 0o644))

	m, err := Load(fs, DefaultFile)
	require.NoError(t, err)
	assert.True(t, m.HasService("backend"))

	_, err = Load(fs, "docker-compose.prod.yml")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestLoad_InvalidSetsLocation(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, DefaultFile, []byte("services: [unclosed"), 0o644))

	_, err := Load(fs, DefaultFile)
	var detail *oerrors.DetailError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, DefaultFile, detail.Location)
}

func TestCheckDatastores(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Empty(t, CheckDatastores(m, []string{"postgres", "redis"}))
	assert.Equal(t, []string{"mysql", "memcached"}, CheckDatastores(m, []string{"postgres", "mysql", "memcached"}))
}
