package flagx

import (
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "both short and long present, preserve order",
			args:         []string{"--config=first.json", "-c", "second.json", "-x", "1"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=first.json", "-c", "second.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c"},
		},
		{
			name:         "flag followed by another flag (no value)",
			args:         []string{"-c", "-notvalue"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c"},
		},
		{
			name:         "value that looks like a flag but with equals form",
			args:         []string{"--config=--weird.json"},
			allowedFlags: []string{"--config"},
			want:         []string{"--config=--weird.json"},
		},
		{
			name:         "multiple allowed flags kept",
			args:         []string{"-a", "localhost:8080", "-c", "conf.json", "--other", "x"},
			allowedFlags: []string{"-c", "-a"},
			want:         []string{"-a", "localhost:8080", "-c", "conf.json"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "path with spaces remains single arg",
			args:         []string{"-c", "/home/user/conf.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "/home/user/conf.json"},
		},
		{
			name:         "do not treat next dash-starting token as value",
			args:         []string{"-c", "--config=alt.json"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "--config=alt.json"},
		},
		{
			name:         "repeated allowed flag is preserved in order",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func Test_jsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", JsonConfigFlags())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", JsonConfigFlags())
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1", "-y", "2"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", JsonConfigFlags())
	})
}

func TestConfigFilePath_FlagBeatsEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Setenv("PAPERKEEPER_CONFIG", "/env/config.json")

	os.Args = []string{"testbin", "-c", "/flag/config.json"}
	assert.Equal(t, "/flag/config.json", ConfigFilePath("PAPERKEEPER_CONFIG"))

	os.Args = []string{"testbin"}
	assert.Equal(t, "/env/config.json", ConfigFilePath("PAPERKEEPER_CONFIG"))
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("FX_STRING", "redis:6379")
	t.Setenv("FX_INT", "10")
	t.Setenv("FX_INT64", "8388608")
	t.Setenv("FX_BOOL", "true")
	t.Setenv("FX_DURATION", "30s")

	s := "default"
	EnvString("FX_STRING", &s)
	assert.Equal(t, "redis:6379", s)

	untouched := "keep"
	EnvString("FX_MISSING", &untouched)
	assert.Equal(t, "keep", untouched)

	var n int
	require.NoError(t, EnvInt("FX_INT", &n))
	assert.Equal(t, 10, n)

	var n64 int64
	require.NoError(t, EnvInt64("FX_INT64", &n64))
	assert.Equal(t, int64(8<<20), n64)

	var b bool
	require.NoError(t, EnvBool("FX_BOOL", &b))
	assert.True(t, b)

	var d time.Duration
	require.NoError(t, EnvDuration("FX_DURATION", &d))
	assert.Equal(t, 30*time.Second, d)
}

func TestEnvHelpers_InvalidValues(t *testing.T) {
	t.Setenv("FX_BAD_INT", "ten")
	t.Setenv("FX_BAD_BOOL", "maybe")
	t.Setenv("FX_BAD_DURATION", "soon")

	var n int
	assert.ErrorContains(t, EnvInt("FX_BAD_INT", &n), "FX_BAD_INT")

	var b bool
	assert.Error(t, EnvBool("FX_BAD_BOOL", &b))

	var d time.Duration
	assert.Error(t, EnvDuration("FX_BAD_DURATION", &d))
}
