package xconf

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probeConfig struct {
	Log struct {
		Level string `koanf:"level"`
		File  string `koanf:"file"`
	} `koanf:"log"`
	Probe struct {
		Paths []string `koanf:"paths"`
		Mode  string   `koanf:"mode"`
	} `koanf:"probe"`
	FileLimit uint64 `koanf:"file_limit"`
}

const yamlConfig = `
log:
  level: debug
  file: /var/log/xposixctl.log
probe:
  paths:
    - /etc/hosts
    - /tmp
  mode: r
file_limit: 4096
`

const jsonConfig = `{"log":{"level":"warn"},"probe":{"paths":["/"]},"file_limit":"1024"}`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew_YAML(t *testing.T) {
	for _, name := range []string{"c.yaml", "c.YML"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := New(writeConfig(t, name, yamlConfig))
			require.NoError(t, err)
			assert.Equal(t, FormatYAML, cfg.Format())
			assert.Equal(t, "debug", cfg.Client().String("log.level"))
			assert.Equal(t, 4096, cfg.Client().Int("file_limit"))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	path := writeConfig(t, "c.json", jsonConfig)
	cfg, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Format())
	assert.Equal(t, path, cfg.Path())

	var pc probeConfig
	require.NoError(t, cfg.Unmarshal("", &pc))
	assert.Equal(t, "warn", pc.Log.Level)
	assert.Equal(t, []string{"/"}, pc.Probe.Paths)
	assert.Equal(t, uint64(1024), pc.FileLimit, "弱类型转换")
}

func TestNew_Errors(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = New("config.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = New(writeConfig(t, "bad.yaml", "a: [unclosed"))
	assert.ErrorIs(t, err, ErrParseFailed)

	_, err = New(writeConfig(t, "bad.json", "{"))
	assert.ErrorIs(t, err, ErrParseFailed)
}

func TestNew_EmptyFile(t *testing.T) {
	cfg, err := New(writeConfig(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Empty(t, cfg.Client().Keys())

	fromBytes, err := NewFromBytes(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, cfg.Client().All(), fromBytes.Client().All())
}

func TestNew_LargerThanInitialRead(t *testing.T) {
	// 超过 fstat 预分配后的首轮读取，验证循环读到 EOF。
	content := "paths:\n"
	for range 2000 {
		content += "  - /some/long/path/for/probing\n"
	}
	cfg, err := New(writeConfig(t, "big.yaml", content))
	require.NoError(t, err)
	assert.Len(t, cfg.Client().Strings("paths"), 2000)
}

func TestNewFromBytes(t *testing.T) {
	cfg, err := NewFromBytes([]byte(yamlConfig), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path())

	var pc probeConfig
	require.NoError(t, cfg.Unmarshal("", &pc))
	assert.Equal(t, []string{"/etc/hosts", "/tmp"}, pc.Probe.Paths)

	_, err = NewFromBytes([]byte("{}"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	assert.ErrorIs(t, cfg.Reload(), ErrReloadBytes)
}

func TestOptions(t *testing.T) {
	cfg, err := NewFromBytes([]byte(yamlConfig), FormatYAML, WithDelim("/"), WithTag("json"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Client().String("log/level"))

	var target struct {
		Level string `json:"level"`
	}
	require.NoError(t, cfg.Unmarshal("log", &target))
	assert.Equal(t, "debug", target.Level)
}

func TestUnmarshal_Failure(t *testing.T) {
	cfg, err := NewFromBytes([]byte("file_limit: [1, 2]"), FormatYAML)
	require.NoError(t, err)

	var pc probeConfig
	assert.ErrorIs(t, cfg.Unmarshal("", &pc), ErrUnmarshalFailed)
	assert.Panics(t, func() { cfg.MustUnmarshal("", &pc) })
}

func TestReload(t *testing.T) {
	path := writeConfig(t, "r.yaml", "log:\n  level: info\n")
	cfg, err := New(path)
	require.NoError(t, err)
	old := cfg.Client()

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: error\n"), 0o600))
	require.NoError(t, cfg.Reload())
	assert.Equal(t, "error", cfg.Client().String("log.level"))
	assert.Equal(t, "info", old.String("log.level"), "旧实例是快照")

	require.NoError(t, os.WriteFile(path, []byte("log: [broken"), 0o600))
	assert.ErrorIs(t, cfg.Reload(), ErrParseFailed)
	assert.Equal(t, "error", cfg.Client().String("log.level"), "失败时保留旧配置")
}

func TestReload_Concurrent(t *testing.T) {
	path := writeConfig(t, "c.yaml", yamlConfig)
	cfg, err := New(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, cfg.Reload())
		}()
		go func() {
			defer wg.Done()
			var pc probeConfig
			assert.NoError(t, cfg.Unmarshal("", &pc))
		}()
	}
	wg.Wait()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.yaml", FormatYAML, false},
		{"a.yml", FormatYAML, false},
		{"dir.d/A.JSON", FormatJSON, false},
		{"a.ini", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := detectFormat(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
