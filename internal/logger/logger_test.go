package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// startupLog is Log as packages see it before Init runs.
var startupLog = Log

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(data)
}

func TestLoggerDiscardsBeforeInit(t *testing.T) {
	for _, lvl := range []zapcore.Level{zapcore.DebugLevel, zapcore.ErrorLevel} {
		if startupLog.Core().Enabled(lvl) {
			t.Errorf("logger before Init should discard %s", lvl)
		}
	}
	// Library code logs through named children before Init in tests.
	startupLog.Named("heightmap").Info("mesh uploaded", zap.Int("vertices", 4))
}

func TestFileConfigFor(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		size        int
		backups     int
		wantSize    int
		wantBackups int
	}{
		{"no file", "", 10, 5, 0, 0},
		{"config limits", "viewer.log", 10, 5, 10, 5},
		{"zero limits keep defaults", "viewer.log", 0, 0, 50, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := FileConfigFor(tt.path, tt.size, tt.backups)
			if cfg.Path != tt.path {
				t.Errorf("path = %q, want %q", cfg.Path, tt.path)
			}
			if cfg.MaxSizeMB != tt.wantSize || cfg.MaxBackups != tt.wantBackups {
				t.Errorf("limits = %d MB / %d backups, want %d / %d",
					cfg.MaxSizeMB, cfg.MaxBackups, tt.wantSize, tt.wantBackups)
			}
		})
	}

	if d := DefaultFileConfig("x.log"); d.MaxAgeDays != 7 || !d.Compress {
		t.Errorf("default file config = %+v", d)
	}
}

func TestLevelFiltering(t *testing.T) {
	messages := map[string]func(string, ...zap.Field){
		"heightfield decoded":  Debug,
		"heightmap loaded":     Info,
		"texture not found":    Warn,
		"failed to upload VAO": Error,
	}

	tests := []struct {
		level string
		want  []string
		skip  []string
	}{
		{"error", []string{"failed to upload VAO"}, []string{"texture not found", "heightmap loaded", "heightfield decoded"}},
		{"warn", []string{"failed to upload VAO", "texture not found"}, []string{"heightmap loaded", "heightfield decoded"}},
		{"INFO", []string{"texture not found", "heightmap loaded"}, []string{"heightfield decoded"}},
		{"debug", []string{"heightmap loaded", "heightfield decoded"}, nil},
		{"bogus", []string{"heightmap loaded"}, []string{"heightfield decoded"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "viewer.log")
			if err := InitWithFileConfig(tt.level, FileConfigFor(path, 1, 1), false); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}
			for msg, log := range messages {
				log(msg)
			}

			out := readLog(t, path)
			for _, msg := range tt.want {
				if !strings.Contains(out, msg) {
					t.Errorf("expected %q at level %s", msg, tt.level)
				}
			}
			for _, msg := range tt.skip {
				if strings.Contains(out, msg) {
					t.Errorf("unexpected %q at level %s", msg, tt.level)
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "debug",
		"DEBUG":   "debug",
		"warn":    "warn",
		"error":   "error",
		"info":    "info",
		"":        "info",
		"verbose": "info",
	}
	for in, want := range tests {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNamedWritesComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "named.log")
	if err := InitWithFileConfig("info", FileConfigFor(path, 1, 1), false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	Named("viewer").Info("starting render loop")
	Info("unnamed entry")

	var named, unnamed string
	for _, line := range strings.Split(readLog(t, path), "\n") {
		switch {
		case strings.Contains(line, "starting render loop"):
			named = line
		case strings.Contains(line, "unnamed entry"):
			unnamed = line
		}
	}
	// The file encoder separates fields with single spaces.
	if !strings.Contains(named, " INFO viewer ") {
		t.Errorf("named line = %q, want level followed by component", named)
	}
	if strings.Contains(unnamed, "viewer") {
		t.Errorf("unnamed line = %q should carry no component", unnamed)
	}
}

func TestFileRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.log")

	// 1 MB is the smallest size lumberjack rotates at.
	cfg := FileConfigFor(path, 1, 2)
	cfg.Compress = false
	if err := InitWithFileConfig("info", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	chunk := strings.Repeat("h", 200)
	for i := range 15000 {
		Info("frame", zap.Int("n", i), zap.String("pad", chunk))
	}
	Sync()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read log dir: %v", err)
	}
	rotated := 0
	for _, e := range entries {
		name := e.Name()
		if name != "viewer.log" && strings.HasPrefix(name, "viewer-") && strings.HasSuffix(name, ".log") {
			rotated++
		}
	}
	if rotated == 0 {
		t.Errorf("no rotated files in %v", entries)
	}
}
