package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
log_level: debug
verify: true
jobs:
  - input: a.bmp
    output: a-out.bmp
  - input: b.bmp
    output: b-out.bmp
    mode: Copy
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Verify)
	assert.Equal(t, []Job{
		{Input: "a.bmp", Output: "a-out.bmp", Mode: ModeSmooth},
		{Input: "b.bmp", Output: "b-out.bmp", Mode: ModeCopy},
	}, cfg.Jobs)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no jobs", "jobs: []", "no jobs"},
		{"missing input", "jobs:\n  - output: x.bmp", "job 1: missing input"},
		{"missing output", "jobs:\n  - input: x.bmp", "job 1: missing output"},
		{"unknown mode", "jobs:\n  - {input: a, output: b}\n  - {input: a, output: b, mode: sharpen}", "job 2: unknown mode"},
		{"unknown field", "jobz: []", "unmarshal"},
		{"bad log level", "log_level: loud\njobs:\n  - {input: a, output: b}", "unknown log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":               ModeSmooth,
		"smooth":         ModeSmooth,
		" COPY ":         ModeCopy,
		"invert":         ModeInvert,
		"Grayscale":      ModeGrayscale,
		"grayscale-luma": ModeGrayscaleLuma,
		"red":            ModeRed,
		"Green":          ModeGreen,
		"BLUE":           ModeBlue,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("blur")
	assert.ErrorContains(t, err, ModeNames())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs:\n  - {input: in.bmp, output: out.bmp, mode: invert}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Jobs, 1)
	assert.Equal(t, ModeInvert, cfg.Jobs[0].Mode)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read job file")
}
