package main

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gradient.png")
	require.NoError(t, imageutil.SavePNG(imageutil.CreateGradientImage(90, 30).RGBA, path))
	return path
}

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "asciify.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("std_height: 50\nchar_factor: 2\nmodel: average\n"), 0644))

	cfg, err := resolveConfig(options{configFile: cfgPath, charFactor: 4, model: "2"})
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.StdHeight)
	assert.Equal(t, 4, cfg.CharFactor)
	assert.Equal(t, img2ascii.Lightness, cfg.Model)

	_, err = resolveConfig(options{model: "sepia"})
	var modelErr *img2ascii.InvalidModelError
	assert.ErrorAs(t, err, &modelErr)
}

func TestRunWritesOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "art.txt")
	pngOut := filepath.Join(t.TempDir(), "art.png")
	opts := options{
		input:    testImage(t),
		output:   out,
		pngFile:  pngOut,
		height:   12,
		fontSize: 8,
	}
	require.NoError(t, run(opts, discardLogger(), strings.NewReader(""), io.Discard))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 12)
	// 90x30 resized to height 12 is 36 cells wide, three glyphs each
	assert.Len(t, lines[0], 36*3)

	_, err = os.Stat(pngOut)
	assert.NoError(t, err)
}

func TestRunStdout(t *testing.T) {
	var stdout bytes.Buffer
	opts := options{input: testImage(t), height: 6, resize: true, model: "luminosity"}
	require.NoError(t, run(opts, discardLogger(), strings.NewReader(""), &stdout))
	assert.True(t, strings.HasPrefix(stdout.String(), img2ascii.ResizeSequence(6, 18*3)))
}

func TestRunMissingInput(t *testing.T) {
	err := run(options{input: "images/i-am-not-here"}, discardLogger(), strings.NewReader(""), io.Discard)
	var pathErr *img2ascii.PathError
	assert.ErrorAs(t, err, &pathErr)

	err = run(options{}, discardLogger(), strings.NewReader(""), io.Discard)
	assert.Error(t, err)
}

func TestPromptLoadRetries(t *testing.T) {
	good := testImage(t)
	bad := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0644))

	in := bufio.NewScanner(strings.NewReader("images/i-am-not-here\n" + bad + "\n" + good + "\n"))
	var out bytes.Buffer
	conv := img2ascii.NewConverter(img2ascii.WithHeight(5))
	require.NoError(t, promptLoad(conv, in, &out, ""))

	assert.Equal(t, 3, strings.Count(out.String(), "Path to image: "))
	assert.Contains(t, out.String(), "Image gradient.png has been successfully loaded!")
	assert.Contains(t, out.String(), "- Format: png")
	assert.NotNil(t, conv.Pixels())
}

func TestPromptLoadFallback(t *testing.T) {
	good := testImage(t)
	in := bufio.NewScanner(strings.NewReader("\n"))
	conv := img2ascii.NewConverter(img2ascii.WithHeight(5))
	require.NoError(t, promptLoad(conv, in, io.Discard, good))
	assert.Equal(t, "gradient.png", conv.Metadata().Name)

	in = bufio.NewScanner(strings.NewReader(""))
	assert.ErrorIs(t, promptLoad(conv, in, io.Discard, ""), io.ErrUnexpectedEOF)
}

func TestPromptModel(t *testing.T) {
	var out bytes.Buffer
	in := bufio.NewScanner(strings.NewReader("9\n2\n"))
	m, err := promptModel(in, &out, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, img2ascii.Lightness, m)
	assert.Contains(t, out.String(), "invalid brightness model")

	in = bufio.NewScanner(strings.NewReader("\n"))
	m, err = promptModel(in, io.Discard, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, img2ascii.Luminosity, m)
}
