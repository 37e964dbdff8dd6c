package cli

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneYAML = `
movie: {width: 16, height: 8, background: black, fps: 4}
layers:
  - type: visual
    duration: 1
    options: {width: 8, height: 8, background: lime}
  - type: text
    start: 0.5
    duration: 0.5
    options: {text: hi}
    effects:
      - type: grayscale
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sceneYAML), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := BuildCLI()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRender(t *testing.T) {
	t.Parallel()

	scenePath := writeScene(t)
	outDir := filepath.Join(t.TempDir(), "frames")

	out, err := run(t, "render", scenePath, "-o", outDir, "--progress=false")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 4 frames")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "frame_00000.png", entries[0].Name())

	f, err := os.Open(filepath.Join(outDir, "frame_00000.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, color.RGBAModel.Convert(color.RGBA{G: 255, A: 255}), color.RGBAModel.Convert(img.At(2, 2)))
	assert.Equal(t, color.RGBAModel.Convert(color.RGBA{A: 255}), color.RGBAModel.Convert(img.At(12, 2)))
}

func TestRenderOverridesFrameRateAndRange(t *testing.T) {
	t.Parallel()

	scenePath := writeScene(t)
	outDir := t.TempDir()

	out, err := run(t, "render", scenePath, "-o", outDir, "--fps", "10", "--start", "0.5", "--progress=false")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 5 frames")
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	_, err := run(t, "render")
	assert.Error(t, err, "missing scene argument")

	_, err = run(t, "render", filepath.Join(t.TempDir(), "missing.yaml"), "--progress=false")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInspect(t *testing.T) {
	t.Parallel()

	out, err := run(t, "inspect", writeScene(t))
	require.NoError(t, err)

	assert.Contains(t, out, "size:     16x8")
	assert.Contains(t, out, "duration: 1s")
	assert.Contains(t, out, "frames:   4 @ 4 fps")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Regexp(t, `^1\s+text\s+0.5\s+0.5\s+true\s+1$`, lines[len(lines)-1])
}

func TestEffects(t *testing.T) {
	t.Parallel()

	out, err := run(t, "effects")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"brightness", "channels", "chromakey", "contrast",
		"gaussianblur", "grayscale", "pixelate",
	}, strings.Fields(out))
}
