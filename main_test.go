package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lmittmann/ppm"
	"github.com/pkg/errors"
	"go.uber.org/goleak"

	"github.com/df07/go-lighttransport/pkg/output"
	"github.com/df07/go-lighttransport/pkg/scene"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stdout
	err := app.Run(append([]string{"lighttransport"}, args...))
	return stdout.String(), err
}

func TestRenderCommand_WritesImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cornell.ppm")

	_, err := runApp(t, "render",
		"--scene", "cornell",
		"--width", "12", "--height", "10",
		"--samples", "2", "--passes", "2", "--depth", "3",
		"--tile-size", "4", "--workers", "2",
		"--output", path)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	defer f.Close()

	img, err := ppm.Decode(f)
	if err != nil {
		t.Fatalf("Decoding output failed: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 10 {
		t.Errorf("Expected a 12x10 image, got %v", img.Bounds())
	}
}

func TestRenderCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.json")
	imagePath := filepath.Join(dir, "from-config.png")
	content := `{"scene": "spheres", "width": 8, "height": 6, "samples_per_pixel": 1, "passes": 1, "max_depth": 2, "output": "ignored.png"}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// Flags win over file values
	if _, err := runApp(t, "render", "--config", path, "--output", imagePath); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if _, err := os.Stat(imagePath); err != nil {
		t.Errorf("Expected image at the flag's output path: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "ignored.png")); !os.IsNotExist(err) {
		t.Error("Expected the config's output path to be overridden")
	}
}

func TestRenderCommand_WriteFailureStopsRendering(t *testing.T) {
	defer goleak.VerifyNone(t)

	// A directory where the image should go makes every write fail
	path := filepath.Join(t.TempDir(), "render.png")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := runApp(t, "render",
		"--scene", "cornell",
		"--width", "8", "--height", "8",
		"--samples", "8", "--passes", "4", "--depth", "2",
		"--output", path)
	if err == nil {
		t.Fatal("Expected the write failure to be reported")
	}
}

func TestRenderCommand_InvalidInput(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		args   []string
		target error
	}{
		{"Unknown scene", []string{"--scene", "teapot"}, scene.ErrUnknownScene},
		{"Unknown format", []string{"--output", filepath.Join(dir, "render.gif")}, output.ErrUnknownFormat},
		{"No passes", []string{"--passes", "0"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"render", "--width", "4", "--output", filepath.Join(dir, "x.png")}, tt.args...)
			_, err := runApp(t, args...)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
		})
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Expected no images written for invalid input, found %d files", len(entries))
	}
}

func TestScenesCommand(t *testing.T) {
	out, err := runApp(t, "scenes")
	if err != nil {
		t.Fatalf("scenes failed: %v", err)
	}
	for _, name := range []string{"cornell", "cornell-smoke", "cornell-glass", "spheres", "perlin", "final"} {
		if !strings.Contains(out, name) {
			t.Errorf("Expected %q in scene list:\n%s", name, out)
		}
	}

	out, err = runApp(t, "scenes", "--json")
	if err != nil {
		t.Fatalf("scenes --json failed: %v", err)
	}
	var scenes []scene.SceneInfo
	if err := json.Unmarshal([]byte(out), &scenes); err != nil {
		t.Fatalf("Expected JSON output: %v", err)
	}
	if len(scenes) != len(scene.ListScenes()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.ListScenes()), len(scenes))
	}
}
