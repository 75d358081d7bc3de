package images

import (
	"context"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := os.WriteFile(path, EncodePNG(solid(8, 4, color.RGBA{B: 255, A: 255})), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	img, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("unexpected bounds %v", b)
	}
}

func TestLoad_HTTP(t *testing.T) {
	png := EncodePNG(solid(3, 3, color.RGBA{R: 9, A: 255}))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/media/frame.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(png)
	}))
	defer srv.Close()

	if _, err := Load(context.Background(), srv.URL+"/media/frame.png"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := Load(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty source")
	}
	bad := filepath.Join(t.TempDir(), "bad.png")
	_ = os.WriteFile(bad, []byte("not an image"), 0o644)
	if _, err := Load(context.Background(), bad); err == nil {
		t.Fatalf("expected decode error")
	}
}
