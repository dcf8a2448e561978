package receipt

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/receipt-desk/internal/table"
	"github.com/rs/zerolog"
)

func sampleRow() table.Row {
	tbl := table.New("fees.csv", []string{"Name", "Amount", "Class"}, []table.Record{
		{Line: 2, Fields: []string{"Asha Rao", "500", ""}},
	})
	row, _ := tbl.Row(0)
	return row
}

func writeLogo(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 14, 10))
	for x := 0; x < 14; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{R: 20, G: 60, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode logo: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("Failed to write logo: %v", err)
	}
	return path
}

func assertPDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected receipt at %s: %v", path, err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("Expected PDF header, got %q", data[:min(len(data), 8)])
	}
}

func TestFieldsUsePlaceholder(t *testing.T) {
	r := New(Options{Fields: []string{"Name", "Class", "Order ID", "Amount"}}, zerolog.Nop())

	got := r.Fields(sampleRow())
	want := [][2]string{
		{"Name", "Asha Rao"},
		{"Class", Placeholder},
		{"Order ID", Placeholder},
		{"Amount", "500"},
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d pairs, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRenderWithoutLogos(t *testing.T) {
	dir := t.TempDir()
	r := New(Options{
		Title:      "Fee Receipt",
		Fields:     []string{"Name", "Amount", "Date"},
		LogoLeft:   filepath.Join(dir, "absent_left.jpg"),
		LogoCenter: filepath.Join(dir, "absent_center.jpg"),
	}, zerolog.Nop())

	path := filepath.Join(dir, "receipt_Asha_Rao_0.pdf")
	if !r.Render(sampleRow(), path) {
		t.Fatal("Expected render to succeed without logos")
	}
	assertPDF(t, path)
}

func TestRenderWithLogos(t *testing.T) {
	dir := t.TempDir()
	r := New(Options{
		Title:      "Fee Receipt",
		Fields:     []string{"Name"},
		LogoLeft:   writeLogo(t, dir, "left.png"),
		LogoCenter: writeLogo(t, dir, "center.png"),
	}, zerolog.Nop())

	path := filepath.Join(dir, "out.pdf")
	if err := r.Write(sampleRow(), path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	assertPDF(t, path)
}

func TestRenderFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(broken, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("Failed to write logo: %v", err)
	}

	tests := []struct {
		name string
		opts Options
		path string
	}{
		{
			name: "unreadable logo",
			opts: Options{Title: "Fee Receipt", Fields: []string{"Name"}, LogoLeft: broken},
			path: filepath.Join(dir, "logo_fail.pdf"),
		},
		{
			name: "missing output directory",
			opts: Options{Title: "Fee Receipt", Fields: []string{"Name"}},
			path: filepath.Join(dir, "no", "such", "dir", "out.pdf"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.opts, zerolog.Nop())
			if r.Render(sampleRow(), tt.path) {
				t.Fatal("Expected render to fail")
			}
			if _, err := os.Stat(tt.path); !os.IsNotExist(err) {
				t.Errorf("Expected no file at %s", tt.path)
			}
		})
	}
}

func TestRenderUnicodeName(t *testing.T) {
	dir := t.TempDir()
	tbl := table.New("fees.csv", []string{"Name"}, []table.Record{{Line: 2, Fields: []string{"José Müller"}}})
	row, _ := tbl.Row(0)

	r := New(Options{Title: "Fee Receipt", Fields: []string{"Name"}}, zerolog.Nop())
	path := filepath.Join(dir, "unicode.pdf")
	if !r.Render(row, path) {
		t.Fatal("Expected render to succeed")
	}
	assertPDF(t, path)
}
