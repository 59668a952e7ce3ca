package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/ByLCY/meterfaces/face"
	"github.com/ByLCY/meterfaces/layout"
	canvasrenderer "github.com/ByLCY/meterfaces/renderer/canvas"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Output.Path != "85c1.pdf" {
		t.Fatalf("unexpected default output %q", cfg.Output.Path)
	}
	want := face.Default()
	want.Fonts.Logo = ""
	if diff := cmp.Diff(want, cfg.Face); diff != "" {
		t.Fatalf("default face differs (-want +got):\n%s", diff)
	}
	if cfg.Debug.Grid || cfg.Face.Hand.Enabled {
		t.Fatalf("debug overlays must default to off")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestLoadPortable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "meterfaces.config")
	defer teardown()
	//
	cfg, err := Load(filepath.Join("testdata", "portable.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	approx := cmpopts.EquateApprox(0, 1e-12)
	wantPage := layout.PageSpec{Width: 297, Height: 210, Margin: 7.5, FaceMargin: 2.5}
	if diff := cmp.Diff(wantPage, cfg.Page, approx); diff != "" {
		t.Fatalf("page (-want +got):\n%s", diff)
	}
	wantSweep := face.Sweep{From: math.Pi * 5 / 4, To: math.Pi * 7 / 4}
	if diff := cmp.Diff(wantSweep, cfg.Face.Sweep, approx); diff != "" {
		t.Fatalf("sweep (-want +got):\n%s", diff)
	}
	if cfg.Face.Texts.Caption != "BG1REN, 2022-05-09" {
		t.Fatalf("caption = %q", cfg.Face.Texts.Caption)
	}
	if cfg.Face.Texts.Footer != "Powered by ESP8266" {
		t.Fatalf("footer = %q", cfg.Face.Texts.Footer)
	}
	if cfg.Face.Texts.Name != "AMMETER CLOCK" {
		t.Fatalf("untouched fields must keep defaults, name = %q", cfg.Face.Texts.Name)
	}
	if !cfg.Face.Hand.Enabled || cfg.Face.Hand.Value != 75 {
		t.Fatalf("hand = %+v", cfg.Face.Hand)
	}
	if !cfg.Debug.Grid {
		t.Fatalf("grid should be enabled")
	}
	if f, _ := cfg.Output.ResolvedFormat(); f != canvasrenderer.FormatSVG {
		t.Fatalf("format = %q, want svg", f)
	}
	if cfg.Fonts["Numerals"] != "embed:lmroman10-regular" || len(cfg.Fonts) != 3 {
		t.Fatalf("fonts = %v", cfg.Fonts)
	}
	if cfg.Meta.Author != "BG1REN" || cfg.Meta.Creator != "meterfaces" {
		t.Fatalf("meta = %+v", cfg.Meta)
	}
}

func TestDecodeLiterals(t *testing.T) {
	cfg := Default()
	src := `
face:
  width: 6cm
  hour:
    radius: 1in
    tickDelta: -2
    fontSize: 9
  minute:
    fontSize: 3.5278mm
  strokes:
    minor: 0.5pt
  hand:
    radius: 30mm
    width: 1pt
`
	if err := Decode([]byte(src), &cfg); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"width", cfg.Face.Width, 60},
		{"hour radius", cfg.Face.Hour.Radius, 25.4},
		{"hour tick delta", cfg.Face.Hour.TickDelta, -2},
		{"hour font", cfg.Face.Hour.FontSize, 9},
		{"minute font", cfg.Face.Minute.FontSize, layout.ToPt(3.5278)},
		{"minor stroke", cfg.Face.Strokes.Minor, layout.ToMm(0.5)},
		{"hand radius", cfg.Face.Hand.Radius, 30},
		{"hand width", cfg.Face.Hand.Width, 1},
		{"minute radius kept", cfg.Face.Minute.Radius, 31.2},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Fatalf("%s = %g, want %g", c.name, c.got, c.want)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"unknown field":   "face:\n  colour: red\n",
		"angle as length": "face:\n  width: 12deg\n",
		"length as angle": "face:\n  sweep:\n    from: 3mm\n",
		"percent angle":   "face:\n  sweep:\n    to: 50%\n",
		"garbage literal": "page:\n  margin: wide\n",
		"not a scalar":    "page:\n  width: [1, 2]\n",
		"bad percent":     "face:\n  hand:\n    value: 4mm\n",
		"invalid sweep":   "face:\n  sweep:\n    from: 300deg\n    to: 200deg\n",
		"bad format":      "output:\n  format: png\n",
		"undefined var":   "face:\n  texts:\n    name: ${nope}\n",
		"empty font":      "fonts:\n  Cochin: \"\"\n",
	}
	for name, src := range cases {
		cfg := Default()
		if err := Decode([]byte(src), &cfg); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	cfg := Default()
	if err := Decode(nil, &cfg); err != nil {
		t.Fatalf("empty document: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("empty document changed config:\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected error naming the file, got %v", err)
	}
}

func TestLoadReportsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("page:\n  width: \"--\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Fatalf("expected error naming the file, got %v", err)
	}
}

func TestResolvedFormat(t *testing.T) {
	cases := []struct {
		out  Output
		want string
		ok   bool
	}{
		{Output{Path: "a.pdf"}, canvasrenderer.FormatPDF, true},
		{Output{Path: "a.SVG"}, canvasrenderer.FormatSVG, true},
		{Output{Path: "a"}, canvasrenderer.FormatPDF, true},
		{Output{Path: "a.pdf", Format: "SVG"}, canvasrenderer.FormatSVG, true},
		{Output{Path: "a.pdf", Format: "eps"}, "", false},
	}
	for _, c := range cases {
		got, err := c.out.ResolvedFormat()
		if (err == nil) != c.ok || got != c.want {
			t.Fatalf("%+v: got %q, %v", c.out, got, err)
		}
	}
}

func TestLogoFontFor(t *testing.T) {
	if LogoFontFor("darwin") != "LiSong Pro" {
		t.Fatalf("darwin logo font")
	}
	if LogoFontFor("linux") != "SimHei" || LogoFontFor("windows") != "SimHei" {
		t.Fatalf("non-darwin logo font")
	}
}
