package fonts

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoadBuiltin(t *testing.T) {
	for _, name := range Names() {
		for _, src := range []string{name, Prefix + name} {
			data, err := Load(src)
			if err != nil {
				t.Fatalf("Load(%q): %v", src, err)
			}
			// TrueType 与 OpenType 字体的文件头
			if len(data) < 4 || !(bytes.Equal(data[:4], []byte{0, 1, 0, 0}) || string(data[:4]) == "OTTO" || string(data[:4]) == "true") {
				t.Fatalf("Load(%q): unexpected header % x", src, data[:4])
			}
		}
	}
}

func TestLoadUnknown(t *testing.T) {
	_, err := Load("embed:Luminari")
	if err == nil {
		t.Fatalf("expected error for unknown font")
	}
	if !strings.Contains(err.Error(), "go-regular") {
		t.Fatalf("error should list available fonts: %v", err)
	}
}

func TestNames(t *testing.T) {
	want := []string{"go-bold", "go-italic", "go-mono", "go-regular", "lmroman10-regular"}
	got := Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	if !IsEmbedded("embed:go-mono") || IsEmbedded("/usr/share/fonts/a.ttf") {
		t.Fatalf("IsEmbedded mismatch")
	}
}
