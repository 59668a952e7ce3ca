package fonts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Prefix 标记内置字体来源，例如 "embed:go-regular"。
const Prefix = "embed:"

var builtin = map[string][]byte{
	"go-regular":        goregular.TTF,
	"go-bold":           gobold.TTF,
	"go-italic":         goitalic.TTF,
	"go-mono":           gomono.TTF,
	"lmroman10-regular": lmroman10regular.TTF,
}

// IsEmbedded reports whether source names a built-in font.
func IsEmbedded(source string) bool {
	return strings.HasPrefix(source, Prefix)
}

// Load 返回内置字体的字节数据，name 可写为 "embed:go-regular" 或直接 "go-regular"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), Prefix))
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("没有名为 %q 的内置字体（可用: %s）", key, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names 返回全部内置字体名，已排序。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
