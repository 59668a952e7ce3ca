package canvasrenderer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/meterfaces/fonts"
	"github.com/ByLCY/meterfaces/page"
	"github.com/ByLCY/meterfaces/renderer"
)

// 输出格式
const (
	FormatPDF = "pdf"
	FormatSVG = "svg"
)

// Renderer draws dial-face pages via github.com/tdewolff/canvas.
type Renderer struct {
	format string
	meta   Meta

	// injected resources
	fonts map[string]Resource // by font name

	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	// Fonts maps a font name used by the face to its source. Names that are
	// not listed are looked up as "embed:" sources, font files and finally
	// system fonts.
	Fonts  map[string]Resource
	Format string // pdf（默认）或 svg
	Meta   Meta
}

// Resource can be provided either by Bytes or by Path; Path may be an
// "embed:<name>" source.
type Resource struct {
	Bytes []byte
	Path  string
}

// Meta 写入 PDF 文档信息。
type Meta struct {
	Title    string
	Subject  string
	Keywords string
	Author   string
	Creator  string
}

// NewRenderer creates a PDF renderer that resolves fonts from the system.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected resources.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		format:       strings.ToLower(opts.Format),
		meta:         opts.Meta,
		fonts:        map[string]Resource{},
		fontFamilies: map[string]*canvas.FontFamily{},
	}
	if r.format == "" {
		r.format = FormatPDF
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		r.fonts[name] = res
	}
	return r
}

// Render 绘制一整页并返回 PDF 或 SVG 字节。
func (r *Renderer) Render(opts page.Options) ([]byte, error) {
	if r.format != FormatPDF && r.format != FormatSVG {
		return nil, fmt.Errorf("不支持的输出格式 %q", r.format)
	}
	w, h := opts.Page.Width, opts.Page.Height
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)

	s := newSurface(r, ctx, h)
	res, err := page.Draw(s, opts)
	if err != nil {
		return nil, err
	}
	tracer().Infof("rendered %d faces on %gx%g mm page", len(res.Cells), w, h)

	var buf bytes.Buffer
	switch r.format {
	case FormatSVG:
		writer := svg.New(&buf, w, h, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	default:
		writer := pdf.New(&buf, w, h, nil)
		writer.SetInfo(r.meta.Title, r.meta.Subject, r.meta.Keywords, r.meta.Author, r.meta.Creator)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// fontFamily 返回已加载 name 的字体族，结果按名称与样式缓存。
// 找不到字体时返回错误，不做回退。
func (r *Renderer) fontFamily(name string, style canvas.FontStyle) (*canvas.FontFamily, error) {
	key := fmt.Sprintf("%s|%d", name, style)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[key]; ok {
		return family, nil
	}
	data, err := r.loadFontBytes(name)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	r.fontFamilies[key] = family
	return family, nil
}

func (r *Renderer) loadFontBytes(name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("字体名为空")
	}
	if res, ok := r.fonts[name]; ok {
		if len(res.Bytes) > 0 {
			return res.Bytes, nil
		}
		if res.Path == "" {
			return nil, fmt.Errorf("字体 %s 缺少来源", name)
		}
		return readFontSource(name, res.Path)
	}
	return readFontSource(name, name)
}

// readFontSource 依次尝试 embed: 内置字体、字体文件路径与系统字体。
func readFontSource(name, src string) ([]byte, error) {
	if fonts.IsEmbedded(src) {
		return fonts.Load(src)
	}
	if isFontFile(src) {
		if data, err := os.ReadFile(src); err == nil {
			return data, nil
		} else if filepath.IsAbs(src) {
			return nil, fmt.Errorf("读取字体 %s 失败: %w", name, err)
		}
	}
	path, err := findfont.Find(src)
	if err != nil {
		return nil, fmt.Errorf("找不到字体 %s: %w", name, err)
	}
	tracer().Debugf("font %s resolved to %s", name, path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s (%s) 失败: %w", name, path, err)
	}
	return data, nil
}

func isFontFile(src string) bool {
	switch strings.ToLower(filepath.Ext(src)) {
	case ".ttf", ".otf", ".ttc", ".woff", ".woff2":
		return true
	}
	return false
}
