package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ByLCY/meterfaces/binding"
	"github.com/ByLCY/meterfaces/face"
	"github.com/ByLCY/meterfaces/layout"
	canvasrenderer "github.com/ByLCY/meterfaces/renderer/canvas"
)

// Config 是一次运行的全部参数。
type Config struct {
	Face   face.Spec
	Page   layout.PageSpec
	Debug  Debug
	Output Output
	// Fonts 将字体名映射到来源："embed:<name>" 或字体文件路径。
	// 未列出的字体按系统字体查找。
	Fonts map[string]string
	Meta  Meta
	Vars  binding.Vars
}

// Debug 调试开关。
type Debug struct {
	Grid   bool
	Layout string // 铺排 JSON 输出路径，空表示不输出
}

// Output 输出文件。
type Output struct {
	Path   string
	Format string // pdf 或 svg；为空时按扩展名判断
}

// Meta 是写入 PDF 文档信息的元数据。
type Meta struct {
	Title    string
	Subject  string
	Keywords string
	Author   string
	Creator  string
}

// Default returns the configuration that reproduces the 85c1 sheet.
// The logo font is left empty; the caller picks a host font with LogoFontFor.
func Default() Config {
	spec := face.Default()
	spec.Fonts.Logo = ""
	return Config{
		Face:   spec,
		Page:   layout.A4(),
		Output: Output{Path: "85c1.pdf"},
		Fonts:  map[string]string{},
		Meta: Meta{
			Title:   "85C1 Ammeter Clock",
			Subject: "ammeter clock dial faces",
			Creator: "meterfaces",
		},
	}
}

// LogoFontFor 返回给定操作系统（runtime.GOOS）上用于 Logo 的中文字体。
func LogoFontFor(goos string) string {
	if goos == "darwin" {
		return "LiSong Pro"
	}
	return "SimHei"
}

// ResolvedFormat 返回实际输出格式。
func (o Output) ResolvedFormat() (string, error) {
	format := strings.ToLower(strings.TrimSpace(o.Format))
	if format == "" {
		if strings.EqualFold(filepath.Ext(o.Path), ".svg") {
			return canvasrenderer.FormatSVG, nil
		}
		return canvasrenderer.FormatPDF, nil
	}
	switch format {
	case canvasrenderer.FormatPDF, canvasrenderer.FormatSVG:
		return format, nil
	}
	return "", fmt.Errorf("不支持的输出格式 %q", o.Format)
}

// Validate 检查配置，汇总所有错误。
func (c Config) Validate() error {
	var errs []error
	if err := c.Page.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("page: %w", err))
	}
	if err := c.Face.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("face: %w", err))
	}
	if c.Output.Path == "" {
		errs = append(errs, errors.New("output: 输出路径为空"))
	}
	if _, err := c.Output.ResolvedFormat(); err != nil {
		errs = append(errs, fmt.Errorf("output: %w", err))
	}
	for name, src := range c.Fonts {
		if strings.TrimSpace(src) == "" {
			errs = append(errs, fmt.Errorf("fonts: 字体 %s 没有来源", name))
		}
	}
	return errors.Join(errs...)
}

// ExpandTexts 用 Vars 展开表盘文字中的 ${name}。
func (c *Config) ExpandTexts() error {
	t := &c.Face.Texts
	return binding.ExpandAll(c.Vars, &t.Logo, &t.Name, &t.Caption, &t.Footer, &c.Meta.Title, &c.Meta.Subject)
}
