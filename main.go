package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/ByLCY/meterfaces/config"
	"github.com/ByLCY/meterfaces/layout"
	"github.com/ByLCY/meterfaces/page"
	"github.com/ByLCY/meterfaces/renderer"
	canvasrenderer "github.com/ByLCY/meterfaces/renderer/canvas"
)

// tracer traces with key 'meterfaces'
func tracer() tracing.Trace {
	return tracing.Select("meterfaces")
}

var traceKeys = []string{
	"meterfaces",
	"meterfaces.config",
	"meterfaces.layout",
	"meterfaces.face",
	"meterfaces.page",
	"meterfaces.renderer",
}

func main() {
	initDisplay()

	output := flag.String("out", "", "输出文件路径（默认 85c1.pdf）")
	configPath := flag.String("config", "", "YAML 配置文件路径")
	debug := flag.String("debug", "", "铺排调试 JSON 输出路径")
	grid := flag.Bool("grid", false, "绘制 10mm 调试网格")
	hand := flag.Bool("hand", false, "绘制调试指针")
	format := flag.String("format", "", "输出格式 [pdf|svg]，默认按扩展名判断")
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()

	if err := setupTracing(*tlevel); err != nil {
		log.Fatalf("配置日志失败: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("读取配置失败: %v", err)
	}
	applyFlags(&cfg, flags{
		output: *output,
		debug:  *debug,
		grid:   *grid,
		hand:   *hand,
		format: *format,
	}, runtime.GOOS)

	ropts, err := rendererOptions(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	var r renderer.Renderer = canvasrenderer.NewRendererWithOptions(ropts)
	if err := run(cfg, r); err != nil {
		log.Fatalf("生成表盘失败: %v", err)
	}
	pterm.Info.Printfln("已生成：%s", cfg.Output.Path)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
}

func setupTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{"tracing.adapter": "go"}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("Trace level is %s", level)
	return nil
}

// flags 是命令行上显式给出的覆盖项，零值表示沿用配置。
type flags struct {
	output string
	debug  string
	grid   bool
	hand   bool
	format string
}

func applyFlags(cfg *config.Config, f flags, goos string) {
	if f.output != "" {
		cfg.Output.Path = f.output
	}
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.debug != "" {
		cfg.Debug.Layout = f.debug
	}
	if f.grid {
		cfg.Debug.Grid = true
	}
	if f.hand {
		cfg.Face.Hand.Enabled = true
	}
	// 配置未指定 Logo 字体时按宿主系统挑选
	if cfg.Face.Fonts.Logo == "" {
		cfg.Face.Fonts.Logo = config.LogoFontFor(goos)
	}
}

func rendererOptions(cfg config.Config) (canvasrenderer.Options, error) {
	format, err := cfg.Output.ResolvedFormat()
	if err != nil {
		return canvasrenderer.Options{}, err
	}
	fonts := make(map[string]canvasrenderer.Resource, len(cfg.Fonts))
	for name, src := range cfg.Fonts {
		fonts[name] = canvasrenderer.Resource{Path: src}
	}
	m := cfg.Meta
	return canvasrenderer.Options{
		Fonts:  fonts,
		Format: format,
		Meta: canvasrenderer.Meta{
			Title:    m.Title,
			Subject:  m.Subject,
			Keywords: m.Keywords,
			Author:   m.Author,
			Creator:  m.Creator,
		},
	}, nil
}

// run 串联铺排、渲染与写文件。
func run(cfg config.Config, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	opts := page.Options{Face: cfg.Face, Page: cfg.Page, Grid: cfg.Debug.Grid}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("参数无效: %w", err)
	}

	if cfg.Debug.Layout != "" {
		res := layout.Tile(cfg.Page, cfg.Face.Size())
		if err := layout.WriteDebugJSON(&res, cfg.Debug.Layout); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	data, err := r.Render(opts)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	if dir := filepath.Dir(cfg.Output.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(cfg.Output.Path, data, 0o644); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}
	tracer().Infof("wrote %d bytes to %s", len(data), cfg.Output.Path)
	return nil
}
