package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/meterfaces/dsl"
	"github.com/ByLCY/meterfaces/face"
	"github.com/ByLCY/meterfaces/layout"
)

// Load 读取 YAML 配置文件并叠加到默认值上。path 为空时返回默认配置。
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("配置文件 %s: %w", path, err)
	}
	tracer().Infof("loaded configuration from %s", path)
	return cfg, nil
}

// Decode 将 YAML 内容叠加到 cfg 上，展开文字变量并校验结果。
// 未知字段视为错误。
func Decode(data []byte, cfg *Config) error {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("解析 YAML 失败: %w", err)
	}
	f.apply(cfg)
	if err := cfg.ExpandTexts(); err != nil {
		return err
	}
	return cfg.Validate()
}

// --- 字面量类型 ----------------------------------------------------------

func scalar(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("第 %d 行: 需要标量值", n.Line)
	}
	return n.Value, nil
}

// length 以 mm 保存；无单位视为 mm。
type length float64

func (l *length) UnmarshalYAML(n *yaml.Node) error {
	s, err := scalar(n)
	if err != nil {
		return err
	}
	v, err := layout.ParseLength(s)
	if err != nil {
		return fmt.Errorf("第 %d 行: %w", n.Line, err)
	}
	*l = length(v.ToMM())
	return nil
}

func (l *length) apply(dst *float64) {
	if l != nil {
		*dst = float64(*l)
	}
}

// points 以 pt 保存；无单位视为 pt。
type points float64

func (p *points) UnmarshalYAML(n *yaml.Node) error {
	s, err := scalar(n)
	if err != nil {
		return err
	}
	v, err := layout.ParseLength(s)
	if err != nil {
		return fmt.Errorf("第 %d 行: %w", n.Line, err)
	}
	if v.Unit == layout.UnitNone {
		v.Unit = layout.UnitPT
	}
	*p = points(v.ToPT())
	return nil
}

func (p *points) apply(dst *float64) {
	if p != nil {
		*dst = float64(*p)
	}
}

// angle 以弧度保存；无单位视为弧度。
type angle float64

func (a *angle) UnmarshalYAML(n *yaml.Node) error {
	s, err := scalar(n)
	if err != nil {
		return err
	}
	q, err := dsl.ParseQuantity(s)
	if err != nil {
		return fmt.Errorf("第 %d 行: %w", n.Line, err)
	}
	if q.Unit != "" && !q.IsAngle() {
		return fmt.Errorf("第 %d 行: %q 不是角度", n.Line, s)
	}
	if q.Unit == "deg" {
		*a = angle(q.Value * math.Pi / 180)
	} else {
		*a = angle(q.Value)
	}
	return nil
}

func (a *angle) apply(dst *float64) {
	if a != nil {
		*dst = float64(*a)
	}
}

// percent 是 0..100 的百分比，"%" 可省略。
type percent float64

func (p *percent) UnmarshalYAML(n *yaml.Node) error {
	s, err := scalar(n)
	if err != nil {
		return err
	}
	q, err := dsl.ParseQuantity(s)
	if err != nil {
		return fmt.Errorf("第 %d 行: %w", n.Line, err)
	}
	if q.Unit != "" && q.Unit != "%" {
		return fmt.Errorf("第 %d 行: %q 不是百分比", n.Line, s)
	}
	*p = percent(q.Value)
	return nil
}

func (p *percent) apply(dst *float64) {
	if p != nil {
		*dst = float64(*p)
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// --- 文件结构 ------------------------------------------------------------

type file struct {
	Page   *pageFile         `yaml:"page"`
	Face   *faceFile         `yaml:"face"`
	Debug  *debugFile        `yaml:"debug"`
	Output *outputFile       `yaml:"output"`
	Fonts  map[string]string `yaml:"fonts"`
	Meta   *metaFile         `yaml:"meta"`
	Vars   map[string]any    `yaml:"vars"`
}

type pageFile struct {
	Width      *length `yaml:"width"`
	Height     *length `yaml:"height"`
	Margin     *length `yaml:"margin"`
	FaceMargin *length `yaml:"faceMargin"`
}

type faceFile struct {
	Width          *length      `yaml:"width"`
	Height         *length      `yaml:"height"`
	CenterDiameter *length      `yaml:"centerDiameter"`
	Sweep          *sweepFile   `yaml:"sweep"`
	Hour           *rulerFile   `yaml:"hour"`
	Minute         *rulerFile   `yaml:"minute"`
	Strokes        *strokesFile `yaml:"strokes"`
	Fonts          *fontsFile   `yaml:"fonts"`
	Texts          *textsFile   `yaml:"texts"`
	Hand           *handFile    `yaml:"hand"`
}

type sweepFile struct {
	From *angle `yaml:"from"`
	To   *angle `yaml:"to"`
}

type rulerFile struct {
	Radius       *length `yaml:"radius"`
	TickDelta    *length `yaml:"tickDelta"`
	NumeralDelta *length `yaml:"numeralDelta"`
	FontSize     *points `yaml:"fontSize"`
	Divisions    *int    `yaml:"divisions"`
	MajorEvery   *int    `yaml:"majorEvery"`
	MediumEvery  *int    `yaml:"mediumEvery"`
	Numerals     *int    `yaml:"numerals"`
	LabelStep    *int    `yaml:"labelStep"`
}

type strokesFile struct {
	Border *length `yaml:"border"`
	Arc    *length `yaml:"arc"`
	Major  *length `yaml:"major"`
	Minor  *length `yaml:"minor"`
}

type fontsFile struct {
	Numeral *string `yaml:"numeral"`
	Text    *string `yaml:"text"`
	Logo    *string `yaml:"logo"`
}

type textsFile struct {
	Logo        *string `yaml:"logo"`
	LogoSize    *points `yaml:"logoSize"`
	LogoPadding *length `yaml:"logoPadding"`
	Name        *string `yaml:"name"`
	NameSize    *points `yaml:"nameSize"`
	NameDY      *length `yaml:"nameDY"`
	Caption     *string `yaml:"caption"`
	CaptionSize *points `yaml:"captionSize"`
	CaptionDY   *length `yaml:"captionDY"`
	Footer      *string `yaml:"footer"`
	FooterSize  *points `yaml:"footerSize"`
	FooterInset *length `yaml:"footerInset"`
}

type handFile struct {
	Enabled *bool    `yaml:"enabled"`
	Value   *percent `yaml:"value"`
	Radius  *length  `yaml:"radius"`
	Width   *points  `yaml:"width"`
}

type debugFile struct {
	Grid   *bool   `yaml:"grid"`
	Layout *string `yaml:"layout"`
}

type outputFile struct {
	Path   *string `yaml:"path"`
	Format *string `yaml:"format"`
}

type metaFile struct {
	Title    *string `yaml:"title"`
	Subject  *string `yaml:"subject"`
	Keywords *string `yaml:"keywords"`
	Author   *string `yaml:"author"`
	Creator  *string `yaml:"creator"`
}

func (f *file) apply(cfg *Config) {
	if p := f.Page; p != nil {
		p.Width.apply(&cfg.Page.Width)
		p.Height.apply(&cfg.Page.Height)
		p.Margin.apply(&cfg.Page.Margin)
		p.FaceMargin.apply(&cfg.Page.FaceMargin)
	}
	if f.Face != nil {
		f.Face.apply(cfg)
	}
	if d := f.Debug; d != nil {
		set(&cfg.Debug.Grid, d.Grid)
		set(&cfg.Debug.Layout, d.Layout)
	}
	if o := f.Output; o != nil {
		set(&cfg.Output.Path, o.Path)
		set(&cfg.Output.Format, o.Format)
	}
	if len(f.Fonts) > 0 && cfg.Fonts == nil {
		cfg.Fonts = map[string]string{}
	}
	for name, src := range f.Fonts {
		cfg.Fonts[name] = src
	}
	if m := f.Meta; m != nil {
		set(&cfg.Meta.Title, m.Title)
		set(&cfg.Meta.Subject, m.Subject)
		set(&cfg.Meta.Keywords, m.Keywords)
		set(&cfg.Meta.Author, m.Author)
		set(&cfg.Meta.Creator, m.Creator)
	}
	if f.Vars != nil {
		cfg.Vars = f.Vars
	}
}

func (ff *faceFile) apply(cfg *Config) {
	s := &cfg.Face
	ff.Width.apply(&s.Width)
	ff.Height.apply(&s.Height)
	ff.CenterDiameter.apply(&s.CenterDiameter)
	if sw := ff.Sweep; sw != nil {
		sw.From.apply(&s.Sweep.From)
		sw.To.apply(&s.Sweep.To)
	}
	ff.Hour.apply(&s.Hour)
	ff.Minute.apply(&s.Minute)
	if st := ff.Strokes; st != nil {
		st.Border.apply(&s.Strokes.Border)
		st.Arc.apply(&s.Strokes.Arc)
		st.Major.apply(&s.Strokes.Major)
		st.Minor.apply(&s.Strokes.Minor)
	}
	if fo := ff.Fonts; fo != nil {
		set(&s.Fonts.Numeral, fo.Numeral)
		set(&s.Fonts.Text, fo.Text)
		set(&s.Fonts.Logo, fo.Logo)
	}
	if t := ff.Texts; t != nil {
		set(&s.Texts.Logo, t.Logo)
		t.LogoSize.apply(&s.Texts.LogoSize)
		t.LogoPadding.apply(&s.Texts.LogoPadding)
		set(&s.Texts.Name, t.Name)
		t.NameSize.apply(&s.Texts.NameSize)
		t.NameDY.apply(&s.Texts.NameDY)
		set(&s.Texts.Caption, t.Caption)
		t.CaptionSize.apply(&s.Texts.CaptionSize)
		t.CaptionDY.apply(&s.Texts.CaptionDY)
		set(&s.Texts.Footer, t.Footer)
		t.FooterSize.apply(&s.Texts.FooterSize)
		t.FooterInset.apply(&s.Texts.FooterInset)
	}
	if h := ff.Hand; h != nil {
		set(&s.Hand.Enabled, h.Enabled)
		h.Value.apply(&s.Hand.Value)
		h.Radius.apply(&s.Hand.Radius)
		h.Width.apply(&s.Hand.Width)
	}
}

func (rf *rulerFile) apply(r *face.Ruler) {
	if rf == nil {
		return
	}
	rf.Radius.apply(&r.Radius)
	rf.TickDelta.apply(&r.TickDelta)
	rf.NumeralDelta.apply(&r.NumeralDelta)
	rf.FontSize.apply(&r.FontSize)
	set(&r.Divisions, rf.Divisions)
	set(&r.MajorEvery, rf.MajorEvery)
	set(&r.MediumEvery, rf.MediumEvery)
	set(&r.Numerals, rf.Numerals)
	set(&r.LabelStep, rf.LabelStep)
}
