package face

import (
	"errors"
	"fmt"
	"math"

	"github.com/ByLCY/meterfaces/layout"
)

// Spec 描述一个表盘的全部几何、字体与文字。长度单位 mm，字号单位 pt，角度单位弧度。
type Spec struct {
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	CenterDiameter float64 `json:"centerDiameter"`

	Sweep  Sweep `json:"sweep"`
	Hour   Ruler `json:"hour"`
	Minute Ruler `json:"minute"`

	Strokes Strokes `json:"strokes"`
	Fonts   Fonts   `json:"fonts"`
	Texts   Texts   `json:"texts"`
	Hand    Hand    `json:"hand"`
}

// Ruler 描述一圈刻度及其数字。
type Ruler struct {
	Radius       float64 `json:"radius"`
	TickDelta    float64 `json:"tickDelta"` // 符号决定刻度朝外(+)还是朝内(-)
	NumeralDelta float64 `json:"numeralDelta"`
	FontSize     float64 `json:"fontSize"`

	Divisions   int `json:"divisions"`   // 刻度等分数，刻度点数为 Divisions+1
	MajorEvery  int `json:"majorEvery"`  // 主刻度间隔
	MediumEvery int `json:"mediumEvery"` // 中刻度间隔
	Numerals    int `json:"numerals"`    // 数字等分数，数字个数为 Numerals+1
	LabelStep   int `json:"labelStep"`   // 第 i 个数字显示 i*LabelStep
}

// Strokes 线宽（mm）。
type Strokes struct {
	Border float64 `json:"border"`
	Arc    float64 `json:"arc"`
	Major  float64 `json:"major"` // 主刻度与中刻度
	Minor  float64 `json:"minor"`
}

// Fonts 字体名。由调用方决定（例如按操作系统挑选 Logo 字体），渲染核心不判断平台。
type Fonts struct {
	Numeral string `json:"numeral"`
	Text    string `json:"text"`
	Logo    string `json:"logo"`
}

// Texts 表盘上的文字及其位置。
type Texts struct {
	Logo        string  `json:"logo"`
	LogoSize    float64 `json:"logoSize"`
	LogoPadding float64 `json:"logoPadding"` // mm
	Name        string  `json:"name"`
	NameSize    float64 `json:"nameSize"`
	NameDY      float64 `json:"nameDY"` // mm，相对原点
	Caption     string  `json:"caption"`
	CaptionSize float64 `json:"captionSize"`
	CaptionDY   float64 `json:"captionDY"`
	Footer      string  `json:"footer"`
	FooterSize  float64 `json:"footerSize"`
	FooterInset float64 `json:"footerInset"` // mm，距外框右边与上边
}

// Hand 调试用指针，默认关闭。
type Hand struct {
	Enabled bool    `json:"enabled"`
	Value   float64 `json:"value"`  // 0..100，沿刻度弧的百分比
	Radius  float64 `json:"radius"` // mm
	Width   float64 `json:"width"`  // pt
}

// Default returns the 85c1 ammeter clock face.
func Default() Spec {
	return Spec{
		Width:          59.4,
		Height:         29.6,
		CenterDiameter: 9.2,
		Sweep:          Sweep{From: math.Pi * 5 / 4, To: math.Pi * 7 / 4},
		Hour: Ruler{
			Radius:       32.0,
			TickDelta:    2.0,
			NumeralDelta: 2.4,
			FontSize:     8,
			Divisions:    12 * 4,
			MajorEvery:   8,
			MediumEvery:  4,
			Numerals:     6,
			LabelStep:    2,
		},
		Minute: Ruler{
			Radius:       31.2,
			TickDelta:    -1.8,
			NumeralDelta: -3.7,
			FontSize:     7,
			Divisions:    60,
			MajorEvery:   10,
			MediumEvery:  5,
			Numerals:     6,
			LabelStep:    10,
		},
		Strokes: Strokes{Border: 0.1, Arc: 0.25, Major: 0.25, Minor: 0.1},
		Fonts:   Fonts{Numeral: "Luminari", Text: "Cochin", Logo: "SimHei"},
		Texts: Texts{
			Logo:        "拾壹工坊",
			LogoSize:    7,
			LogoPadding: 0.5,
			Name:        "AMMETER CLOCK",
			NameSize:    7,
			NameDY:      -16.0,
			Caption:     "BG1REN, 2022-05-09",
			CaptionSize: 5,
			CaptionDY:   -14.0,
			Footer:      "Powered by ESP8266",
			FooterSize:  5,
			FooterInset: 1.0,
		},
		Hand: Hand{Value: 40, Radius: 33.2, Width: 0.5},
	}
}

// Size 返回铺排所需的外框尺寸。
func (s Spec) Size() layout.FaceSize {
	return layout.FaceSize{Width: s.Width, Height: s.Height, CenterDiameter: s.CenterDiameter}
}

// Validate 检查表盘参数；零长度刻度、空字符串都不是错误。
func (s Spec) Validate() error {
	var errs []error
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("表盘尺寸必须为正: %gx%g", s.Width, s.Height))
	}
	if s.CenterDiameter < 0 {
		errs = append(errs, fmt.Errorf("中心孔直径不能为负: %g", s.CenterDiameter))
	}
	if err := s.Sweep.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := s.Hour.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("hour ruler: %w", err))
	}
	if err := s.Minute.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("minute ruler: %w", err))
	}
	if s.Hand.Value < 0 || s.Hand.Value > 100 {
		errs = append(errs, fmt.Errorf("指针读数必须在 0..100 之间: %g", s.Hand.Value))
	}
	return errors.Join(errs...)
}

// Validate 检查刻度参数。
func (r Ruler) Validate() error {
	if r.Radius <= 0 {
		return fmt.Errorf("半径必须为正: %g", r.Radius)
	}
	if r.Divisions <= 0 || r.Numerals <= 0 {
		return fmt.Errorf("等分数必须为正: divisions=%d numerals=%d", r.Divisions, r.Numerals)
	}
	if r.MajorEvery <= 0 || r.MediumEvery <= 0 {
		return fmt.Errorf("刻度间隔必须为正: major=%d medium=%d", r.MajorEvery, r.MediumEvery)
	}
	return nil
}
