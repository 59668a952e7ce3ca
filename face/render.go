package face

import (
	"fmt"

	"github.com/ByLCY/meterfaces/layout"
	"github.com/ByLCY/meterfaces/surface"
)

// Draw 在表面上绘制一个完整表盘。调用前表面必须已平移到表盘原点（指针轴心）。
// 任何字体或后端错误都会中止绘制并返回。
func Draw(s surface.Surface, spec Spec) error {
	if s == nil {
		return fmt.Errorf("face: 绘图表面为空")
	}
	bx, by, bw, bh := spec.Border()

	// border
	s.SetSourceRGBA(0, 0, 0, 1)
	s.SetLineWidth(layout.ToPt(spec.Strokes.Border))
	s.Rectangle(bx, by, bw, bh)
	s.Stroke()

	drawRuler(s, spec, spec.Hour)
	if err := drawNumerals(s, spec, spec.Hour); err != nil {
		return err
	}
	drawRuler(s, spec, spec.Minute)
	if err := drawNumerals(s, spec, spec.Minute); err != nil {
		return err
	}

	if err := drawLogo(s, spec, bx, by); err != nil {
		return err
	}
	t := spec.Texts
	if err := drawCentered(s, spec.Fonts.Text, t.NameSize, t.Name, layout.ToPt(t.NameDY)); err != nil {
		return err
	}
	if err := drawCentered(s, spec.Fonts.Text, t.CaptionSize, t.Caption, layout.ToPt(t.CaptionDY)); err != nil {
		return err
	}
	if err := drawFooter(s, spec, bx, by, bw); err != nil {
		return err
	}

	if spec.Hand.Enabled {
		drawHand(s, spec)
	}
	return s.Err()
}

func drawRuler(s surface.Surface, spec Spec, r Ruler) {
	s.SetLineCap(surface.CapSquare)
	s.SetSourceRGBA(0, 0, 0, 1)
	s.SetLineWidth(layout.ToPt(spec.Strokes.Arc))
	s.Arc(0, 0, layout.ToPt(r.Radius), spec.Sweep.From, spec.Sweep.To)
	s.Stroke()

	for _, tick := range r.Ticks(spec.Sweep, spec.Strokes) {
		x1, y1, x2, y2 := tick.Segment()
		s.SetLineWidth(tick.Width)
		s.MoveTo(x1, y1)
		s.LineTo(x2, y2)
		s.Stroke()
	}
}

func selectFont(s surface.Surface, name string, size float64) error {
	if err := s.SelectFontFace(name, surface.SlantNormal, surface.WeightNormal); err != nil {
		return fmt.Errorf("选择字体 %s 失败: %w", name, err)
	}
	s.SetFontSize(size)
	return nil
}

func drawNumerals(s surface.Surface, spec Spec, r Ruler) error {
	if err := selectFont(s, spec.Fonts.Numeral, r.FontSize); err != nil {
		return err
	}
	for _, l := range r.Labels(spec.Sweep) {
		s.Save()
		s.Transform(l.Frame())
		w := s.TextExtents(l.Text).Width
		s.MoveTo(Centered(w), 0)
		s.ShowText(l.Text)
		s.Restore()
	}
	return nil
}

// drawLogo 在外框左上角画实心块，反色写 Logo 文字。块必须先于文字填充。
func drawLogo(s surface.Surface, spec Spec, bx, by float64) error {
	t := spec.Texts
	if t.Logo == "" {
		return nil
	}
	if err := selectFont(s, spec.Fonts.Logo, t.LogoSize); err != nil {
		return err
	}
	pad := layout.ToPt(t.LogoPadding)
	ext := s.TextExtents(t.Logo)
	rx, ry := bx+pad, by+pad

	s.SetSourceRGBA(0, 0, 0, 1)
	s.Rectangle(rx, ry, ext.Width+pad*2, ext.Height+pad*2)
	s.Fill()

	s.SetSourceRGBA(1, 1, 1, 1)
	s.MoveTo(rx+pad, ry+pad*0.5+ext.Height)
	s.ShowText(t.Logo)
	return nil
}

func drawCentered(s surface.Surface, font string, size float64, text string, y float64) error {
	if text == "" {
		return nil
	}
	if err := selectFont(s, font, size); err != nil {
		return err
	}
	w := s.TextExtents(text).Width
	s.SetSourceRGBA(0, 0, 0, 1)
	s.MoveTo(Centered(w), y)
	s.ShowText(text)
	return nil
}

// drawFooter 右对齐到外框右边，靠近外框上边。
func drawFooter(s surface.Surface, spec Spec, bx, by, bw float64) error {
	t := spec.Texts
	if t.Footer == "" {
		return nil
	}
	if err := selectFont(s, spec.Fonts.Text, t.FooterSize); err != nil {
		return err
	}
	inset := layout.ToPt(t.FooterInset)
	ext := s.TextExtents(t.Footer)
	s.SetSourceRGBA(0, 0, 0, 1)
	s.MoveTo(bx+bw-ext.Width-inset, by+ext.Height+inset)
	s.ShowText(t.Footer)
	return nil
}

func drawHand(s surface.Surface, spec Spec) {
	x, y := spec.HandTip()
	tracer().Debugf("debug hand at %g%% -> (%.2f, %.2f)", spec.Hand.Value, x, y)
	s.SetSourceRGBA(1, 0, 0, 1)
	s.SetLineWidth(spec.Hand.Width)
	s.MoveTo(0, 0)
	s.LineTo(x, y)
	s.Stroke()
}
