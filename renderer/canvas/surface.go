package canvasrenderer

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/tdewolff/canvas"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"github.com/ByLCY/meterfaces/layout"
	"github.com/ByLCY/meterfaces/surface"
)

var transparent = color.RGBA{0, 0, 0, 0}

type drawState struct {
	ctm    matrix.Matrix // 用户空间(pt) → 页面(pt，左上角为原点)
	color  color.Color
	width  float64 // pt
	cap    surface.LineCap
	family *canvas.FontFamily
	style  canvas.FontStyle
	font   string
	size   float64 // pt
	face   *canvas.FontFace
}

// canvasSurface 在 canvas.Context 上实现 surface.Surface。
//
// 上下文保持默认的 CartesianI 坐标系与单位视图；所有变换在这里完成，
// 交给 canvas 的路径已经是页面上的最终毫米坐标（左下角为原点）。
type canvasSurface struct {
	r      *Renderer
	ctx    *canvas.Context
	page   matrix.Matrix // 页面 pt（y 向下）→ canvas mm（y 向上）
	st     drawState
	stack  []drawState
	path   *canvas.Path
	cur    vec.Vec2 // 当前点，canvas 坐标
	hasCur bool
	err    error
}

var _ surface.Surface = (*canvasSurface)(nil)

func newSurface(r *Renderer, ctx *canvas.Context, pageHeight float64) *canvasSurface {
	return &canvasSurface{
		r:    r,
		ctx:  ctx,
		page: matrix.Matrix{layout.PtToMm, 0, 0, -layout.PtToMm, 0, pageHeight},
		st: drawState{
			ctm:   matrix.Identity,
			color: canvas.Black,
			width: 2,
			size:  10,
		},
		path: &canvas.Path{},
	}
}

func (s *canvasSurface) setErr(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

func (s *canvasSurface) Err() error { return s.err }

// device 返回当前用户空间到 canvas 坐标的完整变换。
func (s *canvasSurface) device() matrix.Matrix { return s.st.ctm.Mul(s.page) }

func (s *canvasSurface) point(x, y float64) vec.Vec2 {
	return apply(s.device(), x, y)
}

func apply(m matrix.Matrix, x, y float64) vec.Vec2 {
	x2, y2 := m.Apply(x, y)
	return vec.Vec2{X: x2, Y: y2}
}

// scale 是变换的线性缩放因子，用于线宽与圆弧半径。
func scale(m matrix.Matrix) float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

func toCanvasMatrix(m matrix.Matrix) canvas.Matrix {
	return canvas.Matrix{{m[0], m[2], m[4]}, {m[1], m[3], m[5]}}
}

func (s *canvasSurface) SetSourceRGBA(r, g, b, a float64) {
	s.st.color = canvas.RGBA(r, g, b, a)
}

func (s *canvasSurface) SetLineWidth(w float64)       { s.st.width = w }
func (s *canvasSurface) SetLineCap(c surface.LineCap) { s.st.cap = c }

func (s *canvasSurface) MoveTo(x, y float64) {
	p := s.point(x, y)
	s.path.MoveTo(p.X, p.Y)
	s.cur, s.hasCur = p, true
}

func (s *canvasSurface) LineTo(x, y float64) {
	if !s.hasCur {
		s.MoveTo(x, y)
		return
	}
	p := s.point(x, y)
	s.path.LineTo(p.X, p.Y)
	s.cur = p
}

// Arc 以正方向从 angle1 画到 angle2（弧度，用户空间）。
// 设备变换翻转了 y 轴，因此在 canvas 中方向相反。
func (s *canvasSurface) Arc(xc, yc, radius, angle1, angle2 float64) {
	for angle2 < angle1 {
		angle2 += 2 * math.Pi
	}
	m := s.device()
	c := apply(m, xc, yc)
	start := apply(m, xc+radius*math.Cos(angle1), yc+radius*math.Sin(angle1))
	if s.hasCur {
		s.path.LineTo(start.X, start.Y)
	} else {
		s.path.MoveTo(start.X, start.Y)
		s.hasCur = true
	}
	sweep := angle2 - angle1
	if m[0]*m[3]-m[1]*m[2] < 0 {
		sweep = -sweep
	}
	theta0 := math.Atan2(start.Y-c.Y, start.X-c.X)
	r := radius * scale(m)
	s.path.Arc(r, r, 0, theta0*180/math.Pi, (theta0+sweep)*180/math.Pi)
	s.cur = apply(m, xc+radius*math.Cos(angle2), yc+radius*math.Sin(angle2))
}

func (s *canvasSurface) Rectangle(x, y, w, h float64) {
	s.MoveTo(x, y)
	s.LineTo(x+w, y)
	s.LineTo(x+w, y+h)
	s.LineTo(x, y+h)
	s.path.Close()
	s.cur = s.point(x, y)
}

func (s *canvasSurface) newPath() {
	s.path = &canvas.Path{}
	s.hasCur = false
}

func (s *canvasSurface) Stroke() {
	if !s.path.Empty() {
		s.ctx.SetFillColor(transparent)
		s.ctx.SetStrokeColor(s.st.color)
		s.ctx.SetStrokeWidth(layout.ToMm(s.st.width * scale(s.st.ctm)))
		s.ctx.SetStrokeCapper(capper(s.st.cap))
		s.ctx.DrawPath(0, 0, s.path)
	}
	s.newPath()
}

func (s *canvasSurface) Fill() {
	if !s.path.Empty() {
		s.ctx.SetFillColor(s.st.color)
		s.ctx.SetStrokeColor(transparent)
		s.ctx.DrawPath(0, 0, s.path)
	}
	s.newPath()
}

func capper(c surface.LineCap) canvas.Capper {
	switch c {
	case surface.CapRound:
		return canvas.RoundCap
	case surface.CapSquare:
		return canvas.SquareCap
	default:
		return canvas.ButtCap
	}
}

func fontStyle(slant surface.FontSlant, weight surface.FontWeight) canvas.FontStyle {
	style := canvas.FontRegular
	if weight == surface.WeightBold {
		style = canvas.FontBold
	}
	if slant != surface.SlantNormal {
		style |= canvas.FontItalic
	}
	return style
}

func (s *canvasSurface) SelectFontFace(family string, slant surface.FontSlant, weight surface.FontWeight) error {
	style := fontStyle(slant, weight)
	fam, err := s.r.fontFamily(family, style)
	if err != nil {
		return err
	}
	s.st.family, s.st.style, s.st.font = fam, style, family
	s.st.face = nil
	return nil
}

func (s *canvasSurface) SetFontSize(size float64) {
	s.st.size = size
	s.st.face = nil
}

func (s *canvasSurface) fontFace() (*canvas.FontFace, error) {
	if s.st.family == nil {
		return nil, errors.New("尚未选择字体")
	}
	if s.st.face == nil {
		s.st.face = s.st.family.Face(s.st.size, canvas.Black, s.st.style, canvas.FontNormal)
	}
	return s.st.face, nil
}

// TextExtents 宽度为前进宽度，高度为字形轮廓的墨迹高度，单位 pt。
func (s *canvasSurface) TextExtents(text string) surface.TextExtents {
	if text == "" {
		return surface.TextExtents{}
	}
	face, err := s.fontFace()
	if err != nil {
		s.setErr(err)
		return surface.TextExtents{}
	}
	glyphs, _, err := face.ToPath(text)
	if err != nil {
		s.setErr(fmt.Errorf("测量文字 %q 失败: %w", text, err))
		return surface.TextExtents{}
	}
	ink := glyphs.Bounds()
	return surface.TextExtents{
		Width:  layout.ToPt(face.TextWidth(text)),
		Height: layout.ToPt(ink.Y1 - ink.Y0),
	}
}

// ShowText 以当前点为基线起点绘制文字（字形轮廓），然后清空当前路径。
func (s *canvasSurface) ShowText(text string) {
	defer s.newPath()
	if text == "" {
		return
	}
	if !s.hasCur {
		s.setErr(fmt.Errorf("绘制文字 %q 时没有当前点", text))
		return
	}
	face, err := s.fontFace()
	if err != nil {
		s.setErr(err)
		return
	}
	glyphs, _, err := face.ToPath(text)
	if err != nil {
		s.setErr(fmt.Errorf("生成文字 %q 的轮廓失败: %w", text, err))
		return
	}
	// 字形坐标为 mm、y 向上、基线在 0；先换成用户空间 pt，再经设备变换，最后平移到当前点
	m := matrix.Matrix{layout.MmToPt, 0, 0, -layout.MmToPt, 0, 0}.Mul(s.device())
	m[4], m[5] = s.cur.X, s.cur.Y
	glyphs = glyphs.Transform(toCanvasMatrix(m))
	s.ctx.SetFillColor(s.st.color)
	s.ctx.SetStrokeColor(transparent)
	s.ctx.DrawPath(0, 0, glyphs)
}

func (s *canvasSurface) Save() {
	s.stack = append(s.stack, s.st)
	s.ctx.Push()
}

func (s *canvasSurface) Restore() {
	if len(s.stack) == 0 {
		s.setErr(errors.New("Restore 没有匹配的 Save"))
		return
	}
	s.st = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.ctx.Pop()
}

func (s *canvasSurface) Translate(tx, ty float64) {
	s.st.ctm = matrix.Translate(tx, ty).Mul(s.st.ctm)
}

func (s *canvasSurface) Rotate(angle float64) {
	s.st.ctm = matrix.Rotate(angle).Mul(s.st.ctm)
}

func (s *canvasSurface) Transform(m matrix.Matrix) {
	s.st.ctm = m.Mul(s.st.ctm)
}

// depth 当前 Save 嵌套深度。
func (s *canvasSurface) depth() int { return len(s.stack) }
