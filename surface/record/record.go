// Package record provides an in-memory surface.Surface that records every
// drawing operation together with the transform in effect.
//
// It is used by tests to check dial geometry without a real backend: text
// is "measured" with a fixed advance per rune, fonts always resolve unless
// listed in Missing.
package record

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"github.com/ByLCY/meterfaces/surface"
)

// Kind 记录的操作类型。
type Kind string

const (
	OpStroke    Kind = "stroke"
	OpFill      Kind = "fill"
	OpText      Kind = "text"
	OpSave      Kind = "save"
	OpRestore   Kind = "restore"
	OpTranslate Kind = "translate"
	OpRotate    Kind = "rotate"
	OpTransform Kind = "transform"
	OpFont      Kind = "font"
)

// SegKind 路径段类型。
type SegKind string

const (
	SegMove  SegKind = "M"
	SegLine  SegKind = "L"
	SegArc   SegKind = "A" // Args: xc, yc, r, a1, a2
	SegClose SegKind = "Z"
)

// Segment 是当前路径中的一段，坐标为记录时的用户坐标。
type Segment struct {
	Kind SegKind
	Args []float64
}

// RGBA 颜色。
type RGBA struct{ R, G, B, A float64 }

// Op 是一条已记录的操作及其发生时的图形状态。
type Op struct {
	Kind  Kind
	Text  string
	Args  []float64
	Path  []Segment
	CTM   matrix.Matrix
	Color RGBA
	Width float64
	Cap   surface.LineCap
	Font  string
	Size  float64
	Depth int
}

// Device maps a user-space point of this op to page coordinates.
func (op Op) Device(x, y float64) vec.Vec2 {
	return apply(op.CTM, x, y)
}

type gstate struct {
	ctm   matrix.Matrix
	color RGBA
	width float64
	cap   surface.LineCap
	font  string
	size  float64
}

// Surface 记录型绘图表面。
type Surface struct {
	// Missing 中的字体名在 SelectFontFace 时报错。
	Missing map[string]bool
	// Advance 是每个字符的宽度（相对字号），默认 0.5。
	Advance float64

	Ops      []Op
	MaxDepth int

	st     gstate
	stack  []gstate
	path   []Segment
	cx, cy float64
	hasCur bool
	err    error
}

var _ surface.Surface = (*Surface)(nil)

// New returns an empty recording surface with the identity transform.
func New() *Surface {
	return &Surface{
		Advance: 0.5,
		st:      gstate{ctm: matrix.Identity, width: 2, color: RGBA{A: 1}, size: 10},
	}
}

// Depth 当前 Save 嵌套深度。
func (s *Surface) Depth() int { return len(s.stack) }

// CTM 当前变换矩阵。
func (s *Surface) CTM() matrix.Matrix { return s.st.ctm }

func (s *Surface) record(op Op) {
	op.CTM = s.st.ctm
	op.Color = s.st.color
	op.Width = s.st.width
	op.Cap = s.st.cap
	op.Font = s.st.font
	op.Size = s.st.size
	op.Depth = len(s.stack)
	s.Ops = append(s.Ops, op)
}

func (s *Surface) setErr(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *Surface) SetSourceRGBA(r, g, b, a float64) { s.st.color = RGBA{r, g, b, a} }
func (s *Surface) SetLineWidth(w float64)           { s.st.width = w }
func (s *Surface) SetLineCap(c surface.LineCap)     { s.st.cap = c }

func (s *Surface) MoveTo(x, y float64) {
	s.path = append(s.path, Segment{Kind: SegMove, Args: []float64{x, y}})
	s.cx, s.cy, s.hasCur = x, y, true
}

func (s *Surface) LineTo(x, y float64) {
	if !s.hasCur {
		s.MoveTo(x, y)
		return
	}
	s.path = append(s.path, Segment{Kind: SegLine, Args: []float64{x, y}})
	s.cx, s.cy = x, y
}

func (s *Surface) Arc(xc, yc, radius, angle1, angle2 float64) {
	x0, y0 := polar(xc, yc, radius, angle1)
	if s.hasCur {
		s.LineTo(x0, y0)
	} else {
		s.MoveTo(x0, y0)
	}
	s.path = append(s.path, Segment{Kind: SegArc, Args: []float64{xc, yc, radius, angle1, angle2}})
	s.cx, s.cy = polar(xc, yc, radius, angle2)
}

func (s *Surface) Rectangle(x, y, w, h float64) {
	s.MoveTo(x, y)
	s.LineTo(x+w, y)
	s.LineTo(x+w, y+h)
	s.LineTo(x, y+h)
	s.path = append(s.path, Segment{Kind: SegClose})
	s.cx, s.cy = x, y
}

func (s *Surface) consume(kind Kind) {
	s.record(Op{Kind: kind, Path: s.path})
	s.path = nil
	s.hasCur = false
}

func (s *Surface) Stroke() { s.consume(OpStroke) }
func (s *Surface) Fill()   { s.consume(OpFill) }

func (s *Surface) SelectFontFace(family string, slant surface.FontSlant, weight surface.FontWeight) error {
	if family == "" {
		return errors.New("record: 字体名为空")
	}
	if s.Missing[family] {
		return fmt.Errorf("record: 找不到字体 %s", family)
	}
	s.st.font = family
	s.record(Op{Kind: OpFont, Text: family, Args: []float64{float64(slant), float64(weight)}})
	return nil
}

func (s *Surface) SetFontSize(size float64) { s.st.size = size }

// TextExtents 用固定字宽估算：宽 = 字符数 × 字号 × Advance，高 = 0.7 × 字号。
func (s *Surface) TextExtents(text string) surface.TextExtents {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return surface.TextExtents{}
	}
	return surface.TextExtents{
		Width:  float64(n) * s.st.size * s.Advance,
		Height: 0.7 * s.st.size,
	}
}

func (s *Surface) ShowText(text string) {
	if s.st.font == "" {
		s.setErr(errors.New("record: ShowText 之前未选择字体"))
		return
	}
	if !s.hasCur {
		s.setErr(errors.New("record: ShowText 没有当前点"))
		return
	}
	s.record(Op{Kind: OpText, Text: text, Args: []float64{s.cx, s.cy}})
	s.path = nil
	s.hasCur = false
}

func (s *Surface) Save() {
	s.stack = append(s.stack, s.st)
	if len(s.stack) > s.MaxDepth {
		s.MaxDepth = len(s.stack)
	}
	s.record(Op{Kind: OpSave})
}

func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		s.setErr(errors.New("record: Restore 没有匹配的 Save"))
		return
	}
	s.st = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.record(Op{Kind: OpRestore})
}

func (s *Surface) Translate(tx, ty float64) {
	s.record(Op{Kind: OpTranslate, Args: []float64{tx, ty}})
	s.st.ctm = matrix.Translate(tx, ty).Mul(s.st.ctm)
}

func (s *Surface) Rotate(angle float64) {
	s.record(Op{Kind: OpRotate, Args: []float64{angle}})
	s.st.ctm = matrix.Rotate(angle).Mul(s.st.ctm)
}

func (s *Surface) Transform(m matrix.Matrix) {
	s.record(Op{Kind: OpTransform, Args: m[:]})
	s.st.ctm = m.Mul(s.st.ctm)
}

func (s *Surface) Err() error { return s.err }

// Filter 返回指定类型的全部操作。
func (s *Surface) Filter(kind Kind) []Op {
	var out []Op
	for _, op := range s.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// TextOps 返回内容为 text 的全部文本操作。
func (s *Surface) TextOps(text string) []Op {
	var out []Op
	for _, op := range s.Filter(OpText) {
		if op.Text == text {
			out = append(out, op)
		}
	}
	return out
}
