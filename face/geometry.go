package face

import (
	"fmt"
	"math"
	"strconv"

	"seehuhn.de/go/geom/matrix"

	"github.com/ByLCY/meterfaces/layout"
)

// Sweep 是刻度与数字分布的角度区间 [From, To]（弧度，y 轴向下）。
type Sweep struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// Range returns To - From.
func (s Sweep) Range() float64 { return s.To - s.From }

// At returns the angle of point i when the sweep is divided into n equal parts.
func (s Sweep) At(i, n int) float64 {
	return s.From + s.Range()/float64(n)*float64(i)
}

// Percent returns the angle at v percent (0..100) of the sweep.
func (s Sweep) Percent(v float64) float64 {
	return s.From + s.Range()/100*v
}

func (s Sweep) Validate() error {
	if !(s.To > s.From) {
		return fmt.Errorf("角度区间无效: from=%g to=%g", s.From, s.To)
	}
	return nil
}

// TickClass 刻度等级。
type TickClass int

const (
	TickMinor TickClass = iota
	TickMedium
	TickMajor
)

func (c TickClass) String() string {
	switch c {
	case TickMajor:
		return "major"
	case TickMedium:
		return "medium"
	default:
		return "minor"
	}
}

// Extension 是刻度长度相对 TickDelta 的倍数。
func (c TickClass) Extension() float64 {
	switch c {
	case TickMajor:
		return 1.0
	case TickMedium:
		return 0.8
	default:
		return 0.6
	}
}

// Classify 按序号取模确定刻度等级：先看主刻度间隔，再看中刻度间隔。
func (r Ruler) Classify(i int) TickClass {
	switch {
	case i%r.MajorEvery == 0:
		return TickMajor
	case i%r.MediumEvery == 0:
		return TickMedium
	default:
		return TickMinor
	}
}

// Tick 一根刻度线。半径与线宽单位为 pt。
type Tick struct {
	Index int
	Angle float64
	Class TickClass
	Inner float64 // 起点半径，即刻度圈半径
	Outer float64 // 终点半径 = Inner + TickDelta × Extension，可能小于 Inner
	Width float64
}

// Segment returns the tick's end points in the face frame.
func (t Tick) Segment() (x1, y1, x2, y2 float64) {
	c, s := math.Cos(t.Angle), math.Sin(t.Angle)
	return c * t.Inner, s * t.Inner, c * t.Outer, s * t.Outer
}

// Ticks returns the Divisions+1 ticks of the ruler over the sweep.
func (r Ruler) Ticks(sw Sweep, st Strokes) []Tick {
	inner := layout.ToPt(r.Radius)
	delta := layout.ToPt(r.TickDelta)
	ticks := make([]Tick, 0, r.Divisions+1)
	for i := 0; i <= r.Divisions; i++ {
		class := r.Classify(i)
		width := st.Minor
		if class != TickMinor {
			width = st.Major
		}
		ticks = append(ticks, Tick{
			Index: i,
			Angle: sw.At(i, r.Divisions),
			Class: class,
			Inner: inner,
			Outer: inner + delta*class.Extension(),
			Width: layout.ToPt(width),
		})
	}
	return ticks
}

// Label 一个刻度数字。Radius、X、Y 单位为 pt。
type Label struct {
	Index    int
	Text     string
	Angle    float64
	Radius   float64
	X, Y     float64 // 锚点
	Rotation float64 // Angle + π/2，使数字底边与刻度圈相切
}

// Labels returns the Numerals+1 numeral labels, evenly spread over the sweep.
func (r Ruler) Labels(sw Sweep) []Label {
	radius := layout.ToPt(r.Radius + r.NumeralDelta)
	labels := make([]Label, 0, r.Numerals+1)
	for i := 0; i <= r.Numerals; i++ {
		a := sw.At(i, r.Numerals)
		labels = append(labels, Label{
			Index:    i,
			Text:     strconv.Itoa(i * r.LabelStep),
			Angle:    a,
			Radius:   radius,
			X:        math.Cos(a) * radius,
			Y:        math.Sin(a) * radius,
			Rotation: a + math.Pi/2,
		})
	}
	return labels
}

// Frame 是数字的局部坐标系：先旋转，再平移到锚点。
func (l Label) Frame() matrix.Matrix {
	return Derive(matrix.Identity, l.X, l.Y, l.Rotation)
}

// Derive returns the frame obtained from base by moving the origin to (x, y)
// and rotating by angle there. Points are mapped by the result as
// rotate, then translate, then base.
func Derive(base matrix.Matrix, x, y, angle float64) matrix.Matrix {
	return matrix.Rotate(angle).Mul(matrix.Translate(x, y)).Mul(base)
}

// Centered 返回宽度为 width 的文本在锚点处水平居中时的起笔 x。
func Centered(width float64) float64 { return -width / 2 }

// Border returns the face border (pt) relative to the local origin.
func (s Spec) Border() (x, y, w, h float64) {
	return -layout.ToPt(s.Width) / 2, -layout.ToPt(s.Height + s.CenterDiameter),
		layout.ToPt(s.Width), layout.ToPt(s.Height)
}

// HandTip returns the end point (pt) of the debug hand at the configured value.
func (s Spec) HandTip() (x, y float64) {
	a := s.Sweep.Percent(s.Hand.Value)
	r := layout.ToPt(s.Hand.Radius)
	return r * math.Cos(a), r * math.Sin(a)
}
