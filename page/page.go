package page

import (
	"fmt"
	"math"

	"github.com/ByLCY/meterfaces/face"
	"github.com/ByLCY/meterfaces/layout"
	"github.com/ByLCY/meterfaces/surface"
)

const (
	gridStep  = 10.0 // mm
	crossSize = 2.0  // mm
	// 调试线宽直接用 pt
	debugLineWidth = 0.5
)

// Options 描述一页：表盘、纸张与调试网格开关（默认关闭）。
type Options struct {
	Face face.Spec
	Page layout.PageSpec
	Grid bool
}

// Validate 在绘制前检查参数，出错时不产生任何绘制调用。
func (o Options) Validate() error {
	if err := o.Page.Validate(); err != nil {
		return err
	}
	return o.Face.Validate()
}

// Draw 绘制整页并返回铺排结果。放不下任何表盘时返回空结果且不报错；
// 任一表盘出错立即中止整页。
func Draw(s surface.Surface, opts Options) (layout.Result, error) {
	if s == nil {
		return layout.Result{}, fmt.Errorf("page: 绘图表面为空")
	}
	if err := opts.Validate(); err != nil {
		return layout.Result{}, fmt.Errorf("参数无效: %w", err)
	}
	if opts.Grid {
		drawGrid(s, opts.Page)
	}

	res := layout.Tile(opts.Page, opts.Face.Size())
	for _, c := range res.Cells {
		s.Save()
		s.Translate(layout.ToPt(c.OriginX), layout.ToPt(c.OriginY))
		err := face.Draw(s, opts.Face)
		s.Restore()
		if err != nil {
			return res, fmt.Errorf("绘制第 %d 行第 %d 列表盘失败: %w", c.Row+1, c.Col+1, err)
		}
	}
	tracer().Infof("drew %d faces (%d x %d)", len(res.Cells), res.Cols, res.Rows)
	return res, s.Err()
}

// drawGrid 每 10mm 画一个十字，覆盖整页（含右/下边缘）。
func drawGrid(s surface.Surface, page layout.PageSpec) {
	nx := int(math.Floor(page.Width/gridStep + 1e-9))
	ny := int(math.Floor(page.Height/gridStep + 1e-9))
	for i := 0; i <= nx; i++ {
		for j := 0; j <= ny; j++ {
			drawCross(s, float64(i)*gridStep, float64(j)*gridStep)
		}
	}
}

func drawCross(s surface.Surface, x, y float64) {
	half := crossSize / 2
	s.SetSourceRGBA(0, 0, 0, 0.2)
	s.SetLineWidth(debugLineWidth)
	s.MoveTo(layout.ToPt(x-half), layout.ToPt(y))
	s.LineTo(layout.ToPt(x+half), layout.ToPt(y))
	s.MoveTo(layout.ToPt(x), layout.ToPt(y-half))
	s.LineTo(layout.ToPt(x), layout.ToPt(y+half))
	s.Stroke()
}
