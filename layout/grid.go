package layout

import (
	"fmt"
	"math"
)

// eps 吸收累加误差，使恰好放满的情况不会因浮点舍入少一行/列。
const eps = 1e-9

// Validate 检查页面参数。
func (p PageSpec) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("页面尺寸必须为正: %gx%g", p.Width, p.Height)
	}
	if p.Margin < 0 || p.FaceMargin < 0 {
		return fmt.Errorf("边距不能为负: margin=%g faceMargin=%g", p.Margin, p.FaceMargin)
	}
	return nil
}

// FootprintOf returns the tiling stride of a face on this page.
func (p PageSpec) FootprintOf(face FaceSize) Footprint {
	return Footprint{
		Width:  face.Width + 2*p.FaceMargin,
		Height: face.Height + 2*p.FaceMargin,
	}
}

// fit 计算一个方向上能放下的表盘数：满足 margin + n*stride <= size - margin 的最大 n。
func fit(size, margin, stride float64) int {
	if stride <= 0 {
		return 0
	}
	n := 0
	for margin+float64(n+1)*stride <= size-margin+eps {
		n++
	}
	return n
}

// Tile 在页面上密铺表盘。行从上边距开始，列从左边距开始；
// 放不下任何一个表盘时返回空结果，不视为错误。
func Tile(page PageSpec, face FaceSize) Result {
	fp := page.FootprintOf(face)
	res := Result{
		Page:      page,
		Face:      face,
		Footprint: fp,
		Rows:      fit(page.Height, page.Margin, fp.Height),
		Cols:      fit(page.Width, page.Margin, fp.Width),
	}
	if res.Rows == 0 || res.Cols == 0 {
		res.Rows, res.Cols = 0, 0
		tracer().Infof("page %gx%g too small for face footprint %gx%g", page.Width, page.Height, fp.Width, fp.Height)
		return res
	}

	res.Cells = make([]Cell, 0, res.Rows*res.Cols)
	for row := 0; row < res.Rows; row++ {
		y := page.Margin + float64(row)*fp.Height
		// 外框上沿与行游标对齐，原点在外框下方 CenterDiameter 处
		originY := y + face.Height + face.CenterDiameter
		for col := 0; col < res.Cols; col++ {
			x := page.Margin + float64(col)*fp.Width
			originX := x + page.FaceMargin + face.Width/2
			res.Cells = append(res.Cells, Cell{
				Row:     row,
				Col:     col,
				OriginX: originX,
				OriginY: originY,
				Box: Rect{
					X:      originX - face.Width/2,
					Y:      originY - face.Height - face.CenterDiameter,
					Width:  face.Width,
					Height: face.Height,
				},
			})
		}
	}
	tracer().Debugf("tiled %d x %d faces", res.Cols, res.Rows)
	return res
}

// ExpectedCount 是单个方向上的闭式表盘数 floor((P-2M)/F)。
func ExpectedCount(size, margin, stride float64) int {
	if stride <= 0 || size-2*margin < 0 {
		return 0
	}
	return int(math.Floor((size-2*margin)/stride + eps))
}
