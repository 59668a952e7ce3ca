package layout

// 该文件定义页面铺排结果，供 page 渲染与调试 JSON 共用。单位均为毫米。

// PageSpec 描述纸张尺寸与边距。
type PageSpec struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Margin     float64 `json:"margin"`     // 纸张外边距
	FaceMargin float64 `json:"faceMargin"` // 表盘之间的间距（每侧）
}

// A4 returns the default page: A4 portrait, 7.5mm page margin, 2.5mm face margin.
func A4() PageSpec {
	return PageSpec{Width: 210, Height: 297, Margin: 7.5, FaceMargin: 2.5}
}

// FaceSize 是单个表盘的外框尺寸与中心孔直径。
type FaceSize struct {
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	CenterDiameter float64 `json:"centerDiameter"`
}

// Rect 是页面坐标中的矩形（左上角 + 宽高）。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Overlaps reports whether two rectangles share interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Cell 是一个表盘在页面上的位置。
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
	// 表盘局部坐标系原点（页面坐标，mm）
	OriginX float64 `json:"originX"`
	OriginY float64 `json:"originY"`
	// 表盘外框
	Box Rect `json:"box"`
}

// Footprint 是表盘加上两侧间距后的占位尺寸。
type Footprint struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Result 保存一次铺排的全部结果。
type Result struct {
	Page      PageSpec  `json:"page"`
	Face      FaceSize  `json:"face"`
	Footprint Footprint `json:"footprint"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	Cells     []Cell    `json:"cells"`
}
