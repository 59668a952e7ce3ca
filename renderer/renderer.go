package renderer

import "github.com/ByLCY/meterfaces/page"

// Renderer 将一页表盘输出为最终文件，例如 PDF 或 SVG。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(opts page.Options) ([]byte, error)
}
