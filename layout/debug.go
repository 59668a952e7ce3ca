package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EncodeDebug 以缩进 JSON 写出铺排结果。
func EncodeDebug(w io.Writer, res *Result) error {
	if res == nil {
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteDebugJSON 将铺排结果输出到文件，便于核对每个表盘的位置与外框。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建调试文件失败: %w", err)
	}
	if err := EncodeDebug(f, res); err != nil {
		f.Close()
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return f.Close()
}
