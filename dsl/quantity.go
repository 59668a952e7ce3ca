package dsl

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// 配置文件中的数值字面量，例如 "59.4mm"、"8pt"、"225deg"、"-1.8mm"。

var (
	quantityLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d*|\.\d+|\d+)(?:[eE][-+]?\d+)?`},
		{Name: "Unit", Pattern: `mm|cm|in|pt|deg|rad|%`},
	})

	quantityParser = participle.MustBuild[Quantity](
		participle.Lexer(quantityLexer),
		participle.Elide("Whitespace"),
	)
)

// Quantity is a number with an optional unit suffix.
type Quantity struct {
	Value float64 `parser:"@Number"`
	Unit  string  `parser:"@Unit?"`
}

// String 按字面量格式输出。
func (q Quantity) String() string {
	return fmt.Sprintf("%g%s", q.Value, q.Unit)
}

// IsLength reports whether the unit denotes a length (or is omitted).
func (q Quantity) IsLength() bool {
	switch q.Unit {
	case "", "mm", "cm", "in", "pt":
		return true
	}
	return false
}

// IsAngle reports whether the unit denotes an angle.
func (q Quantity) IsAngle() bool {
	return q.Unit == "deg" || q.Unit == "rad"
}

// ParseQuantity parses a single literal such as "59.4mm".
func ParseQuantity(input string) (Quantity, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Quantity{}, fmt.Errorf("空的数值字面量")
	}
	q, err := quantityParser.ParseString("", input)
	if err != nil {
		return Quantity{}, fmt.Errorf("无法解析数值 %q: %w", input, err)
	}
	return *q, nil
}
