package layout

import (
	"fmt"

	"github.com/ByLCY/meterfaces/dsl"
)

// 本文件定义长度单位与 mm↔pt 换算。配置统一使用毫米，绘图表面使用 pt（72/in）。

// Unit represents the original unit of a length value.
type Unit int

const (
	UnitNone Unit = iota // 未写单位，按 mm 处理
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants between pt and mm.
const (
	MmPerInch = 25.4
	PtPerInch = 72.0
	MmToPt    = PtPerInch / MmPerInch
	PtToMm    = MmPerInch / PtPerInch
)

// ToPt 将毫米(mm)转换为点(pt)。所有几何常量在交给绘图表面前都必须经过这里。
func ToPt(mm float64) float64 { return mm / MmPerInch * PtPerInch }

// ToMm 将点(pt)转换为毫米(mm)。
func ToMm(pt float64) float64 { return pt / PtPerInch * MmPerInch }

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

func unitFromString(s string) Unit {
	switch s {
	case "mm":
		return UnitMM
	case "cm":
		return UnitCM
	case "in":
		return UnitIN
	case "pt":
		return UnitPT
	}
	return UnitNone
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// MM 构造毫米长度。
func MM(v float64) Length { return Length{Value: v, Unit: UnitMM} }

// ToMM converts the length to millimeters; unit-less values are millimeters.
func (l Length) ToMM() float64 {
	switch l.Unit {
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * MmPerInch
	case UnitPT:
		return ToMm(l.Value)
	default:
		return l.Value
	}
}

// ToPT converts the length to points.
func (l Length) ToPT() float64 {
	if l.Unit == UnitPT {
		return l.Value
	}
	return ToPt(l.ToMM())
}

func (l Length) String() string {
	return fmt.Sprintf("%g%s", l.Value, UnitToString(l.Unit))
}

// ParseLength parses a length literal like "59.4mm", "8pt" or "2.54cm".
func ParseLength(value string) (Length, error) {
	q, err := dsl.ParseQuantity(value)
	if err != nil {
		return Length{}, err
	}
	if !q.IsLength() {
		return Length{}, fmt.Errorf("%q 不是长度（单位 %s）", value, q.Unit)
	}
	return Length{Value: q.Value, Unit: unitFromString(q.Unit)}, nil
}
