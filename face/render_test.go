package face

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/ByLCY/meterfaces/layout"
	"github.com/ByLCY/meterfaces/surface/record"
)

func drawDefault(t *testing.T, spec Spec) *record.Surface {
	t.Helper()
	rec := record.New()
	if err := Draw(rec, spec); err != nil {
		t.Fatalf("Draw 失败: %v", err)
	}
	return rec
}

// tickStrokes 返回只有一段直线的描边（刻度或指针）。
func tickStrokes(rec *record.Surface) []record.Op {
	var out []record.Op
	for _, op := range rec.Filter(record.OpStroke) {
		if len(op.Path) == 2 && op.Path[0].Kind == record.SegMove && op.Path[1].Kind == record.SegLine {
			out = append(out, op)
		}
	}
	return out
}

func TestDrawEmitsAllParts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "meterfaces.face")
	defer teardown()
	//
	rec := drawDefault(t, Default())
	// 外框 + 2 条刻度弧 + 49 + 61 根刻度
	if got := len(rec.Filter(record.OpStroke)); got != 1+2+49+61 {
		t.Fatalf("stroke count %d", got)
	}
	if got := len(tickStrokes(rec)); got != 49+61 {
		t.Fatalf("tick count %d", got)
	}
	if got := len(rec.Filter(record.OpFill)); got != 1 {
		t.Fatalf("fill count %d", got)
	}
	// 7 + 7 个数字，Logo，名称，呼号日期，页脚
	if got := len(rec.Filter(record.OpText)); got != 18 {
		t.Fatalf("text count %d", got)
	}
	for _, s := range []string{"拾壹工坊", "AMMETER CLOCK", "BG1REN, 2022-05-09", "Powered by ESP8266", "12", "60"} {
		if len(rec.TextOps(s)) != 1 {
			t.Fatalf("text %q not drawn exactly once", s)
		}
	}
	if rec.Depth() != 0 {
		t.Fatalf("unbalanced save/restore: depth %d", rec.Depth())
	}
	if rec.MaxDepth != 1 {
		t.Fatalf("labels should nest exactly one level, got %d", rec.MaxDepth)
	}
}

func TestDrawTickGeometry(t *testing.T) {
	spec := Default()
	rec := drawDefault(t, spec)
	ticks := append(spec.Hour.Ticks(spec.Sweep, spec.Strokes), spec.Minute.Ticks(spec.Sweep, spec.Strokes)...)
	strokes := tickStrokes(rec)
	if len(strokes) != len(ticks) {
		t.Fatalf("%d strokes for %d ticks", len(strokes), len(ticks))
	}
	for i, tick := range ticks {
		x1, y1, x2, y2 := tick.Segment()
		got := append(append([]float64{}, strokes[i].Path[0].Args...), strokes[i].Path[1].Args...)
		if d := cmp.Diff([]float64{x1, y1, x2, y2}, got, cmpopts.EquateApprox(0, 1e-9)); d != "" {
			t.Fatalf("tick %d (-want +got):\n%s", i, d)
		}
		if math.Abs(strokes[i].Width-tick.Width) > 1e-12 {
			t.Fatalf("tick %d width %g want %g", i, strokes[i].Width, tick.Width)
		}
	}
}

func TestDrawArcsUseRulerRadius(t *testing.T) {
	spec := Default()
	rec := drawDefault(t, spec)
	var radii []float64
	for _, op := range rec.Filter(record.OpStroke) {
		for _, seg := range op.Path {
			if seg.Kind == record.SegArc {
				radii = append(radii, seg.Args[2])
				if seg.Args[3] != spec.Sweep.From || seg.Args[4] != spec.Sweep.To {
					t.Fatalf("arc sweep %v", seg.Args)
				}
			}
		}
	}
	want := []float64{layout.ToPt(32.0), layout.ToPt(31.2)}
	if d := cmp.Diff(want, radii, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Fatalf("arc radii (-want +got):\n%s", d)
	}
}

func TestNumeralsAreCenteredInRotatedFrame(t *testing.T) {
	spec := Default()
	rec := drawDefault(t, spec)
	check := func(r Ruler) {
		for _, l := range r.Labels(spec.Sweep) {
			var op *record.Op
			for _, cand := range rec.TextOps(l.Text) {
				if cand.Size == r.FontSize {
					c := cand
					op = &c
				}
			}
			if op == nil {
				t.Fatalf("numeral %q (size %g) not drawn", l.Text, r.FontSize)
			}
			w := float64(utf8.RuneCountInString(l.Text)) * r.FontSize * 0.5
			if math.Abs(op.Args[0]+w/2) > 1e-9 || op.Args[1] != 0 {
				t.Fatalf("numeral %q drawn at (%g, %g), want (%g, 0)", l.Text, op.Args[0], op.Args[1], -w/2)
			}
			if d := cmp.Diff(l.Frame(), op.CTM, cmpopts.EquateApprox(0, 1e-9)); d != "" {
				t.Fatalf("numeral %q frame (-want +got):\n%s", l.Text, d)
			}
			if op.Font != spec.Fonts.Numeral || op.Depth != 1 {
				t.Fatalf("numeral %q font %q depth %d", l.Text, op.Font, op.Depth)
			}
		}
	}
	check(spec.Hour)
	check(spec.Minute)
}

func TestLogoBlockFilledBeforeText(t *testing.T) {
	spec := Default()
	rec := drawDefault(t, spec)
	fillAt, textAt := -1, -1
	for i, op := range rec.Ops {
		if op.Kind == record.OpFill {
			fillAt = i
		}
		if op.Kind == record.OpText && op.Text == spec.Texts.Logo {
			textAt = i
		}
	}
	if fillAt < 0 || textAt < 0 || fillAt > textAt {
		t.Fatalf("logo fill at %d, text at %d", fillAt, textAt)
	}
	fill := rec.Ops[fillAt]
	text := rec.Ops[textAt]
	if fill.Color != (record.RGBA{A: 1}) || text.Color != (record.RGBA{R: 1, G: 1, B: 1, A: 1}) {
		t.Fatalf("logo colors: block %+v text %+v", fill.Color, text.Color)
	}
	bx, by, _, _ := spec.Border()
	pad := layout.ToPt(0.5)
	w := 4 * 7 * 0.5
	h := 0.7 * 7
	wantRect := []float64{bx + pad, by + pad}
	if d := cmp.Diff(wantRect, fill.Path[0].Args, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Fatalf("logo block corner (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]float64{bx + pad + w + 2*pad, by + pad + h + 2*pad}, fill.Path[2].Args, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Fatalf("logo block far corner (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]float64{bx + 2*pad, by + pad + 0.5*pad + h}, text.Args, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Fatalf("logo text origin (-want +got):\n%s", d)
	}
	if text.Font != "SimHei" {
		t.Fatalf("logo font %q", text.Font)
	}
}

func TestNameCaptionFooterPlacement(t *testing.T) {
	spec := Default()
	rec := drawDefault(t, spec)
	opts := cmpopts.EquateApprox(0, 1e-9)

	name := rec.TextOps("AMMETER CLOCK")[0]
	nw := 13 * 7 * 0.5
	if d := cmp.Diff([]float64{-nw / 2, layout.ToPt(-16)}, name.Args, opts); d != "" {
		t.Fatalf("name (-want +got):\n%s", d)
	}
	caption := rec.TextOps("BG1REN, 2022-05-09")[0]
	cw := 18 * 5 * 0.5
	if d := cmp.Diff([]float64{-cw / 2, layout.ToPt(-14)}, caption.Args, opts); d != "" {
		t.Fatalf("caption (-want +got):\n%s", d)
	}
	if name.Font != "Cochin" || caption.Size != 5 {
		t.Fatalf("name/caption font: %q %g", name.Font, caption.Size)
	}

	footer := rec.TextOps("Powered by ESP8266")[0]
	bx, by, bw, _ := spec.Border()
	fw := 18 * 5 * 0.5
	fh := 0.7 * 5
	want := []float64{bx + bw - fw - layout.ToPt(1), by + fh + layout.ToPt(1)}
	if d := cmp.Diff(want, footer.Args, opts); d != "" {
		t.Fatalf("footer (-want +got):\n%s", d)
	}
}

func TestHandOnlyWhenEnabled(t *testing.T) {
	spec := Default()
	rec := drawDefault(t, spec)
	for _, op := range rec.Filter(record.OpStroke) {
		if op.Color.R == 1 {
			t.Fatalf("hand drawn while disabled")
		}
	}

	spec.Hand.Enabled = true
	spec.Hand.Value = 75
	rec = drawDefault(t, spec)
	strokes := rec.Filter(record.OpStroke)
	last := strokes[len(strokes)-1]
	if last.Color != (record.RGBA{R: 1, A: 1}) || last.Width != 0.5 {
		t.Fatalf("hand style %+v width %g", last.Color, last.Width)
	}
	x, y := spec.HandTip()
	got := append(append([]float64{}, last.Path[0].Args...), last.Path[1].Args...)
	if d := cmp.Diff([]float64{0, 0, x, y}, got, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Fatalf("hand (-want +got):\n%s", d)
	}
}

func TestMissingFontAbortsFace(t *testing.T) {
	for _, font := range []string{"Luminari", "Cochin", "SimHei"} {
		rec := record.New()
		rec.Missing = map[string]bool{font: true}
		err := Draw(rec, Default())
		if err == nil || !strings.Contains(err.Error(), font) {
			t.Fatalf("missing %s: err = %v", font, err)
		}
	}
}

func TestEmptyTextsAreSkipped(t *testing.T) {
	spec := Default()
	spec.Texts.Logo = ""
	spec.Texts.Name = ""
	spec.Texts.Caption = ""
	spec.Texts.Footer = ""
	rec := drawDefault(t, spec)
	if got := len(rec.Filter(record.OpText)); got != 14 {
		t.Fatalf("only numerals expected, got %d texts", got)
	}
	if got := len(rec.Filter(record.OpFill)); got != 0 {
		t.Fatalf("no logo block expected, got %d fills", got)
	}
}

func TestDrawNilSurface(t *testing.T) {
	if err := Draw(nil, Default()); err == nil {
		t.Fatalf("nil surface accepted")
	}
}
