package asset

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/younwookim/gamert/internal/infrastructure/render"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is used when a Style leaves Size at zero.
const DefaultFontSize = 16

// Style configures how a font draws text.
type Style struct {
	Size     float64
	Color    color.Color // nil keeps the context fill color
	Align    render.TextAlign
	Baseline render.TextBaseline
}

// Font is a loaded font family.
type Font struct {
	id     string
	family string
	source *text.GoTextFaceSource
}

func parseFont(data []byte) (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return src, nil
}

var builtin = sync.OnceValues(func() (*Font, error) {
	src, err := parseFont(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return &Font{id: "builtin", family: "Go Regular", source: src}, nil
})

// Builtin returns the Go Regular font outside any registry, for screens that
// draw before fonts are loaded.
func Builtin() (*Font, error) {
	return builtin()
}

// ID returns the registry id.
func (f *Font) ID() string {
	return f.id
}

// Family returns the family name the font was registered with.
func (f *Font) Family() string {
	return f.family
}

// String returns the quoted family name.
func (f *Font) String() string {
	return fmt.Sprintf("%q", f.family)
}

// Face returns a face of the given pixel size.
func (f *Font) Face(size float64) *text.GoTextFace {
	if size <= 0 {
		size = DefaultFontSize
	}
	return &text.GoTextFace{Source: f.source, Size: size}
}

// Apply configures ctx to draw with this font and style.
func (f *Font) Apply(ctx *render.Context, st Style) {
	ctx.SetFont(f.Face(st.Size))
	if st.Color != nil {
		ctx.SetFillColor(st.Color)
	}
	ctx.SetTextAlign(st.Align)
	ctx.SetTextBaseline(st.Baseline)
}

// Draw draws s at (x, y) without changing the state of ctx.
func (f *Font) Draw(ctx *render.Context, s string, x, y float64, st Style) {
	ctx.Save()
	defer ctx.Restore()
	f.Apply(ctx, st)
	ctx.FillText(s, x, y)
}

// Measure returns the size of s without changing the state of ctx.
func (f *Font) Measure(ctx *render.Context, s string, st Style) (width, height float64) {
	ctx.Save()
	defer ctx.Restore()
	f.Apply(ctx, st)
	return ctx.MeasureText(s)
}
