package poster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	_ "golang.org/x/image/webp"

	"github.com/posterlab/posters-ms-go/internal/port"
)

const (
	posterWidth = 640
	marginX     = 56
	headerH     = 130
	footerH     = 110
	frameW      = 6

	headlineText = "WANTED"
	footerText   = "DEAD OR ALIVE"

	headlineSize = 72
	footerSize   = 36
)

var (
	parchment = color.NRGBA{R: 0xEA, G: 0xD9, B: 0xB0, A: 0xFF}
	ink       = color.NRGBA{R: 0x3B, G: 0x2A, B: 0x16, A: 0xFF}
)

// Renderer composes uploaded photographs into old-west wanted posters.
type Renderer struct {
	headline *truetype.Font
	body     *truetype.Font
}

// compile-time check: *Renderer must satisfy port.PosterRenderer
var _ port.PosterRenderer = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	headline, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse headline font: %w", err)
	}
	body, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse body font: %w", err)
	}
	return &Renderer{headline: headline, body: body}, nil
}

// Render decodes the source photograph, composes the poster and returns it
// encoded as JPEG. The context is checked between the expensive stages so a
// worker deadline resolves the task instead of burning CPU to no end.
func (p *Renderer) Render(ctx context.Context, r io.Reader) (io.ReadCloser, string, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("decode source image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	mugshot := p.mugshot(src)
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	canvas := imaging.New(posterWidth, headerH+mugshot.Bounds().Dy()+footerH, parchment)
	canvas = imaging.Paste(canvas, mugshot, image.Pt(marginX, headerH))
	drawFrame(canvas)

	if err := p.drawCentredText(canvas, p.headline, headlineText, headlineSize, 94); err != nil {
		return nil, "", fmt.Errorf("draw headline: %w", err)
	}
	footerBaseline := canvas.Bounds().Dy() - footerH/2 + footerSize/3
	if err := p.drawCentredText(canvas, p.body, footerText, footerSize, footerBaseline); err != nil {
		return nil, "", fmt.Errorf("draw footer: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	buf := &bytes.Buffer{}
	if err := imaging.Encode(buf, canvas, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, "", fmt.Errorf("encode poster: %w", err)
	}
	return io.NopCloser(buf), "image/jpeg", nil
}

// mugshot scales the photograph to the poster column and gives it the faded
// sepia look of sun-bleached paper.
func (p *Renderer) mugshot(src image.Image) *image.NRGBA {
	resized := imaging.Resize(src, posterWidth-2*marginX, 0, imaging.Lanczos)
	grey := imaging.Grayscale(resized)
	return imaging.AdjustFunc(grey, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: clamp8(float64(c.R)*0.393 + float64(c.G)*0.769 + float64(c.B)*0.189),
			G: clamp8(float64(c.R)*0.349 + float64(c.G)*0.686 + float64(c.B)*0.168),
			B: clamp8(float64(c.R)*0.272 + float64(c.G)*0.534 + float64(c.B)*0.131),
			A: c.A,
		}
	})
}

func (p *Renderer) drawCentredText(dst *image.NRGBA, fnt *truetype.Font, text string, size float64, baselineY int) error {
	face := truetype.NewFace(fnt, &truetype.Options{Size: size})
	defer func() { _ = face.Close() }()
	width := font.MeasureString(face, text).Ceil()

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(fnt)
	c.SetFontSize(size)
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetSrc(image.NewUniform(ink))

	_, err := c.DrawString(text, freetype.Pt((dst.Bounds().Dx()-width)/2, baselineY))
	return err
}

func drawFrame(dst *image.NRGBA) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	bars := []image.Rectangle{
		image.Rect(frameW, frameW, w-frameW, 2*frameW),     // top
		image.Rect(frameW, h-2*frameW, w-frameW, h-frameW), // bottom
		image.Rect(frameW, frameW, 2*frameW, h-frameW),     // left
		image.Rect(w-2*frameW, frameW, w-frameW, h-frameW), // right
	}
	for _, bar := range bars {
		draw.Draw(dst, bar, image.NewUniform(ink), image.Point{}, draw.Src)
	}
}

func clamp8(v float64) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}
