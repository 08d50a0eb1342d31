package scene2d

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/grove"
)

var whitePixelImage *ebiten.Image

// whitePixel is the 1x1 source of solid quads.
func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

func rgba(c grove.Color) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R)*c.A*255 + 0.5),
		G: uint8(clamp01(c.G)*c.A*255 + 0.5),
		B: uint8(clamp01(c.B)*c.A*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Draw renders the scene onto target and clears the redraw flag.
func (s *Scene) Draw(target *ebiten.Image) {
	s.updateTransforms()
	target.Fill(rgba(s.ClearColor))
	for _, n := range s.paintOrder() {
		if n.draw != nil {
			n.draw(target, n)
			continue
		}
		drawQuad(target, n)
	}
	s.flushScreenshots(target)
	s.needsDraw = false
}

// drawQuad draws n's image, or a solid quad, stretched to its size and
// tinted by its color.
func drawQuad(target *ebiten.Image, n *Node) {
	if n.Width <= 0 || n.Height <= 0 {
		return
	}
	alpha := n.worldAlpha * n.Color.A
	if alpha <= 0 {
		return
	}
	img := n.Image
	if img == nil {
		img = whitePixel()
	}
	b := img.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(n.Width/float64(b.Dx()), n.Height/float64(b.Dy()))
	op.GeoM.Concat(geoM(n.worldTransform))
	// ColorScale applies to premultiplied color.
	op.ColorScale.Scale(float32(n.Color.R*alpha), float32(n.Color.G*alpha), float32(n.Color.B*alpha), float32(alpha))
	target.DrawImage(img, &op)
}
