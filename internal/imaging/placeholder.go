// Package imaging renders local placeholder creatives. The renderer is the
// guaranteed last tier of the image fallback chain, so it never fails and
// never touches the network.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/ignite/campaignforge/internal/campaign"
)

const outputSize = 1024

// renderSize keeps the gradient pass cheap; the result is upscaled with
// Catmull-Rom interpolation, which also smooths the banding.
const renderSize = 256

// strategyPalettes maps each copy strategy to a background gradient.
var strategyPalettes = map[campaign.Strategy][2]color.RGBA{
	campaign.StrategyUrgency:      {{R: 0xC0, G: 0x1E, B: 0x1E, A: 0xFF}, {R: 0x4A, G: 0x00, B: 0x00, A: 0xFF}},
	campaign.StrategyPremium:      {{R: 0x1A, G: 0x1A, B: 0x2E, A: 0xFF}, {R: 0xC9, G: 0xA2, B: 0x27, A: 0xFF}},
	campaign.StrategyValue:        {{R: 0x13, G: 0x6F, B: 0x3A, A: 0xFF}, {R: 0x02, G: 0x2C, B: 0x14, A: 0xFF}},
	campaign.StrategyProfessional: {{R: 0x0F, G: 0x3B, B: 0x70, A: 0xFF}, {R: 0x03, G: 0x11, B: 0x26, A: 0xFF}},
	campaign.StrategyCommercial:   {{R: 0xD9, G: 0x6B, B: 0x0B, A: 0xFF}, {R: 0x57, G: 0x26, B: 0x00, A: 0xFF}},
	campaign.StrategyLifestyle:    {{R: 0xA8, G: 0x2E, B: 0x6F, A: 0xFF}, {R: 0x2E, G: 0x0A, B: 0x1F, A: 0xFF}},
}

var defaultPalette = [2]color.RGBA{{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}, {R: 0x11, G: 0x11, B: 0x11, A: 0xFF}}

// Placeholder renders a deterministic 1024x1024 branded card for the given
// prompt and returns it as a PNG data URI. The same brand and strategy
// always produce the same bytes.
func Placeholder(brand string, prompt campaign.ImagePrompt) (string, error) {
	palette, ok := strategyPalettes[campaign.Strategy(prompt.Strategy)]
	if !ok {
		palette = defaultPalette
	}

	seed := fnv.New32a()
	seed.Write([]byte(brand))
	seed.Write([]byte(prompt.Strategy))
	accent := accentColor(seed.Sum32())

	src := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	for y := 0; y < renderSize; y++ {
		top, bottom := palette[0], palette[1]
		t := float64(y) / float64(renderSize-1)
		row := color.RGBA{
			R: lerp(top.R, bottom.R, t),
			G: lerp(top.G, bottom.G, t),
			B: lerp(top.B, bottom.B, t),
			A: 0xFF,
		}
		for x := 0; x < renderSize; x++ {
			src.SetRGBA(x, y, row)
		}
	}

	// Centered accent band, offset by the brand hash so different brands
	// on the same strategy stay distinguishable.
	bandTop := renderSize/3 + int(seed.Sum32()%32)
	for y := bandTop; y < bandTop+renderSize/6 && y < renderSize; y++ {
		for x := renderSize / 8; x < renderSize-renderSize/8; x++ {
			src.SetRGBA(x, y, accent)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, outputSize, outputSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return "", fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func accentColor(seed uint32) color.RGBA {
	return color.RGBA{
		R: uint8(180 + seed%60),
		G: uint8(180 + (seed>>8)%60),
		B: uint8(180 + (seed>>16)%60),
		A: 0xFF,
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
