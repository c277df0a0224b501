package hybridmark_test

import (
	"context"
	"fmt"
	"image"
	"image/color"

	hybridmark "github.com/tastefully-stained/hybridmark"
)

func Example() {
	// Create a simple gradient image (256x256 pixels)
	img := image.NewRGBA(image.Rect(0, 0, 256, 256))
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			r := uint8(40 + x/2)
			g := uint8(60 + y/2)
			b := uint8(80 + (x+y)/4)
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}

	// Embed a payload; the strategy is chosen from the image content.
	ctx := context.Background()
	marked, err := hybridmark.Embed(ctx, img, []byte("hybridmark"))
	if err != nil {
		fmt.Printf("Error embedding payload: %v\n", err)
		return
	}

	// Extract it back.
	out, err := hybridmark.Extract(ctx, marked)
	if err != nil {
		fmt.Printf("Error extracting payload: %v\n", err)
		return
	}

	fmt.Println(string(out.Payload))
	fmt.Println(out.Recovered)

	// Output:
	// hybridmark
	// true
}

func Example_strategies() {
	img := image.NewGray(image.Rect(0, 0, 256, 256))
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(60 + x/4 + y/8)})
		}
	}

	ctx := context.Background()
	marked, err := hybridmark.Embed(ctx, img, []byte("透かし"),
		hybridmark.WithStrategy(hybridmark.StrategyHybrid),
		hybridmark.WithStrength(0.7),
	)
	if err != nil {
		fmt.Printf("Error embedding payload: %v\n", err)
		return
	}

	// A hybrid mark is readable from either domain alone.
	for _, strat := range []hybridmark.Strategy{hybridmark.StrategyDCT, hybridmark.StrategyDWT} {
		out, err := hybridmark.Extract(ctx, marked,
			hybridmark.WithStrategy(strat),
			hybridmark.WithStrength(0.7),
		)
		if err != nil {
			fmt.Printf("Error extracting payload: %v\n", err)
			return
		}
		fmt.Printf("%s: %s\n", strat, out.Payload)
	}

	// Output:
	// dct: 透かし
	// dwt: 透かし
}
