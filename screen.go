package main

import (
	"fmt"

	"github.com/massung/chip-8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

// InitScreen scales the renderer so one logical unit is one CHIP-8 pixel.
func InitScreen(renderer *sdl.Renderer) error {
	if err := renderer.SetLogicalSize(chip8.ScreenWidth, chip8.ScreenHeight); err != nil {
		return fmt.Errorf("setting logical size: %w", err)
	}
	return nil
}

// RefreshScreen draws the CHIP-8 video memory and presents it.
func RefreshScreen(renderer *sdl.Renderer, display *chip8.Display) error {
	// the background color for the screen
	if err := renderer.SetDrawColor(143, 145, 133, 255); err != nil {
		return err
	}
	if err := renderer.Clear(); err != nil {
		return err
	}

	// collect all the lit pixels
	rects := make([]sdl.Rect, 0, chip8.ScreenWidth*chip8.ScreenHeight)
	for y := 0; y < chip8.ScreenHeight; y++ {
		for x := 0; x < chip8.ScreenWidth; x++ {
			if display.Pixel(x, y) != 0 {
				rects = append(rects, sdl.Rect{X: int32(x), Y: int32(y), W: 1, H: 1})
			}
		}
	}

	// FillRects requires at least one rect
	if len(rects) > 0 {
		if err := renderer.SetDrawColor(17, 29, 43, 255); err != nil {
			return err
		}
		if err := renderer.FillRects(rects); err != nil {
			return err
		}
	}

	renderer.Present()
	return nil
}
