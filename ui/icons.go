// Package ui provides the terminal and desktop presentation for wg-toggle.
// This file draws the tray icons.
package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/yllada/wg-toggle/common"
)

// TrayState is the state shown by the tray icon.
type TrayState int

const (
	// StateIdle is shown before any toggle and after a clean deactivation.
	StateIdle TrayState = iota
	// StateActive is shown after every tunnel came up.
	StateActive
	// StateDegraded is shown when the last toggle had failures.
	StateDegraded
)

// String returns the tooltip suffix for the state.
func (s TrayState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDegraded:
		return "errors"
	default:
		return "inactive"
	}
}

type iconPalette struct {
	fill   color.RGBA
	border color.RGBA
	accent color.RGBA
}

var palettes = map[TrayState]iconPalette{
	StateIdle: {
		fill:   color.RGBA{117, 117, 117, 255},
		border: color.RGBA{158, 158, 158, 255},
		accent: color.RGBA{189, 189, 189, 255},
	},
	StateActive: {
		fill:   color.RGBA{56, 142, 60, 255},
		border: color.RGBA{76, 175, 80, 255},
		accent: color.RGBA{200, 230, 201, 255},
	},
	StateDegraded: {
		fill:   color.RGBA{191, 120, 0, 255},
		border: color.RGBA{229, 165, 10, 255},
		accent: color.RGBA{255, 224, 130, 255},
	},
}

var glyphColor = color.RGBA{255, 255, 255, 255}

// Glyph pixels for a 22px icon.
var glyphs = map[TrayState][]image.Point{
	// check mark
	StateActive: {
		{6, 11}, {7, 11}, {7, 12}, {8, 12}, {8, 13}, {9, 13},
		{9, 12}, {10, 12}, {10, 11}, {11, 11}, {11, 10}, {12, 10},
		{12, 9}, {13, 9}, {13, 8}, {14, 8},
	},
	// horizontal bar
	StateIdle: {
		{7, 10}, {8, 10}, {9, 10}, {10, 10}, {11, 10}, {12, 10}, {13, 10}, {14, 10},
		{7, 11}, {8, 11}, {9, 11}, {10, 11}, {11, 11}, {12, 11}, {13, 11}, {14, 11},
	},
	// exclamation mark
	StateDegraded: {
		{10, 5}, {11, 5}, {10, 6}, {11, 6}, {10, 7}, {11, 7},
		{10, 8}, {11, 8}, {10, 9}, {11, 9}, {10, 10}, {11, 10},
		{10, 13}, {11, 13}, {10, 14}, {11, 14},
	},
}

// inShield reports whether the point lies inside a shield of the given size.
func inShield(size int, x, y float64) bool {
	centerX := float64(size) / 2
	topY := 1.0
	bottomY := float64(size) - 2
	width := float64(size) - 4

	relY := (y - topY) / (bottomY - topY)
	if relY < 0 || relY > 1 {
		return false
	}

	var halfWidth float64
	if relY < 0.5 {
		halfWidth = width/2 - relY*0.5
	} else {
		progress := (relY - 0.5) * 2
		halfWidth = (width/2 - 0.25) * (1 - progress*progress)
	}
	return x >= centerX-halfWidth && x <= centerX+halfWidth
}

// DrawIcon renders the icon for a state.
func DrawIcon(state TrayState, size int) *image.RGBA {
	p, ok := palettes[state]
	if !ok {
		state, p = StateIdle, palettes[StateIdle]
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if !inShield(size, fx, fy) {
				continue
			}
			edge := !inShield(size, fx-1, fy) || !inShield(size, fx+1, fy) ||
				!inShield(size, fx, fy-1) || !inShield(size, fx, fy+1)
			switch {
			case edge:
				img.Set(x, y, p.border)
			case float64(y)/float64(size) < 0.3:
				img.Set(x, y, p.accent)
			default:
				img.Set(x, y, p.fill)
			}
		}
	}

	bounds := img.Bounds()
	for _, pt := range glyphs[state] {
		if pt.In(bounds) {
			img.Set(pt.X, pt.Y, glyphColor)
		}
	}
	return img
}

// TrayIcon returns the PNG-encoded tray icon for a state.
func TrayIcon(state TrayState) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, DrawIcon(state, common.TrayIconSize)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
