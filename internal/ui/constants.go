// Package ui provides constants for layout calculations and configuration.
package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// TileWidth is the outer width of one item tile, borders included
	TileWidth = 18

	// TileGap is the horizontal space between tiles
	TileGap = 1

	// RowHeight is the height of one row: title line plus a bordered tile
	RowHeight = 4

	// FallbackHeight is the height of the trailing sentinel region
	FallbackHeight = 1

	// MinTerminalWidth and MinTerminalHeight bound layout math
	MinTerminalWidth  = 40
	MinTerminalHeight = 10
)

// Flash messages
const (
	// FlashDuration is how long a flash message stays in the footer
	FlashDuration = 4 * time.Second
)
