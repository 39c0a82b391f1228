// Package ui implements an interactive terminal photo gallery using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [GalleryView] : Scrollable card grid with lazy reveal and infinite scroll
//  2. [ViewerView] : Full-screen viewer with keyboard, mouse drag and tap navigation
//  3. [AlertView] : Blocking message, dismissed with any key
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Network work (the gallery page, the bulk listing, result pages) runs in commands and reports back through messages,
// so every gallery state transition happens inside Update.
//
// Terminal cells map onto logical pixels at 8 columns-to-pixels horizontally and 16 rows-to-pixels vertically,
// which is what the visibility tracker, pagination trigger and narrow-viewport checks measure.
package ui
