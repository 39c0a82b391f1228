package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/pictx/internal/gallery"
	"github.com/desertthunder/pictx/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgDocumentLoaded MsgKind = iota
	MsgIndexLoaded
	MsgPageLoaded
	MsgReveal
	MsgHintExpired
	MsgBrowserOpened
)

type documentLoaded struct {
	photos []models.PhotoDescriptor
	err    error
}

// documentLoadedMsg is the constructor for [MsgDocumentLoaded]
func documentLoadedMsg(photos []models.PhotoDescriptor, err error) Msg {
	return Msg{kind: MsgDocumentLoaded, data: documentLoaded{photos, err}}
}

// indexLoadedMsg is the constructor for [MsgIndexLoaded]
func indexLoadedMsg(res gallery.ListingResult) Msg {
	return Msg{kind: MsgIndexLoaded, data: res}
}

// pageLoadedMsg is the constructor for [MsgPageLoaded]
func pageLoadedMsg(res gallery.PageResult) Msg {
	return Msg{kind: MsgPageLoaded, data: res}
}

// revealMsg is the constructor for [MsgReveal]
func revealMsg(cards []*gallery.Card) Msg {
	return Msg{kind: MsgReveal, data: cards}
}

// hintExpiredMsg is the constructor for [MsgHintExpired]
func hintExpiredMsg() Msg {
	return Msg{kind: MsgHintExpired}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(url string, err error) Msg {
	return Msg{
		kind: MsgBrowserOpened,
		data: struct {
			url string
			err error
		}{url, err},
	}
}
