// Package dom extracts gallery cards from the server-rendered gallery document.
//
// A card is an <img> carrying a data-full attribute inside an element of class "card"
// within the gallery container (the element with id "gallery", or else the first element
// whose class list contains "gallery"). Other images in the container are ignored.
// The thumbnail source, the data-full URL and the accessible label become one [models.PhotoDescriptor].
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/pictx/internal/models"
	"github.com/desertthunder/pictx/internal/shared"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	galleryID     = "gallery"
	galleryClass  = "gallery"
	cardClass     = "card"
	fullAttr      = "data-full"
	ariaLabelAttr = "aria-label"
)

// ParseCards parses an HTML document and returns its cards in document order.
func ParseCards(r io.Reader) ([]models.PhotoDescriptor, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse gallery document: %v", shared.ErrMalformedPayload, err)
	}

	root := findContainer(doc)
	if root == nil {
		root = doc
	}

	cards := []models.PhotoDescriptor{}
	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.DataAtom != atom.Img {
			return
		}
		full, ok := attr(n, fullAttr)
		if !ok || full == "" || !inCard(n, root) {
			return
		}
		src, _ := attr(n, "src")
		cards = append(cards, models.PhotoDescriptor{
			URL:     src,
			FullURL: full,
			Title:   label(n),
		})
	})

	return cards, nil
}

// ParseCardsBytes is [ParseCards] over an in-memory document.
func ParseCardsBytes(doc []byte) ([]models.PhotoDescriptor, error) {
	return ParseCards(bytes.NewReader(doc))
}

func findContainer(doc *html.Node) *html.Node {
	var byID, byClass *html.Node
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if id, _ := attr(n, "id"); id == galleryID && byID == nil {
			byID = n
		}
		if cls, _ := attr(n, "class"); byClass == nil && hasClass(cls, galleryClass) {
			byClass = n
		}
	})
	if byID != nil {
		return byID
	}
	return byClass
}

// inCard reports whether img has an ancestor of class "card" below root.
func inCard(img, root *html.Node) bool {
	for p := img.Parent; p != nil && p != root; p = p.Parent {
		if cls, _ := attr(p, "class"); hasClass(cls, cardClass) {
			return true
		}
	}
	return false
}

// label returns the accessible name of a card image: its aria-label, an ancestor card's
// aria-label, then its alt text.
func label(img *html.Node) string {
	if v, ok := attr(img, ariaLabelAttr); ok {
		return strings.TrimSpace(v)
	}
	for p := img.Parent; p != nil && p.Type == html.ElementNode; p = p.Parent {
		if v, ok := attr(p, ariaLabelAttr); ok {
			return strings.TrimSpace(v)
		}
		if id, _ := attr(p, "id"); id == galleryID {
			break
		}
	}
	v, _ := attr(img, "alt")
	return strings.TrimSpace(v)
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(classAttr, class string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == class {
			return true
		}
	}
	return false
}
