// Package words is the positioned-text boundary of the extraction pipeline.
// It turns a source document into per-page sets of word tokens with
// bounding boxes in PDF user space (origin bottom-left).
package words

import (
	"context"
	"fmt"
	"io"
)

// Token is a single positioned text fragment.
type Token struct {
	Text   string  `json:"text"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// CenterX returns the horizontal center of the token.
func (t Token) CenterX() float64 {
	return (t.Left + t.Right) / 2
}

// CenterY returns the vertical center of the token.
func (t Token) CenterY() float64 {
	return (t.Top + t.Bottom) / 2
}

// Page holds the tokens of one page together with its dimensions.
type Page struct {
	Number int     `json:"number"` // 1-indexed
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Tokens []Token `json:"tokens"`
}

// Source yields the pages of a document in page order.
type Source interface {
	Extract(ctx context.Context, doc io.ReadSeeker) ([]Page, error)
}

// DecodeError is returned when the source document cannot be parsed.
// Callers should treat it as terminal for that document.
type DecodeError struct {
	Page int // 0 when the failure is not tied to a page
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("decode document: page %d: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("decode document: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
