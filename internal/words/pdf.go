package words

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/text"
)

// PDFSource reads positioned words from text-based PDF documents.
// The document is structurally validated with pdfcpu before tabula
// decodes content streams into text fragments.
type PDFSource struct {
	logger *slog.Logger
}

var _ Source = (*PDFSource)(nil)

// NewPDFSource creates a PDF word source.
func NewPDFSource(logger *slog.Logger) *PDFSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFSource{logger: logger}
}

// Extract returns the pages of doc with their word tokens.
// Any parse failure is reported as a *DecodeError.
func (s *PDFSource) Extract(ctx context.Context, doc io.ReadSeeker) ([]Page, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.Validate(doc, conf); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if _, err := doc.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind document: %w", err)
	}
	pageCount, err := api.PageCount(doc, conf)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if _, err := doc.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind document: %w", err)
	}

	f, cleanup, err := asFile(doc)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	r, err := reader.NewReader(f)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	defer r.Close()

	s.logger.Debug("reading document", "pages", pageCount)

	result := make([]Page, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := r.GetPage(i)
		if err != nil {
			return nil, &DecodeError{Page: i + 1, Err: err}
		}
		width, err := page.Width()
		if err != nil {
			return nil, &DecodeError{Page: i + 1, Err: err}
		}
		height, err := page.Height()
		if err != nil {
			return nil, &DecodeError{Page: i + 1, Err: err}
		}
		fragments, err := r.ExtractTextFragments(page)
		if err != nil {
			return nil, &DecodeError{Page: i + 1, Err: err}
		}

		tokens := make([]Token, 0, len(fragments))
		for _, frag := range fragments {
			tokens = append(tokens, splitFragment(frag)...)
		}
		result = append(result, Page{
			Number: i + 1,
			Width:  width,
			Height: height,
			Tokens: tokens,
		})
	}

	return result, nil
}

// asFile spools doc into a temp file; tabula reads from *os.File and
// closes it along with the reader.
func asFile(doc io.ReadSeeker) (*os.File, func(), error) {
	tmp, err := os.CreateTemp("", "labextract-*.pdf")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	cleanup := func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}
	if _, err := io.Copy(tmp, doc); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to spool document: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to rewind temp file: %w", err)
	}
	return tmp, cleanup, nil
}

// splitFragment breaks a text fragment into word tokens. Fragments often
// carry a whole run of words from a single show-text operation; the run's
// width is shared out by rune count.
func splitFragment(frag text.TextFragment) []Token {
	content := Normalize(frag.Text)
	if content == "" {
		return nil
	}

	bottom := frag.Y
	top := frag.Y + frag.Height
	fields := strings.Fields(content)
	if len(fields) == 1 {
		return []Token{{
			Text:   content,
			Left:   frag.X,
			Right:  frag.X + frag.Width,
			Top:    top,
			Bottom: bottom,
		}}
	}

	total := utf8.RuneCountInString(content)
	perRune := frag.Width / float64(total)

	tokens := make([]Token, 0, len(fields))
	offset := 0
	rest := content
	for _, field := range fields {
		idx := strings.Index(rest, field)
		offset += utf8.RuneCountInString(rest[:idx])
		n := utf8.RuneCountInString(field)
		left := frag.X + float64(offset)*perRune
		tokens = append(tokens, Token{
			Text:   field,
			Left:   left,
			Right:  left + float64(n)*perRune,
			Top:    top,
			Bottom: bottom,
		})
		offset += n
		rest = rest[idx+len(field):]
	}
	return tokens
}
