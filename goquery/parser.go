// Package goquery provides a goquery-based implementation of slackmoji.Parser
// for the emoji table of a saved "customize emoji" page.
package goquery

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/slackmoji"
	"golang.org/x/net/html/charset"
)

// Selectors for the emoji table, as rendered by the customize emoji page.
const (
	rowSelector   = "tr.emoji_row"
	imageSelector = `td[headers="custom_emoji_image"]`
	nameSelector  = `td[headers="custom_emoji_name"]`
	typeSelector  = `td[headers="custom_emoji_type"]`
)

// aliasPrefix marks rows that point at another emoji instead of an image.
const aliasPrefix = "Alias for"

// Ensure Parser implements slackmoji.Parser at compile time.
var _ slackmoji.Parser = (*Parser)(nil)

// Parser extracts emoji pairs from the emoji table.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a saved emoji page. The document's charset is detected from
// its meta tags and decoded to UTF-8 before parsing.
func (p *Parser) Parse(r io.Reader) (*slackmoji.ParseResult, error) {
	utf8Reader, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, slackmoji.Errorf(slackmoji.EINVALID, "failed to detect charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, slackmoji.Errorf(slackmoji.EINVALID, "failed to parse HTML: %w", err)
	}

	result := &slackmoji.ParseResult{}
	doc.Find(rowSelector).Each(func(i int, row *goquery.Selection) {
		pair, alias, err := parseRow(row)
		switch {
		case err != nil:
			result.Skipped = append(result.Skipped, slackmoji.Errorf(slackmoji.EINVALID, "row %d: %w", i+1, err))
		case alias:
			result.Aliases++
		default:
			result.Pairs = append(result.Pairs, pair)
		}
	})

	return result, nil
}

// parseRow extracts a pair from one table row. The bool result is true
// for alias rows, which carry no pair.
func parseRow(row *goquery.Selection) (slackmoji.EmojiPair, bool, error) {
	typeCell := row.Find(typeSelector).First()
	if typeCell.Length() == 0 {
		return slackmoji.EmojiPair{}, false, slackmoji.Errorf(slackmoji.EINVALID, "missing type cell")
	}
	if strings.HasPrefix(strings.TrimSpace(typeCell.Text()), aliasPrefix) {
		return slackmoji.EmojiPair{}, true, nil
	}

	nameCell := row.Find(nameSelector).First()
	if nameCell.Length() == 0 {
		return slackmoji.EmojiPair{}, false, slackmoji.Errorf(slackmoji.EINVALID, "missing name cell")
	}
	name := cleanName(nameCell.Text())

	imageCell := row.Find(imageSelector).First()
	if imageCell.Length() == 0 {
		return slackmoji.EmojiPair{}, false, slackmoji.Errorf(slackmoji.EINVALID, "emoji %q: missing image cell", name)
	}
	url := imageURL(imageCell)
	if url == "" {
		return slackmoji.EmojiPair{}, false, slackmoji.Errorf(slackmoji.EINVALID, "emoji %q: missing image url", name)
	}

	pair := slackmoji.EmojiPair{Name: name, URL: url}
	if err := pair.Validate(); err != nil {
		return slackmoji.EmojiPair{}, false, err
	}
	return pair, false, nil
}

// imageURL returns the lazy-load source of the image, falling back to the
// src of a plain img element.
func imageURL(cell *goquery.Selection) string {
	if src, ok := cell.Find("span[data-original]").First().Attr("data-original"); ok && strings.TrimSpace(src) != "" {
		return strings.TrimSpace(src)
	}
	if src, ok := cell.Find("img[src]").First().Attr("src"); ok {
		return strings.TrimSpace(src)
	}
	return ""
}

// cleanName turns ":party_parrot:" into "party_parrot".
func cleanName(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), ":", "")
}
