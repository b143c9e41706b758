package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const maxDecodeDepth = 4

// DecodeEntities replaces the character references found in attribute values and
// text fragments (`&lt;`, `&gt;`, `&#039;`, ...) with the characters they stand for.
//
// Double encoded references (`&amp;lt;`) are decoded down to the character as well,
// up to maxDecodeDepth levels.
func DecodeEntities(s string) string {
	for range maxDecodeDepth {
		if !strings.ContainsRune(s, '&') {
			return s
		}
		decoded := html.UnescapeString(s)
		if decoded == s {
			return s
		}
		s = decoded
	}
	return s
}

// CountElements parses `body` leniently and returns how many elements match the css `selector`.
func CountElements(body string, selector string) (int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return 0, err
	}
	return doc.Find(selector).Length(), nil
}
