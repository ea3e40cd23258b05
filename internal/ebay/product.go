package ebay

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// mskuModelRe lifts the variation JSON object out of the inline script
// that assigns it. Non-greedy so trailing script code is not captured.
var mskuModelRe = regexp.MustCompile(`(?s)msku\.JsonModel\s*=\s*(\{.*?\});`)

// VariationPayload locates the msku.JsonModel variation JSON embedded in an
// item page's script tags and returns it as opaque text for the resolver.
// Returns false when the page carries no variation model — common for
// single-configuration items and for markup drift, and never an error.
func VariationPayload(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	var payload string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(text, "msku.JsonModel") {
			return true
		}
		if m := mskuModelRe.FindStringSubmatch(text); m != nil {
			payload = m[1]
			return false
		}
		return true
	})

	return payload, payload != ""
}
