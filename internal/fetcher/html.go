package fetcher

import (
	"io"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// extractMetadata parses an HTML document and pulls out the page title
// and description. Open Graph tags win over the plain <title> element.
func extractMetadata(r io.Reader) (Metadata, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Metadata{}, err
	}

	var meta Metadata
	var pageTitle string
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.Data {
		case "meta":
			switch metaProperty(n) {
			case "og:title":
				if meta.Title == "" {
					meta.Title = attrValue(n, "content")
				}
			case "og:description":
				if meta.Description == "" {
					meta.Description = attrValue(n, "content")
				}
			}
		case "title":
			if pageTitle == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				pageTitle = n.FirstChild.Data
			}
		}
	})

	if meta.Title == "" {
		meta.Title = pageTitle
	}

	meta.Title = collapseWhitespace(strings.TrimSpace(meta.Title))
	meta.Description = renderDescription(meta.Description)

	return meta, nil
}

// walk visits every node in the document tree.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// metaProperty returns the property or name attribute of a <meta> tag.
// Some sites use name= where the Open Graph spec says property=.
func metaProperty(n *html.Node) string {
	if p := attrValue(n, "property"); p != "" {
		return p
	}
	return attrValue(n, "name")
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// htmlTagPattern matches common HTML tags to detect markup in a description.
var htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|strong|em|a|ul|ol|li|h[1-6]|blockquote)[\s>/]`)

// renderDescription cleans up a description for storage. Descriptions that
// contain HTML markup are converted to Markdown; plain text passes through.
func renderDescription(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if !htmlTagPattern.MatchString(strings.ToLower(s)) {
		return collapseWhitespace(s)
	}
	markdown, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return collapseWhitespace(s)
	}
	return strings.TrimSpace(markdown)
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return whitespaceRegex.ReplaceAllString(s, " ")
}
