package domain

import (
	"fmt"
	"html"
	"strings"
)

// The layout opens with a newline ahead of the doctype, as exported files always have.
const htmlDocumentLayout = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
</head>
<body style="margin: 0; padding: 20px; font-family: Arial, sans-serif; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 20px; border-radius: 8px;">
        %s
    </div>
</body>
</html>`

// GenerateHTML renders the document as a complete HTML email.
// Property values and the subject are HTML-escaped wherever they land in a
// text node or an attribute value.
func GenerateHTML(doc *Document) string {
	var body strings.Builder
	for _, block := range doc.Blocks {
		body.WriteString(RenderBlock(block))
	}
	return fmt.Sprintf(htmlDocumentLayout, html.EscapeString(doc.Subject), body.String())
}

// RenderBlock renders a single block fragment. Unknown kinds render as the empty string.
func RenderBlock(b Block) string {
	p := b.Properties
	e := func(key string) string { return html.EscapeString(p[key]) }
	style := func(format string, keys ...string) string {
		args := make([]interface{}, len(keys))
		for i, k := range keys {
			args[i] = p[k]
		}
		return html.EscapeString(fmt.Sprintf(format, args...))
	}

	switch b.Kind {
	case BlockKindText:
		return fmt.Sprintf(`<p style="%s">%s</p>`,
			style("font-size: %s; color: %s; text-align: %s; font-weight: %s; font-family: %s; margin: 10px 0;",
				"fontSize", "color", "textAlign", "fontWeight", "fontFamily"),
			e("content"))

	case BlockKindHeading:
		return fmt.Sprintf(`<h2 style="%s">%s</h2>`,
			style("font-size: %s; color: %s; text-align: %s; font-weight: %s; font-family: %s; margin: 20px 0;",
				"fontSize", "color", "textAlign", "fontWeight", "fontFamily"),
			e("content"))

	case BlockKindImage:
		return fmt.Sprintf(`<div style="%s"><img src="%s" alt="%s" style="%s" /></div>`,
			style("text-align: %s; margin: 10px 0;", "textAlign"),
			e("src"),
			e("alt"),
			style("width: %s; height: %s; max-width: 100%%;", "width", "height"))

	case BlockKindButton:
		return fmt.Sprintf(`<div style="%s"><a href="%s" style="%s">%s</a></div>`,
			style("text-align: %s; margin: 20px 0;", "textAlign"),
			e("href"),
			style("display: inline-block; background-color: %s; color: %s; padding: %s; text-decoration: none; border-radius: %s;",
				"backgroundColor", "color", "padding", "borderRadius"),
			e("text"))

	case BlockKindDivider:
		return fmt.Sprintf(`<div style="%s"></div>`,
			style("height: %s; background-color: %s; margin: %s;", "height", "backgroundColor", "margin"))

	case BlockKindSpacer:
		return fmt.Sprintf(`<div style="%s"></div>`, style("height: %s;", "height"))
	}
	return ""
}

// ExportFilename returns the download file name for a template
func ExportFilename(templateName string) string {
	name := strings.TrimSpace(templateName)
	if name == "" {
		name = "email-template"
	}
	return name + ".html"
}
