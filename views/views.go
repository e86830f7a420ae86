// Package views renders the picstash HTML pages as templ components.
package views

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Image is the record shape rendered in search results.
type Image struct {
	ID   int64
	Tags string
}

// Index is the landing page: an upload form and a tag search form. flash,
// when non-empty, is shown once after a successful upload.
func Index(flash string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writeHead(&buf, "picstash")
		buf.WriteString("<h1>picstash</h1>")
		if flash != "" {
			buf.WriteString(`<p class="flash">`)
			buf.WriteString(html.EscapeString(flash))
			buf.WriteString("</p>")
		}
		buf.WriteString(`<h2>Upload an image</h2>
<form action="/upload" method="post" enctype="multipart/form-data">
<label>Tags: <input type="text" name="tags"></label>
<label>Image: <input type="file" name="image"></label>
<input type="submit" value="Upload">
</form>
<h2>Search by tag</h2>
<form action="/search" method="post">
<label>Tags: <input type="text" name="tags"></label>
<input type="submit" value="Search">
</form>
<p><a href="/images">All images (JSON)</a></p>`)
		writeFoot(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Uploaded is the post-upload redirect page. It shows the new id and sends
// the browser back to the landing page.
func Uploaded(id int64) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head><meta charset=\"utf-8\">")
		buf.WriteString(`<meta http-equiv="refresh" content="1; url=/">`)
		buf.WriteString("<title>picstash</title></head>\n<body>\n")
		fmt.Fprintf(&buf, "<p>Image %d uploaded. <a href=\"/\">Back to picstash</a>.</p>", id)
		writeFoot(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// SearchResults is the fragment returned by the search endpoint: one
// thumbnail link per matching record, in id order.
func SearchResults(needle string, images []Image) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		fmt.Fprintf(&buf, `<div class="results" data-query="%s">`, html.EscapeString(needle))
		if len(images) == 0 {
			buf.WriteString("<p>No matching images.</p>")
		}
		for _, img := range images {
			fmt.Fprintf(&buf,
				`<a href="/image/%d"><img src="/thumb/%d" alt="%s"></a>`,
				img.ID, img.ID, html.EscapeString(img.Tags))
		}
		buf.WriteString("</div>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeHead(buf *bytes.Buffer, title string) {
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head><meta charset=\"utf-8\"><title>")
	buf.WriteString(html.EscapeString(title))
	buf.WriteString("</title></head>\n<body>\n")
}

func writeFoot(buf *bytes.Buffer) {
	buf.WriteString("\n</body>\n</html>\n")
}
