package view

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/abhisek/nckh/internal/course"
)

// PageTitle is the title of the chapter list page.
const PageTitle = "NCKH Y học: tự đánh giá"

// ChapterPage builds a full document listing every chapter with its quiz
// start button, followed by the quiz modal.
func ChapterPage(modules []course.Module, startAction string, modal *html.Node) *html.Node {
	content := El(atom.Main, Class("container"), El(atom.H1, nil, Text(PageTitle)))

	for _, m := range modules {
		section := El(atom.Section, Class("module", A("data-module", m.Key)),
			El(atom.H2, nil, Text(m.Title)),
		)
		if m.DownloadURL != "" {
			section.AppendChild(El(atom.A, []Attr{A("href", m.DownloadURL)}, Text("Download handout")))
		}
		list := El(atom.Ul, nil)
		for _, ch := range m.Chapters {
			list.AppendChild(El(atom.Li, Class("chapter", A("data-chapter-id", ch.ID)),
				El(atom.Span, nil, Text(ch.Title)),
				startForm(ch.ID, startAction, StartButtonID+"-"+ch.ID),
			))
		}
		section.AppendChild(list)
		content.AppendChild(section)
	}

	return El(atom.Html, []Attr{A("lang", "vi")},
		El(atom.Head, nil,
			El(atom.Meta, []Attr{A("charset", "utf-8")}),
			El(atom.Title, nil, Text(PageTitle)),
		),
		El(atom.Body, nil, content, modal),
	)
}

// RenderDocument writes a doctype followed by the document root.
func RenderDocument(w io.Writer, root *html.Node) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)
	return Render(w, doc)
}
