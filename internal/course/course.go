// Package course holds the chapter catalog of the research methods course.
package course

import (
	"fmt"
	"slices"
)

// GeneralTitle is used in prompts when a chapter id is unknown.
const GeneralTitle = "chung"

// DefaultChapterID is assumed when a request names no chapter.
const DefaultChapterID = "1"

// Chapter is a single lesson of the course.
type Chapter struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	VideoURL string `json:"video_url"`
}

// Module groups consecutive chapters that share one downloadable handout.
type Module struct {
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	DownloadURL string    `json:"download_url"`
	Chapters    []Chapter `json:"chapters"`
}

// catalog holds the modules with precomputed indices.
type catalog struct {
	modules  []Module
	byID     map[string]Chapter
	moduleOf map[string]int
	order    []Chapter
}

// c is the package-level catalog, set by init() in seed.go.
var c *catalog

func buildCatalog(modules []Module) *catalog {
	cat := &catalog{
		modules:  modules,
		byID:     make(map[string]Chapter),
		moduleOf: make(map[string]int),
	}
	for i, m := range modules {
		for _, ch := range m.Chapters {
			cat.byID[ch.ID] = ch
			cat.moduleOf[ch.ID] = i
			cat.order = append(cat.order, ch)
		}
	}
	return cat
}

// Modules returns all modules in display order.
func Modules() []Module {
	out := make([]Module, len(c.modules))
	for i, m := range c.modules {
		m.Chapters = slices.Clone(m.Chapters)
		out[i] = m
	}
	return out
}

// Chapters returns every chapter in display order.
func Chapters() []Chapter {
	return slices.Clone(c.order)
}

// Lookup returns a chapter by id, or error if not found.
func Lookup(id string) (Chapter, error) {
	ch, ok := c.byID[id]
	if !ok {
		return Chapter{}, fmt.Errorf("chapter not found: %q", id)
	}
	return ch, nil
}

// Title returns the chapter title, or GeneralTitle for unknown ids.
func Title(id string) string {
	if ch, ok := c.byID[id]; ok {
		return ch.Title
	}
	return GeneralTitle
}

// ModuleOf returns the module containing the chapter.
func ModuleOf(id string) (Module, bool) {
	i, ok := c.moduleOf[id]
	if !ok {
		return Module{}, false
	}
	m := c.modules[i]
	m.Chapters = slices.Clone(m.Chapters)
	return m, true
}

// DownloadURL returns the handout of the chapter's module.
func DownloadURL(id string) string {
	m, ok := ModuleOf(id)
	if !ok {
		return ""
	}
	return m.DownloadURL
}

// ContentID maps a chapter to the content page that covers it. Chapters 7
// and 10 share a page with the chapter that follows them.
func ContentID(id string) string {
	switch id {
	case "7":
		return "7_8"
	case "10":
		return "10_11"
	default:
		return id
	}
}

// Validate checks the catalog for structural issues.
func Validate() error {
	return validateModules(c.modules)
}
