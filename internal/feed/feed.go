// Package feed renders posts as an RSS 2.0 document.
package feed

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/Dan9191/blog-service/internal/models"
)

// Builder renders RSS documents for a site
type Builder struct {
	baseURL     string
	title       string
	description string
}

// NewBuilder creates a feed builder. baseURL is used for channel and item
// links.
func NewBuilder(baseURL, title, description string) *Builder {
	return &Builder{
		baseURL:     strings.TrimRight(baseURL, "/"),
		title:       title,
		description: description,
	}
}

// Render builds an RSS 2.0 document from posts. Posts are emitted in the
// order given, which the read path already sorts newest-first.
func (b *Builder) Render(posts []*models.Post) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(b.title)
	channel.CreateElement("link").SetText(b.baseURL)
	channel.CreateElement("description").SetText(b.description)

	for _, post := range posts {
		item := channel.CreateElement("item")
		item.CreateElement("title").SetText(post.Title)
		item.CreateElement("link").SetText(fmt.Sprintf("%s/posts/%s", b.baseURL, post.ID))
		guid := item.CreateElement("guid")
		guid.CreateAttr("isPermaLink", "false")
		guid.SetText(post.ID)
		item.CreateElement("description").SetText(post.Content)
		if post.Author != nil {
			item.CreateElement("author").SetText(post.Author.Name)
		}
		item.CreateElement("pubDate").SetText(post.CreatedAt.Format("Mon, 02 Jan 2006 15:04:05 -0700"))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize feed: %w", err)
	}
	return out, nil
}
