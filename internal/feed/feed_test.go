package feed

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/blog-service/internal/models"
)

func TestRender(t *testing.T) {
	t.Parallel()

	author := &models.User{ID: "u1", Name: "Alice", Email: "alice@x.com"}
	now := time.Now()
	posts := []*models.Post{
		{ID: "p2", Title: "second", Content: "two", AuthorID: "u1", Author: author, CreatedAt: now},
		{ID: "p1", Title: "first & foremost", Content: "one", AuthorID: "u1", Author: author, CreatedAt: now.Add(-time.Hour)},
	}

	out, err := NewBuilder("http://example.com/", "Blog Service", "Latest posts").Render(posts)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	channel := doc.FindElement("/rss/channel")
	require.NotNil(t, channel)
	assert.Equal(t, "Blog Service", channel.SelectElement("title").Text())
	assert.Equal(t, "http://example.com", channel.SelectElement("link").Text())

	items := doc.FindElements("/rss/channel/item")
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].SelectElement("title").Text())
	assert.Equal(t, "first & foremost", items[1].SelectElement("title").Text())
	assert.Equal(t, "http://example.com/posts/p2", items[0].SelectElement("link").Text())
	assert.Equal(t, "p2", items[0].SelectElement("guid").Text())
	assert.Equal(t, "Alice", items[0].SelectElement("author").Text())
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()

	out, err := NewBuilder("http://example.com", "Blog Service", "Latest posts").Render(nil)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	assert.Empty(t, doc.FindElements("/rss/channel/item"))
}
