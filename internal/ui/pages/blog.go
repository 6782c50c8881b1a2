package pages

import (
	"fmt"

	"github.com/pixelplaque/pixelplaque/internal/model"
)

// postMeta reads "author · date · N min read", skipping the parts a post lacks
func postMeta(post *model.BlogPost) string {
	meta := post.PublishedDate()
	if post.Author != "" {
		meta = post.Author + " · " + meta
	}
	if post.ReadTime > 0 {
		meta += fmt.Sprintf(" · %d min read", post.ReadTime)
	}
	return meta
}
