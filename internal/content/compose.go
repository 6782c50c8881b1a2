package content

import "github.com/pixelplaque/pixelplaque/internal/model"

// PostDraft composes a new blog post. Its slug follows the title until the
// slug is set explicitly.
type PostDraft struct {
	post       model.BlogPost
	slugEdited bool
}

func NewPostDraft() *PostDraft {
	return &PostDraft{post: model.BlogPost{Category: model.BlogTechnology, Status: model.StatusDraft}}
}

func (d *PostDraft) SetTitle(title string) {
	d.post.Title = title
	if !d.slugEdited {
		d.post.Slug = Slugify(title)
	}
}

func (d *PostDraft) SetSlug(slug string) {
	d.post.Slug = slug
	d.slugEdited = true
}

// Post returns the fields to edit; changes to Title must go through SetTitle
func (d *PostDraft) Post() *model.BlogPost { return &d.post }

// PostEdit edits an existing post. The slug is never derived from the title,
// so published URLs stay stable.
type PostEdit struct {
	key      Key
	original model.BlogPost
	post     model.BlogPost
}

func EditPost(existing *model.BlogPost) *PostEdit {
	return &PostEdit{
		key:      Key{OwnerID: existing.OwnerID, ID: existing.ID},
		original: *existing,
		post:     *existing,
	}
}

func (e *PostEdit) SetTitle(title string) { e.post.Title = title }
func (e *PostEdit) SetSlug(slug string)   { e.post.Slug = slug }
func (e *PostEdit) Key() Key              { return e.key }
func (e *PostEdit) Post() *model.BlogPost { return &e.post }

// Original is the post as it was loaded
func (e *PostEdit) Original() *model.BlogPost { return &e.original }

// PortfolioDraft composes a new portfolio item
type PortfolioDraft struct {
	item model.PortfolioItem
}

func NewPortfolioDraft() *PortfolioDraft {
	return &PortfolioDraft{item: model.PortfolioItem{Category: model.PortfolioWebDesign, Featured: model.FeaturedNo}}
}

func (d *PortfolioDraft) Item() *model.PortfolioItem { return &d.item }

type PortfolioEdit struct {
	key  Key
	item model.PortfolioItem
}

func EditPortfolioItem(existing *model.PortfolioItem) *PortfolioEdit {
	return &PortfolioEdit{
		key:  Key{OwnerID: existing.OwnerID, ID: existing.ID},
		item: *existing,
	}
}

func (e *PortfolioEdit) Key() Key                   { return e.key }
func (e *PortfolioEdit) Item() *model.PortfolioItem { return &e.item }
