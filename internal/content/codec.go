package content

import (
	"errors"
	"fmt"
	"time"

	"github.com/pixelplaque/pixelplaque/internal/backend"
	"github.com/pixelplaque/pixelplaque/internal/model"
)

var ErrMissingID = errors.New("record has no _id")

// Codec maps a typed item to and from its table record.
// Enum values exist as strings only here.
type Codec[T any] interface {
	Encode(item T) backend.Record
	Decode(rec backend.Record) (T, error)
}

// Wire field names shared by both collections
const (
	fieldCreatedAt = "createdAt"
	fieldTitle     = "title"
	fieldCategory  = "category"
)

type PortfolioCodec struct{}

var _ Codec[*model.PortfolioItem] = PortfolioCodec{}

func (PortfolioCodec) Encode(p *model.PortfolioItem) backend.Record {
	rec := backend.Record{
		fieldTitle:       p.Title,
		"description":    p.Description,
		fieldCategory:    string(p.Category),
		"image":          p.Image,
		"client":         p.Client,
		"completionDate": p.CompletionDate,
		"featured":       p.Featured.String(),
		"technologies":   p.Technologies,
		"liveUrl":        p.LiveURL,
	}
	setIdentity(rec, p.ID, p.OwnerID, p.CreatedAt)
	return rec
}

func (PortfolioCodec) Decode(rec backend.Record) (*model.PortfolioItem, error) {
	if rec.ID() == "" {
		return nil, ErrMissingID
	}
	createdAt, err := decodeCreatedAt(rec)
	if err != nil {
		return nil, err
	}
	return &model.PortfolioItem{
		ID:             rec.ID(),
		OwnerID:        rec.OwnerID(),
		CreatedAt:      createdAt,
		Title:          rec[fieldTitle],
		Description:    rec["description"],
		Category:       model.PortfolioCategory(rec[fieldCategory]),
		Image:          rec["image"],
		Client:         rec["client"],
		CompletionDate: rec["completionDate"],
		Featured:       model.ParseFeatured(rec["featured"]),
		Technologies:   rec["technologies"],
		LiveURL:        rec["liveUrl"],
	}, nil
}

type BlogCodec struct{}

var _ Codec[*model.BlogPost] = BlogCodec{}

func (BlogCodec) Encode(p *model.BlogPost) backend.Record {
	publishedAt := ""
	if p.PublishedAt != nil {
		publishedAt = p.PublishedAt.UTC().Format(time.RFC3339)
	}
	rec := backend.Record{
		fieldTitle:    p.Title,
		"slug":        p.Slug,
		"excerpt":     p.Excerpt,
		"content":     p.Content,
		"coverImage":  p.CoverImage,
		"author":      p.Author,
		fieldCategory: string(p.Category),
		"tags":        p.Tags,
		"published":   p.Status.String(),
		"publishedAt": publishedAt,
	}
	setIdentity(rec, p.ID, p.OwnerID, p.CreatedAt)
	return rec
}

func (BlogCodec) Decode(rec backend.Record) (*model.BlogPost, error) {
	if rec.ID() == "" {
		return nil, ErrMissingID
	}
	createdAt, err := decodeCreatedAt(rec)
	if err != nil {
		return nil, err
	}

	var publishedAt *time.Time
	if v := rec["publishedAt"]; v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, fmt.Errorf("invalid publishedAt %q: %w", v, err)
		}
		publishedAt = &t
	}

	return &model.BlogPost{
		ID:          rec.ID(),
		OwnerID:     rec.OwnerID(),
		CreatedAt:   createdAt,
		Title:       rec[fieldTitle],
		Slug:        rec["slug"],
		Excerpt:     rec["excerpt"],
		Content:     rec["content"],
		CoverImage:  rec["coverImage"],
		Author:      rec["author"],
		Category:    model.BlogCategory(rec[fieldCategory]),
		Tags:        rec["tags"],
		Status:      model.ParsePublishStatus(rec["published"]),
		PublishedAt: publishedAt,
	}, nil
}

func setIdentity(rec backend.Record, id, ownerID string, createdAt time.Time) {
	if id != "" {
		rec[backend.FieldID] = id
	}
	if ownerID != "" {
		rec[backend.FieldOwnerID] = ownerID
	}
	if !createdAt.IsZero() {
		rec[fieldCreatedAt] = createdAt.UTC().Format(time.RFC3339)
	}
}

// decodeCreatedAt prefers the client-written createdAt and falls back to the
// server timestamp
func decodeCreatedAt(rec backend.Record) (time.Time, error) {
	v := rec[fieldCreatedAt]
	if v == "" {
		v = rec[backend.FieldCreatedAt]
	}
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid createdAt %q: %w", v, err)
	}
	return t, nil
}
