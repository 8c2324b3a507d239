package service

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BuzzLyutic/dashboard-api/internal/content"
	"github.com/BuzzLyutic/dashboard-api/internal/model"
	"github.com/BuzzLyutic/dashboard-api/internal/repo"
)

// BlogPost — публичное представление одобренного черновика
type BlogPost struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Preview string `json:"preview,omitempty"`
	HTML    string `json:"html,omitempty"`
}

type BlogService struct {
	reviews repo.ReviewRepository
	catalog *content.Catalog
}

func NewBlogService(reviews repo.ReviewRepository, catalog *content.Catalog) *BlogService {
	return &BlogService{
		reviews: reviews,
		catalog: catalog,
	}
}

// List отдает только черновики, одобренные ревью и существующие на диске
func (s *BlogService) List(ctx context.Context) ([]BlogPost, error) {
	approved, err := s.approvedSlugs(ctx)
	if err != nil {
		return nil, err
	}

	drafts, err := s.catalog.List(nil)
	if err != nil {
		return nil, err
	}

	posts := make([]BlogPost, 0, len(drafts))
	for _, d := range drafts {
		if _, ok := approved[d.Slug]; !ok {
			continue
		}
		posts = append(posts, BlogPost{
			Slug:    d.Slug,
			Title:   d.Title,
			Preview: d.Preview,
		})
	}
	return posts, nil
}

// Get рендерит одобренный пост; все остальное — not found без деталей
func (s *BlogService) Get(ctx context.Context, slug string) (BlogPost, error) {
	approved, err := s.approvedSlugs(ctx)
	if err != nil {
		return BlogPost{}, err
	}
	if _, ok := approved[slug]; !ok {
		return BlogPost{}, repo.ErrorNotFound
	}

	title, body, err := s.catalog.Read(slug)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return BlogPost{}, repo.ErrorNotFound
		}
		return BlogPost{}, err
	}

	html, err := content.RenderHTML(body)
	if err != nil {
		return BlogPost{}, err
	}

	return BlogPost{
		Slug:  slug,
		Title: title,
		HTML:  html,
	}, nil
}

func (s *BlogService) approvedSlugs(ctx context.Context) (map[string]struct{}, error) {
	reviews, err := s.reviews.ListByStatus(ctx, model.StatusApproved)
	if err != nil {
		return nil, err
	}

	slugs := make(map[string]struct{}, len(reviews))
	for _, r := range reviews {
		// file_path может быть полным путем или относительным, с .md или без
		base := filepath.Base(r.FilePath)
		slug := strings.TrimSuffix(base, ".md")
		if slug != "" {
			slugs[slug] = struct{}{}
		}
	}
	return slugs, nil
}
