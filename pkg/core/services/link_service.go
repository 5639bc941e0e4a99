package services

import (
	"context"
	"net/http"
	"time"

	"github.com/warakornp/go-shortlink/pkg/core/domain"
	"github.com/warakornp/go-shortlink/pkg/ports"
)

type LinkService struct {
	repo ports.LinkRepository
}

func NewLinkService(repo ports.LinkRepository) *LinkService {
	return &LinkService{repo: repo}
}

var (
	errSlugTaken    = domain.NewErrorWithDetails(http.StatusBadRequest, "Slug is already in use", map[string]string{"slug": "already in use"})
	errLinkNotFound = domain.NewError(http.StatusNotFound, "Link not found")
)

func (s *LinkService) List(ctx context.Context, page, pagesize int, sort string) (*domain.LinkPage, error) {
	if page < 1 {
		page = 1
	}
	if pagesize < 1 {
		pagesize = 10
	}
	offset := (page - 1) * pagesize

	links, err := s.repo.List(ctx, pagesize, offset, sort)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.LinkPage{
		Links:    make([]domain.PublicLink, 0, len(links)),
		Page:     page,
		Pagesize: pagesize,
		Total:    total,
	}
	for i := range links {
		result.Links = append(result.Links, links[i].Public())
	}
	return result, nil
}

// GetBySlug is the redirect-resolution path: one read, no side effects.
// A missing slug is (nil, nil), not an error.
func (s *LinkService) GetBySlug(ctx context.Context, slug string) (*domain.Link, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *LinkService) Create(ctx context.Context, author int64, slug, destination string) (*domain.Link, error) {
	existing, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errSlugTaken
	}

	link := &domain.Link{
		Slug:        slug,
		Destination: destination,
		Author:      author,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Update rewrites slug and destination by id. Any authenticated account
// may update any link; there is no ownership check against the author.
func (s *LinkService) Update(ctx context.Context, id int64, slug, destination string) (*domain.Link, error) {
	link, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, errLinkNotFound
	}

	link.Slug = slug
	link.Destination = destination
	link.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Remove deletes by id, with the same no-ownership-check behavior as
// Update.
func (s *LinkService) Remove(ctx context.Context, id int64) error {
	link, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if link == nil {
		return errLinkNotFound
	}
	return s.repo.Delete(ctx, id)
}

// Ensure interface compliance
var _ ports.LinkService = (*LinkService)(nil)
