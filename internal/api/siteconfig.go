package api

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/patioshop/storefront/internal/siteconfig"
)

var _ siteconfig.Fetcher = (*Client)(nil)

type carouselImageDTO struct {
	ImageURL string `json:"imageUrl"`
	Title    string `json:"title"`
	Link     string `json:"link"`
}

// siteConfigDTO tolerates partial responses: absent fields fall back to the
// defaults, matching how the storefront treats a sparse config document.
type siteConfigDTO struct {
	PrimaryColor   string             `json:"primaryColor"`
	SecondaryColor string             `json:"secondaryColor"`
	Theme          string             `json:"theme"`
	CarouselImages []carouselImageDTO `json:"carouselImages"`
	IsStoreEnabled *bool              `json:"isStoreEnabled"`
}

// SiteConfig fetches theming and feature flags for the session.
func (c *Client) SiteConfig(ctx context.Context) (*siteconfig.Config, error) {
	var dto siteConfigDTO
	if err := c.getJSON(ctx, "/api/site-config", &dto); err != nil {
		return nil, errors.Wrap(err, "get site config")
	}

	cfg := siteconfig.Defaults()
	if dto.PrimaryColor != "" {
		cfg.PrimaryColor = dto.PrimaryColor
	}
	if dto.SecondaryColor != "" {
		cfg.SecondaryColor = dto.SecondaryColor
	}
	if dto.Theme != "" {
		cfg.Theme = dto.Theme
	}
	if dto.IsStoreEnabled != nil {
		cfg.StoreEnabled = *dto.IsStoreEnabled
	}
	cfg.CarouselImages = make([]siteconfig.Image, len(dto.CarouselImages))
	for i, img := range dto.CarouselImages {
		cfg.CarouselImages[i] = siteconfig.Image{
			URL:   img.ImageURL,
			Title: img.Title,
			Link:  img.Link,
		}
	}
	return &cfg, nil
}
