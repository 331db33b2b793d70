package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/pkg/shortlink"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type (
	ShortLinkHandler interface {
		GetShortLink(c *fiber.Ctx) error
		RedirectShortLink(c *fiber.Ctx) error
	}

	shortLinkHandler struct {
		shortLinkService shortlink.ShortLinkService
	}
)

func NewShortLinkHandler(shortLinkService shortlink.ShortLinkService) ShortLinkHandler {
	return &shortLinkHandler{shortLinkService: shortLinkService}
}

func (h *shortLinkHandler) GetShortLink(c *fiber.Ctx) error {
	recipeID := c.Params("id")
	host := c.Hostname()
	fullLink := fmt.Sprintf("http://%s/api/v1/recipes/%s", host, recipeID)

	token, err := h.shortLinkService.GetOrCreate(c.Context(), recipeID, fullLink)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetLink, err)
	}

	return c.Status(fiber.StatusOK).JSON(domain.ShortLinkResponse{
		ShortLink: fmt.Sprintf("http://%s/s/%s/", host, token),
	})
}

func (h *shortLinkHandler) RedirectShortLink(c *fiber.Ctx) error {
	token := c.Params("token")

	fullLink, err := h.shortLinkService.Resolve(c.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetLink, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetLink, err)
	}

	return c.Redirect(fullLink, fiber.StatusFound)
}
