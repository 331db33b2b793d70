package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/pkg/cart"

	"github.com/gofiber/fiber/v2"
)

type (
	CartHandler interface {
		AddToCart(c *fiber.Ctx) error
		RemoveFromCart(c *fiber.Ctx) error
		AddToFavorites(c *fiber.Ctx) error
		RemoveFromFavorites(c *fiber.Ctx) error
		DownloadShoppingCart(c *fiber.Ctx) error
	}

	cartHandler struct {
		cartService cart.CartService
	}
)

func NewCartHandler(cartService cart.CartService) CartHandler {
	return &cartHandler{cartService: cartService}
}

func (h *cartHandler) AddToCart(c *fiber.Ctx) error {
	return h.addToList(c, entities.ListKindCart)
}

func (h *cartHandler) RemoveFromCart(c *fiber.Ctx) error {
	return h.removeFromList(c, entities.ListKindCart)
}

func (h *cartHandler) AddToFavorites(c *fiber.Ctx) error {
	return h.addToList(c, entities.ListKindFavorite)
}

func (h *cartHandler) RemoveFromFavorites(c *fiber.Ctx) error {
	return h.removeFromList(c, entities.ListKindFavorite)
}

func (h *cartHandler) addToList(c *fiber.Ctx, kind string) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	res, err := h.cartService.AddToList(c.Context(), kind, userID, recipeID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedAddToList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddToList)
}

func (h *cartHandler) removeFromList(c *fiber.Ctx, kind string) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if err := h.cartService.RemoveFromList(c.Context(), kind, userID, recipeID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedRemoveFromList, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusNoContent, domain.MessageSuccessRemoveFromList)
}

// DownloadShoppingCart streams the aggregated cart as a CSV attachment.
func (h *cartHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	items, err := h.cartService.ShoppingList(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShoppingList, err)
	}

	data, err := h.cartService.RenderCSV(items)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShoppingList, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="product_list.csv"`)
	return c.Status(fiber.StatusOK).Send(data)
}
