package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"labelbox/models"
	"labelbox/storage"
	"labelbox/utils"
)

// LabelStore is the persistence surface the label handlers need. Every
// per-record operation is scoped by the owner id.
type LabelStore interface {
	CreateLabel(ctx context.Context, label *models.Label) error
	GetLabelsByUser(ctx context.Context, userID string) ([]models.Label, error)
	GetLabel(ctx context.Context, userID, id string) (*models.Label, error)
	UpdateLabel(ctx context.Context, userID, id, title, color string) error
	DeleteLabel(ctx context.Context, userID, id string) error
}

// LabelHandler handles label CRUD requests
type LabelHandler struct {
	storage LabelStore
}

// NewLabelHandler creates a new label handler
func NewLabelHandler(labelStorage LabelStore) *LabelHandler {
	return &LabelHandler{storage: labelStorage}
}

type labelRequest struct {
	Title string `json:"title"`
	Color string `json:"color"`
}

// GetLabels retrieves all labels for the current user
func (h *LabelHandler) GetLabels(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return utils.UnauthorizedError("user not authenticated", nil)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	labels, err := h.storage.GetLabelsByUser(ctx, userID)
	if err != nil {
		return utils.InternalServerError("failed to retrieve labels", err)
	}
	if labels == nil {
		labels = []models.Label{}
	}

	return Respond(c, fiber.StatusOK, labels)
}

// CreateLabel creates a new label owned by the current user
func (h *LabelHandler) CreateLabel(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return utils.UnauthorizedError("user not authenticated", nil)
	}

	var req labelRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("invalid request body", err)
	}

	label := &models.Label{
		ID:     uuid.New().String(),
		UserID: userID,
		Title:  req.Title,
		Color:  req.Color,
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	if err := h.storage.CreateLabel(ctx, label); err != nil {
		return utils.InternalServerError("failed to create label", err)
	}

	return Respond(c, fiber.StatusCreated, fiber.Map{"id": label.ID})
}

// GetLabel retrieves a single label owned by the current user
func (h *LabelHandler) GetLabel(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return utils.UnauthorizedError("user not authenticated", nil)
	}

	id := c.Params("id")

	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	label, err := h.storage.GetLabel(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return utils.NotFoundError("label not found", nil)
		}
		return utils.InternalServerError("failed to retrieve label", err)
	}

	return Respond(c, fiber.StatusOK, label)
}

// UpdateLabel rewrites a label's title and color
func (h *LabelHandler) UpdateLabel(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return utils.UnauthorizedError("user not authenticated", nil)
	}

	id := c.Params("id")

	var req labelRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("invalid request body", err)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	if err := h.storage.UpdateLabel(ctx, userID, id, req.Title, req.Color); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return utils.NotFoundError("label not found", nil)
		}
		return utils.InternalServerError("failed to update label", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteLabel removes a label
func (h *LabelHandler) DeleteLabel(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return utils.UnauthorizedError("user not authenticated", nil)
	}

	id := c.Params("id")

	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	if err := h.storage.DeleteLabel(ctx, userID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return utils.NotFoundError("label not found", nil)
		}
		return utils.InternalServerError("failed to delete label", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
