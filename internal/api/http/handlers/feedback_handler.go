package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repair-tracker/internal/api/dto"
	"github.com/spec-kit/repair-tracker/internal/service"
	apperrors "github.com/spec-kit/repair-tracker/pkg/util/errorutil"
)

// FeedbackHandler manages ticket feedback endpoints.
type FeedbackHandler struct {
	service *service.FeedbackService
}

// NewFeedbackHandler constructs handler.
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: feedbackService}
}

// Submit POST /tickets/:ticketId/feedback.
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req dto.CreateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	fb, err := h.service.Submit(c.UserContext(), c.Params("ticketId"), req.Rating, req.Comments)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFeedbackResponse(fb)})
}

// List GET /tickets/:ticketId/feedback.
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	items, err := h.service.ListByTicket(c.UserContext(), c.Params("ticketId"))
	if err != nil {
		return err
	}
	resp := make([]dto.FeedbackResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.NewFeedbackResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}
