package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repair-tracker/internal/api/dto"
	"github.com/spec-kit/repair-tracker/internal/auth"
	"github.com/spec-kit/repair-tracker/internal/domain"
	"github.com/spec-kit/repair-tracker/internal/export"
	"github.com/spec-kit/repair-tracker/internal/service"
	apperrors "github.com/spec-kit/repair-tracker/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /tickets/create.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), service.TicketCreateInput{
		CustomerName:  req.CustomerName,
		SerialNumber:  req.SerialNumber,
		Description:   req.Description,
		ContactNumber: req.ContactNumber,
		BillReference: req.BillReference,
		Email:         req.Email,
		ProductType:   req.ProductType,
		ModelType:     req.ModelType,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, time.Now())})
}

// List GET /tickets/ticket.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	tickets, err := h.service.ListTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(tickets)})
}

// Search GET /tickets/ticket/search?q=.
func (h *TicketsHandler) Search(c *fiber.Ctx) error {
	tickets, err := h.service.SearchTickets(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(tickets)})
}

// Track GET /tickets/track/:trackingId.
func (h *TicketsHandler) Track(c *fiber.Ctx) error {
	ticket, err := h.service.TrackTicket(c.UserContext(), c.Params("trackingId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, time.Now())})
}

// Export GET /tickets/export.
func (h *TicketsHandler) Export(c *fiber.Ctx) error {
	tickets, err := h.service.ListTickets(c.UserContext())
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, tickets); err != nil {
		return apperrors.NewInternalError(err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tickets.csv"`)
	return c.Send(buf.Bytes())
}

// Update PUT /tickets/update/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.UpdateTicket(c.UserContext(), c.Params("id"), req.Patch(), actingUsername(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, time.Now())})
}

// Assign PUT /tickets/assign/:ticketId.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.AssignTicket(c.UserContext(), c.Params("ticketId"), req.AgentID, actingUsername(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, time.Now())})
}

// Unassign PUT /tickets/unassign/:ticketId.
func (h *TicketsHandler) Unassign(c *fiber.Ctx) error {
	ticket, err := h.service.UnassignTicket(c.UserContext(), c.Params("ticketId"), actingUsername(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, time.Now())})
}

// Resolve PUT /tickets/resolve/:ticketId.
func (h *TicketsHandler) Resolve(c *fiber.Ctx) error {
	ticket, err := h.service.ResolveTicket(c.UserContext(), c.Params("ticketId"), actingUsername(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, time.Now())})
}

// Delete DELETE /tickets/delete/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteTicket(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "ticket deleted successfully"})
}

// Assigned GET /tickets/assigned/:agentId.
func (h *TicketsHandler) Assigned(c *fiber.Ctx) error {
	tickets, err := h.service.ListTicketsByAgent(c.UserContext(), c.Params("agentId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(tickets)})
}

// Role GET /tickets/role/:role.
func (h *TicketsHandler) Role(c *fiber.Ctx) error {
	users, err := h.service.UsersByRole(c.UserContext(), c.Params("role"))
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func actingUsername(c *fiber.Ctx) string {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return ""
	}
	return principal.Username()
}

func ticketResponses(tickets []domain.Ticket) []dto.TicketResponse {
	now := time.Now()
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i], now))
	}
	return items
}
