package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-board/internal/api/dto"
	"github.com/spec-kit/ticket-board/internal/auth"
	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/service"
	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	return h.upsert(c, "")
}

// Update PUT /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	return h.upsert(c, c.Params("id"))
}

func (h *TicketsHandler) upsert(c *fiber.Ctx, id string) error {
	user := auth.PrincipalFromContext(c).User

	var req dto.UpsertTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	bounty, err := req.Validate()
	if err != nil {
		return err
	}

	input := service.TicketUpsertInput{
		Title:    req.Title,
		Content:  req.Content,
		Deadline: req.Deadline,
		Bounty:   bounty,
	}
	ticket, created, err := h.service.Upsert(c.UserContext(), user, id, input)
	if err != nil {
		return err
	}

	if isFormRequest(c) {
		// updates land on the detail view, creates back on the list
		if created {
			return c.Redirect(ticketsPath, fiber.StatusSeeOther)
		}
		return c.Redirect(ticketsPath+"/"+ticket.ID, fiber.StatusSeeOther)
	}

	message := "Ticket updated"
	status := http.StatusOK
	if created {
		message = "Ticket created"
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"data":    dto.NewTicketResponse(ticket, user.ID),
		"message": message,
	})
}

// List GET /tickets. Supports search, status filtering, and pagination.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	user := auth.PrincipalFromContext(c).User

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	query := service.TicketListQuery{
		SearchTerm: c.Query("search"),
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			query.Statuses = append(query.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}

	result, err := h.service.List(c.UserContext(), user, query)
	if err != nil {
		return err
	}

	items := make([]dto.TicketResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, dto.NewTicketResponse(&result.Items[i], user.ID))
	}
	return c.JSON(fiber.Map{"data": dto.TicketListResponse{
		Items:    items,
		Total:    result.Total,
		Page:     page,
		PageSize: pageSize,
	}})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	user := auth.PrincipalFromContext(c).User

	ticket, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, user.ID)})
}

// UpdateStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	user := auth.PrincipalFromContext(c).User

	var req dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.UpdateStatus(c.UserContext(), user, c.Params("id"), domain.TicketStatus(req.Status))
	if err != nil {
		return err
	}

	if isFormRequest(c) {
		return c.Redirect(ticketsPath, fiber.StatusSeeOther)
	}
	return c.JSON(fiber.Map{
		"data":    dto.NewTicketResponse(ticket, user.ID),
		"message": "Status updated",
	})
}

// Delete DELETE /tickets/:id (also POST /tickets/:id/delete for forms).
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	user := auth.PrincipalFromContext(c).User

	if err := h.service.Delete(c.UserContext(), user, c.Params("id")); err != nil {
		return err
	}

	if isFormRequest(c) {
		return c.Redirect(ticketsPath, fiber.StatusSeeOther)
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
