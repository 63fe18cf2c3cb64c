package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-board/internal/api/dto"
	"github.com/spec-kit/ticket-board/internal/auth"
	"github.com/spec-kit/ticket-board/internal/service"
	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

// CommentsHandler manages ticket comment endpoints.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// Create POST /tickets/:id/comments.
func (h *CommentsHandler) Create(c *fiber.Ctx) error {
	user := auth.PrincipalFromContext(c).User

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	comment, err := h.service.Create(c.UserContext(), user, c.Params("id"), req.Content)
	if err != nil {
		return err
	}

	ticketID := c.Params("id")
	if isFormRequest(c) {
		return c.Redirect(ticketsPath+"/"+ticketID, fiber.StatusSeeOther)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(comment, user.ID)})
}

// List GET /tickets/:id/comments.
func (h *CommentsHandler) List(c *fiber.Ctx) error {
	user := auth.PrincipalFromContext(c).User

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)

	comments, err := h.service.ListByTicket(c.UserContext(), c.Params("id"), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}

	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, dto.NewCommentResponse(&comments[i], user.ID))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Delete DELETE /comments/:id.
func (h *CommentsHandler) Delete(c *fiber.Ctx) error {
	user := auth.PrincipalFromContext(c).User

	if err := h.service.Delete(c.UserContext(), user, c.Params("id")); err != nil {
		return err
	}

	if isFormRequest(c) {
		return c.Redirect(ticketsPath, fiber.StatusSeeOther)
	}
	return c.SendStatus(http.StatusNoContent)
}
