package controller

import (
	"healthlync-be/internal/dto"
	"healthlync-be/internal/pkg/apperrors"
	"healthlync-be/internal/pkg/serverutils"
	"healthlync-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRagController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	AddDocument(ctx *fiber.Ctx) error
	ListDocuments(ctx *fiber.Ctx) error
	DeleteDocument(ctx *fiber.Ctx) error
}

type ragController struct {
	ragService      service.IRagService
	documentService service.IDocumentService
}

func NewRagController(ragService service.IRagService, documentService service.IDocumentService) IRagController {
	return &ragController{
		ragService:      ragService,
		documentService: documentService,
	}
}

func (c *ragController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/rag")
	// Ask and search are public. Document management requires auth.
	h.Post("/ask", c.Ask)
	h.Post("/search", c.Search)

	docs := h.Group("/documents")
	docs.Use(serverutils.JwtMiddleware)
	docs.Post("", c.AddDocument)
	docs.Get("", c.ListDocuments)
	docs.Delete(":id", c.DeleteDocument)
}

// Ask keeps the flat response shape existing clients parse, including on
// errors, so it does not use the shared response envelope.
func (c *ragController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Query is required",
		})
	}

	res, err := c.ragService.Ask(ctx.Context(), &req)
	if err != nil {
		switch {
		case apperrors.IsValidation(err):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		case apperrors.IsTimeout(err):
			return ctx.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to process query",
				"details": err.Error(),
			})
		}
	}

	return ctx.JSON(res)
}

func (c *ragController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ragService.Search(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search documents", res))
}

func (c *ragController) AddDocument(ctx *fiber.Ctx) error {
	var req dto.AddDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Add(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add document", res))
}

func (c *ragController) ListDocuments(ctx *fiber.Ctx) error {
	res, err := c.documentService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *ragController) DeleteDocument(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.FailResponse(fiber.StatusBadRequest, "invalid document id"))
	}

	if err := c.documentService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete document", nil))
}
