package controller

import (
	"errors"
	"strconv"

	"concept-search-be/internal/dto"
	"concept-search-be/internal/pkg/serverutils"
	"concept-search-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	GetTokens(ctx *fiber.Ctx) error
	AddToken(ctx *fiber.Ctx) error
	RemoveToken(ctx *fiber.Ctx) error
	ToggleOperator(ctx *fiber.Ctx) error
	ClearTokens(ctx *fiber.Ctx) error
	GetQuery(ctx *fiber.Ctx) error
	Suggest(ctx *fiber.Ctx) error
	SearchDocuments(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type searchController struct {
	service service.ISearchService
}

func NewSearchController(service service.ISearchService) ISearchController {
	return &searchController{service: service}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search")
	h.Get("/tokens", c.GetTokens)
	h.Post("/tokens", c.AddToken)
	h.Delete("/tokens/:id", c.RemoveToken)
	h.Patch("/tokens/:index/operator", c.ToggleOperator)
	h.Delete("/tokens", c.ClearTokens)
	h.Get("/query", c.GetQuery)
	h.Get("/suggest", c.Suggest)
	h.Get("/documents", c.SearchDocuments)
	h.Get("/history", c.GetHistory)
}

func (c *searchController) GetTokens(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)
	res := c.service.GetTokens(sess)
	return ctx.JSON(serverutils.SuccessResponse("Success get tokens", res))
}

func (c *searchController) AddToken(ctx *fiber.Ctx) error {
	var req dto.SearchTokenPayload
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sess := serverutils.SessionFromCtx(ctx)
	res := c.service.AddToken(sess, &req)
	return ctx.JSON(serverutils.SuccessResponse("Success add token", res))
}

func (c *searchController) RemoveToken(ctx *fiber.Ctx) error {
	tokenId := ctx.Params("id")
	if tokenId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "token id is required"))
	}

	sess := serverutils.SessionFromCtx(ctx)
	res := c.service.RemoveToken(sess, tokenId)
	return ctx.JSON(serverutils.SuccessResponse("Success remove token", res))
}

func (c *searchController) ToggleOperator(ctx *fiber.Ctx) error {
	index, err := strconv.Atoi(ctx.Params("index"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "index must be an integer"))
	}

	// Invalid indices (0, negative, out of range) are a safe no-op in
	// the store; the handler just echoes the unchanged list.
	sess := serverutils.SessionFromCtx(ctx)
	res := c.service.ToggleOperator(sess, index)
	return ctx.JSON(serverutils.SuccessResponse("Success toggle operator", res))
}

func (c *searchController) ClearTokens(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)
	res := c.service.ClearTokens(sess)
	return ctx.JSON(serverutils.SuccessResponse("Success clear tokens", res))
}

func (c *searchController) GetQuery(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)
	res := c.service.CompileQuery(sess)
	return ctx.JSON(serverutils.SuccessResponse("Success compile query", res))
}

func (c *searchController) Suggest(ctx *fiber.Ctx) error {
	prefix := ctx.Query("query", "")
	if prefix == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "query parameter is required"))
	}

	res, err := c.service.Suggest(ctx.Context(), prefix)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get suggestions", res))
}

func (c *searchController) SearchDocuments(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	pageSize := ctx.QueryInt("page_size", 20)

	sess := serverutils.SessionFromCtx(ctx)
	res, err := c.service.Search(ctx.Context(), sess, page, pageSize)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search documents", res))
}

func (c *searchController) GetHistory(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)

	sess := serverutils.SessionFromCtx(ctx)
	res, err := c.service.History(ctx.Context(), sess.ID, limit)
	if err != nil {
		if errors.Is(err, service.ErrHistoryUnavailable) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get search history", res))
}
