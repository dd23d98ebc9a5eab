package controller

import (
	"errors"

	"flix-n-chill-be/internal/dto"
	"flix-n-chill-be/internal/pkg/serverutils"
	"flix-n-chill-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRecommendationController interface {
	RegisterRoutes(r fiber.Router)
	Recommendations(ctx *fiber.Ctx) error
	GenreAnalysis(ctx *fiber.Ctx) error
	SimilarMovies(ctx *fiber.Ctx) error
}

type recommendationController struct {
	service      service.IRecommendationService
	validate     *validator.Validate
	defaultCount int
}

func NewRecommendationController(service service.IRecommendationService, defaultCount int) IRecommendationController {
	if defaultCount <= 0 {
		defaultCount = 10
	}
	return &recommendationController{
		service:      service,
		validate:     validator.New(),
		defaultCount: defaultCount,
	}
}

func (c *recommendationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/movies")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/recommendations", c.Recommendations)
	h.Get("/user/genre-analysis", c.GenreAnalysis)
	h.Get("/:id/similar", c.SimilarMovies)
}

func (c *recommendationController) Recommendations(ctx *fiber.Ctx) error {
	userID, ok := serverutils.PrincipalID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "unauthorized"))
	}

	// Non-numeric count falls back to -1 so it fails validation rather
	// than silently becoming the default.
	query := dto.RecommendationQuery{
		Count:        ctx.QueryInt("count", c.defaultCount),
		ExcludeRated: ctx.QueryBool("exclude_rated", true),
	}
	if ctx.Query("count") != "" && ctx.QueryInt("count", -1) <= 0 {
		query.Count = -1
	}
	if err := c.validate.Struct(&query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, service.ErrInvalidCount.Error()))
	}

	res, err := c.service.Recommend(ctx.Context(), userID, query.Count, query.ExcludeRated)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCount) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "internal server error"))
	}
	return ctx.JSON(res)
}

func (c *recommendationController) GenreAnalysis(ctx *fiber.Ctx) error {
	userID, ok := serverutils.PrincipalID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "unauthorized"))
	}

	res, err := c.service.GenreAnalysis(ctx.Context(), userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "internal server error"))
	}
	return ctx.JSON(res)
}

func (c *recommendationController) SimilarMovies(ctx *fiber.Ctx) error {
	movieID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid movie id"))
	}

	count := ctx.QueryInt("count", c.defaultCount)
	res, err := c.service.SimilarMovies(ctx.Context(), movieID, count)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCount):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		case errors.Is(err, service.ErrMovieNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "movie not found"))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "internal server error"))
		}
	}
	return ctx.JSON(res)
}
