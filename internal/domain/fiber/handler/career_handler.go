package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pathsetu/career-refinement/internal/dto"
	"github.com/pathsetu/career-refinement/internal/middleware"
	"github.com/pathsetu/career-refinement/internal/model"
	"github.com/pathsetu/career-refinement/internal/repository"
	"github.com/pathsetu/career-refinement/internal/response"
	"github.com/pathsetu/career-refinement/internal/usecase"
	"github.com/pathsetu/career-refinement/internal/util"
)

type CareerHandler struct {
	uc          *usecase.RefinementUsecase
	careerRepo  *repository.CareerPathRepository
	catalogRepo *repository.CatalogRepository
}

func NewCareerHandler(uc *usecase.RefinementUsecase, careerRepo *repository.CareerPathRepository, catalogRepo *repository.CatalogRepository) *CareerHandler {
	return &CareerHandler{uc: uc, careerRepo: careerRepo, catalogRepo: catalogRepo}
}

func (h *CareerHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/careers", h.ListCareers)
	app.Get("/careers/:slug", h.GetCareer)
	app.Get("/careers/:slug/related", h.RelatedCareers)
	// Refinement triggers a model call per hit, so it gets its own tight limit.
	app.Post("/careers/:slug/refine", middleware.RateLimiter(1, 4*time.Second), h.RefineCareer)
	app.Get("/clusters", h.ListClusters)
	app.Get("/colleges", h.ListColleges)
	app.Get("/exams", h.ListExams)
}

func (h *CareerHandler) ListCareers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	careers, total, err := h.careerRepo.List(page, limit)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list careers",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list careers",
		Data:       dto.FromCareerPaths(careers),
		Pagination: response.NewPagination(page, limit, total),
	})
}

func (h *CareerHandler) GetCareer(c *fiber.Ctx) error {
	career, err := h.careerRepo.FindBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, model.ErrCareerNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "career not found",
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to get career",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get career",
		Data:    dto.FromCareerPath(career),
	})
}

func (h *CareerHandler) RelatedCareers(c *fiber.Ctx) error {
	career, err := h.careerRepo.FindBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, model.ErrCareerNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "career not found",
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to get career",
		}, err)
	}

	topK := c.QueryInt("limit", 5)
	if topK < 1 || topK > 20 {
		topK = 5
	}
	related, err := h.careerRepo.FindRelated(career.ID, career.Embedding, topK)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to find related careers",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success find related careers",
		Data:    dto.FromCareerPaths(related),
	})
}

func (h *CareerHandler) RefineCareer(c *fiber.Ctx) error {
	force := c.QueryBool("force", false)
	slug := c.Params("slug")

	result, err := h.uc.RunSingle(c.Context(), usecase.BySlug, slug, force)
	if err != nil {
		if errors.Is(err, model.ErrCareerNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "career not found",
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to refine career",
		}, err)
	}

	out := dto.RefineResultDTO{Slug: slug, Outcome: string(result.Outcome)}
	if result.Err != nil {
		out.Reason = result.Err.Error()
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "refinement failed",
			Details: out,
		}, result.Err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success refine career",
		Data:    out,
	})
}

func (h *CareerHandler) ListClusters(c *fiber.Ctx) error {
	clusters, err := h.catalogRepo.Clusters()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list clusters",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success list clusters",
		Data:    clusters,
	})
}

func (h *CareerHandler) ListColleges(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	colleges, total, err := h.catalogRepo.Colleges(c.Query("location"), page, limit)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list colleges",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list colleges",
		Data:       colleges,
		Pagination: response.NewPagination(page, limit, total),
	})
}

func (h *CareerHandler) ListExams(c *fiber.Ctx) error {
	exams, err := h.catalogRepo.Exams()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list exams",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success list exams",
		Data:    exams,
	})
}
