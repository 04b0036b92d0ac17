package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
	"github.com/ManojPokuru/course-creator-plugin/internal/dto"
	"github.com/ManojPokuru/course-creator-plugin/internal/validation"
)

// QuestionHandler serves standalone question generation.
type QuestionHandler struct {
	questions domain.QuestionService
	validator *validation.Validator
}

func NewQuestionHandler(questions domain.QuestionService, validator *validation.Validator) *QuestionHandler {
	return &QuestionHandler{questions: questions, validator: validator}
}

// GenerateQuestion godoc
// @Summary Generate a single question
// @Description Generates one question of the given kind about a topic
// @Tags question
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuestionRequest true "Question request"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) GenerateQuestion(c *fiber.Ctx) error {
	var req dto.GenerateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if errs := h.validator.Struct(req); errs != nil {
		return errs
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}

	question, err := h.questions.GenerateQuestion(c.UserContext(), req.Type, req.Topic, req.Difficulty)
	if err != nil {
		return err
	}
	return c.JSON(dto.QuestionResponse{Result: dto.ResultSuccess, Question: question})
}
