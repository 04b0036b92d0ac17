package handler

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
	"github.com/ManojPokuru/course-creator-plugin/internal/dto"
	"github.com/ManojPokuru/course-creator-plugin/internal/logger"
	"github.com/ManojPokuru/course-creator-plugin/internal/service"
	"github.com/ManojPokuru/course-creator-plugin/internal/util"
	"github.com/ManojPokuru/course-creator-plugin/internal/validation"
)

// SourceExtractor turns uploaded reference material into prompt text.
type SourceExtractor interface {
	FromPDF(r io.Reader) (string, error)
	FromText(text string) (string, error)
}

// CourseHandler handles course generation and retrieval
type CourseHandler struct {
	courses       domain.CourseService
	results       domain.CourseResultStore
	extractor     SourceExtractor
	validator     *validation.Validator
	includeVideos bool
}

// NewCourseHandler creates a new CourseHandler instance. includeVideos is the
// default used when a request does not say.
func NewCourseHandler(
	courses domain.CourseService,
	results domain.CourseResultStore,
	extractor SourceExtractor,
	validator *validation.Validator,
	includeVideos bool,
) *CourseHandler {
	return &CourseHandler{
		courses:       courses,
		results:       results,
		extractor:     extractor,
		validator:     validator,
		includeVideos: includeVideos,
	}
}

// Register mounts the course routes on an /api group. generateMiddleware runs
// in front of POST /generate only.
func (h *CourseHandler) Register(api fiber.Router, generateMiddleware ...fiber.Handler) {
	api.Post("/generate", append(generateMiddleware, h.GenerateCourse)...)
	api.Get("/courses/:requestID", h.GetCourse)
	api.Get("/courses/:requestID/modules", h.GetModules)
	api.Get("/courses/:requestID/olx", h.GetOLX)
	api.Get("/courses/:requestID/plan", h.GetComponentPlan)
}

// GenerateCourse godoc
// @Summary Generate a course
// @Description Builds a complete course for a topic and audience. Accepts JSON or multipart form data with an optional source_pdf file.
// @Tags course
// @Accept json,mpfd
// @Produce json
// @Param request body dto.GenerateCourseRequest true "Course request"
// @Param source_pdf formData file false "Reference PDF"
// @Success 200 {object} dto.CourseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /generate [post]
func (h *CourseHandler) GenerateCourse(c *fiber.Ctx) error {
	var req dto.GenerateCourseRequest
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return domain.NewInvalidInputError("invalid request body")
	}
	req.CourseTopic = strings.TrimSpace(req.CourseTopic)
	req.CourseLevel = strings.TrimSpace(req.CourseLevel)

	if errs := h.validator.Struct(req); errs != nil {
		return errs
	}

	reference, err := h.reference(c, req.SourceText)
	if err != nil {
		return err
	}

	courseReq := domain.CourseRequest{
		RequestID:       requestID(c),
		Title:           req.CourseTopic,
		Audience:        req.CourseLevel,
		Duration:        domain.Duration(req.Duration),
		Components:      req.Components,
		AssessmentKinds: req.AssessmentTypes,
		IncludeVideos:   h.includeVideos,
		Reference:       reference,
	}
	if courseReq.Duration == "" && req.NumModules > 0 {
		courseReq.Duration = service.DurationForModuleCount(req.NumModules)
	}
	if req.IncludeVideos != nil {
		courseReq.IncludeVideos = *req.IncludeVideos
	}

	course, report, err := h.courses.Generate(c.UserContext(), courseReq)
	if err != nil {
		return err
	}

	logger.Get().Info("Course generated",
		zap.String("request_id", report.RequestID),
		zap.Int("sections", len(course.Sections)),
		zap.Bool("degraded", report.Degraded()),
	)

	c.Set(fiber.HeaderXRequestID, report.RequestID)
	return c.JSON(dto.CourseResponse{
		Result:    dto.ResultSuccess,
		RequestID: report.RequestID,
		JSON:      course,
		Report:    report,
	})
}

// requestID prefers a caller-supplied X-Request-ID and falls back to the one
// set by the requestid middleware. Anything that is not a ULID is ignored.
func requestID(c *fiber.Ctx) string {
	for _, id := range []string{c.Get(fiber.HeaderXRequestID), c.GetRespHeader(fiber.HeaderXRequestID)} {
		if util.IsULID(id) {
			return id
		}
	}
	return ""
}

// reference picks the uploaded PDF over pasted text.
func (h *CourseHandler) reference(c *fiber.Ctx, sourceText string) (string, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if file, err := c.FormFile("source_pdf"); err == nil {
			f, err := file.Open()
			if err != nil {
				return "", domain.NewSourceMaterialError("failed to open source PDF", err)
			}
			defer f.Close()
			return h.extractor.FromPDF(f)
		}
	}

	if strings.TrimSpace(sourceText) == "" {
		return "", nil
	}
	return h.extractor.FromText(sourceText)
}

// GetCourse godoc
// @Summary Get a generated course
// @Description Returns a previously generated course by request id
// @Tags course
// @Produce json
// @Param requestID path string true "Request ID"
// @Success 200 {object} dto.CourseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{requestID} [get]
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	course, report, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.CourseResponse{
		Result:    dto.ResultSuccess,
		RequestID: c.Params("requestID"),
		JSON:      course,
		Report:    report,
	})
}

// GetModules godoc
// @Summary Get a course as modules
// @Description Returns the course units flattened into title/content modules
// @Tags course
// @Produce json
// @Param requestID path string true "Request ID"
// @Param limit query int false "Maximum number of modules"
// @Success 200 {object} dto.ModulesResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{requestID}/modules [get]
func (h *CourseHandler) GetModules(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return domain.ValidationErrors{domain.NewOutOfRangeError("limit", limit, "min 0")}
	}
	course, _, err := h.lookup(c)
	if err != nil {
		return err
	}

	view := service.Modules(course, limit)
	resp := dto.ModulesResponse{
		Result:  dto.ResultSuccess,
		Title:   view.Title,
		Level:   view.Level,
		Modules: make([]dto.ModuleEntity, 0, len(view.Modules)),
	}
	for _, m := range view.Modules {
		resp.Modules = append(resp.Modules, dto.ModuleEntity{Title: m.Title, Content: m.Content})
	}
	return c.JSON(resp)
}

// GetOLX godoc
// @Summary Export a course as OLX
// @Description Returns the chapter/sequential/vertical layout of a course as JSON, or as XML with format=xml
// @Tags export
// @Produce json,xml
// @Param requestID path string true "Request ID"
// @Param format query string false "json or xml"
// @Success 200 {object} service.OLX
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{requestID}/olx [get]
func (h *CourseHandler) GetOLX(c *fiber.Ctx) error {
	format := c.Query("format", "json")
	if format != "json" && format != "xml" {
		return domain.ValidationErrors{domain.NewInvalidFormatError("format", format, "json or xml")}
	}
	course, _, err := h.lookup(c)
	if err != nil {
		return err
	}

	olx, err := service.BuildOLX(course)
	if err != nil {
		return domain.NewInternalError("failed to build OLX export", err)
	}
	if format == "json" {
		return c.JSON(olx)
	}
	out, err := olx.XML()
	if err != nil {
		return domain.NewInternalError("failed to render OLX export", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(out)
}

// GetComponentPlan godoc
// @Summary Get an LMS component plan
// @Description Returns one vertical per section with an HTML block per unit
// @Tags export
// @Produce json
// @Param requestID path string true "Request ID"
// @Success 200 {object} service.ComponentPlan
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{requestID}/plan [get]
func (h *CourseHandler) GetComponentPlan(c *fiber.Ctx) error {
	course, _, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(service.BuildComponentPlan(course))
}

func (h *CourseHandler) lookup(c *fiber.Ctx) (*domain.Course, *domain.GenerationReport, error) {
	requestID := c.Params("requestID")
	if !util.IsULID(requestID) {
		return nil, nil, domain.ValidationErrors{domain.NewInvalidFormatError("requestID", requestID, "ULID")}
	}
	return h.results.Get(c.UserContext(), requestID)
}
