package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/apperr"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/dto"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/service"
)

// AdminController groups the mutation endpoints: instructor tests, question
// bank maintenance, sources and notifications.
type AdminController struct {
	adminTestSvc    service.AdminTestService
	questionBankSvc service.QuestionBankService
	sourceSvc       service.QuestionSourceService
	notificationSvc service.NotificationService
}

func NewAdminController(
	adminTestSvc service.AdminTestService,
	questionBankSvc service.QuestionBankService,
	sourceSvc service.QuestionSourceService,
	notificationSvc service.NotificationService,
) *AdminController {
	return &AdminController{
		adminTestSvc:    adminTestSvc,
		questionBankSvc: questionBankSvc,
		sourceSvc:       sourceSvc,
		notificationSvc: notificationSvc,
	}
}

func respondError(ctx *gin.Context, err error) {
	appErr := apperr.From(err)
	body := dto.ErrorResponse{Error: appErr.Message, Available: appErr.Available}
	if appErr.Err != nil {
		body.Details = []string{appErr.Err.Error()}
	}
	ctx.JSON(apperr.HTTPStatus(err), body)
}

// CreateTest godoc
// @Summary (Admin) Create an instructor-authored test
// @Description Creates a test with caller-supplied totals and an optional ordered question list. Tests with questions publish immediately; empty tests stay DRAFT.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateTestRequest true "Test definition"
// @Success 201 {object} model.Test
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /admin/tests [post]
func (c *AdminController) CreateTest(ctx *gin.Context) {
	var req dto.CreateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	test, err := c.adminTestSvc.CreateTest(req)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateTest failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, test)
}

// CreateQuestion godoc
// @Summary (Admin) Add a question to the bank
// @Description Creates a bank question with its options (MCQ) or reference answer (all other types).
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionRequest true "Question definition"
// @Success 201 {object} model.QuestionBankQuestion
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Insert conflicts even after sequence repair"
// @Router /admin/question-bank [post]
func (c *AdminController) CreateQuestion(ctx *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questionBankSvc.CreateQuestion(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateQuestion failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// DeactivateQuestion godoc
// @Summary (Admin) Retire a question from future sampling
// @Description Marks the question inactive. Tests already referencing it keep working.
// @Tags Admin
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Router /admin/question-bank/{id} [delete]
func (c *AdminController) DeactivateQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid id format"})
		return
	}

	if err := c.questionBankSvc.DeactivateQuestion(uint(id)); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// UpsertQuestionSource godoc
// @Summary (Admin) Find or create a question source
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.UpsertQuestionSourceRequest true "Source identity"
// @Success 200 {object} dto.QuestionSourceDTO
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /admin/question-sources/upsert [post]
func (c *AdminController) UpsertQuestionSource(ctx *gin.Context) {
	var req dto.UpsertQuestionSourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	source, err := c.sourceSvc.UpsertSource(req)
	if err != nil {
		log.Error().Err(err).Msg("UpsertQuestionSource failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, source)
}

// CreateNotification godoc
// @Summary (Admin) Send a notification to classes
// @Description Fans one notification out per addressed class, collected from classId, classIds and the classes of the referenced users.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateNotificationRequest true "Notification and targets"
// @Success 201 {array} dto.NotificationDTO
// @Failure 400 {object} dto.ErrorResponse "No resolvable target class"
// @Router /admin/notifications [post]
func (c *AdminController) CreateNotification(ctx *gin.Context) {
	var req dto.CreateNotificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	notifications, err := c.notificationSvc.CreateNotifications(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateNotification failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, notifications)
}
