package student

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/dto"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/repository"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/service"
)

// PortalController serves the read-only portal endpoints: catalog lookups,
// test and question bank listings, results and notifications.
type PortalController struct {
	catalogSvc      service.CatalogService
	adminTestSvc    service.AdminTestService
	questionBankSvc service.QuestionBankService
	sourceSvc       service.QuestionSourceService
	resultSvc       service.ResultService
	notificationSvc service.NotificationService
}

func NewPortalController(
	catalogSvc service.CatalogService,
	adminTestSvc service.AdminTestService,
	questionBankSvc service.QuestionBankService,
	sourceSvc service.QuestionSourceService,
	resultSvc service.ResultService,
	notificationSvc service.NotificationService,
) *PortalController {
	return &PortalController{
		catalogSvc:      catalogSvc,
		adminTestSvc:    adminTestSvc,
		questionBankSvc: questionBankSvc,
		sourceSvc:       sourceSvc,
		resultSvc:       resultSvc,
		notificationSvc: notificationSvc,
	}
}

// ListClasses godoc
// @Summary List all classes
// @Tags Catalog
// @Produce json
// @Success 200 {array} dto.ClassDTO
// @Router /classes [get]
func (c *PortalController) ListClasses(ctx *gin.Context) {
	items, err := c.catalogSvc.ListClasses()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// ListSubjects godoc
// @Summary List all subjects
// @Tags Catalog
// @Produce json
// @Success 200 {array} dto.SubjectDTO
// @Router /subjects [get]
func (c *PortalController) ListSubjects(ctx *gin.Context) {
	items, err := c.catalogSvc.ListSubjects()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// GetStudentProfile godoc
// @Summary (Student) Get the calling student's profile
// @Tags Catalog
// @Produce json
// @Param userId query int true "Calling user ID"
// @Success 200 {object} dto.StudentProfileResponse
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Router /students/profile [get]
func (c *PortalController) GetStudentProfile(ctx *gin.Context) {
	userID, ok := parseUserIDQuery(ctx)
	if !ok {
		return
	}
	profile, err := c.catalogSvc.GetStudentProfile(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// ListTests godoc
// @Summary List tests
// @Tags Tests
// @Produce json
// @Param className query string false "Filter by class name"
// @Param subjectName query string false "Filter by subject name"
// @Param testType query string false "Filter by test type (MOCK or SCHEDULED)"
// @Success 200 {array} dto.TestSummaryDTO
// @Router /tests [get]
func (c *PortalController) ListTests(ctx *gin.Context) {
	filter := repository.TestFilter{
		ClassName:   ctx.Query("className"),
		SubjectName: ctx.Query("subjectName"),
		TestType:    ctx.Query("testType"),
	}
	items, err := c.adminTestSvc.ListTests(filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// ListQuestionBank godoc
// @Summary Browse the question bank
// @Tags Question Bank
// @Produce json
// @Param board query string false "Filter by source board"
// @Param className query string false "Filter by class name"
// @Param subjectName query string false "Filter by subject name"
// @Param year query int false "Filter by source year"
// @Success 200 {array} dto.QuestionBankItemDTO
// @Router /question-bank [get]
func (c *PortalController) ListQuestionBank(ctx *gin.Context) {
	filter := repository.QuestionBankFilter{
		Board:       ctx.Query("board"),
		ClassName:   ctx.Query("className"),
		SubjectName: ctx.Query("subjectName"),
	}
	if yearStr := ctx.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid year format"})
			return
		}
		filter.Year = year
	}

	items, err := c.questionBankSvc.ListQuestions(filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// ListQuestionSources godoc
// @Summary List question sources
// @Tags Question Bank
// @Produce json
// @Param board query string false "Filter by board"
// @Param year query int false "Filter by year"
// @Success 200 {array} dto.QuestionSourceDTO
// @Router /question-sources [get]
func (c *PortalController) ListQuestionSources(ctx *gin.Context) {
	filter := repository.QuestionSourceFilter{Board: ctx.Query("board")}
	if yearStr := ctx.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid year format"})
			return
		}
		filter.Year = year
	}

	items, err := c.sourceSvc.ListSources(filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// ListResults godoc
// @Summary (Student) List the calling student's results
// @Tags Results
// @Produce json
// @Param userId query int true "Calling user ID"
// @Success 200 {array} dto.ResultSummaryDTO
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Router /results [get]
func (c *PortalController) ListResults(ctx *gin.Context) {
	userID, ok := parseUserIDQuery(ctx)
	if !ok {
		return
	}
	items, err := c.resultSvc.ListResults(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// ListNotifications godoc
// @Summary (Student) List notifications for the calling student's class
// @Tags Notifications
// @Produce json
// @Param userId query int true "Calling user ID"
// @Success 200 {array} dto.NotificationDTO
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Router /notifications [get]
func (c *PortalController) ListNotifications(ctx *gin.Context) {
	userID, ok := parseUserIDQuery(ctx)
	if !ok {
		return
	}
	items, err := c.notificationSvc.ListForStudent(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// Health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (c *PortalController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
