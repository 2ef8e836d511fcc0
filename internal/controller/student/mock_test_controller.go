package student

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/apperr"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/dto"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/service"
)

type MockTestController struct {
	mockTestSvc   service.MockTestService
	evaluationSvc service.EvaluationService
}

func NewMockTestController(mts service.MockTestService, es service.EvaluationService) *MockTestController {
	return &MockTestController{mockTestSvc: mts, evaluationSvc: es}
}

func respondError(ctx *gin.Context, err error) {
	appErr := apperr.From(err)
	body := dto.ErrorResponse{Error: appErr.Message, Available: appErr.Available}
	if appErr.Err != nil {
		body.Details = []string{appErr.Err.Error()}
	}
	ctx.JSON(apperr.HTTPStatus(err), body)
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func parseUserIDQuery(ctx *gin.Context) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Query("userId"), 10, 32)
	if err != nil || val == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "userId query parameter is required"})
		return 0, false
	}
	return uint(val), true
}

// StartMockTest godoc
// @Summary (Student) Start a mock test
// @Description Samples random active questions for the student's class and the requested subject, creates a published mock test and opens an attempt on it.
// @Tags Student - Mock Tests
// @Accept json
// @Produce json
// @Param request body dto.StartMockTestRequest true "Subject and question count"
// @Success 201 {object} dto.StartMockTestResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error or not enough questions"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /mock-tests/start [post]
func (c *MockTestController) StartMockTest(ctx *gin.Context) {
	var req dto.StartMockTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.mockTestSvc.StartMockTest(req)
	if err != nil {
		log.Warn().Err(err).Uint("user_id", req.UserID).Str("subject", req.Subject).Msg("StartMockTest failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetAttempt godoc
// @Summary (Student) Get an attempt for taking the test
// @Description Returns the attempt's questions in their stored order, without correctness flags or reference answers.
// @Tags Student - Mock Tests
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param userId query int true "Calling user ID"
// @Success 200 {object} dto.AttemptViewResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /mock-tests/attempts/{attempt_id} [get]
func (c *MockTestController) GetAttempt(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	userID, ok := parseUserIDQuery(ctx)
	if !ok {
		return
	}

	resp, err := c.mockTestSvc.GetAttempt(attemptID, userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAttemptResponses godoc
// @Summary (Student) Review a submitted attempt
// @Description Returns per-question reference answers, the stored student answers and how each was graded.
// @Tags Student - Mock Tests
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param userId query int true "Calling user ID"
// @Success 200 {object} dto.AttemptResponsesResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found or not submitted yet"
// @Router /mock-tests/attempts/{attempt_id}/responses [get]
func (c *MockTestController) GetAttemptResponses(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	userID, ok := parseUserIDQuery(ctx)
	if !ok {
		return
	}

	resp, err := c.mockTestSvc.GetAttemptResponses(attemptID, userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAttempt godoc
// @Summary (Student) Submit an attempt for evaluation
// @Description Evaluates the submitted answers, persists them with the attempt transition and result, and returns the aggregate outcome. Resubmission overwrites the previous evaluation.
// @Tags Student - Mock Tests
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param request body dto.SubmitAttemptRequest true "Answer set"
// @Success 200 {object} dto.SubmitAttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /mock-tests/attempts/{attempt_id}/submit [post]
func (c *MockTestController) SubmitAttempt(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	var req dto.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.evaluationSvc.SubmitAttempt(attemptID, req)
	if err != nil {
		log.Error().Err(err).Uint("attempt_id", attemptID).Msg("SubmitAttempt failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
