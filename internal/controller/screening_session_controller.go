package controller

import (
	"wellmind_backend/internal/model"
	"wellmind_backend/internal/service"
	"wellmind_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScreeningSessionController struct {
	Service *service.ScreeningSessionService
}

func NewScreeningSessionController(svc *service.ScreeningSessionService) *ScreeningSessionController {
	return &ScreeningSessionController{Service: svc}
}

type CreateSessionRequest struct {
	FlowID          uint `json:"flowId" binding:"required"`
	TargetAccountID uint `json:"targetAccountId"`
}

// @Summary Start a screening session
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateSessionRequest true "Session details"
// @Success 201 {object} util.Response
// @Router /api/screening-sessions [post]
func (c *ScreeningSessionController) CreateSession(ctx *gin.Context) {
	claims := util.GetAccountFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	target := req.TargetAccountID
	if target == 0 {
		target = claims.AccountID
	}
	// Only clinical staff may screen someone other than themselves.
	if target != claims.AccountID && claims.Role == model.Patient {
		util.Forbidden(ctx)
		return
	}

	session, err := c.Service.CreateSession(ctx.Request.Context(), req.FlowID, target, claims.AccountID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// @Summary Sessions screening the caller
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/screening-sessions [get]
func (c *ScreeningSessionController) ListMySessions(ctx *gin.Context) {
	claims := util.GetAccountFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessions, err := c.Service.ListSessionsForAccount(claims.AccountID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// @Summary Session with its ordered screenings
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/screening-sessions/{id} [get]
func (c *ScreeningSessionController) GetSession(ctx *gin.Context) {
	session, screenings, err := c.Service.GetSession(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if session == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"session": session, "screenings": screenings})
}

// @Summary Next unanswered question for a session
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/screening-sessions/{id}/next-question [get]
func (c *ScreeningSessionController) NextQuestion(ctx *gin.Context) {
	next, err := c.Service.NextUnansweredQuestion(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	if next == nil {
		util.Success(ctx, nil)
		return
	}
	util.Success(ctx, next)
}

type SubmitAnswersRequest struct {
	SessionScreeningID uint                       `json:"sessionScreeningId" binding:"required"`
	QuestionID         uint                       `json:"questionId" binding:"required"`
	Answers            []service.AnswerSubmission `json:"answers"`
}

// @Summary Submit answers for one question
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitAnswersRequest true "Answers"
// @Success 201 {object} util.Response
// @Router /api/screening-answers [post]
func (c *ScreeningSessionController) SubmitAnswers(ctx *gin.Context) {
	claims := util.GetAccountFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answerIDs, err := c.Service.SubmitAnswers(ctx.Request.Context(), req.SessionScreeningID, req.QuestionID, req.Answers, claims.AccountID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"answerIds": answerIDs})
}
