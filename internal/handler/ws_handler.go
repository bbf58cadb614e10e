package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/pathfinder-edu/pathfinder-backend/internal/assessment"
	"github.com/pathfinder-edu/pathfinder-backend/internal/middleware"
	"github.com/pathfinder-edu/pathfinder-backend/internal/response"
	"github.com/pathfinder-edu/pathfinder-backend/internal/service"
	ws "github.com/pathfinder-edu/pathfinder-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams adaptive assessments.
type WSHandler struct {
	assessments *service.AssessmentService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(assessments *service.AssessmentService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		assessments: assessments,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// AssessmentStream godoc
// WS /ws/v1/student/assessment/stream?token=...&fingerprint=...
// Runs one assessment per connection. The stream is closed by the server
// after the completed or aborted event.
func (h *WSHandler) AssessmentStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	run := h.assessments.NewRun(claims.UserID, service.RunMeta{
		IPAddress:   clientIP(c),
		UserAgent:   c.Request.UserAgent(),
		Fingerprint: c.Query("fingerprint"),
	})
	defer run.Close(context.Background())

	wsLog := h.log.With().
		Int("student_id", claims.UserID).
		Str("session_id", run.ID()).
		Logger()

	wsLog.Info().Msg("Student connected")

	ready := ws.ReadyResponse{
		Event:     ws.EventReady,
		SessionID: run.ID(),
		Skills:    h.assessments.Preload(ctx, claims.UserID),
	}
	if err := ws.WriteTyped(conn, ready); err != nil {
		return
	}

	for {
		data, err := ws.ReadMessage(conn)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		var msg ws.Request
		if err := json.Unmarshal(data, &msg); err != nil {
			wsLog.Debug().Err(err).Msg("Malformed frame")
			ws.WriteError(conn, string(response.ErrInvalidPayload), "malformed message")
			continue
		}

		var finished bool
		switch msg.Action {
		case ws.ActionStart:
			h.handleStart(ctx, conn, run, &msg)
		case ws.ActionAnswer:
			finished = h.handleAnswer(ctx, conn, run, &msg)
		case ws.ActionSignal:
			finished = h.handleSignal(ctx, conn, run, &msg)
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			ws.WriteError(conn, string(response.ErrInvalidPayload), "unknown action: "+string(msg.Action))
		}

		if finished {
			ws.CloseNormal(conn, "assessment finished")
			return
		}
	}
}

func (h *WSHandler) handleStart(ctx context.Context, conn *websocket.Conn, run *service.AssessmentRun, msg *ws.Request) {
	q, err := run.Start(ctx, msg.Skills)
	if err != nil {
		writeRunError(conn, err)
		return
	}
	ws.WriteTyped(conn, questionResponse(run.Session(), q, nil))
}

func (h *WSHandler) handleAnswer(ctx context.Context, conn *websocket.Conn, run *service.AssessmentRun, msg *ws.Request) bool {
	choice := assessment.NoSelection
	if msg.Option != nil {
		choice = *msg.Option
	}

	step, err := run.Answer(ctx, choice)
	if err != nil {
		writeRunError(conn, err)
		return false
	}

	if step.Outcome != nil {
		ws.WriteTyped(conn, finishedResponse(ws.EventCompleted, step.Outcome))
		return true
	}

	correct := step.Correct
	ws.WriteTyped(conn, questionResponse(run.Session(), *step.Next, &correct))
	return false
}

func (h *WSHandler) handleSignal(ctx context.Context, conn *websocket.Conn, run *service.AssessmentRun, msg *ws.Request) bool {
	kind := assessment.SignalKind(msg.Signal)
	if !knownSignal(kind) {
		ws.WriteError(conn, string(response.ErrInvalidPayload), "unknown signal: "+msg.Signal)
		return false
	}

	step, err := run.Signal(ctx, assessment.Signal{
		Kind:             kind,
		DocumentHasFocus: msg.DocumentHasFocus,
		Key:              msg.Key,
		Ctrl:             msg.Ctrl,
		Meta:             msg.Meta,
	})
	if err != nil {
		writeRunError(conn, err)
		return false
	}

	switch step.Verdict {
	case assessment.VerdictBlocked:
		ws.WriteTyped(conn, ws.BlockedResponse{Event: ws.EventBlocked, Signal: msg.Signal})
	case assessment.VerdictWarning:
		ws.WriteTyped(conn, ws.WarningResponse{
			Event:      ws.EventWarning,
			Violations: step.Violations,
			Remaining:  step.Remaining,
			Message:    fmt.Sprintf("Warning: leaving the assessment was detected. %d more violation(s) will end it.", step.Remaining),
		})
	case assessment.VerdictAborted:
		if step.Outcome != nil {
			ws.WriteTyped(conn, finishedResponse(ws.EventAborted, step.Outcome))
			return true
		}
	}
	return false
}

func knownSignal(k assessment.SignalKind) bool {
	switch k {
	case assessment.SignalVisibilityHidden, assessment.SignalVisibilityVisible, assessment.SignalWindowBlur,
		assessment.SignalCopy, assessment.SignalCut, assessment.SignalPaste,
		assessment.SignalContextMenu, assessment.SignalKeyDown:
		return true
	}
	return false
}

func writeRunError(conn *websocket.Conn, err error) {
	code := runErrorCode(err)
	ws.WriteError(conn, string(code), response.GetMessage(code))
}

func runErrorCode(err error) response.ErrCode {
	switch {
	case errors.Is(err, assessment.ErrNoSkills):
		return response.ErrNoSkills
	case errors.Is(err, assessment.ErrNoAnswer):
		return response.ErrNoAnswer
	case errors.Is(err, assessment.ErrInvalidOption):
		return response.ErrInvalidOption
	case errors.Is(err, assessment.ErrNotInProgress), errors.Is(err, assessment.ErrSessionClosed):
		return response.ErrAssessmentNotActive
	case errors.Is(err, assessment.ErrAlreadyStarted):
		return response.ErrAssessmentStarted
	case errors.Is(err, service.ErrRunningElsewhere):
		return response.ErrAssessmentRunning
	default:
		return response.ErrInternal
	}
}

func questionResponse(s *assessment.Session, q assessment.Question, previous *bool) ws.QuestionResponse {
	return ws.QuestionResponse{
		Event:      ws.EventQuestion,
		Round:      s.Round(),
		Total:      s.Rounds(),
		Difficulty: q.Difficulty.String(),
		Skills:     s.Skills(),
		Previous:   previous,
		Question: ws.QuestionPayload{
			ID:         q.ID,
			Prompt:     q.Prompt,
			Options:    q.Options,
			Category:   string(q.Category),
			Difficulty: int(q.Difficulty),
		},
	}
}

const unsavedNotice = "Result saved locally only; it could not be stored on the server."

func finishedResponse(event ws.Event, out *service.Outcome) ws.FinishedResponse {
	res := out.Result
	cats := make([]string, 0, len(res.Categories))
	for _, c := range res.Categories {
		cats = append(cats, string(c))
	}

	resp := ws.FinishedResponse{
		Event: event,
		Saved: out.Saved,
		Result: ws.ResultPayload{
			SkillLabel:      res.SkillLabel,
			Categories:      cats,
			HighestLevel:    int(res.HighestLevel),
			LevelLabel:      string(res.Level.Value),
			LevelName:       res.Level.Label,
			LevelSummary:    res.Level.Description,
			AccuracyPercent: res.Accuracy,
			TotalQuestions:  res.TotalQuestions,
			CorrectAnswers:  res.CorrectAnswers,
			Violations:      res.Violations,
			AbortReason:     res.AbortReason,
		},
	}
	if !out.Saved {
		resp.Notice = unsavedNotice
	}
	return resp
}
