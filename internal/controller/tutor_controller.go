package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/service"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
	"github.com/alaadin007/learnable-connect-hub-sub002/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Origin is enforced by the CORS layer; the token in the upgrade request
	// already authenticates the user.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type TutorController struct {
	tutorService *service.TutorService
}

func NewTutorController(tutorService *service.TutorService) *TutorController {
	return &TutorController{tutorService: tutorService}
}

// CreateSession godoc
// @Summary Start a tutor conversation
// @Tags tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateSessionRequest true "Topic and title"
// @Success 201 {object} util.Response{data=model.TutorSession}
// @Router /api/student/tutor/sessions [post]
func (ctrl *TutorController) CreateSession(c *gin.Context) {
	var req service.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	session, err := ctrl.tutorService.CreateSession(currentUserID(c), currentSchoolID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, session)
}

func (ctrl *TutorController) ListSessions(c *gin.Context) {
	page, limit := pagination(c)
	sessions, total, err := ctrl.tutorService.ListSessions(currentUserID(c), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Page(c, sessions, total, page, limit)
}

func (ctrl *TutorController) GetSession(c *gin.Context) {
	session, messages, err := ctrl.tutorService.GetSession(c.Param("id"), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, gin.H{"session": session, "messages": messages})
}

func (ctrl *TutorController) DeleteSession(c *gin.Context) {
	if err := ctrl.tutorService.DeleteSession(c.Param("id"), currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}

// SendMessage godoc
// @Summary Send a tutor message
// @Description Blocking completion; use the websocket endpoint for streaming
// @Tags tutor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body service.SendMessageRequest true "Message"
// @Success 200 {object} util.Response{data=model.TutorMessage}
// @Router /api/student/tutor/sessions/{id}/messages [post]
func (ctrl *TutorController) SendMessage(c *gin.Context) {
	var req service.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	msg, err := ctrl.tutorService.SendMessage(c.Request.Context(), c.Param("id"), currentUserID(c), currentSchoolID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, msg)
}

// wsFrame is one websocket message in the streaming protocol.
type wsFrame struct {
	Type    string `json:"type"` // delta, done, error
	Content string `json:"content,omitempty"`
}

// Stream upgrades to a websocket and relays provider deltas as they arrive.
// The client sends {"content": "..."} frames; each gets a stream of delta
// frames terminated by a done frame.
func (ctrl *TutorController) Stream(c *gin.Context) {
	sessionID := c.Param("id")
	userID := currentUserID(c)
	schoolID := currentSchoolID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		var incoming struct {
			Content string `json:"content"`
		}
		if err := conn.ReadJSON(&incoming); err != nil {
			return
		}
		if incoming.Content == "" {
			_ = conn.WriteJSON(wsFrame{Type: "error", Content: "empty message"})
			continue
		}

		_, err := ctrl.tutorService.StreamMessage(c.Request.Context(), sessionID, userID, schoolID, incoming.Content, func(delta string) error {
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			return conn.WriteJSON(wsFrame{Type: "delta", Content: delta})
		})
		if err != nil {
			_ = conn.WriteJSON(wsFrame{Type: "error", Content: err.Error()})
			continue
		}
		_ = conn.WriteJSON(wsFrame{Type: "done"})
	}
}
