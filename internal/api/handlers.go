// internal/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	apperrors "cloud-api-console/internal/common/errors"
	"cloud-api-console/internal/common/requeststate"
	"cloud-api-console/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CardRunRequest is the body of a lab card run.
type CardRunRequest struct {
	Input string `json:"input"`
}

// CardRunResponse is what the lab shows under a card.
type CardRunResponse struct {
	CardID string             `json:"cardId"`
	State  requeststate.State `json:"state"`
	Output string             `json:"output"`
}

// TaskRunResponse wraps one task result.
type TaskRunResponse struct {
	TaskType string             `json:"taskType"`
	State    requeststate.State `json:"state"`
	Output   interface{}        `json:"output"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) ready(c *gin.Context) {
	names := make([]string, 0, len(s.opts.ReadyChecks))
	for name := range s.opts.ReadyChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]string, len(names))
	ready := true
	for _, name := range names {
		if err := s.opts.ReadyChecks[name](c.Request.Context()); err != nil {
			checks[name] = err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}

func (s *Server) listCatalog(c *gin.Context) {
	cards := s.catalog.Filter(registry.Category(c.Query("category")))
	c.JSON(http.StatusOK, gin.H{
		"version": s.catalog.Version,
		"cards":   cards,
	})
}

func (s *Server) listTasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tasks": s.dispatcher.TaskTypes()})
}

func (s *Server) runTask(c *gin.Context) {
	taskType := c.Param("taskType")
	if err := s.dispatcher.Check(taskType); err != nil {
		s.errors.HandleRequestError(c, err)
		return
	}

	body, err := readBody(c)
	if err != nil {
		s.errors.HandleRequestError(c, err)
		return
	}

	key := requeststate.Key(sessionID(c), taskType)
	output, err := s.tracker.Run(c.Request.Context(), key, func(ctx context.Context) (interface{}, error) {
		return s.dispatcher.Dispatch(ctx, taskType, body)
	})
	if err != nil {
		s.errors.HandleRequestError(c, err)
		return
	}

	c.JSON(http.StatusOK, TaskRunResponse{TaskType: taskType, State: requeststate.Succeeded, Output: output})
}

func (s *Server) runCard(c *gin.Context) {
	card, ok := s.catalog.Find(c.Param("cardId"))
	if !ok {
		s.errors.HandleRequestError(c, apperrors.NewCardNotFoundError(c.Param("cardId")))
		return
	}

	var req CardRunRequest
	body, err := readBody(c)
	if err != nil {
		s.errors.HandleRequestError(c, err)
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			s.errors.HandleRequestError(c, apperrors.NewInvalidInputError(fmt.Sprintf("parse body: %v", err)))
			return
		}
	}

	vars, err := card.Variables(req.Input)
	if err != nil {
		s.errors.HandleRequestError(c, apperrors.NewInvalidInputError(err.Error()))
		return
	}

	key := requeststate.Key(sessionID(c), card.ID)
	output, err := s.tracker.Run(c.Request.Context(), key, func(ctx context.Context) (interface{}, error) {
		out, err := s.dispatcher.Dispatch(ctx, card.TaskType, vars)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(out)
		if err != nil {
			return nil, apperrors.NewInternalError(fmt.Errorf("encode task output: %w", err))
		}
		return card.ResultText(raw), nil
	})
	if err != nil {
		s.errors.HandleRequestError(c, err)
		return
	}

	text, _ := output.(string)
	c.JSON(http.StatusOK, CardRunResponse{CardID: card.ID, State: requeststate.Succeeded, Output: text})
}

func (s *Server) status(c *gin.Context) {
	snap, err := s.tracker.Status(c.Request.Context(), requeststate.Key(sessionID(c), c.Param("target")))
	if err != nil {
		s.errors.HandleRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// readBody reads the whole request body, mapping the size cap to PAYLOAD_TOO_LARGE.
func readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.NewPayloadTooLargeError(tooLarge.Limit)
		}
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("read body: %v", err))
	}
	return body, nil
}
