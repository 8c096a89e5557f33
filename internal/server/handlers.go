package server

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/careerpath/roadmappdf/internal/model"
	"github.com/careerpath/roadmappdf/internal/progress"
	"github.com/careerpath/roadmappdf/internal/render/pdf"
	"github.com/careerpath/roadmappdf/internal/report"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type roadmapRequest struct {
	Record model.RoleRecord `json:"record"`
	// Completed overrides stored progress when present.
	Completed *[]string `json:"completed,omitempty"`
}

type progressBody struct {
	Role   string   `json:"role"`
	Skills []string `json:"skills"`
}

type toggleRequest struct {
	Skill string `json:"skill"`
}

type toggleResponse struct {
	Role   string   `json:"role"`
	Skill  string   `json:"skill"`
	Done   bool     `json:"done"`
	Skills []string `json:"skills"`
}

func (s *Server) health(c fiber.Ctx) error {
	return success(c, fiber.StatusOK, fiber.Map{"status": "up"})
}

// bindRoadmap decodes and validates the request, then resolves the progress
// state: explicit in the body, otherwise whatever is stored for the role.
func (s *Server) bindRoadmap(c fiber.Ctx) (*model.RoleRecord, model.ProgressState, error) {
	var req roadmapRequest
	if err := c.Bind().Body(&req); err != nil {
		return nil, nil, NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}
	if err := req.Record.Validate(); err != nil {
		return nil, nil, NewAppError(fiber.StatusUnprocessableEntity, "Invalid role record", err.Error(), err)
	}

	if req.Completed != nil {
		return &req.Record, model.NewProgressState(*req.Completed...), nil
	}
	state, err := s.store.Load(c.Context(), req.Record.Role)
	if err != nil {
		return nil, nil, NewAppError(fiber.StatusInternalServerError, "Failed to load progress", nil, err)
	}
	return &req.Record, state, nil
}

func (s *Server) export(c fiber.Ctx) error {
	rec, state, err := s.bindRoadmap(c)
	if err != nil {
		return err
	}

	art, err := s.renderer.Render(rec, state)
	if err != nil {
		var ge *pdf.GlyphError
		if errors.As(err, &ge) {
			return NewAppError(fiber.StatusUnprocessableEntity, "Record contains unsupported characters", ge.Error(), err)
		}
		return NewAppError(fiber.StatusInternalServerError, "Failed to render roadmap", nil, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", art.Name))
	c.Set("X-Export-ID", uuid.NewString())
	c.Set("X-Roadmap-Pages", strconv.Itoa(art.Pages))
	return c.Status(fiber.StatusOK).Send(art.Data)
}

func (s *Server) metrics(c fiber.Ctx) error {
	rec, state, err := s.bindRoadmap(c)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, report.Metrics(rec, state))
}

func roleParam(c fiber.Ctx) (string, error) {
	role, err := url.PathUnescape(c.Params("role"))
	if err != nil || strings.TrimSpace(role) == "" {
		return "", NewAppError(fiber.StatusBadRequest, "Invalid role", nil, err)
	}
	return role, nil
}

func (s *Server) getProgress(c fiber.Ctx) error {
	role, err := roleParam(c)
	if err != nil {
		return err
	}
	state, err := s.store.Load(c.Context(), role)
	if err != nil {
		return NewAppError(fiber.StatusInternalServerError, "Failed to load progress", nil, err)
	}
	return success(c, fiber.StatusOK, progressBody{Role: role, Skills: state.Skills()})
}

func (s *Server) putProgress(c fiber.Ctx) error {
	role, err := roleParam(c)
	if err != nil {
		return err
	}
	var body progressBody
	if err := c.Bind().Body(&body); err != nil {
		return NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}
	state := model.NewProgressState(body.Skills...)
	if err := s.store.Save(c.Context(), role, state); err != nil {
		return NewAppError(fiber.StatusInternalServerError, "Failed to save progress", nil, err)
	}
	s.logger.Printf("[Progress] saved %d skills for %q", len(state), role)
	return success(c, fiber.StatusOK, progressBody{Role: role, Skills: state.Skills()})
}

func (s *Server) toggleProgress(c fiber.Ctx) error {
	role, err := roleParam(c)
	if err != nil {
		return err
	}
	var req toggleRequest
	if err := c.Bind().Body(&req); err != nil {
		return NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}
	if strings.TrimSpace(req.Skill) == "" {
		return NewAppError(fiber.StatusBadRequest, "Skill is required", nil, nil)
	}

	done, state, err := progress.Toggle(c.Context(), s.store, role, req.Skill)
	if err != nil {
		return NewAppError(fiber.StatusInternalServerError, "Failed to toggle progress", nil, err)
	}
	return success(c, fiber.StatusOK, toggleResponse{Role: role, Skill: req.Skill, Done: done, Skills: state.Skills()})
}
