package server

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonathan/hiring-assistant/internal/server/middleware"
	"github.com/jonathan/hiring-assistant/internal/types"
)

// handleExtractSkills returns the keyword tags found in the posted job description.
func (s *Server) handleExtractSkills(c *fiber.Ctx) error {
	var req types.ExtractSkillsRequest
	if err := c.BodyParser(&req); err != nil {
		return &ErrValidation{Message: "Invalid request body"}
	}

	skills := ExtractSkills(req.Text)
	if skills == nil {
		skills = []string{}
	}
	s.logf("[SKILLS] %d skill(s) from %d chars", len(skills), len(req.Text))
	return c.JSON(types.ExtractSkillsResponse{Skills: skills})
}

// handleUpload analyzes one resume sent as multipart form data.
func (s *Server) handleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("resume")
	if err != nil {
		return &ErrValidation{Field: "resume", Message: "file is required"}
	}
	if s.maxUpload > 0 && fh.Size > s.maxUpload {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Resume file is too large")
	}

	f, err := fh.Open()
	if err != nil {
		return &ErrUnreadableDocument{Name: fh.Filename, Cause: err}
	}
	defer f.Close() //nolint:errcheck

	text, err := ExtractText(fh.Filename, f)
	if err != nil {
		return err
	}

	jobID := strings.TrimSpace(c.FormValue("jobId"))
	result := Analyze(fh.Filename, c.FormValue("jobDescription"), text)
	user, _ := middleware.UserID(c)
	s.logf("[UPLOAD] job=%s user=%s file=%s chars=%d score=%v", jobID, user, fh.Filename, len(text), result.Score)

	return c.JSON(types.UploadResponse{Resume: result})
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().UTC(),
		"users":  s.users.Count(),
	})
}
