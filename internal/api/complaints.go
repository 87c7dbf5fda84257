package api

import (
	"net/http"
	"strings"

	"github.com/david/civic-connect/internal/ai"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type complaintsView struct {
	Summary   string
	Details   string
	Complaint *ai.FormalComplaint
}

func (s *Server) handleComplaints(c echo.Context) error {
	var view complaintsView
	if c.Request().Method == http.MethodPost {
		view.Summary = trimmedForm(c, "summary")
		view.Details = trimmedForm(c, "details")
		fc := ai.ClassifyAt(view.Summary, view.Details, s.now())
		view.Complaint = &fc

		s.Log.WithFields(logrus.Fields{
			"category":   fc.Category,
			"department": fc.Department,
			"keywords":   len(fc.Keywords),
		}).Info("complaint classified")
	}
	return s.render(c, "citizen_complaints.html", view)
}

type classifyRequest struct {
	Summary string `json:"summary" form:"summary"`
	Details string `json:"details" form:"details"`
}

func (s *Server) handleClassify(c echo.Context) error {
	var req classifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	fc := ai.ClassifyAt(strings.TrimSpace(req.Summary), strings.TrimSpace(req.Details), s.now())
	return c.JSON(http.StatusOK, fc)
}
