package api

import (
	"github.com/david/civic-connect/internal/ai"
	"github.com/labstack/echo/v4"
)

type emergencyContact struct {
	Label  string
	Number string
}

var emergencyContacts = []emergencyContact{
	{Label: "emergency.national", Number: "112"},
	{Label: "emergency.police", Number: "100"},
	{Label: "emergency.fire", Number: "101"},
	{Label: "emergency.ambulance", Number: "108"},
	{Label: "emergency.women", Number: "1091"},
}

func (s *Server) handleCitizenDashboard(c echo.Context) error {
	return s.render(c, "citizen_dashboard.html", nil)
}

func (s *Server) handleEmergency(c echo.Context) error {
	return s.render(c, "citizen_emergency.html", emergencyContacts)
}

func (s *Server) handleGovernmentDashboard(c echo.Context) error {
	return s.render(c, "government_dashboard.html", nil)
}

type queueView struct {
	Categories []ai.Category
	Selected   ai.Category
	Routes     []ai.Route
}

// handleComplaintsQueue shows the routing table, optionally narrowed to one
// category. Unknown filters show every route.
func (s *Server) handleComplaintsQueue(c echo.Context) error {
	view := queueView{
		Categories: ai.Categories,
		Routes:     ai.Routes(),
	}
	if selected, ok := ai.ParseCategory(c.QueryParam("category")); ok {
		view.Selected = selected
		for _, r := range view.Routes {
			if r.Category == selected {
				view.Routes = []ai.Route{r}
				break
			}
		}
	}
	return s.render(c, "government_queue.html", view)
}

func (s *Server) handlePoliticianDashboard(c echo.Context) error {
	return s.render(c, "politician_dashboard.html", nil)
}

type coverageRow struct {
	Category     ai.Category
	Department   ai.Department
	KeywordCount int
}

type analyticsView struct {
	Rows          []coverageRow
	TotalKeywords int
}

func (s *Server) handleAnalytics(c echo.Context) error {
	var view analyticsView
	for _, r := range ai.Routes() {
		view.Rows = append(view.Rows, coverageRow{
			Category:     r.Category,
			Department:   r.Department,
			KeywordCount: len(r.Keywords),
		})
		view.TotalKeywords += len(r.Keywords)
	}
	return s.render(c, "politician_analytics.html", view)
}
