package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"weekly-agenda/internal/auth"
	"weekly-agenda/internal/export"
)

// handleExport serves /api/export.csv and /api/export.ics, optionally
// limited by startDate and endDate.
func (s *Server) handleExport(c *gin.Context) {
	userID, _ := auth.UserID(c)

	format, err := export.ParseFormat(strings.TrimPrefix(c.FullPath(), "/api/export."))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	tasks, err := s.tasks.List(c.Request.Context(), userID, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, tasks, s.now()); err != nil {
		writeError(c, fmt.Errorf("export %s: %w", format, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, format.Filename()))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
