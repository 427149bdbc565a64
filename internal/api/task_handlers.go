package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"weekly-agenda/internal/auth"
	"weekly-agenda/internal/model"
	"weekly-agenda/internal/schedule"
	"weekly-agenda/internal/service"
)

// taskRequest is the body of POST and PUT /api/tasks. PUT treats absent
// fields as unchanged.
type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	StartTime   *string `json:"startTime"`
	Duration    *int    `json:"duration"`
	Category    *string `json:"category"`
	Reminder    *string `json:"reminder"`
	Email       *string `json:"email"`
}

func (r taskRequest) input() service.TaskInput {
	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	in := service.TaskInput{
		Title:       str(r.Title),
		Description: str(r.Description),
		Date:        str(r.Date),
		StartTime:   str(r.StartTime),
		Category:    str(r.Category),
		Reminder:    str(r.Reminder),
		Email:       str(r.Email),
	}
	if r.Duration != nil {
		in.Duration = *r.Duration
	}
	return in
}

func (r taskRequest) patch() service.TaskPatch {
	return service.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		StartTime:   r.StartTime,
		Duration:    r.Duration,
		Category:    r.Category,
		Reminder:    r.Reminder,
		Email:       r.Email,
	}
}

type weekResponse struct {
	schedule.Week
	Tasks []model.Task `json:"tasks"`
}

func (s *Server) handleListTasks(c *gin.Context) {
	userID, _ := auth.UserID(c)
	tasks, err := s.tasks.List(c.Request.Context(), userID, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(tasks))
}

func (s *Server) handleWeek(c *gin.Context) {
	userID, _ := auth.UserID(c)

	day := s.now().In(s.loc)
	if raw := c.Query("date"); raw != "" {
		d, err := schedule.ParseDate(raw)
		if err != nil {
			writeError(c, &service.ValidationError{Fields: map[string]string{"date": err.Error()}})
			return
		}
		day = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.loc)
	}

	week, tasks, err := s.tasks.Week(c.Request.Context(), userID, day)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, weekResponse{Week: week, Tasks: nonNil(tasks)})
}

func (s *Server) handleGetTask(c *gin.Context) {
	userID, _ := auth.UserID(c)
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := s.tasks.Get(c.Request.Context(), userID, taskID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	userID, _ := auth.UserID(c)

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), userID, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	userID, _ := auth.UserID(c)
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	task, err := s.tasks.Update(c.Request.Context(), userID, taskID, req.patch())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	userID, _ := auth.UserID(c)
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := s.tasks.Delete(c.Request.Context(), userID, taskID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func taskIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid task id")
		return 0, false
	}
	return uint(id), true
}

func nonNil(tasks []model.Task) []model.Task {
	if tasks == nil {
		return []model.Task{}
	}
	return tasks
}
