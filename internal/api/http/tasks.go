package http

import (
	"net/http"
	"strconv"

	"github.com/cedarhq/taskboard/internal/api/domain"
	"github.com/cedarhq/taskboard/internal/api/service"
	"github.com/cedarhq/taskboard/pkg/httpx"
	"github.com/cedarhq/taskboard/pkg/validate"
)

// TasksHandler handles the task CRUD endpoints.
type TasksHandler struct {
	TaskService *service.TaskService
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      int    `json:"status"`
	Priority    int    `json:"priority"`
	DueDate     string `json:"due_date"`
	UserID      string `json:"user_id"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *int    `json:"status"`
	Priority    *int    `json:"priority"`
	DueDate     *string `json:"due_date"`
	UserID      *string `json:"user_id"`
}

// HandleList handles GET /tasks
//
//	@Summary		List Tasks
//	@Description	Lists tasks with optional conjunctive filters. Non-admins only ever see their own tasks.
//	@Tags			Tasks
//	@Produce		json
//	@Security		BearerAuth
//	@Param			status		query		int		false	"Exact status (1=pending, 2=in_progress, 3=done)"
//	@Param			priority	query		int		false	"Exact priority (1=low, 2=medium, 3=high)"
//	@Param			due_from	query		string	false	"Inclusive lower bound on due_date (YYYY-MM-DD)"
//	@Param			due_to		query		string	false	"Inclusive upper bound on due_date (YYYY-MM-DD)"
//	@Param			search		query		string	false	"Case-insensitive substring over title or description"
//	@Param			user_id		query		string	false	"Owner filter (admin only)"
//	@Param			sort		query		string	false	"asc or desc by created_at"
//	@Param			page		query		int		false	"Page number"
//	@Param			per_page	query		int		false	"Page size (default 15, max 100)"
//	@Success		200			{object}	httpx.Envelope	"page of tasks"
//	@Failure		401			{object}	httpx.Envelope
//	@Failure		422			{object}	httpx.Envelope
//	@Router			/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthenticated", nil)
		return
	}

	v := validate.New()
	f := parseTaskFilter(r, v)
	if !v.Valid() {
		writeServiceError(w, r, v.Err())
		return
	}

	page, err := h.TaskService.List(r.Context(), p, f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, "Tasks retrieved", page)
}

// HandleCreate handles POST /tasks
//
//	@Summary		Create Task
//	@Description	Creates a task owned by the caller. Admins may assign it to another user via user_id.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		createTaskRequest	true	"Task fields"
//	@Success		200		{object}	httpx.Envelope		"created task"
//	@Failure		401		{object}	httpx.Envelope
//	@Failure		403		{object}	httpx.Envelope	"non-admin assigning another owner"
//	@Failure		422		{object}	httpx.Envelope
//	@Router			/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthenticated", nil)
		return
	}

	var req createTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := validate.New()
	v.Required(req.Title, "title")
	v.Required(req.Description, "description")
	v.Check(domain.TaskStatus(req.Status).Valid(), "status", "must be one of: 1, 2, 3")
	v.Check(domain.TaskPriority(req.Priority).Valid(), "priority", "must be one of: 1, 2, 3")
	v.Required(req.DueDate, "due_date")

	var due domain.Date
	if req.DueDate != "" {
		var err error
		due, err = domain.ParseDate(req.DueDate)
		v.Check(err == nil, "due_date", "must be a date in YYYY-MM-DD format")
	}
	if !v.Valid() {
		writeServiceError(w, r, v.Err())
		return
	}

	task, err := h.TaskService.Create(r.Context(), p, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		DueDate:     due,
		UserID:      req.UserID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, "Task created", task)
}

// HandleUpdate handles PUT /tasks/{id}
//
//	@Summary		Update Task
//	@Description	Applies any subset of mutable fields to a task owned by the caller (or any task for admins).
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"Task ID"
//	@Param			request	body		updateTaskRequest	true	"Fields to change"
//	@Success		200		{object}	httpx.Envelope		"updated task"
//	@Failure		401		{object}	httpx.Envelope
//	@Failure		403		{object}	httpx.Envelope
//	@Failure		404		{object}	httpx.Envelope
//	@Failure		422		{object}	httpx.Envelope
//	@Router			/tasks/{id} [put].
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthenticated", nil)
		return
	}

	var req updateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := validate.New()
	in := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
	}
	if req.Title != nil {
		v.Required(*req.Title, "title")
	}
	if req.Description != nil {
		v.Required(*req.Description, "description")
	}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		v.Check(s.Valid(), "status", "must be one of: 1, 2, 3")
		in.Status = &s
	}
	if req.Priority != nil {
		pr := domain.TaskPriority(*req.Priority)
		v.Check(pr.Valid(), "priority", "must be one of: 1, 2, 3")
		in.Priority = &pr
	}
	if req.DueDate != nil {
		due, err := domain.ParseDate(*req.DueDate)
		v.Check(err == nil, "due_date", "must be a date in YYYY-MM-DD format")
		in.DueDate = &due
	}
	if !v.Valid() {
		writeServiceError(w, r, v.Err())
		return
	}

	task, err := h.TaskService.Update(r.Context(), p, r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, "Task updated", task)
}

// HandleDelete handles DELETE /tasks/{id}
//
//	@Summary		Delete Task
//	@Description	Deletes a task owned by the caller (or any task for admins). The audit trail keeps its history.
//	@Tags			Tasks
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Task ID"
//	@Success		200	{object}	httpx.Envelope	"empty data"
//	@Failure		401	{object}	httpx.Envelope
//	@Failure		403	{object}	httpx.Envelope
//	@Failure		404	{object}	httpx.Envelope
//	@Router			/tasks/{id} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthenticated", nil)
		return
	}

	if err := h.TaskService.Delete(r.Context(), p, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, "Task deleted", nil)
}

func parseTaskFilter(r *http.Request, v *validate.Validator) domain.TaskFilter {
	q := r.URL.Query()
	f := domain.TaskFilter{
		OwnerID: q.Get("user_id"),
		Search:  q.Get("search"),
	}

	if raw := q.Get("status"); raw != "" {
		n, err := strconv.Atoi(raw)
		s := domain.TaskStatus(n)
		v.Check(err == nil && s.Valid(), "status", "must be one of: 1, 2, 3")
		f.Status = &s
	}
	if raw := q.Get("priority"); raw != "" {
		n, err := strconv.Atoi(raw)
		p := domain.TaskPriority(n)
		v.Check(err == nil && p.Valid(), "priority", "must be one of: 1, 2, 3")
		f.Priority = &p
	}
	if raw := q.Get("due_from"); raw != "" {
		d, err := domain.ParseDate(raw)
		v.Check(err == nil, "due_from", "must be a date in YYYY-MM-DD format")
		f.DueFrom = &d
	}
	if raw := q.Get("due_to"); raw != "" {
		d, err := domain.ParseDate(raw)
		v.Check(err == nil, "due_to", "must be a date in YYYY-MM-DD format")
		f.DueTo = &d
	}

	f.Sort = parseSort(r, v)
	f.Pagination = parsePagination(r, v)
	return f
}
