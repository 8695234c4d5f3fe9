package http

import (
	"net/http"

	"github.com/cedarhq/taskboard/internal/api/domain"
	"github.com/cedarhq/taskboard/internal/api/service"
	"github.com/cedarhq/taskboard/pkg/httpx"
	"github.com/cedarhq/taskboard/pkg/validate"
)

// UsersHandler handles the admin-only user management endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// HandleList handles GET /users
//
//	@Summary		List Users
//	@Description	Lists users with optional name, email and role filters. Admin only.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			name		query		string	false	"Name substring"
//	@Param			email		query		string	false	"Email substring"
//	@Param			role		query		string	false	"Exact role (admin or user)"
//	@Param			sort		query		string	false	"asc or desc by created_at"
//	@Param			page		query		int		false	"Page number"
//	@Param			per_page	query		int		false	"Page size (default 15, max 100)"
//	@Success		200			{object}	httpx.Envelope	"page of users"
//	@Failure		401			{object}	httpx.Envelope
//	@Failure		403			{object}	httpx.Envelope
//	@Failure		422			{object}	httpx.Envelope
//	@Router			/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthenticated", nil)
		return
	}

	v := validate.New()
	f := parseUserFilter(r, v)
	if !v.Valid() {
		writeServiceError(w, r, v.Err())
		return
	}

	page, err := h.UserService.List(r.Context(), p, f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, "Users retrieved", page)
}

// HandleCreate handles POST /users
//
//	@Summary		Create User
//	@Description	Creates a user with an explicit role. Admin only.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		createUserRequest	true	"User fields"
//	@Success		200		{object}	httpx.Envelope		"created user"
//	@Failure		401		{object}	httpx.Envelope
//	@Failure		403		{object}	httpx.Envelope
//	@Failure		422		{object}	httpx.Envelope	"field errors, including duplicate email"
//	@Router			/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthenticated", nil)
		return
	}

	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := validate.New()
	v.Required(req.Name, "name")
	v.Email(req.Email)
	v.Password(req.Password)
	v.OneOf(req.Role, "role", string(domain.RoleAdmin), string(domain.RoleUser))
	if !v.Valid() {
		writeServiceError(w, r, v.Err())
		return
	}

	user, err := h.UserService.Create(r.Context(), p, service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, "User created", user)
}

// HandleUpdate handles PUT /users/{id}
//
//	@Summary		Update User
//	@Description	Applies any subset of name, email, password and role. A new password is re-hashed. Admin only.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"User ID"
//	@Param			request	body		updateUserRequest	true	"Fields to change"
//	@Success		200		{object}	httpx.Envelope		"updated user"
//	@Failure		401		{object}	httpx.Envelope
//	@Failure		403		{object}	httpx.Envelope
//	@Failure		404		{object}	httpx.Envelope
//	@Failure		422		{object}	httpx.Envelope
//	@Router			/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthenticated", nil)
		return
	}

	var req updateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := validate.New()
	in := service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Name != nil {
		v.Required(*req.Name, "name")
	}
	if req.Email != nil {
		v.Email(*req.Email)
	}
	if req.Password != nil {
		v.Password(*req.Password)
	}
	if req.Role != nil {
		v.OneOf(*req.Role, "role", string(domain.RoleAdmin), string(domain.RoleUser))
		role := domain.Role(*req.Role)
		in.Role = &role
	}
	if !v.Valid() {
		writeServiceError(w, r, v.Err())
		return
	}

	user, err := h.UserService.Update(r.Context(), p, r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, "User updated", user)
}

// HandleDelete handles DELETE /users/{id}
//
//	@Summary		Delete User
//	@Description	Deletes a user and their tasks. Audit entries they acted in are kept. Admin only.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	httpx.Envelope	"empty data"
//	@Failure		401	{object}	httpx.Envelope
//	@Failure		403	{object}	httpx.Envelope
//	@Failure		404	{object}	httpx.Envelope
//	@Router			/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthenticated", nil)
		return
	}

	if err := h.UserService.Delete(r.Context(), p, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, "User deleted", nil)
}

func parseUserFilter(r *http.Request, v *validate.Validator) domain.UserFilter {
	q := r.URL.Query()
	f := domain.UserFilter{
		Name:  q.Get("name"),
		Email: q.Get("email"),
	}

	if raw := q.Get("role"); raw != "" {
		role := domain.Role(raw)
		v.Check(role.Valid(), "role", "must be one of: admin, user")
		f.Role = &role
	}

	f.Sort = parseSort(r, v)
	f.Pagination = parsePagination(r, v)
	return f
}
