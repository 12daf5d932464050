package handler

// Request schemas mirror the validation rules of the API contract: every
// payload is checked here before storage or hashing is touched.

// errorResponse is the error envelope rendered by the central error handler,
// declared here for the route documentation.
type errorResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// createUserRequest requires every field. Level is a pointer so the schema
// can distinguish an explicit 0 (accepted, though not a meaningful rank)
// from an absent field.
type createUserRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Level    *int   `json:"level"    validate:"required,gte=0,lte=5"`
}

// updateUserRequest accepts any subset of the create fields. Nil means the
// field was absent and stays untouched in storage; a supplied value is held
// to the same rules as on create.
type updateUserRequest struct {
	Name     *string `json:"name"     validate:"omitnil,min=2,max=50"`
	Email    *string `json:"email"    validate:"omitnil,email"`
	Password *string `json:"password" validate:"omitnil,min=8"`
	Level    *int    `json:"level"    validate:"omitnil,gte=0,lte=5"`
}

// userResponse is the record projection returned by every endpoint. The
// password field deliberately carries the stored hash for behavioural parity;
// tightening the exposure means changing only this projection.
type userResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Level    int    `json:"level"`
}

// dataResponse is the read envelope: {"data": ...}.
type dataResponse struct {
	Data any `json:"data"`
}

// successResponse is the mutation envelope: {"success": true, "data": ...}.
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}
