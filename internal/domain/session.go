package domain

// Session representa o usuário autenticado de uma requisição.
// É resolvida uma única vez pelo middleware de autenticação.
type Session struct {
	UserID   int    `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	RoleID   int    `json:"role_id"`
}

func (s Session) IsAdmin() bool {
	return s.RoleID == RoleAdmin
}

func (s Session) Role() string {
	return RoleName(s.RoleID)
}
