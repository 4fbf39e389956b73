package model

// Identity is the authenticated caller context supplied by the auth
// layer. Services receive it explicitly; nothing reads it from ambient
// state.
type Identity struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}
