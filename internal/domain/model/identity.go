package model

// Identity is the authenticated caller: the username behind the token and
// the OAuth scopes granted to it. Scopes are flat string tokens ("repo",
// "read:org"); comparison is set inclusion, never prefix matching.
type Identity struct {
	Username string   `json:"username"`
	Scopes   []string `json:"scopes"`
}
