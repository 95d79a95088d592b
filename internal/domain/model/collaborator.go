package model

// PermissionMatrix expands a permission level into the access it implies:
// push and admin imply pull, admin implies push.
type PermissionMatrix struct {
	Pull  bool `json:"pull"`
	Push  bool `json:"push"`
	Admin bool `json:"admin"`
}

// CollaboratorResult is the shaped outcome of adding a collaborator.
// Status is "invited" when GitHub created a pending invitation and "added"
// when the user was attached directly.
type CollaboratorResult struct {
	Username    string           `json:"username"`
	Repository  string           `json:"repository"`
	Permission  string           `json:"permission"`
	Status      string           `json:"status"`
	Permissions PermissionMatrix `json:"permissions"`
}

// MatrixForPermission derives the permission matrix for one of the accepted
// permission levels (pull, push, admin).
func MatrixForPermission(permission string) PermissionMatrix {
	switch permission {
	case "admin":
		return PermissionMatrix{Pull: true, Push: true, Admin: true}
	case "push":
		return PermissionMatrix{Pull: true, Push: true}
	case "pull":
		return PermissionMatrix{Pull: true}
	default:
		return PermissionMatrix{}
	}
}
