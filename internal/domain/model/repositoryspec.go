package model

// RepositorySpec describes a repository to create. AutoInit requests README
// initialization so the new repository is immediately cloneable.
type RepositorySpec struct {
	Name        string
	Description string
	Private     bool
	AutoInit    bool
}
