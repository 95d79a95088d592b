package model

// Repository is the shaped view of a GitHub repository returned by the
// listing and creation operations. CloneURL is always populated: when the
// API response omits it, the operation synthesizes one from org and name.
type Repository struct {
	ID            int64  `json:"id,omitempty"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description,omitempty"`
	Private       bool   `json:"private"`
	Visibility    string `json:"visibility"`
	DefaultBranch string `json:"default_branch,omitempty"`
	HTMLURL       string `json:"html_url,omitempty"`
	CloneURL      string `json:"clone_url"`
}
