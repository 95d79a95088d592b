package model

// RepoSettings carries the boolean repository toggles that the update
// operation accepts. Only keys present in the map are sent to GitHub;
// the result of an update contains exactly the keys that were supplied.
type RepoSettings map[string]bool

// SettingsUpdateResult is the shaped outcome of update_repository_settings.
type SettingsUpdateResult struct {
	Organization string       `json:"organization"`
	Repository   string       `json:"repository"`
	Settings     RepoSettings `json:"settings"`
}
