package model

// Organization is one entry in the merged organization listing. IsMember and
// IsVisible record which of the two listing sources reported it; an org that
// shows up in both keeps both flags set.
type Organization struct {
	Login       string `json:"login"`
	ID          int64  `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
	IsMember    bool   `json:"is_member"`
	IsVisible   bool   `json:"is_visible"`
}
