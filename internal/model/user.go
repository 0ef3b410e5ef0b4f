package model

type UserID int

// CreateUserParams carries the operator-entered fields for a new user.
// The id and status are assigned by the repository.
type CreateUserParams struct {
	Login string  `json:"login"`
	Email *string `json:"email"`
	Age   *int    `json:"age"`
	URL   string  `json:"url"`
}

// User is one account in the local collection. Email and Age are pointers
// because the remote source carries neither; both stay null until the
// operator fills them in.
type User struct {
	ID     UserID  `json:"id"`
	Login  string  `json:"login"`
	Email  *string `json:"email"`
	Age    *int    `json:"age"`
	Status bool    `json:"status"`
	URL    string  `json:"url"`

	// remote-only fields, carried through as-is and never touched locally
	NodeID            string `json:"node_id,omitempty"`
	AvatarURL         string `json:"avatar_url,omitempty"`
	GravatarID        string `json:"gravatar_id,omitempty"`
	HTMLURL           string `json:"html_url,omitempty"`
	FollowersURL      string `json:"followers_url,omitempty"`
	FollowingURL      string `json:"following_url,omitempty"`
	GistsURL          string `json:"gists_url,omitempty"`
	StarredURL        string `json:"starred_url,omitempty"`
	SubscriptionsURL  string `json:"subscriptions_url,omitempty"`
	OrganizationsURL  string `json:"organizations_url,omitempty"`
	ReposURL          string `json:"repos_url,omitempty"`
	EventsURL         string `json:"events_url,omitempty"`
	ReceivedEventsURL string `json:"received_events_url,omitempty"`
	Type              string `json:"type,omitempty"`
	UserViewType      string `json:"user_view_type,omitempty"`
	SiteAdmin         bool   `json:"site_admin,omitempty"`
}
