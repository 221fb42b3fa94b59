package types

// GithubStats is a projection of the GitHub users API response.
// Values are copied as-is; missing fields stay at their zero value.
type GithubStats struct {
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Location    string `json:"location,omitempty"`
	Company     string `json:"company,omitempty"`
}
