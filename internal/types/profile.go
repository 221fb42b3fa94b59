package types

// ProfilePage is the render model for a resolved developer page.
type ProfilePage struct {
	Username     string                `json:"username"`
	Hostname     string                `json:"hostname"`
	ConfigURL    string                `json:"config_url"`
	Links        []FluidLink           `json:"links"`
	Achievements *AchievementsDocument `json:"achievements,omitempty"`
	GithubStats  *GithubStats          `json:"github_stats,omitempty"`
}
