package types

// AchievementsDocument is the canonical form of a user's achievements file,
// regardless of which serialization it was parsed from.
type AchievementsDocument struct {
	GithubUsername    string         `json:"github_username,omitempty"`
	EnableGithubStats bool           `json:"enable_github_stats"`
	Contributions     []Contribution `json:"contributions"`
	Awards            []Award        `json:"awards"`
	Repositories      []Repository   `json:"repositories"`
	Activities        []Activity     `json:"activities"`
}

// Contribution is a role held in an organization repository.
type Contribution struct {
	Repo          string `json:"repo"`
	Role          string `json:"role"`
	Contributions string `json:"contributions"`
}

// Award is a hackathon result or other recognition.
// Markdown documents fill Award and Project; YAML documents fill Award from "rank"
// and may carry Team, Image and CertNumber.
type Award struct {
	Title       string `json:"title"`
	Award       string `json:"award,omitempty"`
	Project     string `json:"project,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Team        string `json:"team,omitempty"`
	Image       string `json:"image,omitempty"`
	CertNumber  string `json:"cert_number,omitempty"`
}

// Repository is a showcased repository.
type Repository struct {
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stars"`
}

// Link returns the repository URL, defaulting to its GitHub page.
func (r Repository) Link() string {
	if r.URL != "" {
		return r.URL
	}
	return "https://github.com/" + r.Name
}

// Activity is a single line of recent GitHub activity.
type Activity struct {
	Type string `json:"type"`
	Repo string `json:"repo"`
	Time string `json:"time"`
}

// WantsGithubStats reports whether the document asks for GitHub stats and names a user to fetch.
func (d *AchievementsDocument) WantsGithubStats() bool {
	return d != nil && d.EnableGithubStats && d.GithubUsername != ""
}

// IsEmpty reports whether the document carries nothing worth rendering.
func (d *AchievementsDocument) IsEmpty() bool {
	return d == nil || (len(d.Contributions) == 0 && len(d.Awards) == 0 &&
		len(d.Repositories) == 0 && len(d.Activities) == 0)
}
