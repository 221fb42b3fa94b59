package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"net/url"

	"github.com/mofa-org/devpage/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// MaxAwards is the number of awards shown on a profile page.
const MaxAwards = 3

const (
	pageProfile = "profile"
	pageDefault = "default"
	pageError   = "error"
)

// Options configures page assets.
type Options struct {
	LogoURL      string
	QRServiceURL string
	// RegistryURL is where developers register their page; shown on the default page.
	RegistryURL string
}

// Renderer renders the profile, default and error pages.
type Renderer struct {
	opts  Options
	pages map[string]*template.Template
}

// New parses the embedded page templates.
func New(opts Options) (*Renderer, error) {
	r := &Renderer{opts: opts, pages: make(map[string]*template.Template)}
	for _, page := range []string{pageProfile, pageDefault, pageError} {
		tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+page+".html")
		if err != nil {
			return nil, &TemplateError{Message: "failed to parse " + page + " template", Cause: err}
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

type profileView struct {
	Page      *types.ProfilePage
	LogoURL   string
	QRCodeURL string
	Awards    []types.Award
}

type defaultView struct {
	Page        *types.ProfilePage
	LogoURL     string
	GitHubURL   string
	RegistryURL string
}

type errorView struct {
	LogoURL    string
	IncidentID string
}

// Profile renders a developer page.
func (r *Renderer) Profile(w io.Writer, page *types.ProfilePage) error {
	view := profileView{
		Page:      page,
		LogoURL:   r.opts.LogoURL,
		QRCodeURL: QRCodeURL(r.opts.QRServiceURL, page.Hostname),
	}
	if page.Achievements != nil {
		view.Awards = page.Achievements.Awards
		if len(view.Awards) > MaxAwards {
			view.Awards = view.Awards[:MaxAwards]
		}
	}
	return r.execute(w, pageProfile, view)
}

// Default renders the page for a user without a configured link page.
func (r *Renderer) Default(w io.Writer, page *types.ProfilePage) error {
	return r.execute(w, pageDefault, defaultView{
		Page:        page,
		LogoURL:     r.opts.LogoURL,
		GitHubURL:   "https://github.com/" + url.PathEscape(page.Username),
		RegistryURL: r.opts.RegistryURL,
	})
}

// Error renders the generic failure page. incidentID is shown so users can
// report it; no internal error detail is included.
func (r *Renderer) Error(w io.Writer, incidentID string) error {
	return r.execute(w, pageError, errorView{LogoURL: r.opts.LogoURL, IncidentID: incidentID})
}

// execute renders into a buffer so a failing template never writes a partial page.
func (r *Renderer) execute(w io.Writer, page string, data any) error {
	var buf bytes.Buffer
	if err := r.pages[page].ExecuteTemplate(&buf, "base", data); err != nil {
		return &RenderError{Page: page, Message: "failed to execute template", Cause: err}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return &RenderError{Page: page, Message: "failed to write page", Cause: err}
	}
	return nil
}

// QRCodeURL builds the image URL of a QR code pointing at https://hostname.
func QRCodeURL(serviceURL, hostname string) string {
	return serviceURL + "?size=200x200&data=" + url.QueryEscape("https://"+hostname)
}
