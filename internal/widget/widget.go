// Package widget renders the "Latest deploys" dashboard panel.
package widget

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"deploy-dashboard/internal/deploys"
	"deploy-dashboard/internal/i18n"
	"deploy-dashboard/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
)

// TrackDeploysURL is where the empty state sends people to set up deploys.
const TrackDeploysURL = "https://blog.sentry.io/2017/05/09/release-deploys"

// LinkBuilder turns an application path into something navigable.
type LinkBuilder func(path string) string

// RelativeTime renders an absolute time relative to now, e.g. "3 hours ago".
type RelativeTime func(t time.Time) string

// Translator maps a message key to a display string.
type Translator func(key string) string

// View is the output of a single render pass. Exactly one of Rows or
// CallToAction is populated.
type View struct {
	Empty        bool          `json:"empty"`
	Heading      string        `json:"heading,omitempty"`
	Rows         []Row         `json:"rows,omitempty"`
	CallToAction *CallToAction `json:"callToAction,omitempty"`
}

// Row is one deploy line. Key is the deploy's version and identifies the row.
type Row struct {
	Key         string `json:"key"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Link        string `json:"link"`
	Finished    string `json:"finished"`
}

type CallToAction struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Presenter turns selected deploys into a View. It holds only collaborators
// and may be shared between goroutines.
type Presenter struct {
	BuildLink       LinkBuilder
	RelativeFromNow RelativeTime
	Translate       Translator
}

// NewPresenter returns a Presenter with links under "/", humanized times
// measured against the wall clock and English strings.
func NewPresenter() *Presenter {
	return &Presenter{
		BuildLink:       PrefixLinks("/"),
		RelativeFromNow: HumanizeSince(time.Now),
		Translate:       i18n.ForLocale("en").Translate,
	}
}

// PrefixLinks builds links by joining base and path with a single slash.
func PrefixLinks(base string) LinkBuilder {
	base = strings.TrimRight(base, "/")
	return func(path string) string {
		return base + "/" + strings.TrimLeft(path, "/")
	}
}

// HumanizeSince renders times relative to the instant returned by now.
func HumanizeSince(now func() time.Time) RelativeTime {
	return func(t time.Time) string {
		return humanize.RelTime(t, now(), "ago", "from now")
	}
}

// ReleasePath is the application path of a release's detail page.
func ReleasePath(orgID, projectID, version string) string {
	return fmt.Sprintf("%s/%s/releases/%s/",
		url.PathEscape(orgID), url.PathEscape(projectID), url.PathEscape(version))
}

// Render builds the list view for selected, or the empty state when there is
// nothing to show. Missing ids produce a malformed link rather than an error.
func (p *Presenter) Render(selected []models.Deploy, projectID, orgID string) View {
	if len(selected) == 0 {
		return View{
			Empty: true,
			CallToAction: &CallToAction{
				Label: p.Translate(i18n.TrackDeploys),
				URL:   TrackDeploysURL,
			},
		}
	}

	rows := lo.Map(selected, func(d models.Deploy, _ int) Row {
		return Row{
			Key:         d.Version,
			Environment: d.Environment,
			Version:     d.Version,
			Link:        p.BuildLink(ReleasePath(orgID, projectID, d.Version)),
			Finished:    p.finished(d.DateFinished),
		}
	})

	return View{
		Heading: p.Translate(i18n.LatestDeploys),
		Rows:    rows,
	}
}

func (p *Presenter) finished(value string) string {
	t, ok := deploys.ParseFinished(value)
	if !ok {
		return p.Translate(i18n.Unknown)
	}
	return p.RelativeFromNow(t)
}

// Deploys selects a project's latest deploys and renders them.
func (p *Presenter) Deploys(project models.Project, params models.RouteParams) View {
	return p.Render(deploys.Select(project.LatestDeploys), project.Slug, params.OrgID)
}
