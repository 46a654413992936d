// Command renderdeploys renders the deploys panel for a project JSON
// document read from a file or stdin.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"deploy-dashboard/internal/i18n"
	"deploy-dashboard/internal/logger"
	"deploy-dashboard/internal/models"
	"deploy-dashboard/internal/widget"
)

func main() {
	org := flag.String("org", "", "organization slug used in release links")
	lang := flag.String("lang", "en", "locale for headings and labels")
	base := flag.String("base", "/", "base URL release links are built under")
	flag.Parse()

	log := logger.WithModule("renderdeploys")

	if err := run(os.Stdout, flag.Arg(0), *org, *lang, *base); err != nil {
		log.WithError(err).Fatal("Failed to render deploys")
	}
}

func run(out io.Writer, path, org, lang, base string) error {
	in := os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open project file: %w", err)
		}
		defer f.Close()
		in = f
	}

	project, err := decodeProject(in)
	if err != nil {
		return err
	}

	presenter := &widget.Presenter{
		BuildLink:       widget.PrefixLinks(base),
		RelativeFromNow: widget.HumanizeSince(time.Now),
		Translate:       i18n.ForLocale(lang).Translate,
	}

	view := presenter.Deploys(project, models.RouteParams{OrgID: org})
	return widget.WriteHTML(out, view, widget.DefaultTheme)
}

func decodeProject(r io.Reader) (models.Project, error) {
	var project models.Project
	if err := json.NewDecoder(r).Decode(&project); err != nil {
		return models.Project{}, fmt.Errorf("failed to decode project: %w", err)
	}
	return project, nil
}
