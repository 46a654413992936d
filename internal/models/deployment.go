package models

// Deploy is a single deployment of a release version to an environment.
// DateFinished is kept exactly as the data source delivered it and may be
// empty or unparsable.
type Deploy struct {
	Version      string `json:"version"`
	Environment  string `json:"environment"`
	DateFinished string `json:"dateFinished"`
}

// Project is a read-only snapshot of a project and its deploy history.
// LatestDeploys carries no ordering guarantee.
type Project struct {
	Slug          string   `json:"slug"`
	LatestDeploys []Deploy `json:"latestDeploys"`
}

// RouteParams holds the navigation context the widget is rendered in.
type RouteParams struct {
	OrgID string `json:"orgId"`
}

type DeployRequest struct {
	Version      string `json:"version"`
	Environment  string `json:"environment"`
	DateFinished string `json:"dateFinished"`
}

type DeployResponse struct {
	Status    string `json:"status"`
	ProjectID string `json:"project_id"`
	Version   string `json:"version"`
	Message   string `json:"message,omitempty"`
}
