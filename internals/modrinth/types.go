package modrinth

import "time"

type Version struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"project_id"`
	Name          string    `json:"name"`
	VersionNumber string    `json:"version_number"`
	DatePublished time.Time `json:"date_published"`
	VersionType   string    `json:"version_type"`
	GameVersions  []string  `json:"game_versions"`
	Loaders       []string  `json:"loaders"`
}

type Project struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	ProjectType string `json:"project_type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Versions are the ids of all versions of this project
	Versions []string `json:"versions"`
	// GameVersions are all game versions supported by any version of this project
	GameVersions []string `json:"game_versions"`
}
