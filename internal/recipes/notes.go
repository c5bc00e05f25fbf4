package recipes

import "fmt"

type notesData struct {
	EnvPath     string
	Database    string
	Host        string
	Mode        string
	DevCommand  string
	MissingKeys []string
}

// Notes renders the markdown shown after a successful run. missing lists env
// keys absent from a preserved env file.
func (r *Registry) Notes(plan *Plan, missing []string) (string, error) {
	data := plan.notesData
	data.MissingKeys = missing

	out, err := r.renderer.RenderFS(r.fsys, plan.notes, data)
	if err != nil {
		return "", fmt.Errorf("render notes for %s: %w", plan.Key, err)
	}
	return string(out), nil
}
