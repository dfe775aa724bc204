// Package render produces the user-visible Markdown for outbound
// messages. Templates are embedded in the binary; a deployment can point
// template_dir at an on-disk copy, which is then watched and hot-reloads
// on change.
package render

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driven"
	"github.com/custodia-labs/trackbot/internal/logger"
)

//go:embed templates/*.tmpl
var embedded embed.FS

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

// Renderer renders message templates.
type Renderer struct {
	mu      sync.RWMutex
	tmpl    *template.Template
	baseURL string
	dir     string
	watcher *fsnotify.Watcher
}

// markdownEscape escapes the characters Telegram's Markdown mode treats
// as markup, so issue summaries render verbatim.
func markdownEscape(s string) string {
	for _, c := range []string{"_", "*", "`", "["} {
		s = strings.ReplaceAll(s, c, `\`+c)
	}
	return s
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"escape": markdownEscape,
		"add":    func(a, b int) int { return a + b },
	}
}

// New creates a renderer. trackerURL is the tracker's API base; issue
// links strip the trailing /api. dir optionally overrides the embedded
// templates.
func New(trackerURL, dir string) (*Renderer, error) {
	r := &Renderer{
		baseURL: strings.TrimSuffix(strings.TrimRight(trackerURL, "/"), "/api"),
		dir:     dir,
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// load parses the template set from the override directory or the
// embedded copy.
func (r *Renderer) load() error {
	var (
		tmpl *template.Template
		err  error
	)
	if r.dir != "" {
		tmpl, err = template.New("").Funcs(funcs()).ParseGlob(filepath.Join(r.dir, "*.tmpl"))
	} else {
		tmpl, err = template.New("").Funcs(funcs()).ParseFS(embedded, "templates/*.tmpl")
	}
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}
	r.mu.Lock()
	r.tmpl = tmpl
	r.mu.Unlock()
	return nil
}

// Watch reloads templates when the override directory changes. No-op
// when running from the embedded copy. Call Close to stop watching.
func (r *Renderer) Watch() error {
	if r.dir == "" {
		return nil
	}
	if _, err := os.Stat(r.dir); err != nil {
		return fmt.Errorf("template dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return err
	}
	r.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if err := r.load(); err != nil {
					logger.Warn("reloading templates: %v", err)
					continue
				}
				logger.Info("templates reloaded after change to %s", event.Name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("template watcher: %v", err)
			}
		}
	}()
	return nil
}

// Close stops the template watcher.
func (r *Renderer) Close() error {
	if r.watcher != nil {
		return r.watcher.Close()
	}
	return nil
}

func (r *Renderer) execute(name string, data any) (string, error) {
	r.mu.RLock()
	tmpl := r.tmpl
	r.mu.RUnlock()

	var sb strings.Builder
	if err := tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	// Template files end with a newline the message should not carry.
	return strings.TrimRight(sb.String(), "\n"), nil
}

// Greeting renders the /start reply.
func (r *Renderer) Greeting(firstName string) (string, error) {
	return r.execute("greeting.tmpl", map[string]any{"FirstName": firstName})
}

// BacklogPage renders one backlog page.
func (r *Renderer) BacklogPage(issues domain.Issues, params domain.BacklogParams) (string, error) {
	return r.execute("backlog.tmpl", map[string]any{
		"Issues":  issues,
		"Skip":    params.Skip,
		"BaseURL": r.baseURL,
	})
}

// ProjectList renders the pick-a-project prompt.
func (r *Renderer) ProjectList(projects []domain.ProjectRef) (string, error) {
	return r.execute("projects.tmpl", map[string]any{"Projects": projects})
}

// FieldValues renders the pick-a-field-value prompt.
func (r *Renderer) FieldValues(fieldName string, values []string) (string, error) {
	return r.execute("fields.tmpl", map[string]any{"FieldName": fieldName, "Values": values})
}

// IssueCreated renders the wizard success message.
func (r *Renderer) IssueCreated(issueID string) (string, error) {
	return r.execute("created.tmpl", map[string]any{"IssueID": issueID, "BaseURL": r.baseURL})
}
