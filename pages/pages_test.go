package pages

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	artpack "github.com/albertocavalcante/go-artpack"
)

func writeTemplate(t *testing.T, root, moduleDir string) string {
	t.Helper()
	dir := filepath.Join(root, "client", filepath.FromSlash(moduleDir))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	p := filepath.Join(dir, TemplateFile)
	require.NoError(t, os.WriteFile(p, []byte("<html></html>"), 0o644))
	return p
}

func TestPlanner_Plan(t *testing.T) {
	root := t.TempDir()
	homeTmpl := writeTemplate(t, root, "pages/home")
	aboutTmpl := writeTemplate(t, root, "pages/about")

	tests := []struct {
		name string
		mode artpack.Mode
		want []Page
	}{
		{
			name: "production",
			mode: artpack.ModeProduction,
			want: []Page{
				{
					Entry: "pages/home", Key: "pages/home?title=Home",
					Template: homeTmpl, Filename: "pages/home/index.html",
					Title: "Home", BuildEnv: "prod",
					PublicPath: "https://cdn.example.com/", CDNPath: "https://cdn.example.com/",
					Minify: true, ManifestPath: filepath.Dir(homeTmpl),
				},
				{
					Entry: "pages/about", Key: "pages/about?template=about.html&cdn=0",
					Template: aboutTmpl, Filename: "pages/about/about.html",
					BuildEnv: "prod", PublicPath: "https://cdn.example.com/",
					Minify: true, ManifestPath: filepath.Dir(aboutTmpl),
				},
			},
		},
		{
			name: "development",
			mode: artpack.ModeDevelopment,
			want: []Page{
				{
					Entry: "pages/home", Key: "pages/home?title=Home",
					Template: homeTmpl, Filename: "pages/home/index.html",
					Title: "Home", BuildEnv: "prod",
					PublicPath: "https://cdn.example.com/",
					ManifestPath: filepath.Dir(homeTmpl),
				},
				{
					Entry: "pages/about", Key: "pages/about?template=about.html&cdn=0",
					Template: aboutTmpl, Filename: "pages/about/about.html",
					BuildEnv: "prod", PublicPath: "https://cdn.example.com/",
					ManifestPath: filepath.Dir(aboutTmpl),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Planner{
				WorkDir: root,
				Settings: artpack.BuildSettings{
					Mode:        tt.mode,
					Tier:        "prod",
					PublicPaths: map[string]string{"prod": "https://cdn.example.com/"},
				},
			}
			got, err := p.Plan([]string{"pages/home?title=Home", "pages/about?template=about.html&cdn=0"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanner_VirtualPath(t *testing.T) {
	root := t.TempDir()
	tmpl := writeTemplate(t, root, "pages/home")

	p := Planner{WorkDir: root, ProjectVirtualPath: "mobile"}
	got, err := p.Plan([]string{"mobile/pages/home"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, tmpl, got[0].Template)
	assert.Equal(t, "mobile/pages/home/index.html", got[0].Filename)
	assert.Equal(t, "mobile/pages/home", got[0].Entry)
}

func TestPlanner_MissingTemplates(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "pages/home")

	p := Planner{WorkDir: root}
	got, err := p.Plan([]string{"pages/home", "pages/about", "pages/contact"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, artpack.ErrMissingTemplate))
	assert.Contains(t, err.Error(), `"pages/about"`)
	assert.Contains(t, err.Error(), `"pages/contact"`)
	require.Len(t, got, 1, "pages with templates are still planned")
	assert.Equal(t, "pages/home", got[0].Entry)
}

func TestPlanner_TemplateIsDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "client", "home", TemplateFile), 0o755))

	_, err := Planner{WorkDir: root}.Plan([]string{"home"})
	assert.ErrorIs(t, err, artpack.ErrMissingTemplate)
}

func TestPlanner_InvalidKey(t *testing.T) {
	_, err := Planner{WorkDir: t.TempDir()}.Plan([]string{"a//b"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, artpack.ErrMissingTemplate))
}

func TestPlanner_NoPublicPath(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "home")

	p := Planner{WorkDir: root, Settings: artpack.BuildSettings{Mode: artpack.ModeProduction, Tier: "test"}}
	got, err := p.Plan([]string{"home"})
	require.NoError(t, err)
	assert.Empty(t, got[0].PublicPath)
	assert.Empty(t, got[0].CDNPath)
}
