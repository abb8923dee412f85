package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/rcbeam/rcbeam/internal/command"
)

// Extras holds hand-written content merged into the generated pages. It is
// read from <docs>/templates/rcbeam.yaml when present.
type Extras struct {
	Subcommands map[string]SubcommandExtras `yaml:"subcommands"`
}

type SubcommandExtras struct {
	Description string    `yaml:"description"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type Flag struct {
	ID      string
	Syntax  string
	Usage   string
	Default string
}

type TemplateData struct {
	SubcommandExtras
	ID        string
	Short     string
	Usage     string
	Flags     []Flag
	Date      string
	Version   string
	IDUpper   string
	Generated string
}

const pageTemplate = `# rcbeam {{ .ID }}

{{ .Short }}

## Usage

` + "```" + `
{{ .Usage }}
` + "```" + `
{{- if .Description }}

## Description

{{ .Description }}
{{- end }}
{{- if .Flags }}

## Flags

| Flag | Description | Default |
|---|---|---|
{{- range .Flags }}
| ` + "`{{ .Syntax }}`" + ` | {{ .Usage }} | {{ .Default }} |
{{- end }}
{{- end }}
{{- if .Examples }}

## Examples
{{ range .Examples }}
{{ .Description }}

` + "```" + `
{{ .Command }}
` + "```" + `
{{ end }}
{{- end }}
{{- if .Notes }}

## Notes
{{ range .Notes }}
- {{ . }}
{{- end }}
{{- end }}

_{{ .Generated }} {{ .Version }}, {{ .Date }}_
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs-dir>")
		os.Exit(1)
	}
	docs := os.Args[1]

	var extras Extras
	if data, err := os.ReadFile(filepath.Join(docs, "templates", "rcbeam.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &extras); err != nil {
			panic(err)
		}
	}

	app, err := command.InitApp(context.Background(), []string{"rcbeam"})
	if err != nil {
		panic(err)
	}

	if err := generate(app, extras, filepath.Join(docs, "commands"), getVersion(), time.Now()); err != nil {
		panic(err)
	}
}

// generate writes one Markdown page per subcommand of app into folder.
func generate(app *cli.Command, extras Extras, folder string, version string, now time.Time) error {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		return err
	}

	for _, sub := range app.Commands {
		data := TemplateData{
			SubcommandExtras: extras.Subcommands[sub.Name],
			ID:               sub.Name,
			Short:            sub.Usage,
			Usage:            sub.UsageText,
			Flags:            flags(sub),
			Date:             now.Format("January 2, 2006"),
			Version:          version,
			IDUpper:          strings.ToUpper(sub.Name),
			Generated:        "Generated for rcbeam",
		}

		path := filepath.Join(folder, sub.Name+".md")
		fmt.Println("Generating", path)

		file, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := tmpl.Execute(file, data); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}
	}

	return nil
}

// flags describes the visible flags of cmd, sorted by name.
func flags(cmd *cli.Command) []Flag {
	var result []Flag
	for _, f := range cmd.Flags {
		if vf, ok := f.(cli.VisibleFlag); ok && !vf.IsVisible() {
			continue
		}

		names := f.Names()
		var syntax []string
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}

		flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if df, ok := f.(cli.DocGenerationFlag); ok {
			flag.Usage = df.GetUsage()
			if df.TakesValue() {
				flag.Default = df.GetValue()
			}
		}
		result = append(result, flag)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
