// Package indexgen renders a static download page listing a directory.
package indexgen

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const DefaultOutput = "index.html"

var pageTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>文件目录 - {{.Title}}</title>
    <style>
        body { font-family: sans-serif; margin: 2rem; }
        ul { list-style: none; padding: 0; }
        li { margin: 0.5rem 0; }
        a { text-decoration: none; color: #0366d6; }
        a:hover { text-decoration: underline; }
    </style>
</head>
<body>
    <h1>文件列表</h1>
    <p>当前目录下共有 {{len .Files}} 个文件：</p>
    <ul>
        {{- range .Files}}
        <li><a href="./{{.}}" download>{{.}}</a></li>
        {{- end}}
    </ul>
    <p><small>页面生成于 {{.GeneratedAt}}</small></p>
</body>
</html>
`))

type Options struct {
	Dir    string
	Output string // file name inside Dir, DefaultOutput when empty
	Title  string // defaults to the base name of Dir
	Now    func() time.Time
}

type Result struct {
	Path  string
	Files []string
}

type pageData struct {
	Title       string
	Files       []string
	GeneratedAt string
}

// ListEntries returns the names in dir sorted by name, skipping exclude and
// hidden entries.
func ListEntries(dir, exclude string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if name == exclude || strings.HasPrefix(name, ".") {
			continue
		}
		files = append(files, name)
	}
	return files, nil
}

// Generate lists opts.Dir and overwrites the index page inside it.
func Generate(opts Options) (*Result, error) {
	if opts.Output == "" {
		opts.Output = DefaultOutput
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Title == "" {
		abs, err := filepath.Abs(opts.Dir)
		if err != nil {
			return nil, err
		}
		opts.Title = filepath.Base(abs)
	}

	files, err := ListEntries(opts.Dir, opts.Output)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", opts.Dir, err)
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageData{
		Title:       opts.Title,
		Files:       files,
		GeneratedAt: opts.Now().Format("2006/1/2 15:04:05"),
	})
	if err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}

	path := filepath.Join(opts.Dir, opts.Output)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return &Result{Path: path, Files: files}, nil
}
