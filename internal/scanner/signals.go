package scanner

import (
	"path"
	"strings"
)

// Signal maps a skill tag to the evidence that implies it. Name globs are
// matched against a file's base name, or against its slash-separated
// relative path when the glob contains a "/". Content substrings are
// matched case-insensitively against sampled file contents.
type Signal struct {
	Tag       string
	NameGlobs []string
	Contents  []string
}

// DefaultSignals is the skills taxonomy matched against every project.
var DefaultSignals = []Signal{
	{Tag: "Go", NameGlobs: []string{"go.mod", "*.go"}},
	{Tag: "Python", NameGlobs: []string{"*.py", "requirements.txt", "pyproject.toml", "Pipfile"}},
	{Tag: "JavaScript", NameGlobs: []string{"*.js", "*.mjs", "*.cjs"}},
	{Tag: "TypeScript", NameGlobs: []string{"*.ts", "*.tsx", "tsconfig.json"}},
	{Tag: "Node.js", NameGlobs: []string{"package.json"}},
	{Tag: "React", NameGlobs: []string{"*.jsx", "*.tsx"}, Contents: []string{`"react":`, `from "react"`, `from 'react'`}},
	{Tag: "Vue.js", NameGlobs: []string{"*.vue"}, Contents: []string{`"vue":`}},
	{Tag: "HTML/CSS", NameGlobs: []string{"*.html", "*.htm", "*.css", "*.scss"}},
	{Tag: "Docker", NameGlobs: []string{"Dockerfile", "*.dockerfile", "docker-compose.yml", "docker-compose.yaml", "compose.yaml"}},
	{Tag: "Kubernetes", Contents: []string{"kind: deployment", "kind: service\n"}},
	{Tag: "Terraform", NameGlobs: []string{"*.tf"}},
	{Tag: "CI/CD", NameGlobs: []string{".github/workflows/*.yml", ".github/workflows/*.yaml", ".gitlab-ci.yml", "Jenkinsfile"}},
	{Tag: "Shell scripting", NameGlobs: []string{"*.sh", "*.bash"}},
	{Tag: "Java", NameGlobs: []string{"*.java", "pom.xml", "build.gradle"}},
	{Tag: "Kotlin", NameGlobs: []string{"*.kt", "*.kts"}},
	{Tag: "Rust", NameGlobs: []string{"Cargo.toml", "*.rs"}},
	{Tag: "Ruby", NameGlobs: []string{"Gemfile", "*.rb"}},
	{Tag: "PHP", NameGlobs: []string{"*.php", "composer.json"}},
	{Tag: "C#/.NET", NameGlobs: []string{"*.cs", "*.csproj", "*.sln"}},
	{Tag: "Swift", NameGlobs: []string{"*.swift", "Package.swift"}},
	{Tag: "SQL", NameGlobs: []string{"*.sql"}},
	{Tag: "PostgreSQL", Contents: []string{"postgres"}},
	{Tag: "MongoDB", Contents: []string{"mongodb"}},
	{Tag: "Redis", Contents: []string{"redis"}},
	{Tag: "REST API", Contents: []string{"http.handlefunc", "@app.route", "express()", "app.get(", "router.get(", "@restcontroller"}},
	{Tag: "GraphQL", NameGlobs: []string{"*.graphql", "*.gql"}, Contents: []string{"graphql"}},
	{Tag: "Machine Learning", Contents: []string{"import torch", "import tensorflow", "from sklearn", "import sklearn"}},
	{Tag: "Git", NameGlobs: []string{".git/HEAD", ".gitignore"}},
}

// matchName reports whether a file matches any of the signal's name globs.
func (s Signal) matchName(rel, base string) bool {
	for _, g := range s.NameGlobs {
		target := base
		if strings.Contains(g, "/") {
			target = rel
		}
		if ok, _ := path.Match(g, target); ok {
			return true
		}
	}
	return false
}

// matchContent reports whether lowered content contains any substring.
func (s Signal) matchContent(lowered string) bool {
	for _, c := range s.Contents {
		if strings.Contains(lowered, strings.ToLower(c)) {
			return true
		}
	}
	return false
}
