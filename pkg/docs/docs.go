package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"
)

//go:embed content/*.md
var content embed.FS

// MaxResults caps the number of sections Search returns.
const MaxResults = 5

var heading = regexp.MustCompile(`^#+\s+(.+)$`)

// File is one markdown document.
type File struct {
	Name    string
	Content string
}

// Result is a matching section of a document. Relevance counts the query
// keywords found anywhere in the file.
type Result struct {
	File      string `json:"file"`
	Content   string `json:"content"`
	Relevance int    `json:"relevance"`
}

// Files returns the embedded documents sorted by name.
func Files() []File {
	files, err := Load(content)
	if err != nil {
		panic(fmt.Sprintf("docs: embedded content: %v", err))
	}
	return files
}

// Load reads every .md file of fsys.
func Load(fsys fs.FS) ([]File, error) {
	var files []File
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		files = append(files, File{Name: strings.TrimPrefix(path, "content/"), Content: string(raw)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Search returns up to MaxResults sections of files matching any keyword
// of query, most relevant file first.
func Search(files []File, query string) []Result {
	keywords := strings.Fields(strings.ToLower(query))
	if len(keywords) == 0 {
		return nil
	}

	var results []Result
	for _, file := range files {
		lower := strings.ToLower(file.Content)
		matches := 0
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		for _, section := range sections(file.Content, keywords) {
			results = append(results, Result{File: file.Name, Content: section, Relevance: matches})
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Relevance > results[j].Relevance })
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

// sections splits content at headings and keeps the sections whose heading
// or body mentions a keyword.
func sections(content string, keywords []string) []string {
	var (
		out      []string
		header   string
		body     strings.Builder
		relevant bool
	)
	flush := func() {
		text := strings.TrimSpace(body.String())
		if relevant && text != "" {
			out = append(out, strings.TrimSpace(header+"\n\n"+text))
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if m := heading.FindStringSubmatch(line); m != nil {
			flush()
			header = line
			body.Reset()
			relevant = mentions(m[1], keywords)
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
		if !relevant {
			relevant = mentions(line, keywords)
		}
	}
	flush()
	return out
}

func mentions(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// Markdown formats results as a markdown report.
func Markdown(query string, results []Result) string {
	if len(results) == 0 {
		return fmt.Sprintf("No documentation found matching '%s'.\n", query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Documentation search: %s\n\n", query)
	fmt.Fprintf(&b, "Found %d relevant section(s).\n\n", len(results))
	for _, result := range results {
		fmt.Fprintf(&b, "_%s_\n\n%s\n\n---\n\n", result.File, demote(result.Content))
	}
	return b.String()
}

// demote pushes section headings below the report heading.
func demote(section string) string {
	lines := strings.Split(section, "\n")
	for i, line := range lines {
		if heading.MatchString(line) {
			lines[i] = "#" + line
		}
	}
	return strings.Join(lines, "\n")
}
