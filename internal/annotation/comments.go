package annotation

import (
	"regexp"
	"strings"
)

// Теги, открывающие OpenAPI-фрагмент внутри комментария
const (
	TagOpenAPI = "openapi"
	TagSwagger = "swagger"
)

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*\*(.*?)\*/`)
	blockLineRe    = regexp.MustCompile(`^\s*\*\s?`)
	lineCommentRe  = regexp.MustCompile(`^\s*//\s?`)
	tagRe          = regexp.MustCompile(`^@([A-Za-z][\w-]*)\s*(.*)$`)
)

// rawAnnotation — текст одного @openapi/@swagger фрагмента до YAML-разбора.
type rawAnnotation struct {
	Line int
	Text string
}

type comment struct {
	line  int // строка, с которой начинается первая строка lines
	lines []string
}

// extractAnnotations находит все @openapi/@swagger фрагменты в /** */ блоках и в сериях // строк.
func extractAnnotations(src string) []rawAnnotation {
	var out []rawAnnotation
	for _, c := range findComments(src) {
		out = append(out, annotationsInComment(c)...)
	}
	return out
}

func findComments(src string) []comment {
	var comments []comment

	for _, loc := range blockCommentRe.FindAllStringSubmatchIndex(src, -1) {
		body := src[loc[2]:loc[3]]
		lines := strings.Split(body, "\n")
		for i, l := range lines {
			lines[i] = blockLineRe.ReplaceAllString(strings.TrimRight(l, "\r"), "")
		}
		comments = append(comments, comment{
			line:  strings.Count(src[:loc[2]], "\n") + 1,
			lines: lines,
		})
	}

	var current *comment
	for i, l := range strings.Split(src, "\n") {
		l = strings.TrimRight(l, "\r")
		if strings.HasPrefix(strings.TrimSpace(l), "//") {
			if current == nil {
				current = &comment{line: i + 1}
			}
			current.lines = append(current.lines, lineCommentRe.ReplaceAllString(l, ""))
			continue
		}
		if current != nil {
			comments = append(comments, *current)
			current = nil
		}
	}
	if current != nil {
		comments = append(comments, *current)
	}
	return comments
}

func annotationsInComment(c comment) []rawAnnotation {
	var (
		out     []rawAnnotation
		body    []string
		startAt int
		open    bool
	)
	flush := func() {
		if open {
			if text := dedent(body); strings.TrimSpace(text) != "" {
				out = append(out, rawAnnotation{Line: startAt, Text: text})
			}
		}
		body = nil
		open = false
	}

	for i, l := range c.lines {
		m := tagRe.FindStringSubmatch(strings.TrimSpace(l))
		if m == nil {
			if open {
				body = append(body, l)
			}
			continue
		}
		flush()
		if m[1] != TagOpenAPI && m[1] != TagSwagger {
			continue
		}
		open = true
		startAt = c.line + i
		if rest := strings.TrimSpace(m[2]); rest != "" {
			body = append(body, rest)
		}
	}
	flush()
	return out
}

// dedent убирает общий отступ непустых строк.
func dedent(lines []string) string {
	indent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return strings.Join(lines, "\n")
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		if len(l) >= indent {
			out[i] = l[indent:]
		} else {
			out[i] = strings.TrimLeft(l, " \t")
		}
	}
	return strings.Join(out, "\n")
}
