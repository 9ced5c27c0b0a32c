package javadoc

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var ErrMalformedBlockComment = errors.New("malformed block comment")

var (
	blockComment = regexp.MustCompile(`(?s)^/\*+(.*?)\*/$`)
	lineStars    = regexp.MustCompile(`(?m)^\s*\*[\t ]*`)
	blankRun     = regexp.MustCompile(`(?:\r\n|\n){3,}`)

	paramTag     = regexp.MustCompile(`@param\s+([a-zA-Z0-9_]+)\s+`)
	returnTag    = regexp.MustCompile(`@return\s+`)
	exceptionTag = regexp.MustCompile(`@exception\s+([a-zA-Z0-9]+)\s+`)
)

// StripMarkers removes comment delimiters. Block comments also lose the
// leading "*" of every line.
func StripMarkers(text string, _ *Documentation) (string, error) {
	s := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(s, "/*"):
		m := blockComment.FindStringSubmatch(s)
		if m == nil {
			return "", ErrMalformedBlockComment
		}
		return lineStars.ReplaceAllString(m[1], ""), nil
	case strings.HasPrefix(s, "//"):
		return strings.Replace(s, "//", "", 1), nil
	}
	return s, nil
}

// Untag leaves inline markup alone.
func Untag(text string, _ *Documentation) (string, error) {
	return text, nil
}

// Unescape decodes HTML character references until nothing changes, so
// "&amp;lt;" ends up as "<".
func Unescape(text string, _ *Documentation) (string, error) {
	for {
		next := html.UnescapeString(text)
		if next == text {
			return text, nil
		}
		text = next
	}
}

func AbsorbParams(text string, doc *Documentation) (string, error) {
	for {
		hint, rest, ok := absorb(paramTag, text)
		if !ok {
			return text, nil
		}
		doc.Params = append(doc.Params, hint)
		text = rest
	}
}

// AbsorbReturn extracts the first @return only.
func AbsorbReturn(text string, doc *Documentation) (string, error) {
	hint, rest, ok := absorb(returnTag, text)
	if !ok {
		return text, nil
	}
	doc.Return = &hint
	return rest, nil
}

func AbsorbExceptions(text string, doc *Documentation) (string, error) {
	for {
		hint, rest, ok := absorb(exceptionTag, text)
		if !ok {
			return text, nil
		}
		doc.Exceptions = append(doc.Exceptions, hint)
		text = rest
	}
}

// CollapseBlankRuns deletes every run of three or more line breaks.
func CollapseBlankRuns(text string, _ *Documentation) (string, error) {
	for {
		next := blankRun.ReplaceAllString(text, "")
		if next == text {
			return text, nil
		}
		text = next
	}
}

// absorb finds the first tag matched by re and cuts it from text. The
// tag's text runs up to the next line starting with "@", or to the end of
// text minus one trailing newline.
func absorb(re *regexp.Regexp, text string) (Hint, string, bool) {
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return Hint{}, text, false
	}

	var hint Hint
	if len(loc) >= 4 && loc[2] >= 0 {
		hint.Name = text[loc[2]:loc[3]]
	}

	start, bodyStart := loc[0], loc[1]
	end := len(text)
	if i := strings.Index(text[bodyStart:], "\n@"); i >= 0 {
		end = bodyStart + i
	} else if strings.HasSuffix(text, "\n") && end-1 >= bodyStart {
		end--
	}

	hint.Text = text[bodyStart:end]
	return hint, text[:start] + text[end:], true
}
