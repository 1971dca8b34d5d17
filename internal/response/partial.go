package response

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// Partial is a rendered step view.
type Partial struct {
	HTML     string
	Prompt   string
	Draft    string
	Answer   string
	Status   string
	Editable bool
}

const (
	draftSelector  = "textarea.submission__answer__value, textarea[name=submission]"
	promptSelector = ".submission__answer__prompt"
	statusSelector = ".submission__status"
	answerSelector = ".submission__answer__display"
)

// ErrEmptyPartial is returned for a blank partial.
var ErrEmptyPartial = errors.New("empty partial")

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// ParsePartial extracts the prompt, the saved draft (or the submitted answer)
// and the status line from a rendered step. A partial without a text field
// is a read-only view.
func ParsePartial(raw string) (Partial, error) {
	if strings.TrimSpace(raw) == "" {
		return Partial{}, ErrEmptyPartial
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return Partial{}, fmt.Errorf("parse partial: %w", err)
	}

	p := Partial{HTML: raw}
	if field := doc.Find(draftSelector).First(); field.Length() > 0 {
		p.Editable = true
		p.Draft = field.Text()
	}
	p.Status = plainText(doc.Find(statusSelector).First())
	p.Answer = plainText(doc.Find(answerSelector).First())

	if prompt := doc.Find(promptSelector).First(); prompt.Length() > 0 {
		p.Prompt = plainText(prompt)
	} else {
		body := doc.Find("body")
		body.Find("textarea").Remove()
		body.Find(statusSelector).Remove()
		body.Find(answerSelector).Remove()
		p.Prompt = plainText(body)
	}
	return p, nil
}

// plainText renders a selection as sanitized single-spaced lines.
func plainText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	inner, err := sel.Html()
	if err != nil {
		return ""
	}
	inner = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "</p>", "</p>\n").Replace(inner)
	text := html.UnescapeString(textSanitizer().Sanitize(inner))

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
