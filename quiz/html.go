package quiz

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var checkAnswerCall = regexp.MustCompile(`checkAnswer\(\s*this\s*,\s*(true|false)\s*\)`)

// ImportHTML extracts the quiz from the page markup. Each question is a
// .quiz-question block ordered by its data-question attribute; its first
// heading is the prompt and its .quiz-btn buttons are the options. The
// button whose onclick calls checkAnswer(this, true) is the correct one.
func ImportHTML(r io.Reader) (*Bank, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("quiz: parse html: %w", err)
	}

	type numbered struct {
		n int
		q Question
	}

	var found []numbered
	var parseErr error

	doc.Find(".quiz-question").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		n := i + 1
		if raw, ok := sel.Attr("data-question"); ok {
			v, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				parseErr = fmt.Errorf("quiz: data-question %q: %w", raw, err)
				return false
			}
			n = v
		}

		found = append(found, numbered{n: n, q: questionFrom(sel)})
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].n < found[j].n })

	b := &Bank{Questions: make([]Question, 0, len(found))}
	for _, f := range found {
		b.Questions = append(b.Questions, f.q)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func questionFrom(sel *goquery.Selection) Question {
	q := Question{
		Prompt: collapse(sel.Find("h1, h2, h3, h4, h5, h6").First().Text()),
	}
	if q.Prompt == "" {
		q.Prompt = collapse(sel.Find("p").First().Text())
	}

	sel.Find(".quiz-btn").Each(func(_ int, btn *goquery.Selection) {
		opt := Option{Text: collapse(btn.Text())}
		if m := checkAnswerCall.FindStringSubmatch(btn.AttrOr("onclick", "")); m != nil {
			opt.Correct = m[1] == "true"
		}
		q.Options = append(q.Options, opt)
	})

	return q
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
