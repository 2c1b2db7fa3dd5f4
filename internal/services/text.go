package services

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/moderation"
)

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)

// blankLinesRE collapses runs of three or more newlines to two.
var blankLinesRE = regexp.MustCompile(`\n{3,}`)

var tagFolder = cases.Fold()

// normalizeTitle applies NFC, trims, and collapses inner whitespace.
func normalizeTitle(s string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(norm.NFC.String(s)), " ")
}

// normalizeBody applies NFC, unifies line endings, and trims. Paragraph
// breaks are kept.
func normalizeBody(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = blankLinesRE.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// normalizeTags case-folds, trims, and dedupes tags, preserving first-seen
// order. Nil stays nil so "no tags" is kept distinct from an empty list.
func normalizeTags(in domain.Tags) domain.Tags {
	if in == nil {
		return nil
	}
	out := make(domain.Tags, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = tagFolder.String(normalizeTitle(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// censorPair runs both texts through checker concurrently. The first failure
// wins and cancels the other request.
func censorPair(ctx context.Context, checker moderation.Checker, a, b string) (string, string, error) {
	if checker == nil {
		return a, b, nil
	}
	var outA, outB string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		outA, err = checker.Check(gctx, a)
		return err
	})
	g.Go(func() error {
		var err error
		outB, err = checker.Check(gctx, b)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return outA, outB, nil
}
