// Package site turns the company template into a rendered micro-site.
//
// The template language is intentionally tiny: two named conditional blocks
// and a fixed set of literal tokens. Values are substituted verbatim with no
// HTML escaping; issue authors are trusted, and that boundary is part of the
// tool's contract rather than an oversight.
package site

import (
	"regexp"
	"strings"
)

// RenderData carries every value the template can reference.
type RenderData struct {
	CompanyName    string
	Website        string
	Summary        string
	Tone           string
	LogoURL        string
	BucketHint     string
	LogoHint       string
	ScreenshotPath string
}

var conditionalRes = map[string]*regexp.Regexp{
	"WEBSITE":    compileConditional("WEBSITE"),
	"SCREENSHOT": compileConditional("SCREENSHOT"),
}

func compileConditional(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)\{#IF_` + name + `\}(.*?)\{/IF_` + name + `\}`)
}

// Render instantiates the template: conditional blocks are kept or removed
// first, then placeholder tokens are replaced (empty string when absent).
func Render(templateHTML string, data RenderData) string {
	html := templateHTML
	html = stripBlock(html, "WEBSITE", data.Website != "")
	html = stripBlock(html, "SCREENSHOT", data.ScreenshotPath != "")

	return strings.NewReplacer(
		"{{COMPANY_NAME}}", data.CompanyName,
		"{{COMPANY_WEBSITE}}", data.Website,
		"{{COMPANY_SUMMARY}}", data.Summary,
		"{{COMPANY_TONE}}", data.Tone,
		"{{LOGO_URL}}", data.LogoURL,
		"{{S3_BUCKET_HINT}}", data.BucketHint,
		"{{S3_LOGO_HINT}}", data.LogoHint,
		"{{SCREENSHOT_PATH}}", data.ScreenshotPath,
	).Replace(html)
}

// stripBlock keeps a conditional block's inner content when its flag is
// true, otherwise removes the block entirely.
func stripBlock(html, name string, keep bool) string {
	re := conditionalRes[name]
	if keep {
		return re.ReplaceAllString(html, "$1")
	}
	return re.ReplaceAllString(html, "")
}
