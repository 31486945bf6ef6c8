package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testTemplate = `<html>
<h1>{{COMPANY_NAME}}</h1>
<p>{{COMPANY_SUMMARY}}</p>
{#IF_WEBSITE}<a href="{{COMPANY_WEBSITE}}">Visit site</a>{/IF_WEBSITE}
{#IF_SCREENSHOT}<img src="{{SCREENSHOT_PATH}}">{/IF_SCREENSHOT}
<img src="{{LOGO_URL}}">
<code>{{S3_BUCKET_HINT}} {{S3_LOGO_HINT}}</code>
<span>{{COMPANY_TONE}}</span>
</html>`

func TestRenderAllFields(t *testing.T) {
	out := Render(testTemplate, RenderData{
		CompanyName:    "Acme & Co",
		Website:        "https://acme.com",
		Summary:        "Acme builds widgets.",
		Tone:           "Professional",
		LogoURL:        "https://img.example/acme-and-co/logo.png",
		BucketHint:     "s3://img/acme-and-co/",
		LogoHint:       "acme-and-co/logo.png",
		ScreenshotPath: "/assets/screenshots/acme-and-co.png",
	})

	assert.Contains(t, out, "<h1>Acme & Co</h1>")
	assert.Contains(t, out, `<a href="https://acme.com">Visit site</a>`)
	assert.Contains(t, out, `<img src="/assets/screenshots/acme-and-co.png">`)
	assert.Contains(t, out, "s3://img/acme-and-co/ acme-and-co/logo.png")
	assert.NotContains(t, out, "{#IF_")
	assert.NotContains(t, out, "{/IF_")
	assert.NotContains(t, out, "{{")
}

func TestRenderRemovesFalseBlocks(t *testing.T) {
	out := Render(testTemplate, RenderData{
		CompanyName: "Acme",
		Summary:     "ok",
		Tone:        "Professional",
	})

	assert.NotContains(t, out, "Visit site")
	assert.NotContains(t, out, "<img src=\"\">\n<img")
	assert.NotContains(t, out, "{#IF_")
	assert.Contains(t, out, "<h1>Acme</h1>")
}

func TestRenderKeepsBlockAcrossLines(t *testing.T) {
	tpl := "{#IF_WEBSITE}\nline one\nline two\n{/IF_WEBSITE}"
	out := Render(tpl, RenderData{Website: "https://acme.com"})
	assert.Equal(t, "\nline one\nline two\n", out)

	out = Render(tpl, RenderData{})
	assert.Equal(t, "", out)
}

func TestRenderDoesNotEscapeHTML(t *testing.T) {
	out := Render("<p>{{COMPANY_SUMMARY}}</p>", RenderData{Summary: `A "quoted" <b>summary</b>`})
	assert.Equal(t, `<p>A "quoted" <b>summary</b></p>`, out)
}

func TestAssetConvention(t *testing.T) {
	a := AssetConvention{BaseURL: "https://img.example", Bucket: "demoimages"}
	assert.Equal(t, "https://img.example/acme/logo.png", a.LogoURL("acme"))
	assert.Equal(t, "s3://demoimages/acme/", a.BucketHint("acme"))
	assert.Equal(t, "acme/logo.png", a.LogoHint("acme"))
}
