package site

import "fmt"

// AssetConvention derives the external asset URLs for a company slug.
// The bucket layout is a convention shared with the people who upload
// logos; nothing here enforces that the objects actually exist.
type AssetConvention struct {
	BaseURL string
	Bucket  string
}

// LogoURL is the public URL where the company logo is expected to live.
func (a AssetConvention) LogoURL(slug string) string {
	return fmt.Sprintf("%s/%s/logo.png", a.BaseURL, slug)
}

// BucketHint is the upload destination shown on the rendered page.
func (a AssetConvention) BucketHint(slug string) string {
	return fmt.Sprintf("s3://%s/%s/", a.Bucket, slug)
}

// LogoHint is the object key shown on the rendered page.
func (a AssetConvention) LogoHint(slug string) string {
	return fmt.Sprintf("%s/logo.png", slug)
}
