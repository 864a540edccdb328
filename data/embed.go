// Package data provides the embedded catalog seed files.
package data

import "embed"

// Seed contains the seeded catalog: products, product images, seeded
// reviews, and static content (categories, FAQs, blog posts, testimonials).
//
//go:embed seed/*.json
var Seed embed.FS
