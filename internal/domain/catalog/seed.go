package catalog

import (
	"encoding/json"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/sritelangana/storefront/data"
	"github.com/sritelangana/storefront/internal/domain/review"
)

// Seed file names inside the embedded data FS (and inside an external seed
// directory fed to catalog-ingest).
const (
	SeedProductsFile = "products.json"
	SeedImagesFile   = "product_images.json"
	SeedReviewsFile  = "reviews.json"
	SeedContentFile  = "content.json"
)

// LoadEmbedded builds the catalog Store from the seed files compiled into
// the binary.
func LoadEmbedded() (*Store, error) {
	var seed Seed

	if err := readSeedFile(SeedProductsFile, func(r io.Reader) (err error) {
		seed.Products, err = DecodeProducts(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := readSeedFile(SeedImagesFile, func(r io.Reader) (err error) {
		seed.Images, err = DecodeImages(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := readSeedFile(SeedReviewsFile, func(r io.Reader) (err error) {
		seed.Reviews, err = DecodeReviews(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := readSeedFile(SeedContentFile, func(r io.Reader) (err error) {
		content, err := DecodeContent(r)
		if err != nil {
			return err
		}
		seed.Categories = content.Categories
		seed.FAQs = content.FAQs
		seed.BlogPosts = content.BlogPosts
		seed.Testimonials = content.Testimonials
		return nil
	}); err != nil {
		return nil, err
	}

	return NewStore(seed), nil
}

func readSeedFile(name string, decode func(io.Reader) error) error {
	f, err := data.Seed.Open("seed/" + name)
	if err != nil {
		return errors.Wrapf(err, "open embedded seed %s", name)
	}
	defer func() { _ = f.Close() }()

	if err := decode(f); err != nil {
		return errors.Wrapf(err, "decode seed %s", name)
	}
	return nil
}

// DecodeProducts incrementally decodes a JSON array of products. Seed files
// can be large, so elements are streamed instead of buffering the whole
// array into one Unmarshal call.
func DecodeProducts(r io.Reader) ([]Product, error) {
	var out []Product
	if err := decodeArray(r, func(raw []byte) error {
		var p Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeImages incrementally decodes a JSON array of product images.
func DecodeImages(r io.Reader) ([]ProductImage, error) {
	var out []ProductImage
	if err := decodeArray(r, func(raw []byte) error {
		var img ProductImage
		if err := json.Unmarshal(raw, &img); err != nil {
			return err
		}
		out = append(out, img)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeReviews incrementally decodes a JSON array of seeded reviews.
func DecodeReviews(r io.Reader) ([]review.Review, error) {
	var out []review.Review
	if err := decodeArray(r, func(raw []byte) error {
		var rv review.Review
		if err := json.Unmarshal(raw, &rv); err != nil {
			return err
		}
		out = append(out, rv)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// Content is the static marketing content bundled with the catalog.
type Content struct {
	Categories   []Category    `json:"categories"`
	FAQs         []FAQ         `json:"faqs"`
	BlogPosts    []BlogPost    `json:"blog_posts"`
	Testimonials []Testimonial `json:"testimonials"`
}

// DecodeContent decodes the content seed object.
func DecodeContent(r io.Reader) (*Content, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read content")
	}
	var c Content
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, errors.Wrap(err, "unmarshal content")
	}
	return &c, nil
}

// decodeArray streams the elements of a top-level JSON array, handing each
// element's raw bytes to fn.
func decodeArray(r io.Reader, fn func(raw []byte) error) error {
	d := jx.Decode(r, 4096)
	return d.Arr(func(d *jx.Decoder) error {
		raw, err := d.Raw()
		if err != nil {
			return errors.Wrap(err, "read array element")
		}
		return fn(raw)
	})
}
