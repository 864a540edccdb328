// Command catalog-ingest validates external catalog seed files and installs
// them as the normalized plain-JSON seed set. Input files may be plain JSON
// or gzip-compressed (products.json.gz and so on); the output is always the
// four plain seed files the embedded loader expects.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/sritelangana/storefront/internal/domain/catalog"
	"github.com/sritelangana/storefront/internal/domain/review"
)

func main() {
	var (
		seedDir string
		outDir  string
	)

	flag.StringVar(&seedDir, "seed-dir", "seed", "directory containing seed JSON files (plain or .gz)")
	flag.StringVar(&outDir, "out-dir", "data/seed", "directory to install normalized seed files into")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, seedDir, outDir); err != nil {
		slog.Error("catalog ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog ingest completed successfully")
}

func run(ctx context.Context, seedDir, outDir string) error {
	var (
		products []catalog.Product
		images   []catalog.ProductImage
		reviews  []review.Review
		content  catalog.Content
	)

	// Decode all four files concurrently; each is independent until
	// cross-file validation.
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = decodeSeed(seedDir, catalog.SeedProductsFile, catalog.DecodeProducts)
		return err
	})
	g.Go(func() (err error) {
		images, err = decodeSeed(seedDir, catalog.SeedImagesFile, catalog.DecodeImages)
		return err
	})
	g.Go(func() (err error) {
		reviews, err = decodeSeed(seedDir, catalog.SeedReviewsFile, catalog.DecodeReviews)
		return err
	})
	g.Go(func() error {
		c, err := decodeSeed(seedDir, catalog.SeedContentFile, catalog.DecodeContent)
		if err != nil {
			return err
		}
		if c != nil {
			content = *c
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := validate(products, images, reviews); err != nil {
		return errors.Wrap(err, "validate seed data")
	}

	slog.Info("seed data validated",
		slog.Int("products", len(products)),
		slog.Int("images", len(images)),
		slog.Int("reviews", len(reviews)),
	)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	for name, v := range map[string]any{
		catalog.SeedProductsFile: products,
		catalog.SeedImagesFile:   images,
		catalog.SeedReviewsFile:  reviews,
		catalog.SeedContentFile:  content,
	} {
		if err := writeJSON(filepath.Join(outDir, name), v); err != nil {
			return errors.Wrapf(err, "install %s", name)
		}
		slog.Info("installed seed file", slog.String("file", name))
	}
	return nil
}

// decodeSeed opens name (or name.gz) under dir and decodes it with decode.
// A missing file yields the zero value: only products are mandatory, and
// that is enforced by validation.
func decodeSeed[T any](dir, name string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T

	r, err := openSeed(dir, name)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("seed file missing, skipping", slog.String("file", name))
			return zero, nil
		}
		return zero, err
	}
	defer func() { _ = r.Close() }()

	v, err := decode(r)
	if err != nil {
		return zero, errors.Wrapf(err, "decode %s", name)
	}
	return v, nil
}

// openSeed prefers the plain file and falls back to the gzip variant.
func openSeed(dir, name string) (io.ReadCloser, error) {
	if f, err := os.Open(filepath.Join(dir, name)); err == nil {
		return f, nil
	}

	f, err := os.Open(filepath.Join(dir, name+".gz"))
	if err != nil {
		return nil, err
	}
	gz, err := pgzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "gzip reader for %s", name)
	}
	return &gzReadCloser{gz: gz, f: f}, nil
}

type gzReadCloser struct {
	gz *pgzip.Reader
	f  *os.File
}

func (r *gzReadCloser) Read(p []byte) (int, error) { return r.gz.Read(p) }

func (r *gzReadCloser) Close() error {
	gzErr := r.gz.Close()
	if err := r.f.Close(); err != nil {
		return err
	}
	return gzErr
}

// validate enforces the invariants the catalog store assumes: at least one
// product, unique product IDs and slugs, non-negative prices, and image and
// review references that resolve to a known product.
func validate(products []catalog.Product, images []catalog.ProductImage, reviews []review.Review) error {
	if len(products) == 0 {
		return errors.New("no products found")
	}

	ids := make(map[string]struct{}, len(products))
	slugs := make(map[string]struct{}, len(products))
	for _, p := range products {
		if p.ID == "" || p.Slug == "" || p.Name == "" {
			return errors.Errorf("product %q: id, slug and name are required", p.ID)
		}
		if _, dup := ids[p.ID]; dup {
			return errors.Errorf("duplicate product id %q", p.ID)
		}
		if _, dup := slugs[p.Slug]; dup {
			return errors.Errorf("duplicate product slug %q", p.Slug)
		}
		if p.Price.IsNegative() {
			return errors.Errorf("product %q: negative price %s", p.ID, p.Price)
		}
		ids[p.ID] = struct{}{}
		slugs[p.Slug] = struct{}{}
	}

	imageIDs := make(map[string]struct{}, len(images))
	for _, img := range images {
		if _, dup := imageIDs[img.ID]; dup {
			return errors.Errorf("duplicate image id %q", img.ID)
		}
		imageIDs[img.ID] = struct{}{}
		if _, ok := ids[img.ProductID]; !ok {
			return errors.Errorf("image %q references unknown product %q", img.ID, img.ProductID)
		}
	}

	for _, r := range reviews {
		if _, ok := ids[r.ProductID]; !ok {
			return errors.Errorf("review %q references unknown product %q", r.ID, r.ProductID)
		}
		if r.Rating < 1 || r.Rating > 5 {
			return errors.Errorf("review %q: rating %d out of range", r.ID, r.Rating)
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
