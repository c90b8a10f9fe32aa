package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"numguru/internal/infrastructure/blogstore"
	"numguru/internal/pkg/logger"
	"numguru/internal/sitemap"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		blogDir string
		out     string
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Generate sitemap.xml from the blog directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := logger.New("sitemap", true)
			if err != nil {
				return err
			}
			defer func() { _ = l.Sync() }()
			return run(cmd.Context(), l, blogDir, out, baseURL)
		},
	}

	cmd.Flags().StringVar(&blogDir, "blog-dir", "content/blogs", "directory holding blog post JSON files")
	cmd.Flags().StringVar(&out, "out", "public/sitemap.xml", "output path, - for stdout")
	cmd.Flags().StringVar(&baseURL, "base-url", "https://numguru.online", "public site URL")
	return cmd
}

func run(ctx context.Context, l *zap.Logger, blogDir, out, baseURL string) error {
	if _, err := os.Stat(blogDir); err != nil {
		l.Warn("blog directory not found", zap.String("dir", blogDir))
	}
	store, err := blogstore.NewFSStore(os.DirFS(blogDir), 1, time.Minute, l)
	if err != nil {
		return err
	}
	slugs, err := store.Slugs()
	if err != nil {
		return fmt.Errorf("list blog posts: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := sitemap.Write(&buf, sitemap.Build(baseURL, slugs, time.Now())); err != nil {
		return err
	}

	if out == "-" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	l.Info("sitemap written", zap.String("path", out), zap.Int("blog_posts", len(slugs)))
	return nil
}
