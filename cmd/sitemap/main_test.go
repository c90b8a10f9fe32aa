package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_WritesSitemap(t *testing.T) {
	dir := t.TempDir()
	blogDir := filepath.Join(dir, "blogs")
	require.NoError(t, os.MkdirAll(blogDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(blogDir, "master-numbers.json"), []byte(`{"id":"1","slug":"master-numbers"}`), 0o644))
	out := filepath.Join(dir, "public", "sitemap.xml")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--blog-dir", blogDir, "--out", out, "--base-url", "https://example.com"})
	require.NoError(t, cmd.Execute())

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<loc>https://example.com/blog/master-numbers</loc>")
	assert.Contains(t, string(b), "<loc>https://example.com/refund-policy</loc>")
}

func TestRootCmd_MissingBlogDir(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "sitemap.xml")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--blog-dir", filepath.Join(dir, "nope"), "--out", out})
	require.NoError(t, cmd.Execute())

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<loc>https://numguru.online/blog</loc>")
}
