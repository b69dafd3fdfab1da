/*
 * Copyright (c) YugabyteDB, Inc.
 */

package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func testTree() *cobra.Command {
	root := &cobra.Command{Use: "yb-day2ops"}
	dr := &cobra.Command{Use: "dr", Run: func(*cobra.Command, []string) {}}
	dr.AddCommand(&cobra.Command{Use: "pause", Run: func(*cobra.Command, []string) {}})
	root.AddCommand(dr)
	return root
}

func TestGenerateDocs(t *testing.T) {
	dir := t.TempDir()
	assert.NilError(t, GenerateDocs(testTree(), "markdown", dir))

	for _, name := range []string{"yb-day2ops.md", "yb-day2ops_dr.md", "yb-day2ops_dr_pause.md"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.Check(t, err, "missing %s", name)
	}
}

func TestGenerateDocsUnknownFormat(t *testing.T) {
	err := GenerateDocs(testTree(), "pdf", t.TempDir())
	assert.Check(t, is.ErrorContains(err, "unknown documentation format pdf"))
}
