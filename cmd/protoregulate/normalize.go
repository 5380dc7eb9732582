package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/protobuf/protoc-gen-go/descriptor"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/actor-rtc/proto-regulate/internal/protoparser"
	"github.com/actor-rtc/proto-regulate/pkg/fingerprint"
	"github.com/actor-rtc/proto-regulate/pkg/merger"
	"github.com/actor-rtc/proto-regulate/pkg/textgen"
)

func newNormalizeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "normalize <path>",
		Short: "Normalize a proto file, or merge and normalize a directory of proto files by package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			info, err := os.Stat(path)
			if err != nil {
				return errors.Wrapf(err, "stat %s", path)
			}
			if info.IsDir() {
				if output == "" {
					return errors.New("--output is required when normalizing a directory")
				}
				return normalizeDirectory(path, output)
			}
			return normalizeFile(path, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (file mode) or directory (directory mode)")
	return cmd
}

func normalizeFile(path, output string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	file, err := protoparser.New().Parse(string(source))
	if err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}

	text, err := textgen.Generate(file, textgen.DefaultOptions())
	if err != nil {
		return errors.Wrap(err, "generating canonical text")
	}

	logger.Debug("normalized file", "path", path, "fingerprint", fingerprint.Of(text))

	if output == "" {
		_, err := os.Stdout.WriteString(text)
		return err
	}
	return os.WriteFile(output, []byte(text), 0o644)
}

func normalizeDirectory(dir, outputDir string) error {
	paths, err := collectProtoFiles(dir)
	if err != nil {
		return err
	}

	descriptors := make([]*descriptor.FileDescriptorProto, len(paths))
	g := new(errgroup.Group)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			source, err := os.ReadFile(p)
			if err != nil {
				return errors.Wrapf(err, "reading %s", p)
			}
			d, err := protoparser.New().Parse(string(source))
			if err != nil {
				return errors.Wrapf(err, "parsing %s", p)
			}
			descriptors[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	results, err := merger.MergeByPackage(descriptors)
	if err != nil {
		return errors.Wrap(err, "merging descriptors")
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", outputDir)
	}

	for _, r := range results {
		text, err := textgen.Generate(r.Descriptor, textgen.DefaultOptions())
		if err != nil {
			return errors.Wrapf(err, "generating canonical text for package %q", r.PackageName)
		}
		for _, w := range r.Warnings {
			logger.Warn(w, "package", r.PackageName)
		}
		logger.Debug("merged package", "package", r.PackageName, "fingerprint", fingerprint.Of(text))

		outPath := filepath.Join(outputDir, outputFileName(r.PackageName))
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", outPath)
		}
	}
	return nil
}

// outputFileName mirrors normalize_directory's naming convention: the
// package name with dots replaced by underscores, or "default" for the
// unpackaged group.
func outputFileName(packageName string) string {
	if packageName == "" {
		return "default.proto"
	}
	return strings.ReplaceAll(packageName, ".", "_") + ".proto"
}

func collectProtoFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading directory %s", dir)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".proto" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
