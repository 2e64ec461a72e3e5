// Copyright 2024 The nbt Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// nbtdump prints the contents of an NBT file.
//
// The file may be raw, gzip-compressed, or zlib-compressed; by default the
// envelope is detected from the first bytes. Output is either an indented
// tree that shows every tag's kind, or JSON.
//
//	nbtdump level.dat
//	nbtdump --format=json --compression=zlib chunk.bin
//	nbtdump --digest - < player.dat
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bastelbot/nbt"
	"github.com/bastelbot/nbt/nbtjson"
	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	compression string
	format      string
	sizeHint    int
	maxDepth    int
	strict      bool
	digest      bool
	verbose     bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("nbtdump", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.compression, "compression", "auto", "envelope: auto, none, gzip, or zlib")
	flagSet.StringVar(&opts.format, "format", "tree", "output format: tree or json")
	flagSet.IntVar(&opts.sizeHint, "size-hint", 0, "maximum decompressed size in bytes (0 for no limit)")
	flagSet.IntVar(&opts.maxDepth, "max-depth", nbt.DefaultMaxDepth, "maximum nesting depth (0 for no limit)")
	flagSet.BoolVar(&opts.strict, "strict", false, "fail if bytes follow the root tag")
	flagSet.BoolVar(&opts.digest, "digest", false, "print the BLAKE3 digest of the uncompressed NBT before the tree")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "usage: nbtdump [flags] FILE\n\nFILE may be - for standard input.\n\nFlags:\n")
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.format != "tree" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}
	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return fmt.Errorf("expected exactly one file, got %d", flagSet.NArg())
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	path := flagSet.Arg(0)
	raw, err := readInput(path, stdin)
	if err != nil {
		return err
	}
	logger.Debug("read input", "path", path, "bytes", len(raw))

	data, err := unwrap(raw, opts, logger)
	if err != nil {
		return err
	}

	codecOptions := []nbt.Option{nbt.MaxDepth(opts.maxDepth)}
	if opts.strict {
		codecOptions = append(codecOptions, nbt.RejectTrailingData())
	}
	root, err := nbt.NewCodec(codecOptions...).Deserialize(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	logger.Debug("decoded root tag", "name", root.Name, "kind", root.Kind())

	// Render fully before writing anything, so failures leave stdout empty.
	var out bytes.Buffer
	// The digest covers the inflated bytes, so the same tree compressed
	// two ways prints the same digest.
	if opts.digest {
		fmt.Fprintf(&out, "blake3:%x\n", blake3.Sum256(data))
	}
	switch opts.format {
	case "tree":
		if err := writeTree(&out, root, opts.maxDepth); err != nil {
			return err
		}
	case "json":
		rendered, err := nbtjson.NewIndent("  ", nbtjson.MaxDepth(opts.maxDepth)).Marshal(root)
		if err != nil {
			return err
		}
		out.Write(rendered)
		out.WriteByte('\n')
	}
	_, err = out.WriteTo(stdout)
	return err
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// unwrap removes the compression envelope chosen by opts.compression.
func unwrap(raw []byte, opts options, logger *slog.Logger) ([]byte, error) {
	var algorithm nbt.Compression
	switch opts.compression {
	case "none":
		return raw, nil
	case "auto":
		detected, ok := nbt.DetectCompression(raw)
		if !ok {
			logger.Debug("no compression envelope detected")
			return raw, nil
		}
		algorithm = detected
	default:
		parsed, err := nbt.ParseCompression(opts.compression)
		if err != nil {
			return nil, err
		}
		algorithm = parsed
	}
	data, err := nbt.Inflate(raw, algorithm, opts.sizeHint)
	if err != nil {
		return nil, fmt.Errorf("inflate %s: %w", algorithm, err)
	}
	logger.Debug("inflated", "compression", algorithm.String(), "compressed", len(raw), "bytes", len(data))
	return data, nil
}
