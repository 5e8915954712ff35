package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aligator/fatinspect/internal/imagesource"
	"github.com/aligator/fatinspect/internal/testimage"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
)

// main writes the image the tests are built on to a file, so that it can be
// inspected by hand:
//  go run ./cmd/generate --format gzip testdata/standard.img.gz
func main() {
	format := flag.StringP("format", "f", string(imagesource.Raw), "output format: raw, gzip, zstd or xz")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Please provide the output filename.")
		os.Exit(1)
	}

	if err := generate(afero.NewOsFs(), flag.Arg(0), imagesource.Format(*format)); err != nil {
		panic(err)
	}
}

func generate(fs afero.Fs, dest string, format imagesource.Format) error {
	var buf bytes.Buffer
	if err := imagesource.Compress(&buf, testimage.NewStandard().Bytes(), format); err != nil {
		return err
	}

	if err := fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	return afero.WriteFile(fs, dest, buf.Bytes(), 0644)
}
