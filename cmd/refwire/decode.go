// Copyright (C) 2026 The Refwire Authors.
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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"github.com/refwire/refwire/cyclic"
)

var decodeGzip bool

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decode a stream file and summarize the graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		var r io.Reader = f
		if decodeGzip {
			zr, err := gzip.NewReader(f)
			if err != nil {
				return fmt.Errorf("open gzip: %w", err)
			}
			defer zr.Close()
			r = zr
		}

		got, err := cyclic.NewDecoder(newCatalog(), r).Decode()
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		lib, ok := got.(*library)
		if !ok {
			return fmt.Errorf("stream root is %T, want *library", got)
		}

		authors := map[*author]bool{}
		for _, b := range lib.books {
			if b.author != nil {
				authors[b.author] = true
			}
		}
		log.Infow("decoded library graph",
			"library", lib.name,
			"books", len(lib.books),
			"distinct_authors", len(authors),
		)
		for _, b := range lib.books {
			fmt.Println(bookLine(b))
		}
		return nil
	},
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeGzip, "gzip", false, "stream is gzipped")
}
