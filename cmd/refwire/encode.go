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
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"github.com/refwire/refwire/cyclic"
)

var (
	encodeOut  string
	encodeGzip bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode the sample library graph to a stream file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ns := newCatalog()
		lib := sampleLibrary()

		f, err := os.Create(encodeOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", encodeOut, err)
		}
		defer f.Close()

		if encodeGzip {
			zw := gzip.NewWriter(f)
			if err := cyclic.NewEncoder(ns, zw).Encode(lib); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if err := zw.Close(); err != nil {
				return fmt.Errorf("flush gzip: %w", err)
			}
		} else if err := cyclic.NewEncoder(ns, f).Encode(lib); err != nil {
			return fmt.Errorf("encode: %w", err)
		}

		info, err := f.Stat()
		if err != nil {
			return err
		}
		log.Infow("encoded library graph",
			"file", encodeOut,
			"bytes", info.Size(),
			"books", len(lib.books),
			"gzip", encodeGzip,
		)
		return nil
	},
}

func init() {
	encodeCmd.Flags().StringVarP(&encodeOut, "out", "o", "library.rwir", "output file")
	encodeCmd.Flags().BoolVar(&encodeGzip, "gzip", false, "gzip the stream")
}
