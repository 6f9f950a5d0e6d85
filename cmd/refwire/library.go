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

	"github.com/refwire/refwire/registry"
	"github.com/refwire/refwire/schema"
)

// The sample domain is a small library catalog with deliberate sharing and
// cycles: books point at their author, authors point back at their works.

type library struct {
	name  string
	books []*book
}

type book struct {
	title  string
	pages  int32
	author *author
}

type author struct {
	name  string
	works []*book
}

// newCatalog registers the sample entities into the process-wide namespace
// and seals it. Each CLI invocation runs one command, so this happens once.
func newCatalog() *registry.Namespace {
	ns := registry.Global
	ns.MustRegister(&schema.Entity{
		Identity: "Library",
		Version:  1,
		Policy:   schema.Tolerant,
		Fields: schema.FieldList{
			schema.TextField("name", func(l *library) *string { return &l.name }),
			schema.SeqField("books", &schema.Reference{Entity: "Book"},
				func(l *library) *[]*book { return &l.books }),
		},
		New: func() interface{} { return &library{} },
	})
	ns.MustRegister(&schema.Entity{
		Identity: "Book",
		Version:  1,
		Fields: schema.FieldList{
			schema.TextField("title", func(b *book) *string { return &b.title }),
			schema.Int32Field("pages", func(b *book) *int32 { return &b.pages }),
			schema.RefField("author", "Author", func(b *book) **author { return &b.author }),
		},
		New: func() interface{} { return &book{} },
	})
	ns.MustRegister(&schema.Entity{
		Identity: "Author",
		Version:  1,
		Fields: schema.FieldList{
			schema.TextField("name", func(a *author) *string { return &a.name }),
			schema.SeqField("works", &schema.Reference{Entity: "Book"},
				func(a *author) *[]*book { return &a.works }),
		},
		New: func() interface{} { return &author{} },
	})
	ns.Seal()
	return ns
}

// bookLine formats one book for the decode summary. A book without an
// author is a valid graph, so the author column degrades gracefully.
func bookLine(b *book) string {
	name := "(no author)"
	if b.author != nil {
		name = b.author.name
	}
	return fmt.Sprintf("%-32s %4dp  %s", b.title, b.pages, name)
}

func sampleLibrary() *library {
	hopper := &author{name: "Grace Hopper"}
	lovelace := &author{name: "Ada Lovelace"}

	compilers := &book{title: "Compilers and Computers", pages: 312, author: hopper}
	engines := &book{title: "Notes on the Analytical Engine", pages: 118, author: lovelace}
	flows := &book{title: "Flow-Matic by Example", pages: 204, author: hopper}

	hopper.works = []*book{compilers, flows}
	lovelace.works = []*book{engines}

	return &library{
		name:  "Engine Room",
		books: []*book{compilers, engines, flows},
	}
}
