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

package cyclic_test

import (
	"fmt"

	"github.com/refwire/refwire/cyclic"
	"github.com/refwire/refwire/registry"
	"github.com/refwire/refwire/schema"
)

type person struct {
	name   string
	friend *person
}

func Example() {
	ns := registry.NewNamespace()
	ns.MustRegister(&schema.Entity{
		Identity: "Person",
		Version:  1,
		Fields: schema.FieldList{
			schema.TextField("name", func(p *person) *string { return &p.name }),
			schema.RefField("friend", "Person", func(p *person) **person { return &p.friend }),
		},
		New: func() interface{} { return &person{} },
	})
	ns.Seal()

	ada := &person{name: "Ada"}
	ada.friend = &person{name: "Grace", friend: ada}

	data, err := cyclic.Marshal(ns, ada)
	if err != nil {
		panic(err)
	}

	got, err := cyclic.Unmarshal(ns, data)
	if err != nil {
		panic(err)
	}
	p := got.(*person)
	fmt.Println(p.name, "->", p.friend.name)
	fmt.Println("cycle intact:", p.friend.friend == p)
	// Output:
	// Ada -> Grace
	// cycle intact: true
}
