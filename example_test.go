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

package nbt_test

import (
	"errors"
	"fmt"

	"github.com/bastelbot/nbt"
)

func ExampleSerialize() {
	root := nbt.Tag{Name: "root", Payload: nbt.NewCompound(
		nbt.Tag{Name: "health", Payload: nbt.Short(20)},
		nbt.Tag{Name: "name", Payload: nbt.String("Steve")},
	)}
	data, err := nbt.Serialize(root)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("% x\n", data)
	// Output:
	// 0a 00 04 72 6f 6f 74 02 00 06 68 65 61 6c 74 68 00 14 08 00 04 6e 61 6d 65 00 05 53 74 65 76 65 00
}

func ExampleDeserialize() {
	compressed, err := nbt.Deflate(
		[]byte{0x0a, 0x00, 0x00, 0x01, 0x00, 0x02, 'h', 'p', 0x07, 0x00},
		nbt.CompressionGzip,
		0, // no size hint
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	data, err := nbt.Inflate(compressed, nbt.CompressionGzip, 0 /* sizeHint */)
	if err != nil {
		fmt.Println(err)
		return
	}
	root, err := nbt.Deserialize(data)
	if err != nil {
		fmt.Println(err)
		return
	}
	hp, _ := root.Payload.(*nbt.Compound).Get("hp")
	fmt.Println(hp.Kind(), hp)
	// Output:
	// Byte 7
}

func ExampleError() {
	_, err := nbt.Deserialize([]byte{0x0a, 0x00, 0x00, 0xff})
	var nbtErr *nbt.Error
	if errors.As(err, &nbtErr) {
		fmt.Println(nbtErr.Code(), nbtErr.Offset())
	}
	fmt.Println(err)
	// Output:
	// unknown_kind 3
	// unknown_kind: offset 3: unknown tag kind 0xff
}
