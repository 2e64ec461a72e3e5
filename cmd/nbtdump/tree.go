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

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bastelbot/nbt"
)

// arrayPreview is how many array elements the tree view prints before
// eliding the rest.
const arrayPreview = 8

// writeTree prints one line per tag, indented by depth:
//
//	Compound("root"): 2 entries
//	  Short("health"): 20
//	  String("name"): "Steve"
//
// Lists and Compounds nested deeper than maxDepth fail with
// nbt.CodeDepthExceeded, counting as nbt.MaxDepth does. A zero or negative
// maxDepth means no limit.
func writeTree(w io.Writer, root nbt.Tag, maxDepth int) error {
	tree := &treeWriter{w: bufio.NewWriter(w), maxDepth: maxDepth}
	if err := tree.writeNode(1, "("+strconv.Quote(root.Name)+")", root.Payload); err != nil {
		return err
	}
	return tree.w.Flush()
}

type treeWriter struct {
	w        *bufio.Writer
	maxDepth int
}

func (t *treeWriter) writeNode(depth int, label string, payload nbt.Payload) error {
	indent := strings.Repeat("  ", depth-1)
	if payload == nil {
		fmt.Fprintf(t.w, "%s<nil>%s\n", indent, label)
		return nil
	}
	switch payload.(type) {
	case *nbt.List, *nbt.Compound:
		if t.maxDepth > 0 && depth > t.maxDepth {
			return nbt.NewError(nbt.CodeDepthExceeded, fmt.Errorf("tree nests deeper than %d", t.maxDepth))
		}
	}
	fmt.Fprintf(t.w, "%s%s%s: ", indent, payload.Kind(), label)
	switch payload := payload.(type) {
	case nbt.String:
		fmt.Fprintf(t.w, "%q\n", string(payload))
	case nbt.ByteArray:
		writeArray(t.w, payload)
	case nbt.IntArray:
		writeArray(t.w, payload)
	case nbt.LongArray:
		writeArray(t.w, payload)
	case *nbt.List:
		fmt.Fprintf(t.w, "%d entries of %s\n", payload.Len(), payload.Elem)
		for i := 0; i < payload.Len(); i++ {
			if err := t.writeNode(depth+1, "["+strconv.Itoa(i)+"]", payload.Items[i]); err != nil {
				return err
			}
		}
	case *nbt.Compound:
		fmt.Fprintf(t.w, "%d entries\n", payload.Len())
		var err error
		payload.Range(func(tag nbt.Tag) bool {
			err = t.writeNode(depth+1, "("+strconv.Quote(tag.Name)+")", tag.Payload)
			return err == nil
		})
		return err
	default:
		fmt.Fprintf(t.w, "%v\n", payload)
	}
	return nil
}

func writeArray[S ~[]E, E any](w *bufio.Writer, elems S) {
	shown := elems
	if len(shown) > arrayPreview {
		shown = shown[:arrayPreview]
	}
	parts := make([]string, len(shown))
	for i, elem := range shown {
		parts[i] = fmt.Sprint(elem)
	}
	suffix := ""
	if len(elems) > len(shown) {
		suffix = ", ..."
	}
	fmt.Fprintf(w, "%d entries [%s%s]\n", len(elems), strings.Join(parts, ", "), suffix)
}
