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

package nbt

import (
	"testing"

	"github.com/bastelbot/nbt/internal/assert"
)

func TestOptions(t *testing.T) {
	t.Parallel()
	assert.Equal(t, NewCodec().maxDepth, DefaultMaxDepth)
	assert.False(t, NewCodec().rejectTrailingData)

	codec := NewCodec(MaxDepth(3), RejectTrailingData())
	assert.Equal(t, codec.maxDepth, 3)
	assert.True(t, codec.rejectTrailingData)

	// Later options win.
	assert.Equal(t, NewCodec(MaxDepth(3), MaxDepth(-1)).maxDepth, -1)
}
