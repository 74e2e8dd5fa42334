// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package retrieval turns a free-text query and a tone into a bounded list
// of catalog games.
//
// The Engine runs a fixed pipeline:
//   - nearest-neighbor search over the chunk index
//   - game ID extraction from the retrieved chunks
//   - catalog lookup, which keeps catalog order and drops unknown IDs
//   - an optional model-based filter over the candidates
//   - a stable re-rank by the emotion score matching the tone
//   - truncation to the final result size
//
// Similarity order does not survive ID extraction; the catalog order is the
// baseline that tone re-ranking starts from.
package retrieval
