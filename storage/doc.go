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


// Package storage provides the storage abstraction layer for the vector index.
//
// Repository interfaces decouple the index from the storage engine. The
// BadgerDB implementation lives in storage/badger.
//
// # Architecture
//
//   - ChunkRepository: embedded chunks and brute-force similarity search
//   - ManifestRepository: the marker written when an index build completes
//
// Values are encoded in MUS format (see core.ChunkMUS and core.ManifestMUS).
//
// # Usage
//
//	backend, err := badger.OpenBackend("./index_db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	chunks := badger.NewChunkRepository(backend)
//	manifests := badger.NewManifestRepository(backend)
//
// Use in tests with in-memory storage:
//
//	chunks, manifests, backend, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe. Once an index is built
// it is only read, and any number of goroutines may search it concurrently.
package storage
