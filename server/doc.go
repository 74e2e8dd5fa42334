// Package server exposes a Recommender over HTTP with gin.
//
// Routes:
//   - POST /recommend  {"query": "...", "tone": "..."} -> {"recommendations": [...]}
//   - GET  /test       plain-text liveness message
//   - GET  /health     catalog and index sizes
//
// Identical concurrent requests share one retrieval, and results may be
// cached for a short time keyed by tone and query.
package server
