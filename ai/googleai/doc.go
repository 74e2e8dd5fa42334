// Package googleai provides an ai.AIProvider backed by Google Generative AI.
//
// Embeddings default to the "embedding-001" model. A PickerModel such as
// "gemini-1.5-flash" enables candidate picking through the same client.
package googleai
