// Package langchain adapts langchaingo clients to the ai interfaces.
//
// Embedder wraps any embeddings.EmbedderClient, and Picker wraps any
// llms.Model. The provider packages (ai/googleai, ai/openai) only construct
// the underlying clients and hand them to this package.
//
// Picker replies are decoded by ParseIDList, which accepts nothing but a JSON
// list of integer IDs.
package langchain
