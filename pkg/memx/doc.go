// Package memx manages conversational context for chat-oriented LLM
// applications. Given an unbounded chronological message history and a fixed
// token budget it decides which messages survive verbatim, which are dropped
// and summarized, and assembles the final bounded sequence handed to the
// model.
//
// The package is built from three layers, each depending only on the one
// before it: a ratio-based token estimator, pure budget-splitting functions
// (sliding-window and three-tier), and the MemoryManager, which orchestrates
// splitting and incremental summarization through two narrow ports
// (SummaryStore and Summarizer).
package memx
