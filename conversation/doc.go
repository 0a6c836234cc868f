// Package conversation contains the orchestrator tying the bridge together:
// per utterance it reads bounded history, builds the outbound request, drives
// exactly one gateway attempt, and commits the exchange only when a reply
// came back. Every failure collapses to one fixed spoken-friendly sentence;
// nothing escapes the Converse boundary as an error value.
//
// Commit policy is the load-bearing decision here: a failed exchange is
// never persisted, so history only ever reflects completed exchanges and a
// user retry starts from clean context.
package conversation
