// Package bot implements the command layer of PhaunaBot: the message
// tokenizer, the command table and dispatcher, the per-command handlers and
// the event list formatter.
//
// An inbound message flows through the authorization gate, is tokenized into
// arguments (quoted phrases and "time + meridiem" pairs survive as single
// tokens), and is dispatched by its first token against a static command
// table. Handlers talk to the calendar collaborator, trap their own failures
// and always answer the chat; no error escapes to the polling loop.
//
// The command table is built once at construction and never mutated, so a
// single Dispatcher is safe for concurrent message handling.
package bot
