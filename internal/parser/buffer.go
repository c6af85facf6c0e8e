package parser

import (
	"github.com/cflow-go/cflow/internal/diagnostics"
	"github.com/cflow-go/cflow/internal/token"
)

// Source supplies the raw token stream the buffer pulls from one token
// at a time. internal/lexer.Lexer satisfies this.
type Source interface {
	NextToken() token.Token
}

// Mark is a saved read position, returned by Buffer.Mark and consumed
// by Buffer.Restore or Buffer.DeleteTokens. It is a plain integer by
// design (spec.md §9): checkpoints need no more state than the cursor.
type Mark int

// Buffer is the speculative-lookahead token stream: an append-only
// vector with a read cursor, supporting mark/restore, put-back, and
// bulk rewrites of the buffered tokens (DeleteTokens, Cleanup,
// ReparseFrom, rewriteStructHead). Invariant: 0 <= cursor <= top <= len(tokens) at every
// observable boundary.
type Buffer struct {
	tokens []token.Token
	top    int
	cursor int
	src    Source
	cur    token.Token // the token at tokens[cursor-1], or zero if cursor == 0
}

// NewBuffer wraps src in a fresh, empty token buffer.
func NewBuffer(src Source) *Buffer {
	return &Buffer{src: src}
}

func (b *Buffer) grow(t token.Token) {
	if b.top < len(b.tokens) {
		b.tokens[b.top] = t
	} else {
		b.tokens = append(b.tokens, t)
	}
	b.top++
}

// Next advances the cursor by one token, pulling a fresh token from the
// source only if the buffer has nothing left unread, and returns its
// kind. Current reflects the newly current token afterward.
func (b *Buffer) Next() token.Kind {
	if b.cursor == b.top {
		b.grow(b.src.NextToken())
	}
	b.cur = b.tokens[b.cursor]
	b.cursor++
	return b.cur.Kind
}

// Current returns the token the most recent Next/PutBack/Restore left
// active - the equivalent of cflow's global `tok`.
func (b *Buffer) Current() token.Token {
	return b.cur
}

// PutBack steps the cursor back by one. It is a fatal misuse (mirroring
// spec.md §6's "INTERNAL ERROR: cannot return token to stream") to call
// this when the cursor is already zero - that can only happen from a
// recognizer bug, not from malformed input, so it panics rather than
// returning an error.
func (b *Buffer) PutBack() token.Kind {
	if b.cursor == 0 {
		panic(diagnostics.MsgInternalCannotPutback)
	}
	b.cursor--
	if b.cursor > 0 {
		b.cur = b.tokens[b.cursor-1]
	} else {
		b.cur = token.Token{}
	}
	return b.cur.Kind
}

// Mark snapshots the current cursor for later Restore or DeleteTokens.
func (b *Buffer) Mark() Mark {
	return Mark(b.cursor)
}

// Restore rewinds the cursor to a previously taken Mark and refreshes
// Current() from the token immediately preceding it.
func (b *Buffer) Restore(m Mark) {
	b.cursor = int(m)
	if b.cursor > 0 {
		b.cur = b.tokens[b.cursor-1]
	} else {
		b.cur = token.Token{}
	}
}

// DeleteTokens excises the already-seen range [m, cursor) from the
// buffer by shifting the unread tail down over it, then restores the
// cursor to m, for a region that has been committed past and will never
// be re-read. The recognizer itself does not call it: the driver and
// body walker compact with Cleanup, and struct-tag synthesis rewrites
// the buffer through rewriteStructHead. A caller must not hold any Mark
// inside [m, cursor) across this call.
func (b *Buffer) DeleteTokens(m Mark) {
	delta := b.top - b.cursor
	if delta > 0 {
		copy(b.tokens[int(m):int(m)+delta], b.tokens[b.cursor:b.top])
	}
	b.top = int(m) + delta
	b.Restore(m)
}

// Slice returns the tokens consumed between from and the current
// cursor, in source order.
func (b *Buffer) Slice(from Mark) []token.Token {
	return b.tokens[int(from):b.cursor]
}

// Consumed returns every already-consumed token except the current one:
// [0, cursor-1). Because the driver compacts the buffer between
// top-level constructs (and the body walker between statements), index
// 0 is always the first token of the construct being recognized, so
// this range is exactly the declaration's own text minus its
// terminator.
func (b *Buffer) Consumed() []token.Token {
	if b.cursor == 0 {
		return nil
	}
	return b.tokens[:b.cursor-1]
}

// ReparseFrom truncates the buffered-but-unread tail down to typeEnd
// and rewinds the cursor to sp. After a comma in a multi-declarator
// declaration, this leaves only the shared type-specifier prefix in the
// buffer: the recognizer re-reads the prefix and then pulls the next
// declarator's tokens fresh from the source.
func (b *Buffer) ReparseFrom(typeEnd, sp Mark) {
	b.top = int(typeEnd)
	b.Restore(sp)
}

// Cleanup discards every already-seen token ([0, cursor)), shifting the
// unread tail down to index 0. The top-level driver calls this between
// declarations to bound memory, matching cleanup_stack() in the
// original parser.
func (b *Buffer) Cleanup() {
	delta := b.top - b.cursor
	if delta > 0 {
		copy(b.tokens[0:delta], b.tokens[b.cursor:b.top])
	}
	b.top = delta
	b.cursor = 0
	b.cur = token.Token{}
}

// rewriteStructHead implements the fake_struct token-stream rewrite
// from spec.md §4.3: at mark (the cursor position immediately after the
// `struct`/`union`/`enum` keyword was consumed), either keep the single
// already-buffered tag identifier (keepTag) or replace whatever follows
// with a synthetic `{ ... }` placeholder identifier, then re-append the
// declarator token (hold) that followed the struct body. The cursor is
// left at mark so the next Next() call reads the rewritten region.
func (b *Buffer) rewriteStructHead(mark Mark, keepTag bool, hold token.Token) {
	m := int(mark)
	if keepTag {
		b.top = m + 1
	} else {
		b.top = m
		b.grow(token.Token{Kind: token.Identifier, Text: "{ ... }", Line: hold.Line})
	}
	b.grow(hold)
	b.Restore(mark)
}
